package domain

import (
	"context"
	"time"
)

// Comment is embedded in its Post; the ID is assigned at append time.
type Comment struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
	ImageID  string `json:"-"`
	Author   string `json:"author"`

	// Like set (one entry per user) and comment sequence; stripped from
	// feed responses in favor of counts.
	Likes    []string  `json:"likes,omitempty"`
	Comments []Comment `json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedItem is a post annotated for the requesting user, with the raw
// like/comment collections replaced by counts.
type FeedItem struct {
	ID                 int64       `json:"id"`
	Content            string      `json:"content"`
	ImageURL           string      `json:"image_url,omitempty"`
	Author             UserSummary `json:"author"`
	LikesCount         int         `json:"likes_count"`
	CommentsCount      int         `json:"comments_count"`
	LikedByCurrentUser bool        `json:"liked_by_current_user"`
	CreatedAt          time.Time   `json:"created_at"`
}

type CommentView struct {
	ID        string      `json:"id"`
	Comment   string      `json:"comment"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Delete(ctx context.Context, id int64) error

	FetchRecentByAuthors(ctx context.Context, authors []string, limit int) ([]Post, error)
	FetchRecentExcluding(ctx context.Context, authors []string, limit int) ([]Post, error)

	// ToggleLike atomically flips the user's membership in the like set and
	// reports the resulting state.
	ToggleLike(ctx context.Context, postID int64, userID string) (bool, error)
	AppendComment(ctx context.Context, postID int64, comment *Comment) error
	SaveComments(ctx context.Context, postID int64, comments []Comment) error
}

type PostUsecase interface {
	CreatePost(ctx context.Context, authorID, content string, image []byte, contentType string) (*Post, error)
	ListFeed(ctx context.Context, userID string, page, pageSize int) ([]FeedItem, error)
	ListComments(ctx context.Context, postID int64, page, pageSize int) ([]CommentView, error)
	ToggleLike(ctx context.Context, userID string, postID int64) (bool, error)
	AddComment(ctx context.Context, userID string, postID int64, text string) error
	DeleteComment(ctx context.Context, userID string, postID int64, commentID string) error
	DeletePost(ctx context.Context, userID string, postID int64) error
}
