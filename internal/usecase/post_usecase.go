package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	ownFeedPosts        = 3
	connectionFeedPosts = 15
	discoveryFeedPosts  = 50
)

type postUsecase struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
	images   domain.ImageStore
}

func NewPostUsecase(postRepo domain.PostRepository, userRepo domain.UserRepository, images domain.ImageStore) domain.PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		userRepo: userRepo,
		images:   images,
	}
}

func (u *postUsecase) CreatePost(ctx context.Context, authorID, content string, image []byte, contentType string) (*domain.Post, error) {
	if content == "" {
		return nil, apperror.BadRequest("Post content is required")
	}

	post := &domain.Post{
		Content: content,
		Author:  authorID,
	}

	if len(image) > 0 {
		url, key, err := u.images.Upload(ctx, "post_images", image, contentType)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		post.ImageURL = url
		post.ImageID = key
	}

	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, apperror.Internal(err)
	}
	return post, nil
}

// ListFeed blends the user's own recent posts, a shuffled sample of their
// connections' posts, and recent posts from outside the network, then pages
// over the combined sequence.
func (u *postUsecase) ListFeed(ctx context.Context, userID string, page, pageSize int) ([]domain.FeedItem, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	own, err := u.postRepo.FetchRecentByAuthors(ctx, []string{userID}, ownFeedPosts)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var network []domain.Post
	if len(user.Connections) > 0 {
		network, err = u.postRepo.FetchRecentByAuthors(ctx, user.Connections, connectionFeedPosts)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		rand.Shuffle(len(network), func(i, j int) {
			network[i], network[j] = network[j], network[i]
		})
	}

	excluded := append([]string{userID}, user.Connections...)
	discovery, err := u.postRepo.FetchRecentExcluding(ctx, excluded, discoveryFeedPosts)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	combined := make([]domain.Post, 0, len(own)+len(network)+len(discovery))
	combined = append(combined, own...)
	combined = append(combined, network...)
	combined = append(combined, discovery...)

	start := (page - 1) * pageSize
	if start >= len(combined) {
		return []domain.FeedItem{}, nil
	}
	end := start + pageSize
	if end > len(combined) {
		end = len(combined)
	}
	pageDomain := combined[start:end]

	authorIDs := make([]string, 0, len(pageDomain))
	for _, post := range pageDomain {
		authorIDs = append(authorIDs, post.Author)
	}
	authors, err := u.userRepo.FetchSummaries(ctx, authorIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	feed := make([]domain.FeedItem, 0, len(pageDomain))
	for _, post := range pageDomain {
		feed = append(feed, domain.FeedItem{
			ID:                 post.ID,
			Content:            post.Content,
			ImageURL:           post.ImageURL,
			Author:             authors[post.Author],
			LikesCount:         len(post.Likes),
			CommentsCount:      len(post.Comments),
			LikedByCurrentUser: contains(post.Likes, userID),
			CreatedAt:          post.CreatedAt,
		})
	}
	return feed, nil
}

func (u *postUsecase) ListComments(ctx context.Context, postID int64, page, pageSize int) ([]domain.CommentView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	post, err := u.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(post.Comments))
	copy(comments, post.Comments)
	sort.SliceStable(comments, func(a, b int) bool {
		return comments[a].CreatedAt.After(comments[b].CreatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(comments) {
		return []domain.CommentView{}, nil
	}
	end := start + pageSize
	if end > len(comments) {
		end = len(comments)
	}
	comments = comments[start:end]

	authorIDs := make([]string, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.Author)
	}
	authors, err := u.userRepo.FetchSummaries(ctx, authorIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, domain.CommentView{
			ID:        comment.ID,
			Comment:   comment.Comment,
			Author:    authors[comment.Author],
			CreatedAt: comment.CreatedAt,
		})
	}
	return views, nil
}

func (u *postUsecase) ToggleLike(ctx context.Context, userID string, postID int64) (bool, error) {
	liked, err := u.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, apperror.NotFound("Post not found")
		}
		return false, apperror.Internal(err)
	}
	return liked, nil
}

func (u *postUsecase) AddComment(ctx context.Context, userID string, postID int64, text string) error {
	if text == "" {
		return apperror.BadRequest("Comment text is required")
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Comment:   text,
		Author:    userID,
		CreatedAt: time.Now(),
	}
	if err := u.postRepo.AppendComment(ctx, postID, comment); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Post not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *postUsecase) DeleteComment(ctx context.Context, userID string, postID int64, commentID string) error {
	post, err := u.getPost(ctx, postID)
	if err != nil {
		return err
	}

	found := false
	kept := post.Comments[:0]
	for _, comment := range post.Comments {
		if comment.ID == commentID {
			if comment.Author != userID {
				return apperror.Forbidden("Only the comment author can delete it")
			}
			found = true
			continue
		}
		kept = append(kept, comment)
	}
	if !found {
		return apperror.NotFound("Comment not found")
	}

	if err := u.postRepo.SaveComments(ctx, postID, kept); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *postUsecase) DeletePost(ctx context.Context, userID string, postID int64) error {
	post, err := u.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author != userID {
		return apperror.Forbidden("Only the post author can delete it")
	}

	if err := u.postRepo.Delete(ctx, postID); err != nil {
		return apperror.Internal(err)
	}

	// Best effort: the post row is already gone.
	if post.ImageID != "" {
		if err := u.images.Delete(ctx, post.ImageID); err != nil {
			logger.Log.Warn("failed to delete post image object", "post_id", postID, "error", err)
		}
	}
	return nil
}

func (u *postUsecase) getPost(ctx context.Context, postID int64) (*domain.Post, error) {
	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, apperror.Internal(err)
	}
	return post, nil
}
