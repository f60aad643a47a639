package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

const postColumns = `id, content, image_url, image_id, author, likes, comments, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID, &post.Content, &post.ImageURL, &post.ImageID, &post.Author,
		pq.Array(&post.Likes), &post.Comments, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func scanPostRows(rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.Content, &post.ImageURL, &post.ImageID, &post.Author,
			pq.Array(&post.Likes), &post.Comments, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `INSERT INTO posts (content, image_url, image_id, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query, post.Content, post.ImageURL, post.ImageID, post.Author).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRow(ctx, query, id))
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepo) FetchRecentByAuthors(ctx context.Context, authors []string, limit int) ([]domain.Post, error) {
	if len(authors) == 0 {
		return nil, nil
	}

	query := `SELECT ` + postColumns + ` FROM posts
		WHERE author = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, pq.Array(authors), limit)
	if err != nil {
		return nil, err
	}
	return scanPostRows(rows)
}

func (r *postRepo) FetchRecentExcluding(ctx context.Context, authors []string, limit int) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE NOT (author = ANY($1))
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, pq.Array(authors), limit)
	if err != nil {
		return nil, err
	}
	return scanPostRows(rows)
}

// ToggleLike flips membership in a single statement so concurrent toggles by
// different users never lose each other's update.
func (r *postRepo) ToggleLike(ctx context.Context, postID int64, userID string) (bool, error) {
	query := `UPDATE posts
		SET likes = CASE WHEN $2 = ANY(likes) THEN array_remove(likes, $2) ELSE array_append(likes, $2) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING $2 = ANY(likes)`

	var liked bool
	err := r.db.QueryRow(ctx, query, postID, userID).Scan(&liked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return liked, nil
}

func (r *postRepo) AppendComment(ctx context.Context, postID int64, comment *domain.Comment) error {
	element, err := json.Marshal([]*domain.Comment{comment})
	if err != nil {
		return err
	}

	query := `UPDATE posts SET comments = comments || $2::jsonb, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, postID, string(element))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepo) SaveComments(ctx context.Context, postID int64, comments []domain.Comment) error {
	if comments == nil {
		comments = []domain.Comment{}
	}
	encoded, err := json.Marshal(comments)
	if err != nil {
		return err
	}

	query := `UPDATE posts SET comments = $2::jsonb, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, postID, string(encoded))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
