package postgres

import (
	"context"
	"errors"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (sender, receiver, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at`

	return r.db.QueryRow(ctx, query, msg.Sender, msg.Receiver, msg.Content).
		Scan(&msg.ID, &msg.Read, &msg.CreatedAt)
}

func (r *messageRepo) FetchByParticipant(ctx context.Context, userID string) ([]domain.Message, error) {
	query := `SELECT m.id, m.sender, m.receiver, m.content, m.read, m.created_at,
			COALESCE(s.name, '') AS sender_name, COALESCE(rc.name, '') AS receiver_name
		FROM messages m
		LEFT JOIN users s ON m.sender = s.id
		LEFT JOIN users rc ON m.receiver = rc.id
		WHERE m.sender = $1 OR m.receiver = $1
		ORDER BY m.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.Sender, &msg.Receiver, &msg.Content, &msg.Read, &msg.CreatedAt,
			&msg.SenderName, &msg.ReceiverName,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkRead updates only when userID is the receiver, so a sender probing a
// message id gets the same not-found as a missing message.
func (r *messageRepo) MarkRead(ctx context.Context, id int64, userID string) (*domain.Message, error) {
	query := `UPDATE messages SET read = true
		WHERE id = $1 AND receiver = $2
		RETURNING id, sender, receiver, content, read, created_at`

	var msg domain.Message
	err := r.db.QueryRow(ctx, query, id, userID).
		Scan(&msg.ID, &msg.Sender, &msg.Receiver, &msg.Content, &msg.Read, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}
