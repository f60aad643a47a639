package postgres

import (
	"context"
	"errors"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type eventRepo struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) domain.EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *domain.Event) error {
	query := `INSERT INTO events (title, description, event_date, location, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		event.Title, event.Description, event.EventDate, event.Location, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT e.id, e.title, e.description, e.event_date, e.location, e.created_by,
			e.attendees, e.created_at, COALESCE(u.name, '') AS creator_name
		FROM events e LEFT JOIN users u ON e.created_by = u.id
		WHERE e.id = $1`

	var event domain.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.EventDate, &event.Location,
		&event.CreatedBy, pq.Array(&event.Attendees), &event.CreatedAt, &event.CreatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Fetch(ctx context.Context, limit int) ([]domain.Event, error) {
	query := `SELECT e.id, e.title, e.description, e.event_date, e.location, e.created_by,
			e.attendees, e.created_at, COALESCE(u.name, '') AS creator_name
		FROM events e LEFT JOIN users u ON e.created_by = u.id
		ORDER BY e.event_date ASC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.EventDate, &event.Location,
			&event.CreatedBy, pq.Array(&event.Attendees), &event.CreatedAt, &event.CreatorName,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepo) AddAttendee(ctx context.Context, eventID int64, userID string) (bool, error) {
	query := `UPDATE events SET attendees = array_append(attendees, $2)
		WHERE id = $1 AND NOT ($2 = ANY(attendees))`

	result, err := r.db.Exec(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
