package domain

import (
	"context"
	"time"
)

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"date"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"created_by"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`

	CreatorName string `json:"creator_name,omitempty"`
}

type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	Fetch(ctx context.Context, limit int) ([]Event, error)

	// AddAttendee registers the user unless already registered; returns
	// false in that case.
	AddAttendee(ctx context.Context, eventID int64, userID string) (bool, error)
}

type EventUsecase interface {
	CreateEvent(ctx context.Context, creatorID string, event *Event) error
	ListEvents(ctx context.Context) ([]Event, error)
	RegisterForEvent(ctx context.Context, userID string, eventID int64) (*Event, error)
}
