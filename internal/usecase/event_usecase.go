package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
)

const eventListLimit = 20

type eventUsecase struct {
	eventRepo domain.EventRepository
}

func NewEventUsecase(eventRepo domain.EventRepository) domain.EventUsecase {
	return &eventUsecase{eventRepo: eventRepo}
}

func (u *eventUsecase) CreateEvent(ctx context.Context, creatorID string, event *domain.Event) error {
	if event.Title == "" || event.Location == "" {
		return apperror.BadRequest("Title and location are required")
	}
	if event.EventDate.Before(time.Now()) {
		return apperror.BadRequest("Event date must be in the future")
	}

	event.CreatedBy = creatorID
	event.Attendees = []string{}

	if err := u.eventRepo.Create(ctx, event); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *eventUsecase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := u.eventRepo.Fetch(ctx, eventListLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

func (u *eventUsecase) RegisterForEvent(ctx context.Context, userID string, eventID int64) (*domain.Event, error) {
	event, err := u.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Event not found")
		}
		return nil, apperror.Internal(err)
	}

	added, err := u.eventRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !added {
		return nil, apperror.BadRequest("Already registered for this event")
	}

	event.Attendees = append(event.Attendees, userID)
	return event, nil
}
