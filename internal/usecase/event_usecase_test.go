package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject missing title or location", func(t *testing.T) {
		mockEvents := new(MockEventRepo)
		uc := usecase.NewEventUsecase(mockEvents)

		err := uc.CreateEvent(ctx, "u1", &domain.Event{
			Title:     "",
			Location:  "Main Hall",
			EventDate: time.Now().Add(48 * time.Hour),
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		mockEvents.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject a past date", func(t *testing.T) {
		uc := usecase.NewEventUsecase(new(MockEventRepo))

		err := uc.CreateEvent(ctx, "u1", &domain.Event{
			Title:     "Reunion",
			Location:  "Main Hall",
			EventDate: time.Now().Add(-time.Hour),
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should stamp the creator and start with no attendees", func(t *testing.T) {
		mockEvents := new(MockEventRepo)
		uc := usecase.NewEventUsecase(mockEvents)

		event := &domain.Event{
			Title:     "Reunion",
			Location:  "Main Hall",
			EventDate: time.Now().Add(48 * time.Hour),
			CreatedBy: "someone-else",
			Attendees: []string{"stowaway"},
		}
		mockEvents.On("Create", ctx, event).Return(nil)

		assert.NoError(t, uc.CreateEvent(ctx, "u1", event))
		assert.Equal(t, "u1", event.CreatedBy)
		assert.Empty(t, event.Attendees)
	})
}

func TestRegisterForEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown event is a 404", func(t *testing.T) {
		mockEvents := new(MockEventRepo)
		uc := usecase.NewEventUsecase(mockEvents)

		mockEvents.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.RegisterForEvent(ctx, "u1", 9)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		mockEvents.AssertNotCalled(t, "AddAttendee")
	})

	t.Run("Should reject a duplicate registration", func(t *testing.T) {
		mockEvents := new(MockEventRepo)
		uc := usecase.NewEventUsecase(mockEvents)

		mockEvents.On("GetByID", ctx, int64(1)).
			Return(&domain.Event{ID: 1, Attendees: []string{"u1"}}, nil)
		mockEvents.On("AddAttendee", ctx, int64(1), "u1").Return(false, nil)

		_, err := uc.RegisterForEvent(ctx, "u1", 1)
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should return the event with the new attendee", func(t *testing.T) {
		mockEvents := new(MockEventRepo)
		uc := usecase.NewEventUsecase(mockEvents)

		mockEvents.On("GetByID", ctx, int64(1)).
			Return(&domain.Event{ID: 1, Attendees: []string{"u2"}}, nil)
		mockEvents.On("AddAttendee", ctx, int64(1), "u1").Return(true, nil)

		event, err := uc.RegisterForEvent(ctx, "u1", 1)
		assert.NoError(t, err)
		assert.Equal(t, []string{"u2", "u1"}, event.Attendees)
	})
}

func TestListEvents(t *testing.T) {
	mockEvents := new(MockEventRepo)
	uc := usecase.NewEventUsecase(mockEvents)

	mockEvents.On("Fetch", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Event{{ID: 1, Title: "Reunion"}}, nil)

	events, err := uc.ListEvents(context.Background())
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "Reunion", events[0].Title)
}
