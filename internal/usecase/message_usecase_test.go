package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject messaging yourself", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockMessages, new(MockUserRepo))

		_, err := uc.SendMessage(ctx, "u1", "u1", "hi me")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		mockMessages.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject empty content", func(t *testing.T) {
		uc := usecase.NewMessageUsecase(new(MockMessageRepo), new(MockUserRepo))

		_, err := uc.SendMessage(ctx, "u1", "u2", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Unknown receiver is a 404", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewMessageUsecase(mockMessages, mockUsers)

		mockUsers.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.SendMessage(ctx, "u1", "ghost", "hello?")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		mockMessages.AssertNotCalled(t, "Create")
	})

	t.Run("Should persist and return the message", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewMessageUsecase(mockMessages, mockUsers)

		mockUsers.On("GetByID", ctx, "u2").Return(&domain.User{ID: "u2"}, nil)
		mockMessages.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)

		msg, err := uc.SendMessage(ctx, "u1", "u2", "hello")
		assert.NoError(t, err)
		assert.Equal(t, "u1", msg.Sender)
		assert.Equal(t, "u2", msg.Receiver)
		assert.Equal(t, "hello", msg.Content)
	})
}

func TestListConversations(t *testing.T) {
	ctx := context.Background()

	t.Run("Groups messages by counterpart, most recent conversation first", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockMessages, new(MockUserRepo))

		// Newest first, the repository ordering.
		mockMessages.On("FetchByParticipant", ctx, "u1").Return([]domain.Message{
			{ID: 4, Sender: "u3", SenderName: "Carol", Receiver: "u1", ReceiverName: "Me", Content: "pong"},
			{ID: 3, Sender: "u1", SenderName: "Me", Receiver: "u2", ReceiverName: "Bob", Content: "later"},
			{ID: 2, Sender: "u1", SenderName: "Me", Receiver: "u3", ReceiverName: "Carol", Content: "ping"},
			{ID: 1, Sender: "u2", SenderName: "Bob", Receiver: "u1", ReceiverName: "Me", Content: "first"},
		}, nil)

		conversations, err := uc.ListConversations(ctx, "u1")
		assert.NoError(t, err)
		assert.Len(t, conversations, 2)

		assert.Equal(t, "u3", conversations[0].User.ID)
		assert.Equal(t, "Carol", conversations[0].User.Name)
		assert.Len(t, conversations[0].Messages, 2)
		assert.Equal(t, int64(4), conversations[0].Messages[0].ID)

		assert.Equal(t, "u2", conversations[1].User.ID)
		assert.Equal(t, "Bob", conversations[1].User.Name)
		assert.Len(t, conversations[1].Messages, 2)
		assert.Equal(t, int64(1), conversations[1].Messages[1].ID)

		// Joined names live on the conversation header, not each message.
		assert.Empty(t, conversations[0].Messages[0].SenderName)
		assert.Empty(t, conversations[0].Messages[0].ReceiverName)
	})

	t.Run("No messages yields an empty list", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockMessages, new(MockUserRepo))

		mockMessages.On("FetchByParticipant", ctx, "u1").Return([]domain.Message{}, nil)

		conversations, err := uc.ListConversations(ctx, "u1")
		assert.NoError(t, err)
		assert.Empty(t, conversations)
	})
}

func TestMarkMessageRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the updated message", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockMessages, new(MockUserRepo))

		mockMessages.On("MarkRead", ctx, int64(7), "u1").
			Return(&domain.Message{ID: 7, Receiver: "u1", Read: true}, nil)

		msg, err := uc.MarkRead(ctx, "u1", 7)
		assert.NoError(t, err)
		assert.True(t, msg.Read)
	})

	t.Run("Message of another receiver is a 404", func(t *testing.T) {
		mockMessages := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(mockMessages, new(MockUserRepo))

		mockMessages.On("MarkRead", ctx, int64(7), "intruder").Return(nil, domain.ErrNotFound)

		_, err := uc.MarkRead(ctx, "intruder", 7)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	})
}
