package usecase

import (
	"context"
	"errors"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
)

type messageUsecase struct {
	messageRepo domain.MessageRepository
	userRepo    domain.UserRepository
}

func NewMessageUsecase(messageRepo domain.MessageRepository, userRepo domain.UserRepository) domain.MessageUsecase {
	return &messageUsecase{messageRepo: messageRepo, userRepo: userRepo}
}

func (u *messageUsecase) SendMessage(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, apperror.BadRequest("Message content is required")
	}
	if receiverID == "" {
		return nil, apperror.BadRequest("Receiver is required")
	}
	if senderID == receiverID {
		return nil, apperror.BadRequest("Cannot message yourself")
	}

	if _, err := u.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Internal(err)
	}

	msg := &domain.Message{
		Sender:   senderID,
		Receiver: receiverID,
		Content:  content,
	}
	if err := u.messageRepo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

// ListConversations groups the user's messages by counterpart. The repository
// returns messages newest first, so both the per-conversation order and the
// conversation order fall out of a single pass.
func (u *messageUsecase) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	messages, err := u.messageRepo.FetchByParticipant(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	index := make(map[string]int)
	conversations := make([]domain.Conversation, 0)
	for _, msg := range messages {
		counterpartID := msg.Sender
		counterpartName := msg.SenderName
		if msg.Sender == userID {
			counterpartID = msg.Receiver
			counterpartName = msg.ReceiverName
		}

		pos, ok := index[counterpartID]
		if !ok {
			pos = len(conversations)
			index[counterpartID] = pos
			conversations = append(conversations, domain.Conversation{
				User: domain.UserSummary{ID: counterpartID, Name: counterpartName},
			})
		}

		msg.SenderName = ""
		msg.ReceiverName = ""
		conversations[pos].Messages = append(conversations[pos].Messages, msg)
	}
	return conversations, nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, userID string, id int64) (*domain.Message, error) {
	msg, err := u.messageRepo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Message not found")
		}
		return nil, apperror.Internal(err)
	}
	return msg, nil
}
