package domain

import (
	"context"
	"time"
)

type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`

	// Joined display names for conversation listings
	SenderName   string `json:"sender_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
}

// Conversation groups a user's messages with one counterpart, newest first.
type Conversation struct {
	User     UserSummary `json:"user"`
	Messages []Message   `json:"messages"`
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error

	// FetchByParticipant returns every message the user sent or received,
	// newest first, with participant names resolved.
	FetchByParticipant(ctx context.Context, userID string) ([]Message, error)

	// MarkRead flips the read flag only when userID is the receiver;
	// ErrNotFound otherwise, whether or not the message exists.
	MarkRead(ctx context.Context, id int64, userID string) (*Message, error)
}

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID, receiverID, content string) (*Message, error)
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	MarkRead(ctx context.Context, userID string, id int64) (*Message, error)
}
