package domain

import (
	"context"
	"time"
)

// ChatMessage is an immutable message persisted for history replay.
type ChatMessage struct {
	ID         int64
	EventID    int64
	SenderID   int64
	SenderName string
	Message    string
	CreatedAt  time.Time
}

type ChatMessageRepository interface {
	Create(ctx context.Context, m *ChatMessage) error
	// ListSince returns messages with created_at >= since, oldest first.
	ListSince(ctx context.Context, eventID int64, since time.Time) ([]*ChatMessage, error)
}

// ChatService backs the realtime chat namespace.
type ChatService interface {
	// History returns the messages the user may see: those sent at or after the user joined the event.
	History(ctx context.Context, eventID, userID int64) ([]*ChatMessage, error)
	RecordMessage(ctx context.Context, eventID, senderID int64, text string) (*ChatMessage, error)
}
