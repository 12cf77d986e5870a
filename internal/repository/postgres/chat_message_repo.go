package postgres

import (
	"context"
	"database/sql"
	"time"

	"joiny/internal/domain"
)

type chatMessageRepository struct {
	DB *sql.DB
}

func NewChatMessageRepository(db *sql.DB) domain.ChatMessageRepository {
	return &chatMessageRepository{DB: db}
}

func (r *chatMessageRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (event_id, sender_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query, m.EventID, m.SenderID, m.Message).Scan(&m.ID, &m.CreatedAt)
}

func (r *chatMessageRepository) ListSince(ctx context.Context, eventID int64, since time.Time) ([]*domain.ChatMessage, error) {
	query := `
		SELECT m.id, m.event_id, m.sender_id, u.username, m.message, m.created_at
		FROM chat_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.event_id = $1 AND m.created_at >= $2
		ORDER BY m.created_at ASC, m.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.ChatMessage, 0)
	for rows.Next() {
		m := &domain.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.EventID, &m.SenderID, &m.SenderName, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
