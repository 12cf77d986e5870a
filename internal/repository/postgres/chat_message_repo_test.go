package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"joiny/internal/domain"
)

func TestChatMessageRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2025, 5, 17, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO chat_messages \(event_id, sender_id, message\)`).
		WithArgs(int64(1), int64(7), "hi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(30), at))

	m := &domain.ChatMessage{EventID: 1, SenderID: 7, Message: "hi"}
	require.NoError(t, NewChatMessageRepository(db).Create(context.Background(), m))
	require.Equal(t, int64(30), m.ID)
	require.Equal(t, at, m.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChatMessageRepository_ListSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2025, 5, 17, 18, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "sender_id", "username", "message", "created_at"}
	mock.ExpectQuery(`WHERE m.event_id = \$1 AND m.created_at >= \$2\s+ORDER BY m.created_at ASC`).
		WithArgs(int64(1), since).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(30), int64(1), int64(7), "alice", "first", since).
			AddRow(int64(31), int64(1), int64(8), "bob", "second", since.Add(time.Minute)))

	got, err := NewChatMessageRepository(db).ListSince(context.Background(), 1, since)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "alice", got[0].SenderName)
	require.Equal(t, "second", got[1].Message)
	require.NoError(t, mock.ExpectationsWereMet())
}
