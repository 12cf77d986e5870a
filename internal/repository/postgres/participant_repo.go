package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"joiny/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func scanParticipant(s rowScanner) (*domain.Participant, error) {
	p := &domain.Participant{}
	var userID sql.NullInt64
	if err := s.Scan(&p.ID, &p.EventID, &userID, &p.Name, &p.JoinedAt); err != nil {
		return nil, err
	}
	p.UserID = nullInt64(userID)
	return p, nil
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (event_id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.EventID, p.UserID, p.Name).Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `SELECT id, event_id, user_id, name, joined_at FROM participants WHERE id = $1`
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, name, joined_at
		FROM participants
		WHERE event_id = $1 AND user_id = $2
	`
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) List(ctx context.Context, eventID *int64) ([]*domain.Participant, error) {
	if eventID == nil {
		return r.query(ctx, `SELECT id, event_id, user_id, name, joined_at FROM participants ORDER BY id`)
	}
	return r.query(ctx, `
		SELECT id, event_id, user_id, name, joined_at
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at, id
	`, *eventID)
}

// ListByEventIDs loads the members of several events in one round trip.
func (r *participantRepository) ListByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*domain.Participant, error) {
	out := make(map[int64][]*domain.Participant, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	members, err := r.query(ctx, `
		SELECT id, event_id, user_id, name, joined_at
		FROM participants
		WHERE event_id = ANY($1)
		ORDER BY event_id, joined_at, id
	`, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	for _, p := range members {
		out[p.EventID] = append(out[p.EventID], p)
	}
	return out, nil
}

func (r *participantRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Participant, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *participantRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
