package postgres

import (
	"context"
	"database/sql"
	"errors"

	"joiny/internal/domain"
)

const friendshipSelect = `
	SELECT f.id, f.from_user_id, f.to_user_id, f.status, f.created_at,
		fu.username, fu.name, fu.email,
		tu.username, tu.name, tu.email
	FROM friendships f
	JOIN users fu ON fu.id = f.from_user_id
	JOIN users tu ON tu.id = f.to_user_id
`

func scanFriendship(s rowScanner) (*domain.Friendship, error) {
	f := &domain.Friendship{FromUser: &domain.UserSummary{}, ToUser: &domain.UserSummary{}}
	var status string
	err := s.Scan(&f.ID, &f.FromUserID, &f.ToUserID, &status, &f.CreatedAt,
		&f.FromUser.Username, &f.FromUser.Name, &f.FromUser.Email,
		&f.ToUser.Username, &f.ToUser.Name, &f.ToUser.Email,
	)
	if err != nil {
		return nil, err
	}
	f.Status = domain.FriendshipStatus(status)
	f.FromUser.ID = f.FromUserID
	f.ToUser.ID = f.ToUserID
	return f, nil
}

type friendshipRepository struct {
	DB *sql.DB
}

func NewFriendshipRepository(db *sql.DB) domain.FriendshipRepository {
	return &friendshipRepository{DB: db}
}

func (r *friendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	query := `
		INSERT INTO friendships (from_user_id, to_user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if f.Status == "" {
		f.Status = domain.FriendshipPending
	}
	err := r.DB.QueryRowContext(ctx, query, f.FromUserID, f.ToUserID, string(f.Status)).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *friendshipRepository) GetByID(ctx context.Context, id int64) (*domain.Friendship, error) {
	return r.one(ctx, friendshipSelect+` WHERE f.id = $1`, id)
}

func (r *friendshipRepository) FindBetween(ctx context.Context, a, b int64) (*domain.Friendship, error) {
	query := friendshipSelect + `
		WHERE (f.from_user_id = $1 AND f.to_user_id = $2)
		   OR (f.from_user_id = $2 AND f.to_user_id = $1)
		ORDER BY f.id
		LIMIT 1
	`
	return r.one(ctx, query, a, b)
}

func (r *friendshipRepository) one(ctx context.Context, query string, args ...any) (*domain.Friendship, error) {
	f, err := scanFriendship(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *friendshipRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Friendship, error) {
	query := friendshipSelect + `
		WHERE f.from_user_id = $1 OR f.to_user_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Friendship, 0)
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *friendshipRepository) Accept(ctx context.Context, id int64) (*domain.Friendship, error) {
	result, err := r.DB.ExecContext(ctx, `UPDATE friendships SET status = $1 WHERE id = $2`, string(domain.FriendshipAccepted), id)
	if err != nil {
		return nil, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *friendshipRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
