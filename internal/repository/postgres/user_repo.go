package postgres

import (
	"context"
	"database/sql"
	"errors"

	"joiny/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, name, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.Email, u.Name, u.PasswordHash, u.Salt, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			if constraint == "users_username_key" {
				return domain.ErrDuplicateUsername
			}
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.one(ctx, `
		SELECT id, username, email, name, password_hash, salt, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, `
		SELECT id, username, email, name, password_hash, salt, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.one(ctx, `
		SELECT id, username, email, name, password_hash, salt, created_at
		FROM users
		WHERE username = $1
	`, username)
}

func (r *userRepository) one(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
