package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already in use")
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, email, name string, createdAt time.Time) *User {
	return &User{
		Username:  username,
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
	}
}

// Summary returns the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Name: u.Name, Email: u.Email}
}

// UserSummary is the user shape embedded in other resources.
// swagger:model UserSummary
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenKind separates short-lived access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenPair is returned by register and login.
// swagger:model TokenPair
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, kind TokenKind) (string, error)
}

// TokenVerifier verifies a token of the given kind and returns the user ID.
type TokenVerifier interface {
	Verify(token string, kind TokenKind) (userID int64, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create inserts u. Returns ErrDuplicateEmail or ErrDuplicateUsername on conflict.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// AuthService defines registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*User, *TokenPair, error)
	// Login accepts an email address or a username as identifier.
	Login(ctx context.Context, identifier, password string) (*User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context, actor Actor) (*User, error)
}
