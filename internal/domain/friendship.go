package domain

import (
	"context"
	"time"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed request edge between two users. An edge moves
// from pending to accepted once and never back.
// swagger:model Friendship
type Friendship struct {
	ID         int64            `json:"id"`
	FromUserID int64            `json:"-"`
	ToUserID   int64            `json:"-"`
	FromUser   *UserSummary     `json:"from_user"`
	ToUser     *UserSummary     `json:"to_user"`
	Status     FriendshipStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Involves reports whether userID is either end of the edge.
func (f *Friendship) Involves(userID int64) bool {
	return f.FromUserID == userID || f.ToUserID == userID
}

// FriendRequestOutcome distinguishes the results of SendFriendRequest.
type FriendRequestOutcome int

const (
	FriendRequestCreated FriendRequestOutcome = iota + 1
	FriendRequestAlreadyPending
	FriendRequestAlreadyFriends
)

func (o FriendRequestOutcome) String() string {
	switch o {
	case FriendRequestCreated:
		return "created"
	case FriendRequestAlreadyPending:
		return "already_pending"
	case FriendRequestAlreadyFriends:
		return "already_friends"
	default:
		return "unknown"
	}
}

type FriendshipRepository interface {
	// Create inserts a pending edge. Returns ErrDuplicate when the ordered pair exists.
	Create(ctx context.Context, f *Friendship) error
	GetByID(ctx context.Context, id int64) (*Friendship, error)
	// FindBetween returns the edge between a and b in either direction.
	FindBetween(ctx context.Context, a, b int64) (*Friendship, error)
	ListForUser(ctx context.Context, userID int64) ([]*Friendship, error)
	// Accept flips a pending edge to accepted; accepting an accepted edge is a no-op.
	Accept(ctx context.Context, id int64) (*Friendship, error)
	Delete(ctx context.Context, id int64) error
}

type FriendshipService interface {
	ListFriendships(ctx context.Context, actor Actor) ([]*Friendship, error)
	SendFriendRequest(ctx context.Context, actor Actor, email string) (*Friendship, FriendRequestOutcome, error)
	AcceptFriendRequest(ctx context.Context, id int64, actor Actor) (*Friendship, error)
	DeleteFriendship(ctx context.Context, id int64, actor Actor) error
}
