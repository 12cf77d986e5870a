package domain

import (
	"context"
	"time"
)

// Participant is a member of an event. A user holds at most one participant
// row per event; guest rows have no user.
// swagger:model Participant
type Participant struct {
	ID       int64     `json:"id"`
	EventID  int64     `json:"event"`
	UserID   *int64    `json:"user"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewParticipant returns a participant for a user. ID and JoinedAt are set by the repository.
func NewParticipant(eventID, userID int64, name string) *Participant {
	return &Participant{EventID: eventID, UserID: &userID, Name: name}
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	// Create inserts p. Returns ErrDuplicate when the user already joined the event.
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id int64) (*Participant, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Participant, error)
	List(ctx context.Context, eventID *int64) ([]*Participant, error)
	ListByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*Participant, error)
	Delete(ctx context.Context, id int64) error
}

// ParticipantService exposes participant listing and removal.
type ParticipantService interface {
	ListParticipants(ctx context.Context, eventID *int64) ([]*Participant, error)
	GetParticipant(ctx context.Context, id int64) (*Participant, error)
	RemoveParticipant(ctx context.Context, id int64, actor Actor) error
}
