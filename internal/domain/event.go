package domain

import (
	"context"
	"time"
)

// Defaults applied when an event is created without the field.
const (
	DefaultTheme      = "기본"
	DefaultHostName   = "주최자"
	GuestHostName     = "Guest"
	DefaultMaxMembers = 10
)

// Event is a party that users join through its invite code.
// swagger:model Event
type Event struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description"`
	Date            time.Time      `json:"date"`
	LocationName    *string        `json:"location_name"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	PlaceID         *string        `json:"place_id"`
	Theme           string         `json:"theme"`
	FoodDescription *string        `json:"food_description"`
	HostName        string         `json:"host_name"`
	HostID          *int64         `json:"host"`
	Fee             int            `json:"fee"`
	InviteCode      string         `json:"invite_code"`
	MaxMembers      int            `json:"max_members"`
	CreatedAt       time.Time      `json:"created_at"`
	Members         []*Participant `json:"members"`
}

// HasHost reports whether the event is owned by a user.
func (e *Event) HasHost() bool { return e.HostID != nil }

// EventField names a nullable event column that a patch can clear.
type EventField string

const (
	EventDescription     EventField = "description"
	EventLocationName    EventField = "location_name"
	EventLatitude        EventField = "latitude"
	EventLongitude       EventField = "longitude"
	EventPlaceID         EventField = "place_id"
	EventFoodDescription EventField = "food_description"
)

// EventPatch carries the optional fields of a partial update. Nil means
// unchanged; fields listed in Clear are set to null. Invite code and host
// are never patchable.
type EventPatch struct {
	Name            *string
	Description     *string
	Date            *time.Time
	LocationName    *string
	Latitude        *float64
	Longitude       *float64
	PlaceID         *string
	Theme           *string
	FoodDescription *string
	HostName        *string
	Fee             *int
	MaxMembers      *int
	Clear           []EventField
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Date == nil && p.LocationName == nil &&
		p.Latitude == nil && p.Longitude == nil && p.PlaceID == nil && p.Theme == nil &&
		p.FoodDescription == nil && p.HostName == nil && p.Fee == nil && p.MaxMembers == nil &&
		len(p.Clear) == 0
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetByInviteCode(ctx context.Context, code string) (*Event, error)
	List(ctx context.Context, page PaginationParams) ([]*Event, int, error)
	ListJoinedByUser(ctx context.Context, userID int64) ([]*Event, error)
	Update(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id int64) error
}

// EventService defines event lifecycle and join operations.
type EventService interface {
	CreateEvent(ctx context.Context, actor Actor, event *Event) error
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, page PaginationParams) ([]*Event, int, error)
	ResolveByInviteCode(ctx context.Context, code string) (*Event, error)
	ResolveEvent(ctx context.Context, ref EventRef) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, actor Actor, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id int64, actor Actor) error
	// JoinEvent adds the actor to the referenced event. Returns (p, created, err): created is false when the actor had already joined.
	JoinEvent(ctx context.Context, ref EventRef, actor Actor, displayName string) (*Participant, bool, error)
	ListJoinedEvents(ctx context.Context, actor Actor) ([]*Event, error)
}
