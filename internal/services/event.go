package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"joiny/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	newInviteCode   func() string
	contextTimeout  time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		newInviteCode:   func() string { return uuid.NewString() },
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if event.Fee < 0 || event.MaxMembers < 0 {
		return fmt.Errorf("%w: fee and max_members must not be negative", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(event.Theme) == "" {
		event.Theme = domain.DefaultTheme
	}
	if event.MaxMembers == 0 {
		event.MaxMembers = domain.DefaultMaxMembers
	}

	var host *domain.User
	if actor.Authenticated() {
		user, err := s.userRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("get host: %w", err)
		}
		host = user
		event.HostID = &user.ID
		event.HostName = user.Username
	} else {
		event.HostID = nil
		event.HostName = domain.GuestHostName
	}

	if err := s.insertWithInviteCode(ctx, event); err != nil {
		return err
	}

	event.Members = []*domain.Participant{}
	if host == nil {
		return nil
	}
	p := domain.NewParticipant(event.ID, host.ID, host.Username)
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("add host as participant: %w", err)
	}
	event.Members = append(event.Members, p)
	return nil
}

// insertWithInviteCode retries once when a freshly generated code collides.
func (s *eventService) insertWithInviteCode(ctx context.Context, event *domain.Event) error {
	var err error
	for range 2 {
		event.InviteCode = s.newInviteCode()
		err = s.eventRepo.Create(ctx, event)
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := s.attachMembers(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, page domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if err := s.attachMembers(ctx, events...); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *eventService) ResolveByInviteCode(ctx context.Context, code string) (*domain.Event, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, err := uuid.Parse(code); err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by invite code: %w", err)
	}
	if err := s.attachMembers(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) ResolveEvent(ctx context.Context, ref domain.EventRef) (*domain.Event, error) {
	switch ref.Kind {
	case domain.EventRefByID:
		return s.GetEvent(ctx, ref.ID)
	case domain.EventRefByInviteCode:
		return s.ResolveByInviteCode(ctx, ref.InviteCode)
	default:
		return nil, fmt.Errorf("%w: event reference is required", domain.ErrInvalidInput)
	}
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, actor domain.Actor, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeHost(ctx, id, actor); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if (patch.Fee != nil && *patch.Fee < 0) || (patch.MaxMembers != nil && *patch.MaxMembers < 0) {
		return nil, fmt.Errorf("%w: fee and max_members must not be negative", domain.ErrInvalidInput)
	}
	updated, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if err := s.attachMembers(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeHost(ctx, id, actor); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// authorizeHost loads the event and checks that actor may modify it.
// Events without a host stay editable by any signed-in user.
func (s *eventService) authorizeHost(ctx context.Context, id int64, actor domain.Actor) (*domain.Event, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.HasHost() && !actor.Is(*event.HostID) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) JoinEvent(ctx context.Context, ref domain.EventRef, actor domain.Actor, displayName string) (*domain.Participant, bool, error) {
	if !actor.Authenticated() {
		return nil, false, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		event *domain.Event
		err   error
	)
	switch ref.Kind {
	case domain.EventRefByID:
		event, err = s.eventRepo.GetByID(ctx, ref.ID)
	case domain.EventRefByInviteCode:
		code := strings.ToLower(strings.TrimSpace(ref.InviteCode))
		if _, perr := uuid.Parse(code); perr != nil {
			return nil, false, domain.ErrNotFound
		}
		event, err = s.eventRepo.GetByInviteCode(ctx, code)
	default:
		return nil, false, fmt.Errorf("%w: event is required", domain.ErrInvalidInput)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("resolve event: %w", err)
	}

	existing, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, actor.UserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("find participant: %w", err)
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		user, err := s.userRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, false, domain.ErrUnauthorized
			}
			return nil, false, fmt.Errorf("get user: %w", err)
		}
		name = user.Username
	}

	p := domain.NewParticipant(event.ID, actor.UserID, name)
	if err := s.participantRepo.Create(ctx, p); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, fmt.Errorf("create participant: %w", err)
		}
		// Lost a race with a concurrent join for the same user.
		existing, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, actor.UserID)
		if err != nil {
			return nil, false, fmt.Errorf("find participant after conflict: %w", err)
		}
		return existing, false, nil
	}
	return p, true, nil
}

func (s *eventService) ListJoinedEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListJoinedByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list joined events: %w", err)
	}
	if err := s.attachMembers(ctx, events...); err != nil {
		return nil, err
	}
	return events, nil
}

// attachMembers loads participants for all events in one query.
func (s *eventService) attachMembers(ctx context.Context, events ...*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	byEvent, err := s.participantRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	for _, e := range events {
		e.Members = byEvent[e.ID]
		if e.Members == nil {
			e.Members = []*domain.Participant{}
		}
	}
	return nil
}
