package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joiny/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	contextTimeout  time.Duration
}

func NewParticipantService(participantRepo domain.ParticipantRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		contextTimeout:  timeout,
	}
}

func (s *participantService) ListParticipants(ctx context.Context, eventID *int64) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	participants, err := s.participantRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}

func (s *participantService) GetParticipant(ctx context.Context, id int64) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

// RemoveParticipant lets a user leave an event, or the host remove anyone.
func (s *participantService) RemoveParticipant(ctx context.Context, id int64, actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get participant: %w", err)
	}
	if p.UserID == nil || !actor.Is(*p.UserID) {
		event, err := s.eventRepo.GetByID(ctx, p.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if !event.HasHost() || !actor.Is(*event.HostID) {
			return domain.ErrForbidden
		}
	}
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}
