package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"joiny/internal/domain"
)

type friendshipService struct {
	friendshipRepo domain.FriendshipRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewFriendshipService creates a FriendshipService. emailService may be nil.
func NewFriendshipService(friendshipRepo domain.FriendshipRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.FriendshipService {
	return &friendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *friendshipService) ListFriendships(ctx context.Context, actor domain.Actor) ([]*domain.Friendship, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	friendships, err := s.friendshipRepo.ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	if friendships == nil {
		friendships = []*domain.Friendship{}
	}
	return friendships, nil
}

func (s *friendshipService) SendFriendRequest(ctx context.Context, actor domain.Actor, email string) (*domain.Friendship, domain.FriendRequestOutcome, error) {
	if !actor.Authenticated() {
		return nil, 0, domain.ErrUnauthorized
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, 0, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	target, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, 0, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("get target user: %w", err)
	}
	if target.ID == actor.UserID {
		return nil, 0, fmt.Errorf("%w: cannot send request to yourself", domain.ErrInvalidInput)
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, actor.UserID, target.ID)
	if err == nil {
		return existing, existingOutcome(existing), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, 0, fmt.Errorf("find friendship: %w", err)
	}

	f := &domain.Friendship{
		FromUserID: actor.UserID,
		ToUserID:   target.ID,
		Status:     domain.FriendshipPending,
	}
	if err := s.friendshipRepo.Create(ctx, f); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, 0, fmt.Errorf("create friendship: %w", err)
		}
		existing, err := s.friendshipRepo.FindBetween(ctx, actor.UserID, target.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("find friendship after conflict: %w", err)
		}
		return existing, existingOutcome(existing), nil
	}

	created, err := s.friendshipRepo.GetByID(ctx, f.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("load friendship: %w", err)
	}
	s.notifyFriendRequest(ctx, created)
	return created, domain.FriendRequestCreated, nil
}

func existingOutcome(f *domain.Friendship) domain.FriendRequestOutcome {
	if f.Status == domain.FriendshipAccepted {
		return domain.FriendRequestAlreadyFriends
	}
	return domain.FriendRequestAlreadyPending
}

func (s *friendshipService) notifyFriendRequest(ctx context.Context, f *domain.Friendship) {
	if s.emailService == nil || f.FromUser == nil || f.ToUser == nil {
		return
	}
	data := &domain.FriendRequestEmailData{
		Email:        f.ToUser.Email,
		FromUsername: f.FromUser.Username,
		FromEmail:    f.FromUser.Email,
	}
	if err := s.emailService.SendFriendRequest(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "friend request email failed", "friendship_id", f.ID, "err", err)
	}
}

func (s *friendshipService) AcceptFriendRequest(ctx context.Context, id int64, actor domain.Actor) (*domain.Friendship, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f, err := s.involving(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !actor.Is(f.ToUserID) {
		return nil, domain.ErrForbidden
	}
	if f.Status == domain.FriendshipAccepted {
		return f, nil
	}
	accepted, err := s.friendshipRepo.Accept(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accept friendship: %w", err)
	}
	return accepted, nil
}

// DeleteFriendship removes a friend, or cancels or declines a pending request.
func (s *friendshipService) DeleteFriendship(ctx context.Context, id int64, actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.involving(ctx, id, actor); err != nil {
		return err
	}
	if err := s.friendshipRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete friendship: %w", err)
	}
	return nil
}

// involving returns the edge, hiding edges the actor is not part of.
func (s *friendshipService) involving(ctx context.Context, id int64, actor domain.Actor) (*domain.Friendship, error) {
	f, err := s.friendshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	if !f.Involves(actor.UserID) {
		return nil, domain.ErrNotFound
	}
	return f, nil
}
