package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"joiny/internal/domain"
)

type chatService struct {
	messageRepo     domain.ChatMessageRepository
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

func NewChatService(messageRepo domain.ChatMessageRepository, participantRepo domain.ParticipantRepository, timeout time.Duration) domain.ChatService {
	return &chatService{
		messageRepo:     messageRepo,
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

// History is bounded by the user's join time: messages sent before the user
// joined are never returned.
func (s *chatService) History(ctx context.Context, eventID, userID int64) ([]*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	messages, err := s.messageRepo.ListSince(ctx, eventID, p.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []*domain.ChatMessage{}
	}
	return messages, nil
}

func (s *chatService) RecordMessage(ctx context.Context, eventID, senderID int64, text string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if senderID <= 0 {
		return nil, fmt.Errorf("%w: sender is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m := &domain.ChatMessage{EventID: eventID, SenderID: senderID, Message: text}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return m, nil
}
