package services

import (
	"context"
	"fmt"
	"log/slog"

	"joiny/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	if err := s.send(ctx, "welcome", data.Email, data); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	s.logger.InfoContext(ctx, "welcome email sent", "to", data.Email)
	return nil
}

// SendFriendRequest notifies the recipient of a new friend request.
func (s *emailService) SendFriendRequest(ctx context.Context, data *domain.FriendRequestEmailData) error {
	if data == nil {
		return fmt.Errorf("friend request email data is nil")
	}
	if err := s.send(ctx, "friend_request", data.Email, data); err != nil {
		return fmt.Errorf("failed to send friend request email: %w", err)
	}
	s.logger.InfoContext(ctx, "friend request email sent", "to", data.Email)
	return nil
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", template, err)
	}
	return s.mailer.Send(ctx, to, subject, htmlBody, textBody)
}
