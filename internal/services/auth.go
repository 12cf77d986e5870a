package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"joiny/internal/domain"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenVerifier  domain.TokenVerifier
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService. emailService may be nil.
func NewAuthService(userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenVerifier domain.TokenVerifier,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenVerifier:  tokenVerifier,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*domain.User, *domain.TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || len(username) > maxUsernameLen {
		return nil, nil, fmt.Errorf("%w: username is required and must be at most %d characters", domain.ErrInvalidInput, maxUsernameLen)
	}
	if !emailRegexp.MatchString(email) {
		return nil, nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(username, email, username, time.Now())
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, Username: user.Username}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*domain.User, *domain.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// findByIdentifier tries the identifier as an email first, then as a username.
func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user, err = s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	userID, err := s.tokenVerifier.Verify(refreshToken, domain.RefreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	access, err := s.tokenIssuer.Issue(userID, domain.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	return &domain.TokenPair{Access: access, Refresh: refreshToken}, nil
}

func (s *authService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) issuePair(userID int64) (*domain.TokenPair, error) {
	access, err := s.tokenIssuer.Issue(userID, domain.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokenIssuer.Issue(userID, domain.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}
