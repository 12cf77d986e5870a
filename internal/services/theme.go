package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joiny/internal/domain"
)

type themeService struct {
	themeRepo      domain.ThemeRepository
	contextTimeout time.Duration
}

func NewThemeService(themeRepo domain.ThemeRepository, timeout time.Duration) domain.ThemeService {
	return &themeService{themeRepo: themeRepo, contextTimeout: timeout}
}

func (s *themeService) ListThemes(ctx context.Context) ([]*domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	themes, err := s.themeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	if themes == nil {
		themes = []*domain.Theme{}
	}
	return themes, nil
}

func (s *themeService) GetTheme(ctx context.Context, id int64) (*domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	theme, err := s.themeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}
