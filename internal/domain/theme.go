package domain

import "context"

// Theme is a read-only catalogue entry events can reference by name.
// swagger:model Theme
type Theme struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ThemeRepository interface {
	List(ctx context.Context) ([]*Theme, error)
	GetByID(ctx context.Context, id int64) (*Theme, error)
}

type ThemeService interface {
	ListThemes(ctx context.Context) ([]*Theme, error)
	GetTheme(ctx context.Context, id int64) (*Theme, error)
}
