package postgres

import (
	"context"
	"database/sql"
	"errors"

	"joiny/internal/domain"
)

type themeRepository struct {
	DB *sql.DB
}

func NewThemeRepository(db *sql.DB) domain.ThemeRepository {
	return &themeRepository{DB: db}
}

func (r *themeRepository) List(ctx context.Context) ([]*domain.Theme, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, description FROM themes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	themes := make([]*domain.Theme, 0)
	for rows.Next() {
		th := &domain.Theme{}
		var desc sql.NullString
		if err := rows.Scan(&th.ID, &th.Name, &desc); err != nil {
			return nil, err
		}
		th.Description = nullString(desc)
		themes = append(themes, th)
	}
	return themes, rows.Err()
}

func (r *themeRepository) GetByID(ctx context.Context, id int64) (*domain.Theme, error) {
	th := &domain.Theme{}
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, description FROM themes WHERE id = $1`, id).
		Scan(&th.ID, &th.Name, &desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	th.Description = nullString(desc)
	return th, nil
}
