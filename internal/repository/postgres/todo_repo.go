package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"joiny/internal/domain"
)

type todoRepository struct {
	DB *sql.DB
}

func NewTodoRepository(db *sql.DB) domain.TodoRepository {
	return &todoRepository{DB: db}
}

func (r *todoRepository) Create(ctx context.Context, t *domain.Todo) error {
	query := `
		INSERT INTO todos (event_id, task, is_completed)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.EventID, t.Task, t.IsCompleted).Scan(&t.ID)
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	t := &domain.Todo{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, event_id, task, is_completed FROM todos WHERE id = $1`, id).
		Scan(&t.ID, &t.EventID, &t.Task, &t.IsCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *todoRepository) List(ctx context.Context, eventID *int64) ([]*domain.Todo, error) {
	query := `SELECT id, event_id, task, is_completed FROM todos`
	args := []any{}
	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		t := &domain.Todo{}
		if err := rows.Scan(&t.ID, &t.EventID, &t.Task, &t.IsCompleted); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	setClauses := []string{}
	args := []any{}
	if patch.Task != nil {
		args = append(args, *patch.Task)
		setClauses = append(setClauses, fmt.Sprintf("task = $%d", len(args)))
	}
	if patch.IsCompleted != nil {
		args = append(args, *patch.IsCompleted)
		setClauses = append(setClauses, fmt.Sprintf("is_completed = $%d", len(args)))
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE todos SET %s
		WHERE id = $%d
		RETURNING id, event_id, task, is_completed
	`, strings.Join(setClauses, ", "), len(args))
	t := &domain.Todo{}
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.EventID, &t.Task, &t.IsCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
