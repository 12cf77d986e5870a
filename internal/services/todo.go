package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"joiny/internal/domain"
)

type todoService struct {
	todoRepo       domain.TodoRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewTodoService(todoRepo domain.TodoRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.TodoService {
	return &todoService{
		todoRepo:       todoRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *todoService) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	todo.Task = strings.TrimSpace(todo.Task)
	if todo.Task == "" {
		return fmt.Errorf("%w: task is required", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, todo.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (s *todoService) ListTodos(ctx context.Context, eventID *int64) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	todos, err := s.todoRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

func (s *todoService) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Task != nil {
		task := strings.TrimSpace(*patch.Task)
		if task == "" {
			return nil, fmt.Errorf("%w: task must not be empty", domain.ErrInvalidInput)
		}
		patch.Task = &task
	}
	todo, err := s.todoRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.todoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
