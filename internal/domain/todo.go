package domain

import "context"

// Todo is a checklist item attached to an event.
// swagger:model Todo
type Todo struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event"`
	Task        string `json:"task"`
	IsCompleted bool   `json:"is_completed"`
}

// TodoPatch holds optional todo changes. Nil means unchanged.
type TodoPatch struct {
	Task        *string
	IsCompleted *bool
}

type TodoRepository interface {
	Create(ctx context.Context, todo *Todo) error
	GetByID(ctx context.Context, id int64) (*Todo, error)
	List(ctx context.Context, eventID *int64) ([]*Todo, error)
	Update(ctx context.Context, id int64, patch TodoPatch) (*Todo, error)
	Delete(ctx context.Context, id int64) error
}

type TodoService interface {
	CreateTodo(ctx context.Context, todo *Todo) error
	ListTodos(ctx context.Context, eventID *int64) ([]*Todo, error)
	GetTodo(ctx context.Context, id int64) (*Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch TodoPatch) (*Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}
