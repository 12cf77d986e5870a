package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/domain"
)

// CreateTodoRequest is the request body for POST /api/todos/.
type CreateTodoRequest struct {
	Event       int64  `json:"event"`
	Task        string `json:"task"`
	IsCompleted bool   `json:"is_completed"`
}

// Validate implements Validator.
func (c CreateTodoRequest) Validate() []string {
	var errs []string
	if c.Event <= 0 {
		errs = append(errs, "event is required")
	}
	if strings.TrimSpace(c.Task) == "" {
		errs = append(errs, "task is required")
	}
	return errs
}

// UpdateTodoRequest is the request body for PATCH and PUT /api/todos/{id}/.
type UpdateTodoRequest struct {
	Task        *string `json:"task"`
	IsCompleted *bool   `json:"is_completed"`
}

// Validate implements Validator.
func (u UpdateTodoRequest) Validate() []string {
	if u.Task != nil && strings.TrimSpace(*u.Task) == "" {
		return []string{"task must not be empty"}
	}
	return nil
}

type TodoController struct {
	Logger  *slog.Logger
	Service domain.TodoService
}

func NewTodoController(logger *slog.Logger, svc domain.TodoService) *TodoController {
	return &TodoController{Logger: logger, Service: svc}
}

// ListTodos godoc
// @Summary List todos
// @Tags todos
// @Produce json
// @Param event query int false "Only todos of this event"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} helpers.APIResponse{data=helpers.Page[domain.Todo]}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /todos/ [get]
func (c *TodoController) ListTodos(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.QueryID(w, r, "event")
	if !ok {
		return
	}
	todos, err := c.Service.ListTodos(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(todos, helpers.ParsePagination(r)))
}

// CreateTodo godoc
// @Summary Add a todo to an event
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body CreateTodoRequest true "Todo"
// @Success 201 {object} helpers.APIResponse{data=domain.Todo}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /todos/ [post]
func (c *TodoController) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	todo := &domain.Todo{EventID: req.Event, Task: req.Task, IsCompleted: req.IsCompleted}
	if err := c.Service.CreateTodo(r.Context(), todo); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, todo)
}

// GetTodo godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Todo}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /todos/{id}/ [get]
func (c *TodoController) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	todo, err := c.Service.GetTodo(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.Todo}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /todos/{id}/ [patch]
// @Router /todos/{id}/ [put]
func (c *TodoController) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateTodoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if r.Method == http.MethodPut && req.Task == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "task is required")
		return
	}
	todo, err := c.Service.UpdateTodo(r.Context(), id, domain.TodoPatch{Task: req.Task, IsCompleted: req.IsCompleted})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path int true "Todo ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /todos/{id}/ [delete]
func (c *TodoController) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTodo(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
