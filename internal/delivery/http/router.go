package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"joiny/internal/delivery/http/controllers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/domain"
	"joiny/internal/realtime"
)

// Controllers groups the REST handlers mounted by NewRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	Events       *controllers.EventController
	Participants *controllers.ParticipantController
	Todos        *controllers.TodoController
	Themes       *controllers.ThemeController
	Friendships  *controllers.FriendshipController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, hub *realtime.Hub, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	required := middleware.RequireAuth(verifier, logger)
	optional := middleware.OptionalAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /api/events/{$}", optional(c.Events.ListEvents))
	mux.HandleFunc("POST /api/events/{$}", optional(c.Events.CreateEvent))
	mux.HandleFunc("GET /api/events/joined/{$}", required(c.Events.ListJoinedEvents))
	mux.HandleFunc("GET /api/events/by_invite_code/{code}/{$}", optional(c.Events.GetEventByInviteCode))
	mux.HandleFunc("GET /api/events/{id}/{$}", optional(c.Events.GetEvent))
	mux.HandleFunc("PUT /api/events/{id}/{$}", required(c.Events.UpdateEvent))
	mux.HandleFunc("PATCH /api/events/{id}/{$}", required(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{id}/{$}", required(c.Events.DeleteEvent))

	// Participants
	mux.HandleFunc("GET /api/participants/{$}", optional(c.Participants.ListParticipants))
	mux.HandleFunc("POST /api/participants/{$}", required(c.Participants.JoinEvent))
	mux.HandleFunc("GET /api/participants/{id}/{$}", optional(c.Participants.GetParticipant))
	mux.HandleFunc("DELETE /api/participants/{id}/{$}", required(c.Participants.DeleteParticipant))

	// Todos
	mux.HandleFunc("GET /api/todos/{$}", optional(c.Todos.ListTodos))
	mux.HandleFunc("POST /api/todos/{$}", optional(c.Todos.CreateTodo))
	mux.HandleFunc("GET /api/todos/{id}/{$}", optional(c.Todos.GetTodo))
	mux.HandleFunc("PUT /api/todos/{id}/{$}", optional(c.Todos.UpdateTodo))
	mux.HandleFunc("PATCH /api/todos/{id}/{$}", optional(c.Todos.UpdateTodo))
	mux.HandleFunc("DELETE /api/todos/{id}/{$}", optional(c.Todos.DeleteTodo))

	// Themes
	mux.HandleFunc("GET /api/themes/{$}", c.Themes.ListThemes)
	mux.HandleFunc("GET /api/themes/{id}/{$}", c.Themes.GetTheme)

	// Friendships
	mux.HandleFunc("GET /api/friendships/{$}", required(c.Friendships.ListFriendships))
	mux.HandleFunc("POST /api/friendships/{$}", required(c.Friendships.SendFriendRequest))
	mux.HandleFunc("DELETE /api/friendships/{id}/{$}", required(c.Friendships.DeleteFriendship))
	mux.HandleFunc("POST /api/friendships/{id}/accept/{$}", required(c.Friendships.AcceptFriendRequest))

	// Auth
	mux.HandleFunc("POST /api/auth/register/{$}", c.Auth.Register)
	mux.HandleFunc("POST /api/auth/login/{$}", c.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh/{$}", c.Auth.Refresh)
	mux.HandleFunc("GET /api/auth/user/{$}", required(c.Auth.Me))

	// Realtime
	mux.Handle("GET /ws/location", hub.Location)
	mux.Handle("GET /ws/chat", hub.Chat)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
