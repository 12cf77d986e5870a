package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// envelope mirrors helpers.APIResponse with a typed data field.
type envelope[T any] struct {
	Data  T                 `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

// newRequest builds a request, optionally as an authenticated user (userID > 0)
// and with path values set.
func newRequest(method, target string, body any, userID int64, pathValues ...string) *http.Request {
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "http://api.test"+target, rdr)
	if userID > 0 {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

func ptr[T any](v T) *T { return &v }

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err error

	createdEvent *domain.Event
	event        *domain.Event
	events       []*domain.Event
	total        int
	participant  *domain.Participant
	created      bool

	lastActor      domain.Actor
	lastID         int64
	lastPage       domain.PaginationParams
	lastCode       string
	lastRef        domain.EventRef
	lastName       string
	lastPatch      domain.EventPatch
	lastCreateCall *domain.Event
}

func (f *fakeEventService) CreateEvent(_ context.Context, actor domain.Actor, event *domain.Event) error {
	f.lastActor, f.lastCreateCall = actor, event
	if f.err != nil {
		return f.err
	}
	event.ID = 1
	event.InviteCode = "0b7f6f0e-5a3c-4d4e-9f57-3f2d8c1a9e11"
	event.HostName = domain.GuestHostName
	if actor.Authenticated() {
		event.HostID = ptr(actor.UserID)
		event.HostName = "kim"
	}
	return nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) ListEvents(_ context.Context, page domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastPage = page
	return f.events, f.total, f.err
}

func (f *fakeEventService) ResolveByInviteCode(_ context.Context, code string) (*domain.Event, error) {
	f.lastCode = code
	return f.event, f.err
}

func (f *fakeEventService) ResolveEvent(_ context.Context, ref domain.EventRef) (*domain.Event, error) {
	f.lastRef = ref
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id int64, actor domain.Actor, patch domain.EventPatch) (*domain.Event, error) {
	f.lastID, f.lastActor, f.lastPatch = id, actor, patch
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id int64, actor domain.Actor) error {
	f.lastID, f.lastActor = id, actor
	return f.err
}

func (f *fakeEventService) JoinEvent(_ context.Context, ref domain.EventRef, actor domain.Actor, displayName string) (*domain.Participant, bool, error) {
	f.lastRef, f.lastActor, f.lastName = ref, actor, displayName
	return f.participant, f.created, f.err
}

func (f *fakeEventService) ListJoinedEvents(_ context.Context, actor domain.Actor) ([]*domain.Event, error) {
	f.lastActor = actor
	return f.events, f.err
}

type fakeParticipantService struct {
	err          error
	participants []*domain.Participant
	participant  *domain.Participant
	lastEventID  *int64
	lastID       int64
	lastActor    domain.Actor
}

func (f *fakeParticipantService) ListParticipants(_ context.Context, eventID *int64) ([]*domain.Participant, error) {
	f.lastEventID = eventID
	return f.participants, f.err
}

func (f *fakeParticipantService) GetParticipant(_ context.Context, id int64) (*domain.Participant, error) {
	f.lastID = id
	return f.participant, f.err
}

func (f *fakeParticipantService) RemoveParticipant(_ context.Context, id int64, actor domain.Actor) error {
	f.lastID, f.lastActor = id, actor
	return f.err
}

type fakeTodoService struct {
	err         error
	todos       []*domain.Todo
	todo        *domain.Todo
	lastEventID *int64
	lastID      int64
	lastPatch   domain.TodoPatch
	lastCreate  *domain.Todo
}

func (f *fakeTodoService) CreateTodo(_ context.Context, todo *domain.Todo) error {
	f.lastCreate = todo
	if f.err != nil {
		return f.err
	}
	todo.ID = 9
	return nil
}

func (f *fakeTodoService) ListTodos(_ context.Context, eventID *int64) ([]*domain.Todo, error) {
	f.lastEventID = eventID
	return f.todos, f.err
}

func (f *fakeTodoService) GetTodo(_ context.Context, id int64) (*domain.Todo, error) {
	f.lastID = id
	return f.todo, f.err
}

func (f *fakeTodoService) UpdateTodo(_ context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	f.lastID, f.lastPatch = id, patch
	return f.todo, f.err
}

func (f *fakeTodoService) DeleteTodo(_ context.Context, id int64) error {
	f.lastID = id
	return f.err
}

type fakeThemeService struct {
	err    error
	themes []*domain.Theme
	theme  *domain.Theme
}

func (f *fakeThemeService) ListThemes(context.Context) ([]*domain.Theme, error) {
	return f.themes, f.err
}

func (f *fakeThemeService) GetTheme(_ context.Context, id int64) (*domain.Theme, error) {
	return f.theme, f.err
}

type fakeFriendshipService struct {
	err         error
	friendships []*domain.Friendship
	friendship  *domain.Friendship
	outcome     domain.FriendRequestOutcome
	lastActor   domain.Actor
	lastEmail   string
	lastID      int64
}

func (f *fakeFriendshipService) ListFriendships(_ context.Context, actor domain.Actor) ([]*domain.Friendship, error) {
	f.lastActor = actor
	return f.friendships, f.err
}

func (f *fakeFriendshipService) SendFriendRequest(_ context.Context, actor domain.Actor, email string) (*domain.Friendship, domain.FriendRequestOutcome, error) {
	f.lastActor, f.lastEmail = actor, email
	return f.friendship, f.outcome, f.err
}

func (f *fakeFriendshipService) AcceptFriendRequest(_ context.Context, id int64, actor domain.Actor) (*domain.Friendship, error) {
	f.lastID, f.lastActor = id, actor
	return f.friendship, f.err
}

func (f *fakeFriendshipService) DeleteFriendship(_ context.Context, id int64, actor domain.Actor) error {
	f.lastID, f.lastActor = id, actor
	return f.err
}

type fakeAuthService struct {
	err          error
	user         *domain.User
	tokens       *domain.TokenPair
	lastUsername string
	lastEmail    string
	lastPassword string
	lastRefresh  string
	lastActor    domain.Actor
}

func (f *fakeAuthService) Register(_ context.Context, username, email, password string) (*domain.User, *domain.TokenPair, error) {
	f.lastUsername, f.lastEmail, f.lastPassword = username, email, password
	return f.user, f.tokens, f.err
}

func (f *fakeAuthService) Login(_ context.Context, identifier, password string) (*domain.User, *domain.TokenPair, error) {
	f.lastUsername, f.lastPassword = identifier, password
	return f.user, f.tokens, f.err
}

func (f *fakeAuthService) Refresh(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	f.lastRefresh = refreshToken
	return f.tokens, f.err
}

func (f *fakeAuthService) Me(_ context.Context, actor domain.Actor) (*domain.User, error) {
	f.lastActor = actor
	return f.user, f.err
}
