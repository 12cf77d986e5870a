package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:         7,
		Name:       "Year-end party",
		Date:       time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
		Theme:      domain.DefaultTheme,
		HostName:   "kim",
		HostID:     ptr(int64(3)),
		InviteCode: "6f1c2b1e-2f7a-4a55-bb39-7d8c5b6f0a21",
		MaxMembers: 10,
		Members:    []*domain.Participant{{ID: 1, EventID: 7, UserID: ptr(int64(3)), Name: "kim"}},
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name         string
		body         any
		userID       int64
		svcErr       error
		wantStatus   int
		wantCode     string
		wantHost     *int64
		wantHostName string
	}{
		{
			name:         "signed in caller hosts the event",
			body:         map[string]any{"name": "Party", "date": "2025-12-24", "fee": 5000},
			userID:       3,
			wantStatus:   http.StatusCreated,
			wantHost:     ptr(int64(3)),
			wantHostName: "kim",
		},
		{
			name:         "anonymous event hosted by guest",
			body:         map[string]any{"name": "Party", "date": "2025-12-24"},
			wantStatus:   http.StatusCreated,
			wantHostName: domain.GuestHostName,
		},
		{
			name:       "missing name",
			body:       map[string]any{"date": "2025-12-24"},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "bad date format",
			body:       map[string]any{"name": "Party", "date": "24/12/2025"},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "negative fee",
			body:       map[string]any{"name": "Party", "date": "2025-12-24", "fee": -1},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown field",
			body:       map[string]any{"name": "Party", "date": "2025-12-24", "invite_code": "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "storage failure",
			body:       map[string]any{"name": "Party", "date": "2025-12-24"},
			svcErr:     errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr}
			c := NewEventController(testLogger, svc, "https://joiny.app")
			rr := httptest.NewRecorder()

			c.CreateEvent(rr, newRequest(http.MethodPost, "/api/events/", tt.body, tt.userID))

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decode[EventResponse](t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			require.Nil(t, env.Error)
			assert.Equal(t, tt.wantHost, env.Data.Host)
			assert.Equal(t, tt.wantHostName, env.Data.HostName)
			assert.Equal(t, "2025-12-24", env.Data.Date)
			assert.Equal(t, "https://joiny.app/invite/"+env.Data.InviteCode, env.Data.InviteURL)
			assert.NotNil(t, env.Data.Members)
			assert.Equal(t, tt.userID, svc.lastActor.UserID)
		})
	}
}

func TestEventController_CreateEventPassesFields(t *testing.T) {
	svc := &fakeEventService{}
	c := NewEventController(testLogger, svc, "")
	body := map[string]any{
		"name": "  Picnic ", "date": "2026-05-05", "location_name": "Han river",
		"latitude": 37.52, "longitude": 126.93, "theme": "outdoor", "max_members": 4,
	}
	rr := httptest.NewRecorder()
	c.CreateEvent(rr, newRequest(http.MethodPost, "/api/events/", body, 0))

	require.Equal(t, http.StatusCreated, rr.Code)
	got := svc.lastCreateCall
	require.NotNil(t, got)
	assert.Equal(t, "Picnic", got.Name)
	assert.Equal(t, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, "Han river", *got.LocationName)
	assert.InDelta(t, 37.52, *got.Latitude, 1e-9)
	assert.Equal(t, "outdoor", got.Theme)
	assert.Equal(t, 4, got.MaxMembers)

	env := decode[EventResponse](t, rr)
	assert.Equal(t, "http://api.test/invite/"+env.Data.InviteCode, env.Data.InviteURL, "base url derived from request")
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		event      *domain.Event
		svcErr     error
		wantStatus int
	}{
		{"found", "7", sampleEvent(), nil, http.StatusOK},
		{"not found", "8", nil, domain.ErrNotFound, http.StatusNotFound},
		{"non numeric id", "abc", nil, nil, http.StatusNotFound},
		{"storage failure", "7", nil, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{event: tt.event, err: tt.svcErr}
			c := NewEventController(testLogger, svc, "https://joiny.app")
			rr := httptest.NewRecorder()

			c.GetEvent(rr, newRequest(http.MethodGet, "/api/events/"+tt.id+"/", nil, 0, "id", tt.id))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			env := decode[EventResponse](t, rr)
			assert.Equal(t, int64(7), svc.lastID)
			assert.Equal(t, "Year-end party", env.Data.Name)
			assert.Equal(t, "2025-12-24", env.Data.Date)
			assert.Equal(t, int64(3), *env.Data.Host)
			require.Len(t, env.Data.Members, 1)
			assert.Equal(t, "kim", env.Data.Members[0].Name)
		})
	}
}

func TestEventController_GetEventByInviteCode(t *testing.T) {
	svc := &fakeEventService{event: sampleEvent()}
	c := NewEventController(testLogger, svc, "https://joiny.app")
	code := sampleEvent().InviteCode

	rr := httptest.NewRecorder()
	c.GetEventByInviteCode(rr, newRequest(http.MethodGet, "/api/events/by_invite_code/"+code+"/", nil, 0, "code", code))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, code, svc.lastCode)
	assert.Equal(t, "https://joiny.app/invite/"+code, decode[EventResponse](t, rr).Data.InviteURL)

	svc.err = domain.ErrNotFound
	rr = httptest.NewRecorder()
	c.GetEventByInviteCode(rr, newRequest(http.MethodGet, "/api/events/by_invite_code/nope/", nil, 0, "code", "nope"))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, helpers.ErrCodeNotFound, decode[any](t, rr).Error.Code)
}

func TestEventController_ListEvents(t *testing.T) {
	events := []*domain.Event{sampleEvent(), sampleEvent()}
	events[1].ID = 8
	svc := &fakeEventService{events: events, total: 12}
	c := NewEventController(testLogger, svc, "https://joiny.app")

	rr := httptest.NewRecorder()
	c.ListEvents(rr, newRequest(http.MethodGet, "/api/events/?page=2&page_size=5", nil, 0))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 5}, svc.lastPage)
	env := decode[ListEventsResponse](t, rr)
	require.Len(t, env.Data.Events, 2)
	assert.Equal(t, int64(8), env.Data.Events[1].ID)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 5, Total: 12, TotalPages: 3}, env.Data.Pagination)
}

func TestEventController_ListJoinedEvents(t *testing.T) {
	svc := &fakeEventService{events: nil}
	c := NewEventController(testLogger, svc, "")

	rr := httptest.NewRecorder()
	c.ListJoinedEvents(rr, newRequest(http.MethodGet, "/api/events/joined/", nil, 4))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())
	assert.Equal(t, domain.UserActor(4), svc.lastActor)

	svc.err = domain.ErrUnauthorized
	rr = httptest.NewRecorder()
	c.ListJoinedEvents(rr, newRequest(http.MethodGet, "/api/events/joined/", nil, 0))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       any
		svcErr     error
		wantStatus int
		checkPatch func(t *testing.T, p domain.EventPatch)
	}{
		{
			name:       "patch single field",
			method:     http.MethodPatch,
			body:       map[string]any{"fee": 10000},
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.EventPatch) {
				require.NotNil(t, p.Fee)
				assert.Equal(t, 10000, *p.Fee)
				assert.Nil(t, p.Name)
				assert.Nil(t, p.Date)
			},
		},
		{
			name:       "patch date",
			method:     http.MethodPatch,
			body:       map[string]any{"date": "2026-01-01"},
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.EventPatch) {
				require.NotNil(t, p.Date)
				assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *p.Date)
			},
		},
		{
			name:       "explicit null clears optional fields",
			method:     http.MethodPatch,
			body:       map[string]any{"description": nil, "latitude": nil, "longitude": nil, "fee": 0},
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.EventPatch) {
				assert.Equal(t, []domain.EventField{domain.EventDescription, domain.EventLatitude, domain.EventLongitude}, p.Clear)
				assert.Nil(t, p.Description)
				require.NotNil(t, p.Fee)
				assert.Equal(t, 0, *p.Fee)
			},
		},
		{
			name:       "absent fields are not cleared",
			method:     http.MethodPatch,
			body:       map[string]any{"location_name": "Park"},
			wantStatus: http.StatusOK,
			checkPatch: func(t *testing.T, p domain.EventPatch) {
				assert.Empty(t, p.Clear)
				require.NotNil(t, p.LocationName)
				assert.Equal(t, "Park", *p.LocationName)
			},
		},
		{name: "null name is rejected", method: http.MethodPatch, body: map[string]any{"name": nil}, wantStatus: http.StatusBadRequest},
		{name: "null fee is rejected", method: http.MethodPatch, body: map[string]any{"fee": nil}, wantStatus: http.StatusBadRequest},
		{name: "put with null date", method: http.MethodPut, body: map[string]any{"name": "New", "date": nil}, wantStatus: http.StatusBadRequest},
		{name: "put requires name and date", method: http.MethodPut, body: map[string]any{"fee": 1}, wantStatus: http.StatusBadRequest},
		{name: "put with full body", method: http.MethodPut, body: map[string]any{"name": "New", "date": "2026-01-01"}, wantStatus: http.StatusOK},
		{name: "empty name", method: http.MethodPatch, body: map[string]any{"name": " "}, wantStatus: http.StatusBadRequest},
		{name: "invite code is not patchable", method: http.MethodPatch, body: map[string]any{"invite_code": "x"}, wantStatus: http.StatusBadRequest},
		{name: "not the host", method: http.MethodPatch, body: map[string]any{"fee": 1}, svcErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "anonymous", method: http.MethodPatch, body: map[string]any{"fee": 1}, svcErr: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "missing event", method: http.MethodPatch, body: map[string]any{"fee": 1}, svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "service validation", method: http.MethodPatch, body: map[string]any{"fee": 1}, svcErr: fmt.Errorf("%w: bad", domain.ErrInvalidInput), wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{event: sampleEvent(), err: tt.svcErr}
			c := NewEventController(testLogger, svc, "")
			rr := httptest.NewRecorder()

			c.UpdateEvent(rr, newRequest(tt.method, "/api/events/7/", tt.body, 3, "id", "7"))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.checkPatch != nil {
				assert.Equal(t, int64(7), svc.lastID)
				assert.Equal(t, domain.UserActor(3), svc.lastActor)
				tt.checkPatch(t, svc.lastPatch)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"host deletes", nil, http.StatusNoContent},
		{"not the host", domain.ErrForbidden, http.StatusForbidden},
		{"missing", domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr}
			c := NewEventController(testLogger, svc, "")
			rr := httptest.NewRecorder()
			c.DeleteEvent(rr, newRequest(http.MethodDelete, "/api/events/7/", nil, 3, "id", "7"))
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, int64(7), svc.lastID)
		})
	}
}
