package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/domain"
)

const dateLayout = time.DateOnly

// EventResponse is the event representation returned by the API.
// swagger:model EventResponse
type EventResponse struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Description     *string               `json:"description"`
	Date            string                `json:"date" example:"2025-12-24"`
	LocationName    *string               `json:"location_name"`
	Latitude        *float64              `json:"latitude"`
	Longitude       *float64              `json:"longitude"`
	PlaceID         *string               `json:"place_id"`
	Theme           string                `json:"theme"`
	FoodDescription *string               `json:"food_description"`
	HostName        string                `json:"host_name"`
	Host            *int64                `json:"host"`
	Fee             int                   `json:"fee"`
	InviteCode      string                `json:"invite_code"`
	InviteURL       string                `json:"invite_url"`
	MaxMembers      int                   `json:"max_members"`
	CreatedAt       time.Time             `json:"created_at"`
	Members         []*domain.Participant `json:"members"`
}

func newEventResponse(e *domain.Event, baseURL string) EventResponse {
	members := e.Members
	if members == nil {
		members = []*domain.Participant{}
	}
	return EventResponse{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Date:            e.Date.Format(dateLayout),
		LocationName:    e.LocationName,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		PlaceID:         e.PlaceID,
		Theme:           e.Theme,
		FoodDescription: e.FoodDescription,
		HostName:        e.HostName,
		Host:            e.HostID,
		Fee:             e.Fee,
		InviteCode:      e.InviteCode,
		InviteURL:       baseURL + "/invite/" + e.InviteCode,
		MaxMembers:      e.MaxMembers,
		CreatedAt:       e.CreatedAt,
		Members:         members,
	}
}

// CreateEventRequest is the request body for POST /api/events/.
type CreateEventRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Date            string   `json:"date" example:"2025-12-24"`
	LocationName    *string  `json:"location_name"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	PlaceID         *string  `json:"place_id"`
	Theme           string   `json:"theme"`
	FoodDescription *string  `json:"food_description"`
	Fee             *int     `json:"fee"`
	MaxMembers      *int     `json:"max_members"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(dateLayout, c.Date); err != nil {
		errs = append(errs, "date must be formatted as YYYY-MM-DD")
	}
	if c.Fee != nil && *c.Fee < 0 {
		errs = append(errs, "fee must not be negative")
	}
	if c.MaxMembers != nil && *c.MaxMembers < 0 {
		errs = append(errs, "max_members must not be negative")
	}
	return errs
}

func (c CreateEventRequest) toEvent() *domain.Event {
	date, _ := time.Parse(dateLayout, c.Date)
	e := &domain.Event{
		Name:            strings.TrimSpace(c.Name),
		Description:     c.Description,
		Date:            date,
		LocationName:    c.LocationName,
		Latitude:        c.Latitude,
		Longitude:       c.Longitude,
		PlaceID:         c.PlaceID,
		Theme:           strings.TrimSpace(c.Theme),
		FoodDescription: c.FoodDescription,
	}
	if c.Fee != nil {
		e.Fee = *c.Fee
	}
	if c.MaxMembers != nil {
		e.MaxMembers = *c.MaxMembers
	}
	return e
}

// UpdateEventRequest is the request body for PATCH and PUT /api/events/{id}/.
// Omitted fields are unchanged. An explicit null clears the optional fields
// and is rejected for the rest. PUT additionally requires name and date.
type UpdateEventRequest struct {
	Name            helpers.Nullable[string]  `json:"name" swaggertype:"string"`
	Description     helpers.Nullable[string]  `json:"description" swaggertype:"string"`
	Date            helpers.Nullable[string]  `json:"date" swaggertype:"string" example:"2025-12-24"`
	LocationName    helpers.Nullable[string]  `json:"location_name" swaggertype:"string"`
	Latitude        helpers.Nullable[float64] `json:"latitude" swaggertype:"number"`
	Longitude       helpers.Nullable[float64] `json:"longitude" swaggertype:"number"`
	PlaceID         helpers.Nullable[string]  `json:"place_id" swaggertype:"string"`
	Theme           helpers.Nullable[string]  `json:"theme" swaggertype:"string"`
	FoodDescription helpers.Nullable[string]  `json:"food_description" swaggertype:"string"`
	HostName        helpers.Nullable[string]  `json:"host_name" swaggertype:"string"`
	Fee             helpers.Nullable[int]     `json:"fee" swaggertype:"integer"`
	MaxMembers      helpers.Nullable[int]     `json:"max_members" swaggertype:"integer"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	required := []struct {
		field string
		null  bool
	}{
		{"name", u.Name.Cleared()},
		{"date", u.Date.Cleared()},
		{"theme", u.Theme.Cleared()},
		{"host_name", u.HostName.Cleared()},
		{"fee", u.Fee.Cleared()},
		{"max_members", u.MaxMembers.Cleared()},
	}
	for _, f := range required {
		if f.null {
			errs = append(errs, f.field+" must not be null")
		}
	}
	if name := u.Name.Ptr(); name != nil && strings.TrimSpace(*name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if date := u.Date.Ptr(); date != nil {
		if _, err := time.Parse(dateLayout, *date); err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		}
	}
	if fee := u.Fee.Ptr(); fee != nil && *fee < 0 {
		errs = append(errs, "fee must not be negative")
	}
	if members := u.MaxMembers.Ptr(); members != nil && *members < 0 {
		errs = append(errs, "max_members must not be negative")
	}
	return errs
}

func (u UpdateEventRequest) toPatch() domain.EventPatch {
	patch := domain.EventPatch{
		Name:            u.Name.Ptr(),
		Description:     u.Description.Ptr(),
		LocationName:    u.LocationName.Ptr(),
		Latitude:        u.Latitude.Ptr(),
		Longitude:       u.Longitude.Ptr(),
		PlaceID:         u.PlaceID.Ptr(),
		Theme:           u.Theme.Ptr(),
		FoodDescription: u.FoodDescription.Ptr(),
		HostName:        u.HostName.Ptr(),
		Fee:             u.Fee.Ptr(),
		MaxMembers:      u.MaxMembers.Ptr(),
	}
	if date := u.Date.Ptr(); date != nil {
		d, _ := time.Parse(dateLayout, *date)
		patch.Date = &d
	}
	clearable := []struct {
		field   domain.EventField
		cleared bool
	}{
		{domain.EventDescription, u.Description.Cleared()},
		{domain.EventLocationName, u.LocationName.Cleared()},
		{domain.EventLatitude, u.Latitude.Cleared()},
		{domain.EventLongitude, u.Longitude.Cleared()},
		{domain.EventPlaceID, u.PlaceID.Cleared()},
		{domain.EventFoodDescription, u.FoodDescription.Cleared()},
	}
	for _, c := range clearable {
		if c.cleared {
			patch.Clear = append(patch.Clear, c.field)
		}
	}
	return patch
}

// ListEventsResponse is the data of GET /api/events/.
type ListEventsResponse struct {
	Events     []EventResponse        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger        *slog.Logger
	Service       domain.EventService
	PublicBaseURL string
}

func NewEventController(logger *slog.Logger, svc domain.EventService, publicBaseURL string) *EventController {
	return &EventController{
		Logger:        logger,
		Service:       svc,
		PublicBaseURL: publicBaseURL,
	}
}

func (c *EventController) respond(w http.ResponseWriter, r *http.Request, status int, e *domain.Event) {
	helpers.WriteJSONSuccess(w, status, newEventResponse(e, helpers.BaseURL(r, c.PublicBaseURL)))
}

func (c *EventController) eventList(r *http.Request, events []*domain.Event) []EventResponse {
	base := helpers.BaseURL(r, c.PublicBaseURL)
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, newEventResponse(e, base))
	}
	return out
}

// ListEvents godoc
// @Summary List events
// @Description Events ordered by date, newest first, with their members.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=controllers.ListEventsResponse}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/ [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     c.eventList(r, events),
		Pagination: helpers.NewPaginationMeta(page, total),
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event with a fresh invite code. A signed-in caller becomes host and first member; anonymous events are hosted by "Guest".
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse{data=controllers.EventResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/ [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent()
	if err := c.Service.CreateEvent(r.Context(), middleware.ActorFromContext(r.Context()), event); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.respond(w, r, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.EventResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/ [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.respond(w, r, http.StatusOK, event)
}

// GetEventByInviteCode godoc
// @Summary Resolve an invite code
// @Tags events
// @Produce json
// @Param code path string true "Invite code (UUID)"
// @Success 200 {object} helpers.APIResponse{data=controllers.EventResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/by_invite_code/{code}/ [get]
func (c *EventController) GetEventByInviteCode(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.ResolveByInviteCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.respond(w, r, http.StatusOK, event)
}

// ListJoinedEvents godoc
// @Summary List events the caller joined
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=[]controllers.EventResponse}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/joined/ [get]
func (c *EventController) ListJoinedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListJoinedEvents(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.eventList(r, events))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Host only. Events without a host can be edited by any signed-in user. Invite code and host never change.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=controllers.EventResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/ [patch]
// @Router /events/{id}/ [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if r.Method == http.MethodPut && (req.Name.Ptr() == nil || req.Date.Ptr() == nil) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "name and date are required")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, middleware.ActorFromContext(r.Context()), req.toPatch())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.respond(w, r, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Host only. Members and todos are removed with it.
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/ [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
