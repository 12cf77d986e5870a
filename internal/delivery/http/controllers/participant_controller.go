package controllers

import (
	"log/slog"
	"net/http"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/domain"
)

// JoinEventRequest is the request body for POST /api/participants/.
// Event is either a numeric event id or an invite code.
type JoinEventRequest struct {
	Event domain.LooseString `json:"event" swaggertype:"string" example:"42"`
	Name  string             `json:"name"`
}

// Validate implements Validator.
func (j JoinEventRequest) Validate() []string {
	if j.Event == "" {
		return []string{"event is required"}
	}
	return nil
}

type ParticipantController struct {
	Logger       *slog.Logger
	Events       domain.EventService
	Participants domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, events domain.EventService, participants domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:       logger,
		Events:       events,
		Participants: participants,
	}
}

// ListParticipants godoc
// @Summary List participants
// @Tags participants
// @Produce json
// @Param event query int false "Only participants of this event"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Success 200 {object} helpers.APIResponse{data=helpers.Page[domain.Participant]}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/ [get]
func (c *ParticipantController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.QueryID(w, r, "event")
	if !ok {
		return
	}
	participants, err := c.Participants.ListParticipants(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(participants, helpers.ParsePagination(r)))
}

// JoinEvent godoc
// @Summary Join an event
// @Description Joins the event identified by id or invite code. Joining again returns the existing participant with 200.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinEventRequest true "Event reference and optional display name"
// @Success 201 {object} helpers.APIResponse{data=domain.Participant} "joined"
// @Success 200 {object} helpers.APIResponse{data=domain.Participant} "already a member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/ [post]
func (c *ParticipantController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	var req JoinEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ref, err := domain.ParseEventRef(string(req.Event))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	participant, created, err := c.Events.JoinEvent(r.Context(), ref, middleware.ActorFromContext(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, participant)
}

// GetParticipant godoc
// @Summary Get a participant
// @Tags participants
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {object} helpers.APIResponse{data=domain.Participant}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{id}/ [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	participant, err := c.Participants.GetParticipant(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// DeleteParticipant godoc
// @Summary Leave or remove a participant
// @Description Allowed for the participant's own user and the event host.
// @Tags participants
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{id}/ [delete]
func (c *ParticipantController) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Participants.RemoveParticipant(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
