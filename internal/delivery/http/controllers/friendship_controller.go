package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"joiny/internal/delivery/http/helpers"
	"joiny/internal/delivery/http/middleware"
	"joiny/internal/domain"
)

// Messages returned when a friend request creates nothing new.
const (
	msgAlreadyFriends  = "Already friends."
	msgAlreadyPending  = "Request already sent or received."
	msgRequestAccepted = "Friend request accepted."
)

// SendFriendRequestRequest is the request body for POST /api/friendships/.
type SendFriendRequestRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (s SendFriendRequestRequest) Validate() []string {
	if strings.TrimSpace(s.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

type FriendshipController struct {
	Logger  *slog.Logger
	Service domain.FriendshipService
}

func NewFriendshipController(logger *slog.Logger, svc domain.FriendshipService) *FriendshipController {
	return &FriendshipController{Logger: logger, Service: svc}
}

// ListFriendships godoc
// @Summary List friendships
// @Description Every request the caller sent or received, pending or accepted.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=[]domain.Friendship}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/ [get]
func (c *FriendshipController) ListFriendships(w http.ResponseWriter, r *http.Request) {
	friendships, err := c.Service.ListFriendships(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, friendships)
}

// SendFriendRequest godoc
// @Summary Send a friend request by email
// @Description Creates a pending request. When the two users are already linked in either direction nothing is created and 200 carries a message.
// @Tags friendships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendFriendRequestRequest true "Target email"
// @Success 201 {object} helpers.APIResponse{data=domain.Friendship}
// @Success 200 {object} helpers.APIResponse{data=helpers.MessageResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/ [post]
func (c *FriendshipController) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req SendFriendRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	friendship, outcome, err := c.Service.SendFriendRequest(r.Context(), middleware.ActorFromContext(r.Context()), req.Email)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	switch outcome {
	case domain.FriendRequestAlreadyFriends:
		helpers.WriteJSONSuccess(w, http.StatusOK, helpers.MessageResponse{Message: msgAlreadyFriends})
	case domain.FriendRequestAlreadyPending:
		helpers.WriteJSONSuccess(w, http.StatusOK, helpers.MessageResponse{Message: msgAlreadyPending})
	default:
		helpers.WriteJSONSuccess(w, http.StatusCreated, friendship)
	}
}

// AcceptFriendRequest godoc
// @Summary Accept a friend request
// @Description Only the recipient may accept. Accepting twice is harmless.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friendship ID"
// @Success 200 {object} helpers.APIResponse{data=helpers.MessageResponse}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/{id}/accept/ [post]
func (c *FriendshipController) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := c.Service.AcceptFriendRequest(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.MessageResponse{Message: msgRequestAccepted})
}

// DeleteFriendship godoc
// @Summary Remove a friend, or cancel or decline a request
// @Tags friendships
// @Security BearerAuth
// @Param id path int true "Friendship ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friendships/{id}/ [delete]
func (c *FriendshipController) DeleteFriendship(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteFriendship(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}
