package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"joiny/internal/domain"
)

const (
	ChatNamespace        = "/chat"
	EventChatMessage     = "chat_message"
	EventChatHistory     = "chat_history"
	historySID           = "history"
	historyTimestampForm = time.RFC3339Nano
)

// HistoryEntry is one replayed message in a chat_history batch.
type HistoryEntry struct {
	UserName  string `json:"user_name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	SID       string `json:"sid"`
}

// LiveMessage is the chat_message broadcast. Timestamp is always null:
// only history carries the stored time.
type LiveMessage struct {
	UserName  *string `json:"user_name"`
	Message   string  `json:"message"`
	SID       string  `json:"sid"`
	Timestamp *string `json:"timestamp"`
}

type chatJoinPayload struct {
	PartyID domain.LooseString `json:"party_id"`
	UserID  domain.LooseString `json:"user_id"`
}

type chatMessagePayload struct {
	PartyID  domain.LooseString `json:"party_id"`
	Message  scalarText         `json:"message"`
	UserName *scalarText        `json:"user_name"`
	UserID   domain.LooseString `json:"user_id"`
}

type chatHandlers struct {
	ns        *Namespace
	chat      domain.ChatService
	offloader *Offloader
}

// NewChatNamespace serves party chat. Messages are stored best-effort and
// always broadcast; joiners that identify themselves get their history.
func NewChatNamespace(ctx context.Context, chat domain.ChatService, offloader *Offloader, checkOrigin func(*http.Request) bool, logger *slog.Logger) *Namespace {
	n := NewNamespace(ctx, ChatNamespace, NewRegistry(), checkOrigin, logger)
	h := &chatHandlers{ns: n, chat: chat, offloader: offloader}
	n.On(EventJoinParty, h.joinParty)
	n.On(EventLeaveParty, h.leaveParty)
	n.On(EventChatMessage, h.message)
	return n
}

func (h *chatHandlers) joinParty(ctx context.Context, c *Conn, data json.RawMessage) {
	var p chatJoinPayload
	if !decode(c, data, &p) || !h.ns.joinRoom(c, p.PartyID) {
		return
	}
	if p.UserID == "" {
		return
	}
	eventID, okEvent := p.PartyID.Int64()
	userID, okUser := p.UserID.Int64()
	if !okEvent || !okUser {
		c.logger.Debug("skipping history for non-numeric ids", "party_id", p.PartyID, "user_id", p.UserID)
		return
	}

	messages, err := Offload(ctx, h.offloader, func(ctx context.Context) ([]*domain.ChatMessage, error) {
		return h.chat.History(ctx, eventID, userID)
	})
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, domain.ErrNotFound) {
			level = slog.LevelDebug
		}
		c.logger.Log(ctx, level, "history replay skipped", "room", PartyRoom(string(p.PartyID)), "user_id", userID, "err", err)
		return
	}
	history := make([]HistoryEntry, len(messages))
	for i, m := range messages {
		history[i] = HistoryEntry{
			UserName:  m.SenderName,
			Message:   m.Message,
			Timestamp: m.CreatedAt.UTC().Format(historyTimestampForm),
			SID:       historySID,
		}
	}
	if err := c.Emit(EventChatHistory, history); err != nil {
		c.logger.Warn("history not delivered", "err", err)
	}
}

func (h *chatHandlers) leaveParty(_ context.Context, c *Conn, data json.RawMessage) {
	var p chatJoinPayload
	if decode(c, data, &p) {
		h.ns.leaveRoom(c, p.PartyID, false)
	}
}

func (h *chatHandlers) message(ctx context.Context, c *Conn, data json.RawMessage) {
	var p chatMessagePayload
	if !decode(c, data, &p) {
		return
	}
	if p.PartyID == "" || p.Message == "" {
		_ = c.Emit(EventResponse, Ack{Error: "party_id and message are required"})
		return
	}
	room := PartyRoom(string(p.PartyID))

	if p.UserID != "" {
		h.persist(ctx, c, room, p)
	}

	h.ns.Broadcast(room, EventChatMessage, LiveMessage{
		UserName: p.UserName.ptr(),
		Message:  string(p.Message),
		SID:      c.ID(),
	}, nil)
}

// persist stores the message. Failures are logged and never reach the client.
func (h *chatHandlers) persist(ctx context.Context, c *Conn, room string, p chatMessagePayload) {
	eventID, okEvent := p.PartyID.Int64()
	senderID, okUser := p.UserID.Int64()
	if !okEvent || !okUser {
		c.logger.Warn("message not stored: non-numeric ids", "room", room, "user_id", p.UserID)
		return
	}
	_, err := Offload(ctx, h.offloader, func(ctx context.Context) (*domain.ChatMessage, error) {
		return h.chat.RecordMessage(ctx, eventID, senderID, string(p.Message))
	})
	if err != nil {
		c.logger.Error("failed to save message", "room", room, "user_id", senderID, "err", err)
	}
}
