package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	LocationNamespace   = "/location"
	EventLocationUpdate = "location_update"
)

// NewLocationNamespace serves live location sharing. Updates are relayed to
// the rest of the room and never stored.
func NewLocationNamespace(ctx context.Context, checkOrigin func(*http.Request) bool, logger *slog.Logger) *Namespace {
	n := NewNamespace(ctx, LocationNamespace, NewRegistry(), checkOrigin, logger)

	n.On(EventJoinParty, func(_ context.Context, c *Conn, data json.RawMessage) {
		var p partyPayload
		if decode(c, data, &p) {
			n.joinRoom(c, p.PartyID)
		}
	})
	n.On(EventLeaveParty, func(_ context.Context, c *Conn, data json.RawMessage) {
		var p partyPayload
		if decode(c, data, &p) {
			n.leaveRoom(c, p.PartyID, true)
		}
	})
	n.On(EventLocationUpdate, func(_ context.Context, c *Conn, data json.RawMessage) {
		var p partyPayload
		if !decode(c, data, &p) {
			return
		}
		if p.PartyID == "" {
			_ = c.Emit(EventResponse, Ack{Error: "party_id is required"})
			return
		}
		// Relayed untouched; clients keep the last position they saw.
		n.Broadcast(PartyRoom(string(p.PartyID)), EventLocationUpdate, data, c)
	})
	return n
}
