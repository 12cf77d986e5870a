// Package realtime implements the websocket room broker behind the
// /location and /chat namespaces.
package realtime

import (
	"encoding/json"
	"fmt"

	"joiny/internal/domain"
)

// Event names shared by both namespaces.
const (
	EventJoinParty  = "join_party"
	EventLeaveParty = "leave_party"
	EventResponse   = "response"
)

// inboundFrame is what clients send: {"event": "...", "data": {...}}.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Ack is the payload of a response frame. Exactly one field is set.
type Ack struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type partyPayload struct {
	PartyID domain.LooseString `json:"party_id"`
}

// scalarText is a free-text field that some clients send as a bare number.
// Strings are kept verbatim, numbers keep their literal spelling.
type scalarText string

func (t *scalarText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = scalarText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = scalarText(n)
	return nil
}

func (t *scalarText) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// PartyRoom is the room key for an event. Both namespaces use the same key
// but separate registries.
func PartyRoom(partyID string) string {
	return "party_" + partyID
}
