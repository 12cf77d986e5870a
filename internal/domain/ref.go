package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EventRefKind tells how an EventRef identifies its event.
type EventRefKind int

const (
	EventRefByID EventRefKind = iota + 1
	EventRefByInviteCode
)

// EventRef identifies an event either by numeric id or by invite code.
// Build it with ParseEventRef so the rule lives in one place.
type EventRef struct {
	Kind       EventRefKind
	ID         int64
	InviteCode string
}

// ParseEventRef classifies raw: all digits is an id, anything else is an
// invite code.
func ParseEventRef(raw string) (EventRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return EventRef{}, fmt.Errorf("%w: event reference is required", ErrInvalidInput)
	}
	if isDigits(raw) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return EventRef{}, fmt.Errorf("%w: event id out of range", ErrInvalidInput)
		}
		return EventRef{Kind: EventRefByID, ID: id}, nil
	}
	return EventRef{Kind: EventRefByInviteCode, InviteCode: raw}, nil
}

func (r EventRef) String() string {
	if r.Kind == EventRefByID {
		return strconv.FormatInt(r.ID, 10)
	}
	return r.InviteCode
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// LooseString accepts either a JSON string or a JSON number. Clients send
// ids both ways.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = LooseString(n.String())
	return nil
}

// Int64 parses the value as a decimal id.
func (s LooseString) Int64() (int64, bool) {
	if !isDigits(string(s)) {
		return 0, false
	}
	v, err := strconv.ParseInt(string(s), 10, 64)
	return v, err == nil
}
