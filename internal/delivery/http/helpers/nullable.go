package helpers

import (
	"bytes"
	"encoding/json"
)

// Nullable is a request field that tells "absent" apart from an explicit null.
// Set is true whenever the key appeared in the body.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		n.Null, n.Value = true, zero
		return nil
	}
	n.Null = false
	return json.Unmarshal(b, &n.Value)
}

// Ptr returns the value when the field carried one, nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || n.Null {
		return nil
	}
	v := n.Value
	return &v
}

// Cleared reports an explicit null.
func (n Nullable[T]) Cleared() bool { return n.Set && n.Null }
