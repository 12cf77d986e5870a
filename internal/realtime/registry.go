package realtime

import (
	"sort"
	"sync"
)

// Registry maps room keys to the connections subscribed to them. Each
// namespace owns one; it is created at startup and closed at shutdown.
// Join and Leave are idempotent.
type Registry struct {
	mu     sync.RWMutex
	conns  map[*Conn]map[string]struct{}
	rooms  map[string]map[*Conn]struct{}
	closed bool
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[*Conn]map[string]struct{}),
		rooms: make(map[string]map[*Conn]struct{}),
	}
}

// Connect tracks c so Close can reach it. Returns false once the registry is closed.
func (r *Registry) Connect(c *Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if _, ok := r.conns[c]; !ok {
		r.conns[c] = make(map[string]struct{})
	}
	return true
}

// Join adds c to room. Reports whether c was newly added.
func (r *Registry) Join(c *Conn, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	joined, ok := r.conns[c]
	if !ok {
		joined = make(map[string]struct{})
		r.conns[c] = joined
	}
	if _, ok := joined[room]; ok {
		return false
	}
	joined[room] = struct{}{}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Conn]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
	return true
}

// Leave removes c from room. Reports whether c was a member.
func (r *Registry) Leave(c *Conn, room string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leave(c, room)
}

func (r *Registry) leave(c *Conn, room string) bool {
	joined, ok := r.conns[c]
	if !ok {
		return false
	}
	if _, ok := joined[room]; !ok {
		return false
	}
	delete(joined, room)
	members := r.rooms[room]
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
	return true
}

// LeaveAll removes c from every room and forgets it. Returns the rooms c was in.
func (r *Registry) LeaveAll(c *Conn) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	joined, ok := r.conns[c]
	if !ok {
		return nil
	}
	left := make([]string, 0, len(joined))
	for room := range joined {
		left = append(left, room)
	}
	for _, room := range left {
		r.leave(c, room)
	}
	delete(r.conns, c)
	sort.Strings(left)
	return left
}

// Members returns a snapshot of the connections in room.
func (r *Registry) Members(room string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[room]
	out := make([]*Conn, 0, len(members))
	for c := range members {
		out = append(out, c)
	}
	return out
}

// Rooms returns the rooms c has joined, sorted.
func (r *Registry) Rooms(c *Conn) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	joined := r.conns[c]
	out := make([]string, 0, len(joined))
	for room := range joined {
		out = append(out, room)
	}
	sort.Strings(out)
	return out
}

// Close disconnects every tracked connection. Later joins are refused.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	conns := make([]*Conn, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	r.conns = make(map[*Conn]map[string]struct{})
	r.rooms = make(map[string]map[*Conn]struct{})
	r.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
