package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"joiny/internal/domain"
)

// HandlerFunc handles one inbound event. data is the raw "data" member.
type HandlerFunc func(ctx context.Context, c *Conn, data json.RawMessage)

// Namespace is an independent set of event handlers and rooms served on
// its own websocket endpoint.
type Namespace struct {
	name     string
	registry *Registry
	handlers map[string]HandlerFunc
	upgrader websocket.Upgrader
	ctx      context.Context
	logger   *slog.Logger
}

// NewNamespace creates a namespace. ctx bounds handler work and is
// cancelled at shutdown. A nil checkOrigin allows every origin.
func NewNamespace(ctx context.Context, name string, registry *Registry, checkOrigin func(*http.Request) bool, logger *slog.Logger) *Namespace {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Namespace{
		name:     name,
		registry: registry,
		handlers: make(map[string]HandlerFunc),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		ctx:    ctx,
		logger: logger.With("namespace", name),
	}
}

func (n *Namespace) Name() string { return n.name }

func (n *Namespace) Registry() *Registry { return n.registry }

// On registers the handler for event. Must be called before serving.
func (n *Namespace) On(event string, h HandlerFunc) {
	n.handlers[event] = h
}

// Broadcast sends event to every member of room except skip, which may be
// nil. Returns how many connections accepted the frame.
func (n *Namespace) Broadcast(room, event string, data any, skip *Conn) int {
	b, err := json.Marshal(outboundFrame{Event: event, Data: data})
	if err != nil {
		n.logger.Error("marshal broadcast", "event", event, "room", room, "err", err)
		return 0
	}
	sent := 0
	for _, c := range n.registry.Members(room) {
		if c == skip {
			continue
		}
		if err := c.enqueue(b); err != nil {
			n.logger.Warn("dropped frame", "sid", c.ID(), "event", event, "room", room, "err", err)
			continue
		}
		sent++
	}
	return sent
}

func (n *Namespace) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		n.logger.Warn("problem initiating websocket", "err", err)
		return
	}
	c := newConn(ws, n.logger)
	if !n.registry.Connect(c) {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.Close()
		return
	}
	c.logger.Debug("client connected", "remote_addr", r.RemoteAddr)

	go c.writeLoop()
	defer func() {
		rooms := n.registry.LeaveAll(c)
		c.Close()
		c.logger.Debug("client disconnected", "rooms", rooms)
	}()

	c.readLoop(func(f inboundFrame) {
		n.dispatch(c, f)
	})
}

// dispatch runs one handler, containing any panic to this event.
func (n *Namespace) dispatch(c *Conn, f inboundFrame) {
	h, ok := n.handlers[f.Event]
	if !ok {
		c.logger.Debug("unknown event", "event", f.Event)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panicked", "event", f.Event, "panic", r)
		}
	}()
	h(n.ctx, c, f.Data)
}

// decode unmarshals data into v, acking an error to c on failure.
func decode(c *Conn, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Emit(EventResponse, Ack{Error: "malformed payload"})
		return false
	}
	return true
}

// joinRoom adds c to the party's room and acks the joiner only.
func (n *Namespace) joinRoom(c *Conn, partyID domain.LooseString) bool {
	if partyID == "" {
		_ = c.Emit(EventResponse, Ack{Error: "party_id is required"})
		return false
	}
	room := PartyRoom(string(partyID))
	n.registry.Join(c, room)
	c.logger.Debug("joined room", "room", room)
	_ = c.Emit(EventResponse, Ack{Message: fmt.Sprintf("Joined party %s on %s", partyID, n.label())})
	return true
}

func (n *Namespace) leaveRoom(c *Conn, partyID domain.LooseString, ack bool) {
	if partyID == "" {
		_ = c.Emit(EventResponse, Ack{Error: "party_id is required"})
		return
	}
	room := PartyRoom(string(partyID))
	n.registry.Leave(c, room)
	c.logger.Debug("left room", "room", room)
	if ack {
		_ = c.Emit(EventResponse, Ack{Message: fmt.Sprintf("Left party %s on %s", partyID, n.label())})
	}
}

func (n *Namespace) label() string { return strings.TrimPrefix(n.name, "/") }
