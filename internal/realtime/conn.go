package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
	// pongDelay is how long we wait for a pong before treating the client as gone.
	pongDelay = 90 * time.Second
	// pingPeriod must be shorter than pongDelay.
	pingPeriod = time.Minute

	maxMessageSize = 64 << 10
	sendBufferSize = 64
)

var (
	errConnClosed     = errors.New("connection closed")
	errSendBufferFull = errors.New("send buffer full")
)

// Conn is one client connection in a namespace. Frames are queued on a
// buffered channel and written by a single writer goroutine, so a slow
// client drops frames instead of stalling broadcasters.
type Conn struct {
	id     string
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newConn(ws *websocket.Conn, logger *slog.Logger) *Conn {
	id := uuid.NewString()
	return &Conn{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger.With("sid", id),
	}
}

// ID is the connection's session id, echoed to clients as "sid".
func (c *Conn) ID() string { return c.id }

// Emit queues an event for this connection only.
func (c *Conn) Emit(event string, data any) error {
	b, err := json.Marshal(outboundFrame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s frame: %w", event, err)
	}
	return c.enqueue(b)
}

func (c *Conn) enqueue(frame []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return errConnClosed
	default:
		return errSendBufferFull
	}
}

// Close stops the writer and closes the socket. Safe to call more than once.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// writeLoop is the only goroutine that writes to the socket.
func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("write failed", "err", err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := c.ws.WriteControl(websocket.PingMessage, []byte{}, deadline); err != nil {
				// Expected when the other end goes away.
				c.logger.Debug("failed to write ping", "err", err)
				return
			}
		}
	}
}

// readLoop feeds frames to handle until the socket fails or closes.
// Handlers for this connection therefore run one at a time.
func (c *Conn) readLoop(handle func(inboundFrame)) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongDelay))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongDelay))
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("read failed", "err", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongDelay))
		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
			_ = c.Emit(EventResponse, Ack{Error: "malformed frame"})
			continue
		}
		handle(frame)
	}
}
