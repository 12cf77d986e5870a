package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"joiny/internal/domain"
)

// HubConfig configures the realtime broker.
type HubConfig struct {
	// OffloadWorkers caps concurrent storage calls from chat handlers.
	OffloadWorkers int64
	// CheckOrigin validates the websocket handshake origin. Nil allows all.
	CheckOrigin func(*http.Request) bool
}

// Hub owns both namespaces and their shared offloader.
type Hub struct {
	Location  *Namespace
	Chat      *Namespace
	offloader *Offloader
	cancel    context.CancelFunc
}

func NewHub(chat domain.ChatService, cfg HubConfig, logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	offloader := NewOffloader(cfg.OffloadWorkers)
	logger = logger.With("component", "realtime")
	return &Hub{
		Location:  NewLocationNamespace(ctx, cfg.CheckOrigin, logger),
		Chat:      NewChatNamespace(ctx, chat, offloader, cfg.CheckOrigin, logger),
		offloader: offloader,
		cancel:    cancel,
	}
}

// Close cancels handler work and disconnects every client.
func (h *Hub) Close() {
	h.cancel()
	h.offloader.Close()
	h.Location.Registry().Close()
	h.Chat.Registry().Close()
}
