package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	wsAdapter "github.com/lorrc/distribution-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/distribution-backend/internal/auth"
	"github.com/lorrc/distribution-backend/internal/config"
)

// WebSocketHandler handles WebSocket connection upgrades
type WebSocketHandler struct {
	hub      *wsAdapter.Hub
	tm       *auth.TokenManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *wsAdapter.Hub,
	tm *auth.TokenManager,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:    hub,
		tm:     tm,
		logger: logger.With("handler", "websocket"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg.WebSocket.Origins(), cfg.IsDevelopment()),
	}

	return handler
}

// makeOriginChecker accepts requests without an Origin header (non-browser
// clients) and, outside development, only the configured hosts.
func (h *WebSocketHandler) makeOriginChecker(allowedOrigins []string, development bool) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if development {
			h.logger.DebugContext(r.Context(), "websocket origin not checked in development", "origin", origin)
			return true
		}

		parsed, err := url.Parse(origin)
		if err == nil && originAllowed(parsed.Host, allowedOrigins) {
			return true
		}

		h.logger.WarnContext(r.Context(), "websocket connection rejected: origin not allowed",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
		)
		return false
	}
}

// originAllowed matches host against exact entries and "*.example.com"
// wildcards.
func originAllowed(host string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if suffix, ok := strings.CutPrefix(allowed, "*"); ok {
			if strings.HasSuffix(host, suffix) || host == suffix[1:] {
				return true
			}
		} else if host == allowed {
			return true
		}
	}
	return false
}

// ServeHTTP authenticates, upgrades and hands the connection to the hub.
// Rooms are joined afterwards by the client.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := authenticateStream(w, r, h.tm, h.logger, tokenQueryOnly)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error response.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	client, ok := h.hub.Attach(conn, claims.Actor())
	if !ok {
		h.logger.WarnContext(ctx, "websocket connection dropped: hub stopped")
		return
	}

	h.logger.InfoContext(ctx, "websocket connection established",
		"connection_id", client.ID,
		"user_id", claims.UserID,
		"membership", h.hub.Mode(),
		"remote_addr", r.RemoteAddr,
	)
}
