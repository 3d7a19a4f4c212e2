package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lorrc/distribution-backend/internal/adapters/primary/sse"
	"github.com/lorrc/distribution-backend/internal/auth"
)

// SSEHandler serves the Server-Sent Events stream. The stream's tenant comes
// from the token; clients cannot choose groups.
type SSEHandler struct {
	broadcaster *sse.Broadcaster
	tm          *auth.TokenManager
	logger      *slog.Logger
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(broadcaster *sse.Broadcaster, tm *auth.TokenManager, logger *slog.Logger) *SSEHandler {
	return &SSEHandler{
		broadcaster: broadcaster,
		tm:          tm,
		logger:      logger.With("handler", "sse"),
	}
}

// flushWriter flushes after every frame so events are not held in buffers.
type flushWriter struct {
	rc *http.ResponseController
	w  io.Writer
}

func (f flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, f.rc.Flush()
}

// ServeHTTP handles GET /events.
func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot set headers, so a token query parameter is accepted too.
	claims, ok := authenticateStream(w, r, h.tm, h.logger, tokenHeaderOrQuery)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)
	// The server's WriteTimeout would otherwise cut the stream.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.DebugContext(r.Context(), "could not clear write deadline", "error", err)
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	stream := h.broadcaster.Open(claims.Actor())
	h.logger.InfoContext(r.Context(), "sse connection established",
		"connection_id", stream.ID,
		"user_id", claims.UserID,
		"remote_addr", r.RemoteAddr,
	)

	err := stream.Serve(r.Context(), flushWriter{rc: rc, w: w}, h.broadcaster.HeartbeatInterval())
	h.logger.DebugContext(r.Context(), "sse connection ended", "connection_id", stream.ID, "reason", err)
}
