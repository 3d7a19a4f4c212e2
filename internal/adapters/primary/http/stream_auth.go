package http

import (
	"log/slog"
	"net/http"

	mw "github.com/lorrc/distribution-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/distribution-backend/internal/auth"
)

// streamToken is where a realtime endpoint looks for its token.
type streamToken int

const (
	// tokenQueryOnly is for websocket upgrades, where browsers cannot set headers.
	tokenQueryOnly streamToken = iota
	// tokenHeaderOrQuery prefers the bearer header and falls back to ?token=.
	tokenHeaderOrQuery
)

// authenticateStream validates the token of a realtime connection request
// before anything is upgraded or registered. On failure it writes a 401.
func authenticateStream(w http.ResponseWriter, r *http.Request, tm *auth.TokenManager, logger *slog.Logger, source streamToken) (*auth.Claims, bool) {
	var token string
	if source == tokenHeaderOrQuery {
		token, _ = mw.BearerToken(r)
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	if token == "" {
		logger.WarnContext(r.Context(), "connection rejected: missing token", "remote_addr", r.RemoteAddr)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		logger.WarnContext(r.Context(), "connection rejected: invalid token", "remote_addr", r.RemoteAddr, "error", err)
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}
