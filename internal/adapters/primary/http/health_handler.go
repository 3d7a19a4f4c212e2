package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// HealthChecker defines the interface for health check dependencies
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RealtimeStats reports live connection counts for one transport.
type RealtimeStats interface {
	Mode() ports.MembershipMode
	Connections() int
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db        HealthChecker
	realtime  map[string]RealtimeStats
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker, version string, realtime map[string]RealtimeStats) *HealthHandler {
	return &HealthHandler{
		db:        db,
		realtime:  realtime,
		startTime: time.Now(),
		version:   version,
	}
}

// TransportStats is the health view of one realtime transport.
type TransportStats struct {
	Membership  ports.MembershipMode `json:"membership"`
	Connections int                  `json:"connections"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// MemoryStats is the runtime memory section of /health.
type MemoryStats struct {
	Alloc      uint64 `json:"alloc_bytes"`
	TotalAlloc uint64 `json:"total_alloc_bytes"`
	Sys        uint64 `json:"sys_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

// DetailedHealthResponse is the /health body.
type DetailedHealthResponse struct {
	HealthResponse
	Memory     MemoryStats               `json:"memory"`
	Goroutines int                       `json:"goroutines"`
	Realtime   map[string]TransportStats `json:"realtime"`
}

// HandleLiveness answers as long as the process serves HTTP.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness fails while the database is unreachable.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	report := h.report(r.Context(), "unhealthy")
	WriteJSON(w, statusFor(report), report)
}

// HandleHealth reports the readiness checks plus runtime and realtime
// connection figures.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := h.report(r.Context(), "degraded")

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	WriteJSON(w, statusFor(report), DetailedHealthResponse{
		HealthResponse: report,
		Memory: MemoryStats{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			NumGC:      mem.NumGC,
		},
		Goroutines: runtime.NumGoroutine(),
		Realtime:   h.realtimeStats(),
	})
}

// report runs the dependency checks. failed is the overall status used
// when any check is not healthy.
func (h *HealthHandler) report(ctx context.Context, failed string) HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	checks := map[string]Check{"database": h.checkDatabase(ctx)}
	status := "healthy"
	for _, check := range checks {
		if check.Status != "healthy" {
			status = failed
		}
	}

	return HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}

func statusFor(report HealthResponse) int {
	if report.Status != "healthy" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func (h *HealthHandler) realtimeStats() map[string]TransportStats {
	stats := make(map[string]TransportStats, len(h.realtime))
	for name, transport := range h.realtime {
		stats[name] = TransportStats{
			Membership:  transport.Mode(),
			Connections: transport.Connections(),
		}
	}
	return stats
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "unhealthy", Message: "Database not configured"}
	}

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}
