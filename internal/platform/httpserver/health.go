package httpserver

import (
	"context"
	"net/http"
	"time"

	"erpinterno/internal/shared/envelope"
)

const healthTimeout = 3 * time.Second

// Pinger is satisfied by the database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Error       string `json:"error,omitempty"`
}

type healthReporter struct {
	database    Pinger
	version     string
	environment string
	now         func() time.Time
}

func (h healthReporter) check(ctx context.Context) (int, HealthResponse) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	version := h.version
	if version == "" {
		version = envelope.DefaultVersion
	}
	resp := HealthResponse{
		Status:      "healthy",
		Timestamp:   now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:     version,
		Environment: h.environment,
		Database:    "memory",
	}
	if h.database == nil {
		return http.StatusOK, resp
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := h.database.Ping(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		return http.StatusServiceUnavailable, resp
	}
	resp.Database = "connected"
	return http.StatusOK, resp
}

// handleHealth godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, resp := s.health.check(r.Context())
	if status != http.StatusOK {
		s.logger.Warn("health check failed",
			"event", "http_health_unhealthy",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", resp.Error,
		)
	}
	writeJSON(w, status, resp)
}
