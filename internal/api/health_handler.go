package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// DefaultHealthTimeout bounds the database ping made by the health check.
const DefaultHealthTimeout = 2 * time.Second

// Pinger checks that the database is reachable. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

// HealthHandler serves the unauthenticated status endpoints.
type HealthHandler struct {
	db       Pinger
	version  string
	timeout  time.Duration
	timeFunc func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:       db,
		version:  version,
		timeout:  DefaultHealthTimeout,
		timeFunc: time.Now,
	}
}

// Health handles GET /health. It answers 503 when the database does not
// respond to a ping within the timeout.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Service unavailable", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.timeFunc().UTC(),
		Database:  "connected",
		Version:   h.version,
	})
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{
		Message: "Task Manager API",
		Version: h.version,
		Health:  "/health",
	})
}
