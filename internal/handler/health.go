package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/askbridge/askbridge/internal/models"
)

const version = "1.0.0"

// HealthChecker is implemented by collaborators that can report connectivity.
type HealthChecker interface {
	TestConnection(ctx context.Context) error
}

// HealthHandler handles GET /health with dependency checks.
type HealthHandler struct {
	store HealthChecker
	index HealthChecker
}

func NewHealthHandler(store, index HealthChecker) *HealthHandler {
	return &HealthHandler{store: store, index: index}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	// Short timeout so health checks never block
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	check := func(name string, dep HealthChecker) {
		if dep == nil {
			checks[name] = "disabled"
			return
		}
		if err := dep.TestConnection(ctx); err != nil {
			checks[name] = "unavailable: " + err.Error()
			overallStatus = "degraded"
			return
		}
		checks[name] = "ok"
	}
	check("database", h.store)
	check("elasticsearch", h.index)

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
