package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

const (
	statusOperational = "Operational"
	statusUnavailable = "Unavailable"

	probeTimeout = 3 * time.Second
)

// HealthChecks names the dependencies probed by the health endpoints. Cache
// and GitHub may be nil.
type HealthChecks struct {
	Database ports.Pinger
	Cache    ports.Pinger
	GitHub   ports.Pinger
}

// HealthHandler serves liveness, readiness and the status page summary.
type HealthHandler struct {
	checks HealthChecks
}

func NewHealthHandler(checks HealthChecks) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness handles GET /health. Returns 200 immediately; confirms the process
// is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready. The store must be reachable, and the
// cache too when one is configured.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	probe := func(name string, p ports.Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}
	probe("mongodb", h.checks.Database)
	probe("redis", h.checks.Cache)

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

type externalStatus struct {
	GitHub string `json:"github"`
}

type statusResponse struct {
	API      string         `json:"api"`
	Database string         `json:"database"`
	External externalStatus `json:"external"`
}

// Status handles GET /api/health, the summary shown on the status page. It
// always answers 200; each component reports Operational or Unavailable.
//
// @Summary      Service status summary
// @Tags         health
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /health [get]
func (h *HealthHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	return c.JSON(http.StatusOK, statusResponse{
		API:      statusOperational,
		Database: operational(ctx, h.checks.Database),
		External: externalStatus{GitHub: operational(ctx, h.checks.GitHub)},
	})
}

func operational(ctx context.Context, p ports.Pinger) string {
	if p == nil || p.Ping(ctx) != nil {
		return statusUnavailable
	}
	return statusOperational
}
