package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status      string            `json:"status"`
	Time        string            `json:"time"`
	Version     string            `json:"version,omitempty"`
	LastUpdated string            `json:"last_updated,omitempty"`
	Checks      map[string]string `json:"checks"`
}

// HealthController reports engine connectivity and whether the dataset has been seeded.
// A reachable database without a status row is "degraded": queries would return nothing.
type HealthController struct {
	db      Pinger
	dataset StatusSource
	version string
}

func NewHealthController(db Pinger, dataset StatusSource, version string) *HealthController {
	return &HealthController{db: db, dataset: dataset, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{},
	}

	if h.db == nil {
		resp.Checks["database"] = "not configured"
	} else if err := h.db.Ping(ctx); err != nil {
		resp.Checks["database"] = "error: " + err.Error()
		resp.Status = "unhealthy"
	} else {
		resp.Checks["database"] = "ok"
		resp.Checks["engine"] = h.db.Name()
	}

	if h.dataset != nil && resp.Status == "healthy" {
		status, err := h.dataset.GetTraduiStatus(ctx)
		if err != nil {
			resp.Checks["dataset"] = "uninitialized"
			resp.Status = "degraded"
		} else {
			resp.Checks["dataset"] = "ready"
			resp.LastUpdated = status.LastUpdated.UTC().Format(time.RFC3339)
		}
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.IndentedJSON(code, resp)
}
