package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/tasks"
)

// AdminController triggers forced rebuilds.
type AdminController struct {
	rebuilder Rebuilder
	client    *tasks.Client
	log       *logger.Logger
}

// NewAdminController creates an AdminController. With a task client the rebuild is queued,
// without one it runs inside the request.
func NewAdminController(rebuilder Rebuilder, client *tasks.Client, log *logger.Logger) *AdminController {
	if log == nil {
		log = logger.Discard()
	}
	return &AdminController{rebuilder: rebuilder, client: client, log: log.WithComponent("http")}
}

// RebuildRequest is the optional body of a rebuild request.
type RebuildRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// TaskEnqueuedResponse identifies a queued task; poll it at /api/tasks/:id.
type TaskEnqueuedResponse struct {
	TaskID string `json:"task_id"`
	Type   string `json:"type"`
}

// Rebuild handles POST /api/admin/rebuild
func (ac *AdminController) Rebuild(c *gin.Context) {
	var req RebuildRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "api"
	}

	if ac.client != nil {
		id, err := ac.client.EnqueueRebuild(c.Request.Context(), req.Reason)
		if err != nil {
			respondInternalError(c, ac.log, err, "enqueue rebuild")
			return
		}

		respondAccepted(c, "task enqueued", TaskEnqueuedResponse{TaskID: id, Type: tasks.RebuildQueue})
		return
	}

	if ac.rebuilder == nil {
		respondError(c, http.StatusServiceUnavailable, "rebuild is not available")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	report, err := ac.rebuilder.Rebuild(ctx)
	if err != nil {
		respondFailure(c, ac.log, err, "rebuild")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "database rebuilt", Data: report})
}
