package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshStatusResponse describes the periodic refresh and the state of the dataset.
type RefreshStatusResponse struct {
	State      string     `json:"state,omitempty"`
	Scheduled  bool       `json:"scheduled"`
	Refreshing bool       `json:"refreshing"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
	TaskQueue  string     `json:"task_queue,omitempty"`
}

// RefreshController exposes the refresh scheduler to operators.
type RefreshController struct {
	scheduler RefreshScheduler
	sync      SyncState
	queue     QueueState
}

// NewRefreshController creates a RefreshController. sync and queue may be nil.
func NewRefreshController(scheduler RefreshScheduler, sync SyncState, queue QueueState) *RefreshController {
	return &RefreshController{scheduler: scheduler, sync: sync, queue: queue}
}

// Status handles GET /api/admin/refresh
func (rc *RefreshController) Status(c *gin.Context) {
	lastRun, lastErr := rc.scheduler.LastRun()
	resp := RefreshStatusResponse{
		Scheduled:  rc.scheduler.IsRunning(),
		Refreshing: rc.scheduler.IsRefreshing(),
		NextRun:    rc.scheduler.GetNextRunTime(),
		LastRun:    lastRun,
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}
	if rc.sync != nil {
		resp.State = string(rc.sync.State())
	}
	if rc.queue != nil {
		resp.TaskQueue = "stopped"
		if rc.queue.Running() {
			resp.TaskQueue = "running"
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Run handles POST /api/admin/refresh
func (rc *RefreshController) Run(c *gin.Context) {
	if rc.scheduler.IsRefreshing() {
		respondError(c, http.StatusConflict, "refresh already in progress")
		return
	}
	rc.scheduler.RunNow()
	respondAccepted(c, "refresh started", nil)
}
