package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/tradui/internal/datasync"
	"github.com/mrlokans/tradui/internal/logger"
)

// Rebuilder runs a forced database rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) (*datasync.Report, error)
}

// RebuildQueue is the backlite queue name for forced rebuilds.
const RebuildQueue = "rebuild_database"

// RebuildDatabaseTask drops, recreates and reseeds the phrasebook store.
type RebuildDatabaseTask struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

func (t RebuildDatabaseTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        RebuildQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RebuildDatabaseProcessor creates a processor for database rebuilds.
func RebuildDatabaseProcessor(rebuilder Rebuilder, log *logger.Logger) backlite.QueueProcessor[RebuildDatabaseTask] {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("tasks")

	return func(ctx context.Context, task RebuildDatabaseTask) error {
		report, err := rebuilder.Rebuild(ctx)
		if err != nil {
			return fmt.Errorf("rebuild database (%s): %w", task.Reason, err)
		}

		log.Info("Rebuild task finished",
			"reason", task.Reason,
			"run_id", report.RunID,
			"rows", report.Counts.Total(),
			"queued_for", time.Since(task.RequestedAt).Round(time.Millisecond))
		return nil
	}
}

func NewRebuildDatabaseQueue(rebuilder Rebuilder, log *logger.Logger) backlite.Queue {
	return backlite.NewQueue(RebuildDatabaseProcessor(rebuilder, log))
}

// EnqueueRebuild queues a forced rebuild and returns its task ID.
func (c *Client) EnqueueRebuild(ctx context.Context, reason string) (string, error) {
	ids, err := c.client.Add(RebuildDatabaseTask{
		Reason:      reason,
		RequestedAt: time.Now(),
	}).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue rebuild: %w", err)
	}
	return ids[0], nil
}
