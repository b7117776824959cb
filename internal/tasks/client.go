package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/tradui/internal/logger"
)

// Client runs phrasebook maintenance jobs on a backlite queue stored next to the
// phrasebook database, so a pending rebuild survives a restart.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config
	log    *logger.Logger

	mu      sync.Mutex
	running bool
}

// TasksDBPath returns the queue database path kept alongside the main database.
// "./tradui.db" becomes "./tradui-tasks.db".
func TasksDBPath(mainDBPath string) string {
	if mainDBPath == ":memory:" {
		return "file:tradui-tasks?mode=memory&cache=shared"
	}
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

func tasksDSN(mainDBPath string) string {
	path := TasksDBPath(mainDBPath)
	if mainDBPath == ":memory:" {
		return path
	}
	return path + "?_journal=WAL&_timeout=5000&_busy_timeout=5000"
}

// NewClient opens the queue database and installs the backlite schema.
// Queues must be registered before Start.
func NewClient(mainDBPath string, cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("tasks")
	cfg = cfg.withDefaults()

	db, err := sql.Open("sqlite3", tasksDSN(mainDBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	// workers plus headroom for Add and Status calls from HTTP handlers
	db.SetMaxOpenConns(cfg.Workers + 4)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &slogAdapter{log: log},
	})
	if err == nil {
		err = client.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue: %w", err)
	}

	return &Client{client: client, db: db, config: cfg, log: log}, nil
}

// Register registers task queues with the client.
// Must be called before Start().
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks. Non-blocking; calling it twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	c.log.Info("Task queue started", "workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires.
// Returns false if some workers were still busy at the deadline.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return true
	}
	c.running = false
	c.mu.Unlock()

	stopped := c.client.Stop(ctx)
	if stopped {
		c.log.Info("Task queue stopped")
	} else {
		c.log.Warn("Task queue stopped before all tasks finished")
	}
	return stopped
}

// Running reports whether workers are processing the queue.
func (c *Client) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Close releases all resources. Should be called after Stop().
func (c *Client) Close() error {
	return c.db.Close()
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// StatusName renders a task status for API and CLI output.
func StatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// slogAdapter implements backlite.Logger on the structured logger.
type slogAdapter struct {
	log *logger.Logger
}

func (l *slogAdapter) Info(message string, params ...any) {
	l.log.Info(message, params...)
}

func (l *slogAdapter) Error(message string, params ...any) {
	l.log.Error(message, params...)
}
