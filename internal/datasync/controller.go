// Package datasync decides when the phrasebook store has to be rebuilt and runs the rebuild.
//
// Initialize is the startup gate: a present status row means the store is current and nothing
// is written. Rebuild recreates the schema and reloads every seed document inside one
// transaction, so the status row is only ever committed together with a complete seed.
package datasync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
	"github.com/mrlokans/tradui/internal/seed"
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
)

// StatusReader reads the status row.
type StatusReader interface {
	GetTraduiStatus(ctx context.Context) (*entities.SyncStatus, error)
}

// SchemaRebuilder recreates the tables.
type SchemaRebuilder interface {
	Rebuild(ctx context.Context, exec platform.Executor) error
}

// SeedLoader repopulates the tables.
type SeedLoader interface {
	LoadAll(ctx context.Context, exec platform.Executor) (seed.Counts, error)
}

// Archiver keeps a copy of each completed rebuild report.
type Archiver interface {
	SaveJSON(id string, data any) (string, error)
}

// Report describes one completed rebuild.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Counts    seed.Counts   `json:"counts" yaml:"counts"`
}

type Controller struct {
	db     platform.Adapter
	status StatusReader
	schema SchemaRebuilder
	loader SeedLoader
	log    *logger.Logger

	archive Archiver

	mu    sync.Mutex
	state State
	now   func() time.Time
}

func NewController(db platform.Adapter, status StatusReader, schema SchemaRebuilder, loader SeedLoader, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		db:     db,
		status: status,
		schema: schema,
		loader: loader,
		log:    log.WithComponent("datasync"),
		state:  StateUninitialized,
		now:    time.Now,
	}
}

// SetArchiver records every later rebuild report through archive.
func (c *Controller) SetArchiver(archive Archiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.archive = archive
}

// State returns the state reached by the last Initialize or Rebuild.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Initialize rebuilds the store unless a status row is already present. The returned report
// is nil when no rebuild was needed.
func (c *Controller) Initialize(ctx context.Context) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.status.GetTraduiStatus(ctx)
	if err == nil && status != nil {
		c.state = StateReady
		c.log.Info("Database is current", "last_updated", status.LastUpdated)
		return nil, nil
	}

	c.state = StateUninitialized
	if err != nil {
		c.log.Info("Database needs initialization", "reason", err)
	}
	return c.rebuild(ctx)
}

// Rebuild unconditionally recreates and reseeds the store.
func (c *Controller) Rebuild(ctx context.Context) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuild(ctx)
}

func (c *Controller) rebuild(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: c.now(),
	}
	log := c.log.WithRun(report.RunID)
	log.Info("Rebuilding database", "engine", c.db.Name())

	err := c.db.Transact(ctx, func(tx platform.Executor) error {
		if err := c.schema.Rebuild(ctx, tx); err != nil {
			return err
		}
		counts, err := c.loader.LoadAll(ctx, tx)
		if err != nil {
			return err
		}
		report.Counts = counts
		return nil
	})
	report.Duration = c.now().Sub(report.StartedAt)

	if err != nil {
		log.Error("Database rebuild failed", "error", err, "duration", report.Duration)
		return nil, fmt.Errorf("rebuild database: %w", err)
	}

	c.state = StateReady
	log.Info("Database rebuilt", "rows", report.Counts.Total(), "duration", report.Duration)

	// The rebuild is committed; a failed archive write is only logged.
	if c.archive != nil {
		if _, err := c.archive.SaveJSON(report.RunID, report); err != nil {
			log.Warn("Failed to archive rebuild report", "error", err)
		}
	}
	return report, nil
}
