package database

import (
	"context"
	"fmt"

	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
)

// Database owns the open platform adapter and the schema manager for it.
type Database struct {
	Adapter platform.Adapter
	Schema  *Schema
	log     *logger.Logger
}

// NewDatabase opens the configured engine. The schema is not touched; see datasync.
func NewDatabase(ctx context.Context, cfg platform.Config) (*Database, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	adapter, err := platform.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	cfg.Logger.Info("Database opened", "engine", adapter.Name(), "path", cfg.Path)

	return &Database{
		Adapter: adapter,
		Schema:  NewSchema(),
		log:     cfg.Logger.WithComponent("database"),
	}, nil
}

// Install replaces the database with a prebuilt file.
func (d *Database) Install(ctx context.Context, srcPath string) error {
	if err := d.Adapter.Install(ctx, srcPath); err != nil {
		return err
	}
	d.log.Info("Database installed", "source", srcPath)
	return nil
}

func (d *Database) Close() error {
	return d.Adapter.Close()
}
