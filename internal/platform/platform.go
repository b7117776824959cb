package platform

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/tradui/internal/logger"
)

// Engine names accepted by Open.
const (
	EngineAuto = "auto"
	EngineSQLX = "sqlx"
	EngineSQL  = "sql"
	EngineGorm = "gorm"
)

// Executor runs statements. Both an open handle and a transaction satisfy it.
type Executor interface {
	// Execute runs a statement that returns no rows.
	Execute(ctx context.Context, query string, args ...any) error
	// Query runs a statement and materializes every row.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
}

// Adapter is an open database handle on one engine.
type Adapter interface {
	Executor

	// Name returns the engine name.
	Name() string
	// Transact runs fn inside a transaction, committing when fn returns nil.
	Transact(ctx context.Context, fn func(tx Executor) error) error
	// Install replaces the database contents with a prebuilt database file.
	Install(ctx context.Context, srcPath string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and configures the engine.
type Config struct {
	Engine string
	Path   string
	Logger *logger.Logger
}

type driverChoice struct {
	driver string
	engine string
}

// driverPreference lists the drivers checked by the auto engine, most preferred first.
var driverPreference = []driverChoice{
	{driver: "sqlite", engine: EngineSQLX},
	{driver: "sqlite3", engine: EngineSQL},
}

// Open selects an engine and opens the database at cfg.Path.
func Open(ctx context.Context, cfg Config) (Adapter, error) {
	engine, err := resolveEngine(cfg.Engine, sql.Drivers())
	if err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("open %s engine: empty database path", engine)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	var a Adapter
	switch engine {
	case EngineSQLX:
		a, err = openSQLX(cfg)
	case EngineSQL:
		a, err = openSQL(cfg)
	case EngineGorm:
		a, err = openGorm(cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := a.Ping(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("ping %s engine: %w", engine, err)
	}

	cfg.Logger.Debug("database opened", "engine", engine, "path", cfg.Path)
	return a, nil
}

func resolveEngine(name string, drivers []string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineAuto:
		for _, p := range driverPreference {
			if slices.Contains(drivers, p.driver) {
				return p.engine, nil
			}
		}
		return "", ErrAdapterUnavailable
	case EngineSQLX:
		return EngineSQLX, nil
	case EngineSQL:
		return EngineSQL, nil
	case EngineGorm:
		return EngineGorm, nil
	default:
		return "", fmt.Errorf("%w: unknown engine %q", ErrAdapterUnavailable, name)
	}
}

// Engines returns the engine names that can be passed to Open explicitly.
func Engines() []string {
	return []string{EngineSQLX, EngineSQL, EngineGorm}
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, "file::memory:")
}
