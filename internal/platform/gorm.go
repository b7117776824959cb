package platform

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/tradui/internal/logger"
)

type gormAdapter struct {
	db  *gorm.DB
	log *logger.Logger
}

type gormExecutor struct {
	db *gorm.DB
}

func openGorm(cfg Config) (*gormAdapter, error) {
	dsn := cfg.Path
	if !isMemoryPath(cfg.Path) {
		dsn = cfg.Path + "?_busy_timeout=5000"
	}

	logLevel := gormlogger.Silent
	if cfg.Logger.Level() <= slog.LevelDebug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm engine: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open gorm engine: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &gormAdapter{db: db, log: cfg.Logger.WithComponent("platform.gorm")}, nil
}

func (a *gormAdapter) Name() string {
	return EngineGorm
}

func (a *gormAdapter) Execute(ctx context.Context, query string, args ...any) error {
	return (&gormExecutor{db: a.db}).Execute(ctx, query, args...)
}

func (a *gormAdapter) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	return (&gormExecutor{db: a.db}).Query(ctx, query, args...)
}

func (a *gormAdapter) Transact(ctx context.Context, fn func(tx Executor) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormExecutor{db: tx})
	})
}

func (a *gormAdapter) Install(ctx context.Context, srcPath string) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("install: %w", err)
	}
	a.log.Info("installing database", "source", srcPath)
	return backupFrom(ctx, EngineGorm, sqlDB, srcPath)
}

func (a *gormAdapter) Ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *gormAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (e *gormExecutor) Execute(ctx context.Context, query string, args ...any) error {
	if err := e.db.WithContext(ctx).Exec(query, args...).Error; err != nil {
		return &QueryError{Engine: EngineGorm, Op: "execute", Query: query, Err: err}
	}
	return nil
}

func (e *gormExecutor) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	var found []map[string]any
	if err := e.db.WithContext(ctx).Raw(query, args...).Scan(&found).Error; err != nil {
		return nil, &QueryError{Engine: EngineGorm, Op: "query", Query: query, Err: err}
	}

	result := make([]Row, 0, len(found))
	for _, m := range found {
		row := make(Row, len(m))
		for k, v := range m {
			row[k] = normalizeValue(v)
		}
		result = append(result, row)
	}
	return result, nil
}
