package platform

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mrlokans/tradui/internal/logger"
)

type sqlxAdapter struct {
	db  *sqlx.DB
	log *logger.Logger
}

type sqlxExecutor struct {
	ext sqlx.ExtContext
}

func openSQLX(cfg Config) (*sqlxAdapter, error) {
	dsn := cfg.Path
	if !isMemoryPath(cfg.Path) {
		dsn = cfg.Path + "?_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlx engine: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &sqlxAdapter{db: db, log: cfg.Logger.WithComponent("platform.sqlx")}, nil
}

func (a *sqlxAdapter) Name() string {
	return EngineSQLX
}

func (a *sqlxAdapter) Execute(ctx context.Context, query string, args ...any) error {
	return (&sqlxExecutor{ext: a.db}).Execute(ctx, query, args...)
}

func (a *sqlxAdapter) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	return (&sqlxExecutor{ext: a.db}).Query(ctx, query, args...)
}

func (a *sqlxAdapter) Transact(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return &QueryError{Engine: EngineSQLX, Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&sqlxExecutor{ext: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &QueryError{Engine: EngineSQLX, Op: "commit", Err: err}
	}
	return nil
}

// Install is not available: the pure Go driver exposes no online backup API.
func (a *sqlxAdapter) Install(_ context.Context, srcPath string) error {
	a.log.Warn("install requested on unsupported engine", "source", srcPath)
	return &FatalUserError{Op: "install", Message: "install is not supported by the sqlx engine"}
}

func (a *sqlxAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *sqlxAdapter) Close() error {
	return a.db.Close()
}

func (e *sqlxExecutor) Execute(ctx context.Context, query string, args ...any) error {
	if _, err := e.ext.ExecContext(ctx, query, args...); err != nil {
		return &QueryError{Engine: EngineSQLX, Op: "execute", Query: query, Err: err}
	}
	return nil
}

func (e *sqlxExecutor) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := e.ext.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Engine: EngineSQLX, Op: "query", Query: query, Err: err}
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, &QueryError{Engine: EngineSQLX, Op: "query", Query: query, Err: err}
		}
		row := make(Row, len(m))
		for k, v := range m {
			row[k] = normalizeValue(v)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Engine: EngineSQLX, Op: "query", Query: query, Err: err}
	}
	return result, nil
}
