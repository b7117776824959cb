package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-sqlite3"

	"github.com/mrlokans/tradui/internal/logger"
)

type queryExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type sqlAdapter struct {
	db  *sql.DB
	log *logger.Logger
}

type sqlExecutor struct {
	engine string
	q      queryExecer
}

func openSQL(cfg Config) (*sqlAdapter, error) {
	dsn := cfg.Path
	if !isMemoryPath(cfg.Path) {
		dsn = cfg.Path + "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sql engine: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &sqlAdapter{db: db, log: cfg.Logger.WithComponent("platform.sql")}, nil
}

func (a *sqlAdapter) Name() string {
	return EngineSQL
}

func (a *sqlAdapter) Execute(ctx context.Context, query string, args ...any) error {
	return (&sqlExecutor{engine: EngineSQL, q: a.db}).Execute(ctx, query, args...)
}

func (a *sqlAdapter) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	return (&sqlExecutor{engine: EngineSQL, q: a.db}).Query(ctx, query, args...)
}

func (a *sqlAdapter) Transact(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return &QueryError{Engine: EngineSQL, Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&sqlExecutor{engine: EngineSQL, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &QueryError{Engine: EngineSQL, Op: "commit", Err: err}
	}
	return nil
}

func (a *sqlAdapter) Install(ctx context.Context, srcPath string) error {
	a.log.Info("installing database", "source", srcPath)
	return backupFrom(ctx, EngineSQL, a.db, srcPath)
}

func (a *sqlAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *sqlAdapter) Close() error {
	return a.db.Close()
}

func (e *sqlExecutor) Execute(ctx context.Context, query string, args ...any) error {
	if _, err := e.q.ExecContext(ctx, query, args...); err != nil {
		return &QueryError{Engine: e.engine, Op: "execute", Query: query, Err: err}
	}
	return nil
}

func (e *sqlExecutor) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := e.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Engine: e.engine, Op: "query", Query: query, Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{Engine: e.engine, Op: "query", Query: query, Err: err}
	}
	return result, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// backupFrom copies every page of the SQLite file at srcPath over the database behind dst
// using the online backup API of the mattn driver.
func backupFrom(ctx context.Context, engine string, dst *sql.DB, srcPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return &FatalUserError{Op: "install", Message: fmt.Sprintf("cannot read database file %s", srcPath), Err: err}
	}
	if info.IsDir() {
		return &FatalUserError{Op: "install", Message: fmt.Sprintf("%s is a directory", srcPath)}
	}

	src, err := sql.Open("sqlite3", "file:"+srcPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open install source: %w", err)
	}
	defer src.Close()

	srcConn, err := src.Conn(ctx)
	if err != nil {
		return &FatalUserError{Op: "install", Message: fmt.Sprintf("cannot open database file %s", srcPath), Err: err}
	}
	defer srcConn.Close()

	dstConn, err := dst.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire destination connection: %w", err)
	}
	defer dstConn.Close()

	err = dstConn.Raw(func(dstDriver any) error {
		to, ok := dstDriver.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unexpected destination connection %T", dstDriver)
		}
		return srcConn.Raw(func(srcDriver any) error {
			from, ok := srcDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected source connection %T", srcDriver)
			}

			backup, err := to.Backup("main", from, "main")
			if err != nil {
				return err
			}
			if _, err := backup.Step(-1); err != nil {
				return errors.Join(err, backup.Finish())
			}
			return backup.Finish()
		})
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrNotADB {
			return &FatalUserError{Op: "install", Message: fmt.Sprintf("%s is not a database file", srcPath), Err: err}
		}
		return &QueryError{Engine: engine, Op: "install", Err: err}
	}
	return nil
}
