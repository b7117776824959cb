package database

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tradui/internal/platform"
)

type recordingExec struct {
	statements []string
	failOn     string
}

func (r *recordingExec) Execute(_ context.Context, query string, _ ...any) error {
	r.statements = append(r.statements, query)
	if r.failOn != "" && strings.Contains(query, r.failOn) {
		return errors.New("disk I/O error")
	}
	return nil
}

func (r *recordingExec) Query(context.Context, string, ...any) ([]platform.Row, error) {
	return nil, nil
}

func TestSchema_RebuildOrder(t *testing.T) {
	exec := &recordingExec{}
	schema := NewSchema()

	require.NoError(t, schema.Rebuild(context.Background(), exec))
	require.Len(t, exec.statements, 6+6+5+1)

	for i, table := range Tables {
		assert.Equal(t, "drop table if exists "+table, exec.statements[i])
	}
	for i := 6; i < 12; i++ {
		assert.True(t, strings.HasPrefix(exec.statements[i], "create table "), exec.statements[i])
	}
	for i := 12; i < 17; i++ {
		assert.True(t, strings.HasPrefix(exec.statements[i], "create index "), exec.statements[i])
	}
	assert.Equal(t, insertStatus, exec.statements[17])
}

func TestSchema_RebuildStopsAtFailure(t *testing.T) {
	exec := &recordingExec{failOn: "create table Phrases"}

	err := NewSchema().Rebuild(context.Background(), exec)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Statement, "create table Phrases")
	assert.Equal(t, "create table Phrases (categoryId number, phraseId number, imgFile varchar(255))", exec.statements[len(exec.statements)-1])
}

func TestSchema_RebuildOnEngines(t *testing.T) {
	stamp := time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)

	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			ctx := context.Background()
			db, err := NewDatabase(ctx, platform.Config{Engine: engine, Path: filepath.Join(t.TempDir(), "tradui.db")})
			require.NoError(t, err)
			defer db.Close()

			db.Schema.Clock = func() time.Time { return stamp }

			// Twice: the second run must drop what the first created.
			for range 2 {
				require.NoError(t, db.Adapter.Transact(ctx, func(tx platform.Executor) error {
					return db.Schema.Rebuild(ctx, tx)
				}))
			}

			rows, err := db.Adapter.Query(ctx, "select lastUpdated from Tradui_Status")
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, stamp.UnixMilli(), rows[0].Time("lastUpdated").UnixMilli())

			indexes, err := db.Adapter.Query(ctx, "select name from sqlite_master where type = 'index' order by name")
			require.NoError(t, err)
			var names []string
			for _, row := range indexes {
				names = append(names, row.String("name"))
			}
			assert.Equal(t, []string{"c_idx_001", "ct_idx_001", "d_idx_001", "p_idx_002", "pt_idx_001"}, names)
		})
	}
}

func TestDatabase_InstallUnsupportedEngine(t *testing.T) {
	ctx := context.Background()
	db, err := NewDatabase(ctx, platform.Config{Engine: platform.EngineSQLX, Path: filepath.Join(t.TempDir(), "tradui.db")})
	require.NoError(t, err)
	defer db.Close()

	err = db.Install(ctx, filepath.Join(t.TempDir(), "prebuilt.db"))
	assert.True(t, platform.IsFatal(err))
}

func TestNewDatabase_UnknownEngine(t *testing.T) {
	_, err := NewDatabase(context.Background(), platform.Config{Engine: "webstorage", Path: "x.db"})
	assert.ErrorIs(t, err, platform.ErrAdapterUnavailable)
}
