package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/tradui/internal/platform"
)

// SchemaError reports the statement that stopped a rebuild.
type SchemaError struct {
	Statement string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema statement failed: %s: %v", e.Statement, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Tables lists the phrasebook tables in creation order.
var Tables = []string{
	"Tradui_Status",
	"Categories",
	"Category_Translations",
	"Phrases",
	"Phrase_Translations",
	"Dictionary",
}

var createTables = []string{
	"create table Tradui_Status (lastUpdated timestamp)",
	"create table Categories (categoryId number, imgFile varchar(255))",
	"create table Category_Translations (categoryId number, language varchar(32), title varchar(255), audioFile varchar(255))",
	"create table Phrases (categoryId number, phraseId number, imgFile varchar(255))",
	"create table Phrase_Translations (phraseId number, language varchar(32), text varchar(255), audioFile varchar(255))",
	"create table Dictionary (sourceWord varchar(128), destWord varchar(128), sourceLang varchar(32), destLang varchar(32))",
}

var createIndexes = []string{
	"create index c_idx_001 on Categories (categoryId)",
	"create index ct_idx_001 on Category_Translations (categoryId, language)",
	"create index p_idx_002 on Phrases (phraseId, categoryId)",
	"create index pt_idx_001 on Phrase_Translations (phraseId, language)",
	"create index d_idx_001 on Dictionary (sourceWord, sourceLang)",
}

const insertStatus = "insert into Tradui_Status (lastUpdated) values (?)"

// Schema drops and recreates the phrasebook tables.
type Schema struct {
	// Clock stamps the status row; defaults to time.Now.
	Clock func() time.Time
}

func NewSchema() *Schema {
	return &Schema{Clock: time.Now}
}

// Rebuild drops every table, recreates the tables and indexes, then writes a fresh status row.
// It stops at the first failing statement.
func (s *Schema) Rebuild(ctx context.Context, exec platform.Executor) error {
	for _, table := range Tables {
		if err := run(ctx, exec, "drop table if exists "+table); err != nil {
			return err
		}
	}
	for _, stmt := range createTables {
		if err := run(ctx, exec, stmt); err != nil {
			return err
		}
	}
	for _, stmt := range createIndexes {
		if err := run(ctx, exec, stmt); err != nil {
			return err
		}
	}

	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	return run(ctx, exec, insertStatus, clock().UnixMilli())
}

func run(ctx context.Context, exec platform.Executor, stmt string, args ...any) error {
	if err := exec.Execute(ctx, stmt, args...); err != nil {
		return &SchemaError{Statement: stmt, Err: err}
	}
	return nil
}
