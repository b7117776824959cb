// Package platform normalizes the embedded SQLite access stacks the application can run on
// behind a single Adapter interface.
//
// # Engines
//
// Three engines are available, each wrapping a different Go API:
//
//	sqlx  jmoiron/sqlx over modernc.org/sqlite (pure Go, driver "sqlite")
//	sql   database/sql over mattn/go-sqlite3 (cgo, driver "sqlite3")
//	gorm  gorm.io/gorm with gorm.io/driver/sqlite
//
// One engine is selected when the handle is opened, either explicitly or by probing the
// registered database/sql drivers ("auto"):
//
//	db, err := platform.Open(ctx, platform.Config{Engine: "auto", Path: "./tradui.db"})
//	if errors.Is(err, platform.ErrAdapterUnavailable) {
//	    // nothing to run on
//	}
//	rows, err := db.Query(ctx, "select title from Category_Translations where language=?", "English")
//
// Rows come back as Row maps regardless of engine; use the typed accessors (Int64, String,
// Time) since the engines disagree on the Go types they return for the same column.
package platform
