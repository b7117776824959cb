package config

const (
	// DefaultDatabasePath is the default path for the phrasebook database
	DefaultDatabasePath = "./tradui.db"

	// DefaultDatabaseEngine picks the first linked SQLite driver
	DefaultDatabaseEngine = "auto"

	DefaultTranslateURL = "https://translation.googleapis.com/language/translate/v2"
)

// DatabaseEngines lists the accepted DATABASE_ENGINE values.
var DatabaseEngines = []string{"auto", "sqlx", "sql", "gorm"}
