package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type SeedSource string

const (
	SeedSourceEmbedded SeedSource = "embedded" // Data set compiled into the binary (default)
	SeedSourceDir      SeedSource = "dir"      // XML files in SEED_DIR
	SeedSourceURL      SeedSource = "url"      // XML files served under SEED_BASE_URL
)

type (
	Config struct {
		HTTP
		Global
		Database
		Seed
		Log
		Tasks
		Refresh
		Translate
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path   string
		Engine string // auto, sqlx, sql, gorm
	}
	Seed struct {
		Source         SeedSource
		Dir            string
		BaseURL        string
		CategoriesFile string
		PhrasesFile    string
		DictionaryFile string
		FetchTimeout   time.Duration
		CacheDir       string // Last good copy of remote documents; empty disables the cache
	}
	Log struct {
		Level  string
		Format string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Refresh struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * 0" = Sundays at 03:00
	}
	Translate struct {
		URL     string
		APIKey  string
		Timeout time.Duration
	}
	Audit struct {
		Dir  string // Rebuild reports are saved here as JSON; empty disables
		Keep int    // Oldest reports beyond this many are removed; 0 keeps all
	}
)

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_engine", DefaultDatabaseEngine)

	// Seed data defaults
	v.SetDefault("seed_source", string(SeedSourceEmbedded))
	v.SetDefault("seed_dir", "./xmldata")
	v.SetDefault("seed_base_url", "")
	v.SetDefault("seed_categories_file", "categories.xml")
	v.SetDefault("seed_phrases_file", "phrases.xml")
	v.SetDefault("seed_dictionary_file", "word_dictionary.xml")
	v.SetDefault("seed_fetch_timeout", "30s")
	v.SetDefault("seed_cache_dir", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("refresh_enabled", false)
	v.SetDefault("refresh_schedule", "0 3 * * 0") // Weekly, Sunday 03:00

	v.SetDefault("translate_url", DefaultTranslateURL)
	v.SetDefault("translate_api_key", "")
	v.SetDefault("translate_timeout", "10s")

	v.SetDefault("audit_dir", "")
	v.SetDefault("audit_keep", 50)
}

// NewConfig reads the configuration from the environment.
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)
	return FromViper(v)
}

// FromViper builds the configuration from an already prepared viper instance, so command
// line flags bound to the same keys take precedence over the environment.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:   v.GetString("DATABASE_PATH"),
			Engine: strings.ToLower(v.GetString("DATABASE_ENGINE")),
		},
		Seed: Seed{
			Source:         SeedSource(strings.ToLower(v.GetString("SEED_SOURCE"))),
			Dir:            v.GetString("SEED_DIR"),
			BaseURL:        v.GetString("SEED_BASE_URL"),
			CategoriesFile: v.GetString("SEED_CATEGORIES_FILE"),
			PhrasesFile:    v.GetString("SEED_PHRASES_FILE"),
			DictionaryFile: v.GetString("SEED_DICTIONARY_FILE"),
			FetchTimeout:   v.GetDuration("SEED_FETCH_TIMEOUT"),
			CacheDir:       v.GetString("SEED_CACHE_DIR"),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Refresh: Refresh{
			Enabled:  v.GetBool("REFRESH_ENABLED"),
			Schedule: v.GetString("REFRESH_SCHEDULE"),
		},
		Translate: Translate{
			URL:     v.GetString("TRANSLATE_URL"),
			APIKey:  v.GetString("TRANSLATE_API_KEY"),
			Timeout: v.GetDuration("TRANSLATE_TIMEOUT"),
		},
		Audit: Audit{
			Dir:  v.GetString("AUDIT_DIR"),
			Keep: v.GetInt("AUDIT_KEEP"),
		},
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errors []string

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", c.HTTP.Port))
	}

	if c.Database.Path == "" {
		errors = append(errors, "DATABASE_PATH cannot be empty")
	}
	if !slices.Contains(DatabaseEngines, c.Database.Engine) {
		errors = append(errors, fmt.Sprintf("DATABASE_ENGINE must be one of: %s, got: %s", strings.Join(DatabaseEngines, ", "), c.Database.Engine))
	}

	switch c.Seed.Source {
	case SeedSourceEmbedded:
	case SeedSourceDir:
		if c.Seed.Dir == "" {
			errors = append(errors, "SEED_DIR cannot be empty when SEED_SOURCE=dir")
		}
	case SeedSourceURL:
		if c.Seed.BaseURL == "" {
			errors = append(errors, "SEED_BASE_URL cannot be empty when SEED_SOURCE=url")
		} else if u, err := url.Parse(c.Seed.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("SEED_BASE_URL is not a valid URL: %s", c.Seed.BaseURL))
		}
	default:
		errors = append(errors, fmt.Sprintf("SEED_SOURCE must be one of: embedded, dir, url, got: %s", c.Seed.Source))
	}
	if c.Seed.CategoriesFile == "" || c.Seed.PhrasesFile == "" || c.Seed.DictionaryFile == "" {
		errors = append(errors, "SEED_CATEGORIES_FILE, SEED_PHRASES_FILE and SEED_DICTIONARY_FILE cannot be empty")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Log.Level] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.Log.Format))
	}

	if c.Tasks.Enabled && c.Tasks.Workers < 1 {
		errors = append(errors, fmt.Sprintf("TASK_WORKERS must be at least 1, got: %d", c.Tasks.Workers))
	}

	if c.Refresh.Enabled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Refresh.Schedule); err != nil {
			errors = append(errors, fmt.Sprintf("REFRESH_SCHEDULE is not a valid cron expression: %s", c.Refresh.Schedule))
		}
	}

	if c.Translate.APIKey != "" {
		if u, err := url.Parse(c.Translate.URL); err != nil || u.Scheme == "" {
			errors = append(errors, fmt.Sprintf("TRANSLATE_URL is not a valid URL: %s", c.Translate.URL))
		}
	}

	if c.Audit.Keep < 0 {
		errors = append(errors, fmt.Sprintf("AUDIT_KEEP cannot be negative, got: %d", c.Audit.Keep))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
