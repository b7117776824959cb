// Command generate_db builds a prebuilt phrasebook database for `tradui install`.
// Usage: go run cmd/generate_db/main.go [-db path/to/tradui.db] [-seed path/to/xmldata]
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/mrlokans/tradui/internal/config"
	"github.com/mrlokans/tradui/internal/entrypoint"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
)

const defaultPrebuiltDatabasePath = "./dist/tradui.db"

func main() {
	dbPath := flag.String("db", defaultPrebuiltDatabasePath, "path to the generated database file")
	seedDir := flag.String("seed", "", "directory with seed XML files (default: the embedded data set)")
	engine := flag.String("engine", platform.EngineSQL, "database engine used to write the file")
	flag.Parse()

	log := logger.Default()
	log.Info("Generating database", "path", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing database", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	cfg := config.NewConfig()
	cfg.Database.Path = *dbPath
	cfg.Database.Engine = *engine
	if *seedDir != "" {
		cfg.Seed.Source = config.SeedSourceDir
		cfg.Seed.Dir = *seedDir
	} else {
		cfg.Seed.Source = config.SeedSourceEmbedded
	}

	ctx := context.Background()
	core, err := entrypoint.Open(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to create database", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	report, err := core.Controller.Rebuild(ctx)
	if err != nil {
		platform.AlertFatal(platform.LogAlerter{Logger: log}, err)
		log.Error("Failed to seed database", "error", err)
		core.Close()
		os.Exit(1)
	}

	log.Info("Database generated successfully",
		"categories", report.Counts.Categories,
		"phrases", report.Counts.Phrases,
		"dictionary_entries", report.Counts.DictionaryEntries)
}
