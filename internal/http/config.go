package http

import (
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/tasks"
	"github.com/mrlokans/tradui/internal/translate"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store    PhrasebookStore
	Database Pinger

	// Forced rebuilds; queued through TaskClient when it is set
	Rebuilder  Rebuilder
	TaskClient *tasks.Client

	// Periodic refresh (optional); Sync adds the dataset state to its status
	Scheduler RefreshScheduler
	Sync      SyncState

	// Remote translation (optional)
	Translator translate.Client

	Logger  *logger.Logger
	Version string
}
