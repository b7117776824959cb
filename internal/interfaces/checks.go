package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/tradui/internal/audit"
	"github.com/mrlokans/tradui/internal/database"
	"github.com/mrlokans/tradui/internal/database/phrasebook"
	"github.com/mrlokans/tradui/internal/datasync"
	"github.com/mrlokans/tradui/internal/http"
	"github.com/mrlokans/tradui/internal/platform"
	"github.com/mrlokans/tradui/internal/scheduler"
	"github.com/mrlokans/tradui/internal/seed"
	"github.com/mrlokans/tradui/internal/tasks"
	"github.com/mrlokans/tradui/internal/translate"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// PhrasebookStore implementations
var _ http.PhrasebookStore = (*phrasebook.Repository)(nil)

// Health check targets
var _ http.Pinger = (platform.Adapter)(nil)
var _ http.StatusSource = (*phrasebook.Repository)(nil)

// =============================================================================
// Rebuild Pipeline
// =============================================================================

var _ datasync.StatusReader = (*phrasebook.Repository)(nil)
var _ datasync.SchemaRebuilder = (*database.Schema)(nil)
var _ datasync.SeedLoader = (*seed.Loader)(nil)

// Rebuilder implementations
var _ tasks.Rebuilder = (*datasync.Controller)(nil)
var _ http.Rebuilder = (*datasync.Controller)(nil)

// Admin refresh endpoints
var _ http.RefreshScheduler = (*scheduler.RefreshScheduler)(nil)
var _ http.SyncState = (*datasync.Controller)(nil)
var _ http.QueueState = (*tasks.Client)(nil)

// Rebuild report archive
var _ datasync.Archiver = (*audit.Auditor)(nil)

// Seed sources
var _ seed.Source = (*seed.FSSource)(nil)
var _ seed.Source = (*seed.HTTPSource)(nil)
var _ seed.Source = (*seed.CachedSource)(nil)

// =============================================================================
// External Services
// =============================================================================

// Translation client implementations
var _ translate.Client = (*translate.GoogleClient)(nil)

// Alerters
var _ platform.Alerter = platform.LogAlerter{}
var _ platform.Alerter = (*platform.WriterAlerter)(nil)
