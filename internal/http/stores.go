package http

import (
	"context"
	"time"

	"github.com/mrlokans/tradui/internal/datasync"
	"github.com/mrlokans/tradui/internal/entities"
)

// StatusSource reads the dataset status row.
type StatusSource interface {
	GetTraduiStatus(ctx context.Context) (*entities.SyncStatus, error)
}

// PhrasebookStore is the read side used by PhrasebookController.
type PhrasebookStore interface {
	StatusSource
	GetLanguages(ctx context.Context) ([]entities.Language, error)
	GetCategoryCount(ctx context.Context, categoryID int64) (int64, error)
	GetCategories(ctx context.Context, language entities.Language) ([]entities.CategorySummary, error)
	GetPhrases(ctx context.Context, language entities.Language, categoryID int64) ([]entities.PhraseSummary, error)
	GetPhraseDetails(ctx context.Context, language entities.Language, phraseID int64) ([]entities.PhraseDetail, error)
	GetDictionary(ctx context.Context, word string, sourceLang, destLang entities.Language) ([]entities.DictionaryEntry, error)
	SearchDictionary(ctx context.Context, prefix string, sourceLang, destLang entities.Language) ([]entities.DictionaryEntry, error)
}

// Rebuilder runs a forced rebuild in the request goroutine.
type Rebuilder interface {
	Rebuild(ctx context.Context) (*datasync.Report, error)
}

// Pinger reports database connectivity for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

// RefreshScheduler is the periodic refresh as seen by the admin endpoints.
type RefreshScheduler interface {
	RunNow()
	IsRunning() bool
	IsRefreshing() bool
	LastRun() (*time.Time, error)
	GetNextRunTime() *time.Time
}

// SyncState reports whether the dataset has been seeded.
type SyncState interface {
	State() datasync.State
}

// QueueState reports whether task workers are running.
type QueueState interface {
	Running() bool
}
