package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tradui/internal/audit"
	"github.com/mrlokans/tradui/internal/config"
	"github.com/mrlokans/tradui/internal/database"
	"github.com/mrlokans/tradui/internal/database/phrasebook"
	"github.com/mrlokans/tradui/internal/datasync"
	http_controllers "github.com/mrlokans/tradui/internal/http"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
	"github.com/mrlokans/tradui/internal/scheduler"
	"github.com/mrlokans/tradui/internal/seed"
	"github.com/mrlokans/tradui/internal/tasks"
	"github.com/mrlokans/tradui/internal/translate"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Core is the phrasebook store together with what keeps it seeded.
type Core struct {
	Config     *config.Config
	Log        *logger.Logger
	DB         *database.Database
	Repo       *phrasebook.Repository
	Loader     *seed.Loader
	Controller *datasync.Controller
	Archive    *audit.Auditor // nil unless AUDIT_DIR is set
}

// NewLogger builds the application logger from the LOG_* settings.
func NewLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// SeedFiles returns the configured seed document names.
func SeedFiles(cfg *config.Config) seed.Files {
	return seed.Files{
		Categories: cfg.Seed.CategoriesFile,
		Phrases:    cfg.Seed.PhrasesFile,
		Dictionary: cfg.Seed.DictionaryFile,
	}.WithDefaults()
}

// NewSeedSource picks where the seed documents are read from. Remote documents are cached
// in SEED_CACHE_DIR when it is set.
func NewSeedSource(cfg *config.Config, log *logger.Logger) (seed.Source, error) {
	switch cfg.Seed.Source {
	case config.SeedSourceEmbedded, "":
		return seed.Embedded(), nil
	case config.SeedSourceDir:
		return seed.Dir(cfg.Seed.Dir), nil
	case config.SeedSourceURL:
		remote := seed.NewHTTPSource(cfg.Seed.BaseURL, cfg.Seed.FetchTimeout)
		if cfg.Seed.CacheDir == "" {
			return remote, nil
		}
		return seed.NewCachedSource(remote, cfg.Seed.CacheDir, SeedFiles(cfg).Validate, log)
	default:
		return nil, fmt.Errorf("unknown seed source %q", cfg.Seed.Source)
	}
}

// Open opens the database and wires the query, seed and sync components over it.
// The store is not initialized; call Initialize before serving queries.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Core, error) {
	if log == nil {
		log = NewLogger(cfg)
	}

	source, err := NewSeedSource(cfg, log)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(ctx, platform.Config{
		Engine: cfg.Database.Engine,
		Path:   cfg.Database.Path,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	repo := phrasebook.NewRepository(db.Adapter)
	loader := seed.NewLoader(source, SeedFiles(cfg), log)

	controller := datasync.NewController(db.Adapter, repo, db.Schema, loader, log)
	var archive *audit.Auditor
	if cfg.Audit.Dir != "" {
		archive = audit.NewAuditor(cfg.Audit.Dir, cfg.Audit.Keep)
		controller.SetArchiver(archive)
	}

	return &Core{
		Config:     cfg,
		Log:        log,
		DB:         db,
		Repo:       repo,
		Loader:     loader,
		Controller: controller,
		Archive:    archive,
	}, nil
}

// Initialize seeds the store when it has no status row yet.
func (c *Core) Initialize(ctx context.Context) (*datasync.Report, error) {
	return c.Controller.Initialize(ctx)
}

func (c *Core) Close() error {
	return c.DB.Close()
}

// NewTranslator returns the remote translation client. Without TRANSLATE_API_KEY every call
// fails with translate.ErrNotConfigured.
func NewTranslator(cfg *config.Config) translate.Client {
	return translate.NewGoogleClient(translate.Config{
		BaseURL: cfg.Translate.URL,
		APIKey:  cfg.Translate.APIKey,
		Timeout: cfg.Translate.Timeout,
	})
}

func Serve(router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run initializes the store and serves the HTTP API until interrupted. A fatal user error
// during initialization is alerted and the server does not start.
func Run(cfg *config.Config, version string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := NewLogger(cfg)
	log.Info("Starting Tradui", "version", version)

	ctx := context.Background()

	core, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := core.Close(); err != nil {
			log.Error("Error closing database", "error", err)
		}
	}()

	report, err := core.Initialize(ctx)
	if err != nil {
		platform.AlertFatal(platform.LogAlerter{Logger: log}, err)
		return err
	}
	if report != nil {
		log.Info("Database seeded", "run_id", report.RunID, "rows", report.Counts.Total())
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewRebuildDatabaseQueue(core.Controller, log))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	refresh := newRefreshFunc(core.Controller, taskClient)
	refreshScheduler := scheduler.NewRefreshScheduler(refresh, scheduler.RefreshConfig{
		Enabled:  cfg.Refresh.Enabled,
		Schedule: cfg.Refresh.Schedule,
	}, log)
	if err := refreshScheduler.Start(ctx); err != nil {
		return err
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:      core.Repo,
		Database:   core.DB.Adapter,
		Rebuilder:  core.Controller,
		TaskClient: taskClient,
		Scheduler:  refreshScheduler,
		Sync:       core.Controller,
		Translator: NewTranslator(cfg),
		Logger:     log,
		Version:    version,
	})

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		refreshScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, log, onShutdown)
}

// newRefreshFunc enqueues a rebuild when the task queue runs, and rebuilds in place otherwise.
func newRefreshFunc(controller *datasync.Controller, taskClient *tasks.Client) scheduler.RefreshFunc {
	if taskClient == nil {
		return func(ctx context.Context) error {
			_, err := controller.Rebuild(ctx)
			return err
		}
	}
	return func(ctx context.Context) error {
		_, err := taskClient.EnqueueRebuild(ctx, "scheduled")
		return err
	}
}
