package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/tradui/internal/logger"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// RefreshFunc performs one forced refresh: a direct rebuild or an enqueued rebuild task.
type RefreshFunc func(ctx context.Context) error

// RefreshConfig controls the periodic refresh.
type RefreshConfig struct {
	Enabled  bool
	Schedule string
	// Timeout bounds a single refresh. Default: 10m
	Timeout time.Duration
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// RefreshScheduler periodically reseeds the phrasebook from its seed source.
type RefreshScheduler struct {
	refresh RefreshFunc
	config  RefreshConfig
	log     *logger.Logger

	cron         *cron.Cron
	entryID      cron.EntryID
	mu           sync.RWMutex
	isRunning    bool
	isRefreshing bool
	lastRun      *time.Time
	lastErr      error
	cancelFunc   context.CancelFunc
}

func NewRefreshScheduler(refresh RefreshFunc, config RefreshConfig, log *logger.Logger) *RefreshScheduler {
	if log == nil {
		log = logger.Discard()
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Minute
	}
	return &RefreshScheduler{
		refresh: refresh,
		config:  config,
		log:     log.WithComponent("scheduler"),
		cron:    cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if refresh is enabled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		s.log.Info("Refresh scheduler disabled")
		return nil
	}

	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runRefresh)
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Refresh scheduler started", "schedule", s.config.Schedule, "next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running refresh and stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// Outside the lock: a running job takes it to record its result.
	<-s.cron.Stop().Done()
	if cancel != nil {
		cancel()
	}

	s.log.Info("Refresh scheduler stopped")
}

// RunNow triggers an immediate refresh in the background.
func (s *RefreshScheduler) RunNow() {
	go s.runRefresh()
}

// IsRunning returns whether the scheduler is active.
func (s *RefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsRefreshing returns whether a refresh is in progress.
func (s *RefreshScheduler) IsRefreshing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRefreshing
}

// LastRun returns when the last refresh finished and its error.
func (s *RefreshScheduler) LastRun() (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

// GetNextRunTime returns when the next refresh will occur.
func (s *RefreshScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *RefreshScheduler) runRefresh() {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		s.log.Info("Refresh skipped, already refreshing")
		return
	}
	s.isRefreshing = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	start := time.Now()
	err := s.refresh(ctx)
	finished := time.Now()

	s.mu.Lock()
	s.isRefreshing = false
	s.lastRun = &finished
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Error("Scheduled refresh failed", "error", err)
		return
	}
	s.log.Info("Scheduled refresh finished", "duration", finished.Sub(start).Round(time.Millisecond))
}
