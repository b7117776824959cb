package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/tradui/internal/datasync"
	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/entrypoint"
	"github.com/mrlokans/tradui/internal/logger"
)

// session is one command invocation against an open store.
type session struct {
	ctx  context.Context
	core *entrypoint.Core
	out  *OutputFormatter
	log  *logger.Logger
}

// run opens the store, initializes it when initialize is set, and hands it to fn.
func run(cmd *cobra.Command, opts *RootOptions, initialize bool, fn func(s *session) error) error {
	cfg := opts.Config()
	if err := cfg.Validate(); err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	s := &session{
		ctx: cmd.Context(),
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
		log: log,
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	core, err := entrypoint.Open(s.ctx, cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()
	s.core = core

	s.out.VerboseLog("Using %s engine on %s", core.DB.Adapter.Name(), cfg.Database.Path)

	if initialize {
		report, err := core.Initialize(s.ctx)
		if err != nil {
			return err
		}
		if report != nil {
			s.out.VerboseLog("Seeded %d rows (run %s)", report.Counts.Total(), report.RunID)
		}
	}

	return fn(s)
}

func parseLanguageArg(raw string) (entities.Language, error) {
	lang, err := entities.ParseLanguage(raw)
	if err != nil {
		return "", NewExitError(ExitCommandError, err.Error())
	}
	return lang, nil
}

func parseIDArg(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}

// printReport renders the outcome of init or rebuild. A nil report means nothing was done.
func printReport(s *session, report *datasync.Report) error {
	if report == nil {
		status, err := s.core.Repo.GetTraduiStatus(s.ctx)
		if err != nil {
			return err
		}
		return s.out.Print(status, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Database is up to date (last updated %s)\n", formatTime(status))
			return err
		})
	}

	return s.out.Print(report, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Database rebuilt in %s: %d categories, %d phrases, %d dictionary entries (run %s)\n",
			report.Duration.Round(time.Millisecond), report.Counts.Categories, report.Counts.Phrases,
			report.Counts.DictionaryEntries, report.RunID)
		return err
	})
}

func formatTime(status *entities.SyncStatus) string {
	return status.LastUpdated.Local().Format(time.RFC3339)
}
