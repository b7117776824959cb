package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/tradui/internal/database"
	"github.com/mrlokans/tradui/internal/database/phrasebook"
	"github.com/mrlokans/tradui/internal/datasync"
	"github.com/mrlokans/tradui/internal/platform"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create and seed the database unless it is already current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rootOpts, false, func(s *session) error {
				report, err := s.core.Initialize(s.ctx)
				if err != nil {
					return err
				}
				return printReport(s, report)
			})
		},
	}
}

// NewRebuildCommand creates the rebuild command.
func NewRebuildCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Drop every table and reseed from the seed documents",
		Long: `Drop every table and reseed from the seed documents.

The rebuild runs in a single transaction: when any seed document is missing or
malformed the previous data is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rootOpts, false, func(s *session) error {
				report, err := s.core.Controller.Rebuild(s.ctx)
				if err != nil {
					return err
				}
				return printReport(s, report)
			})
		},
	}
}

// NewInstallCommand creates the install command.
func NewInstallCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install <file>",
		Short: "Replace the database with a prebuilt SQLite file",
		Long: `Replace the database with a prebuilt SQLite file.

Requires the sql or gorm engine. The installed file is used as is when it carries
a status row, and reseeded otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rootOpts, false, func(s *session) error {
				if err := s.core.DB.Install(s.ctx, args[0]); err != nil {
					return err
				}
				s.out.VerboseLog("Installed %s", args[0])

				report, err := s.core.Initialize(s.ctx)
				if err != nil {
					return err
				}
				return printReport(s, report)
			})
		},
	}
}

// StatusView is the status command output.
type StatusView struct {
	LastUpdated time.Time        `json:"last_updated" yaml:"last_updated"`
	Engine      string           `json:"engine" yaml:"engine"`
	Rows        map[string]int64 `json:"rows" yaml:"rows"`
}

// countRows counts every phrasebook table, one query per table in parallel.
func countRows(ctx context.Context, exec platform.Executor) (map[string]int64, error) {
	var (
		mu     sync.Mutex
		counts = make(map[string]int64, len(database.Tables))
		errs   []error
	)

	pending := make([]<-chan struct{}, 0, len(database.Tables))
	for _, table := range database.Tables {
		done := platform.SelectAsync(ctx, exec, "select count(*) as n from "+table, nil,
			func(rows []platform.Row) {
				mu.Lock()
				defer mu.Unlock()
				if len(rows) > 0 {
					counts[table] = rows[0].Int64("n")
				}
			},
			func(err error) {
				mu.Lock()
				defer mu.Unlock()
				errs = append(errs, fmt.Errorf("count %s: %w", table, err))
			})
		pending = append(pending, done)
	}
	for _, done := range pending {
		<-done
	}
	return counts, errors.Join(errs...)
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show when the database was last rebuilt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rootOpts, false, func(s *session) error {
				status, err := s.core.Repo.GetTraduiStatus(s.ctx)
				if errors.Is(err, phrasebook.ErrNotFound) {
					return NewExitError(ExitFailure, "database has not been initialized; run 'tradui init'")
				}
				if err != nil {
					return err
				}
				rows, err := countRows(s.ctx, s.core.DB.Adapter)
				if err != nil {
					return err
				}
				view := StatusView{LastUpdated: status.LastUpdated, Engine: s.core.DB.Adapter.Name(), Rows: rows}
				return s.out.Print(view, func(w io.Writer) error {
					fmt.Fprintf(w, "Last updated: %s\nEngine: %s\nRows:\n", formatTime(status), view.Engine)
					for _, table := range database.Tables {
						fmt.Fprintf(w, "  %-22s %d\n", table, rows[table])
					}
					return nil
				})
			})
		},
	}
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived rebuild reports, newest first",
		Long: `List archived rebuild reports, newest first.

Reports are archived only when AUDIT_DIR is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return NewExitError(ExitCommandError, "--limit must be at least 1")
			}
			return run(cmd, rootOpts, false, func(s *session) error {
				if s.core.Archive == nil {
					return NewExitError(ExitFailure, "rebuild history is disabled; set AUDIT_DIR")
				}
				records, err := s.core.Archive.List()
				if err != nil {
					return err
				}

				reports := make([]datasync.Report, 0, min(limit, len(records)))
				for _, r := range records[:min(limit, len(records))] {
					var report datasync.Report
					if err := s.core.Archive.LoadJSON(r.ID, &report); err != nil {
						s.log.Warn("Skipping unreadable report", "id", r.ID, "error", err)
						continue
					}
					reports = append(reports, report)
				}

				return s.out.Print(reports, func(w io.Writer) error {
					if len(reports) == 0 {
						_, err := fmt.Fprintln(w, "No rebuilds recorded")
						return err
					}
					return table(w, "RUN ID\tSTARTED\tDURATION\tCATEGORIES\tPHRASES\tDICTIONARY", func(tw io.Writer) {
						for _, r := range reports {
							fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", r.RunID,
								r.StartedAt.Local().Format(time.RFC3339), r.Duration.Round(time.Millisecond),
								r.Counts.Categories, r.Counts.Phrases, r.Counts.DictionaryEntries)
						}
					})
				})
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of reports")
	return cmd
}
