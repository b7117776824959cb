// Package cli implements the tradui command line.
//
// Every command except serve opens the configured database, initializes it when it was never
// seeded, runs one operation and prints the result as text, JSON or YAML.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrlokans/tradui/internal/config"
	"github.com/mrlokans/tradui/internal/entrypoint"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	viper *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// Config resolves the configuration: flags first, then environment, then defaults.
func (o *RootOptions) Config() *config.Config {
	return config.FromViper(o.viper)
}

// NewRootCommand creates the root command. Without a subcommand it serves the HTTP API.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{viper: viper.New()}
	opts.viper.AutomaticEnv()
	config.SetDefaults(opts.viper)

	cmd := &cobra.Command{
		Use:     "tradui",
		Short:   "Tradui - offline Haitian Creole phrasebook",
		Long:    "An offline English/Haitian Creole phrasebook and dictionary backed by SQLite.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(opts.Config(), version)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.String("db", "", "database file (env DATABASE_PATH, default "+config.DefaultDatabasePath+")")
	flags.String("engine", "", "database engine: auto, sqlx, sql, gorm (env DATABASE_ENGINE)")
	_ = opts.viper.BindPFlag("database_path", flags.Lookup("db"))
	_ = opts.viper.BindPFlag("database_engine", flags.Lookup("engine"))

	cmd.AddCommand(NewServeCommand(opts, version))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewRebuildCommand(opts))
	cmd.AddCommand(NewInstallCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewLanguagesCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewPhrasesCommand(opts))
	cmd.AddCommand(NewDetailsCommand(opts))
	cmd.AddCommand(NewLookupCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewTranslateCommand(opts))

	return cmd
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(rootOpts.Config(), version)
		},
	}
}
