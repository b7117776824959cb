package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/tradui/internal/entrypoint"
)

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &dictionaryOptions{}
	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate free text through the remote translation service",
		Long: `Translate free text through the remote translation service.

Requires TRANSLATE_API_KEY. The local database is not used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest, err := opts.languages()
			if err != nil {
				return err
			}

			out := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			client := entrypoint.NewTranslator(rootOpts.Config())
			result, err := client.Translate(cmd.Context(), strings.Join(args, " "), source, dest)
			if err != nil {
				return err
			}
			out.VerboseLog("Translated by %s", result.Provider)

			return out.Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, result.Translated)
				return err
			})
		},
	}
	opts.bind(cmd)
	return cmd
}
