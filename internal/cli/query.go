package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/tradui/internal/entities"
)

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages with category titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rootOpts, true, func(s *session) error {
				languages, err := s.core.Repo.GetLanguages(s.ctx)
				if err != nil {
					return err
				}
				return s.out.Print(languages, func(w io.Writer) error {
					for _, lang := range languages {
						fmt.Fprintln(w, lang)
					}
					return nil
				})
			})
		},
	}
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories <language>",
		Short: "List categories with their phrase counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			return run(cmd, rootOpts, true, func(s *session) error {
				categories, err := s.core.Repo.GetCategories(s.ctx, language)
				if err != nil {
					return err
				}
				return s.out.Print(categories, func(w io.Writer) error {
					return table(w, "ID\tTITLE\tPHRASES\tIMAGE\tAUDIO", func(tw io.Writer) {
						for _, c := range categories {
							fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", c.CategoryID, c.Title, c.PhraseCount, c.ImgFile, c.AudioFile)
						}
					})
				})
			})
		},
	}
}

// NewPhrasesCommand creates the phrases command.
func NewPhrasesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "phrases <language> <categoryId>",
		Short: "List the phrases of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseIDArg("category id", args[1])
			if err != nil {
				return err
			}
			return run(cmd, rootOpts, true, func(s *session) error {
				phrases, err := s.core.Repo.GetPhrases(s.ctx, language, categoryID)
				if err != nil {
					return err
				}
				return s.out.Print(phrases, func(w io.Writer) error {
					return table(w, "ID\tTEXT\tIMAGE\tAUDIO", func(tw io.Writer) {
						for _, p := range phrases {
							fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.PhraseID, p.Text, p.ImgFile, p.AudioFile)
						}
					})
				})
			})
		},
	}
}

// NewDetailsCommand creates the details command.
func NewDetailsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "details <language> <phraseId>",
		Short: "Show a phrase in every language other than the given one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			phraseID, err := parseIDArg("phrase id", args[1])
			if err != nil {
				return err
			}
			return run(cmd, rootOpts, true, func(s *session) error {
				details, err := s.core.Repo.GetPhraseDetails(s.ctx, language, phraseID)
				if err != nil {
					return err
				}
				return s.out.Print(details, func(w io.Writer) error {
					return table(w, "LANGUAGE\tTEXT\tAUDIO", func(tw io.Writer) {
						for _, d := range details {
							fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Language, d.Text, d.AudioFile)
						}
					})
				})
			})
		},
	}
}

// dictionaryOptions holds the direction flags shared by lookup and search.
type dictionaryOptions struct {
	From string
	To   string
}

func (o *dictionaryOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.From, "from", string(entities.LanguageCreole), "source language")
	cmd.Flags().StringVar(&o.To, "to", string(entities.LanguageEnglish), "destination language")
}

func (o *dictionaryOptions) languages() (entities.Language, entities.Language, error) {
	source, err := parseLanguageArg(o.From)
	if err != nil {
		return "", "", err
	}
	dest, err := parseLanguageArg(o.To)
	if err != nil {
		return "", "", err
	}
	return source, dest, nil
}

func printEntries(s *session, entries []entities.DictionaryEntry) error {
	return s.out.Print(entries, func(w io.Writer) error {
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No matches")
			return err
		}
		return table(w, "WORD\tTRANSLATION", func(tw io.Writer) {
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.SourceWord, e.DestWord)
			}
		})
	})
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &dictionaryOptions{}
	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Translate a single word exactly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest, err := opts.languages()
			if err != nil {
				return err
			}
			return run(cmd, rootOpts, true, func(s *session) error {
				entries, err := s.core.Repo.GetDictionary(s.ctx, args[0], source, dest)
				if err != nil {
					return err
				}
				return printEntries(s, entries)
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &dictionaryOptions{}
	cmd := &cobra.Command{
		Use:   "search <prefix>",
		Short: "List dictionary words starting with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, dest, err := opts.languages()
			if err != nil {
				return err
			}
			return run(cmd, rootOpts, true, func(s *session) error {
				entries, err := s.core.Repo.SearchDictionary(s.ctx, args[0], source, dest)
				if err != nil {
					return err
				}
				return printEntries(s, entries)
			})
		},
	}
	opts.bind(cmd)
	return cmd
}
