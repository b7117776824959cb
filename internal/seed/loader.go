// Package seed turns the bundled XML documents into phrasebook rows.
//
// A step reads its document from a Source, parses the whole document, and only then
// issues inserts through the given executor. A parse failure therefore never leaves
// half a document behind; atomicity across steps is the caller's transaction.
//
//	loader := seed.NewLoader(seed.Embedded(), seed.DefaultFiles(), log)
//	err := adapter.Transact(ctx, func(tx platform.Executor) error {
//	    _, err := loader.LoadAll(ctx, tx)
//	    return err
//	})
package seed

import (
	"context"
	"fmt"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
)

// Counts reports the rows inserted per table.
type Counts = entities.SeedCounts

// Files names the three seed documents.
type Files struct {
	Categories string
	Phrases    string
	Dictionary string
}

func DefaultFiles() Files {
	return Files{
		Categories: "categories.xml",
		Phrases:    "phrases.xml",
		Dictionary: "word_dictionary.xml",
	}
}

// WithDefaults fills empty names from DefaultFiles.
func (f Files) WithDefaults() Files {
	defaults := DefaultFiles()
	if f.Categories == "" {
		f.Categories = defaults.Categories
	}
	if f.Phrases == "" {
		f.Phrases = defaults.Phrases
	}
	if f.Dictionary == "" {
		f.Dictionary = defaults.Dictionary
	}
	return f
}

// Validate parses data as the seed document called name and requires it to hold at least
// one record. Names other than the three documents only need to be well-formed XML.
func (f Files) Validate(name string, data []byte) error {
	var n int
	var err error
	switch name {
	case f.Categories:
		var records []CategoryRecord
		records, err = ParseCategories(name, data)
		n = len(records)
	case f.Phrases:
		var records []PhraseRecord
		records, err = ParsePhrases(name, data)
		n = len(records)
	case f.Dictionary:
		var entries []entities.DictionaryEntry
		entries, err = ParseDictionary(name, data)
		n = len(entries)
	default:
		_, err = parseDocument(name, data)
		n = 1
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return &ParseError{File: name, Err: errEmpty}
	}
	return nil
}

const (
	insertCategory            = "insert into Categories values (?, ?)"
	insertCategoryTranslation = "insert into Category_Translations values (?, ?, ?, ?)"
	insertPhrase              = "insert into Phrases values (?, ?, ?)"
	insertPhraseTranslation   = "insert into Phrase_Translations values (?, ?, ?, ?)"
	insertDictionaryEntry     = "insert into Dictionary values (?, ?, ?, ?)"
)

type Loader struct {
	source Source
	files  Files
	log    *logger.Logger
}

func NewLoader(source Source, files Files, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{source: source, files: files.WithDefaults(), log: log.WithComponent("seed")}
}

// LoadAll loads categories, phrases and the dictionary, in that order.
func (l *Loader) LoadAll(ctx context.Context, exec platform.Executor) (Counts, error) {
	var total Counts

	c, err := l.LoadCategories(ctx, exec)
	if err != nil {
		return total, err
	}
	total.Categories, total.CategoryTranslations = c.Categories, c.CategoryTranslations

	p, err := l.LoadPhrases(ctx, exec)
	if err != nil {
		return total, err
	}
	total.Phrases, total.PhraseTranslations = p.Phrases, p.PhraseTranslations

	d, err := l.LoadDictionary(ctx, exec)
	if err != nil {
		return total, err
	}
	total.DictionaryEntries = d.DictionaryEntries

	l.log.Info("Seed data loaded", "source", l.source.String(), "rows", total.Total())
	return total, nil
}

func (l *Loader) LoadCategories(ctx context.Context, exec platform.Executor) (Counts, error) {
	var counts Counts

	data, err := l.source.ReadFile(ctx, l.files.Categories)
	if err != nil {
		return counts, err
	}
	records, err := ParseCategories(l.files.Categories, data)
	if err != nil {
		return counts, err
	}

	for _, rec := range records {
		if err := exec.Execute(ctx, insertCategory, rec.Category.CategoryID, rec.Category.ImgFile); err != nil {
			return counts, fmt.Errorf("insert category %d: %w", rec.Category.CategoryID, err)
		}
		counts.Categories++

		for _, tr := range rec.Translations {
			if err := exec.Execute(ctx, insertCategoryTranslation, tr.CategoryID, string(tr.Language), tr.Title, tr.AudioFile); err != nil {
				return counts, fmt.Errorf("insert category %d translation: %w", tr.CategoryID, err)
			}
			counts.CategoryTranslations++
		}
	}

	l.log.Debug("Categories loaded", "file", l.files.Categories, "categories", counts.Categories, "translations", counts.CategoryTranslations)
	return counts, nil
}

func (l *Loader) LoadPhrases(ctx context.Context, exec platform.Executor) (Counts, error) {
	var counts Counts

	data, err := l.source.ReadFile(ctx, l.files.Phrases)
	if err != nil {
		return counts, err
	}
	records, err := ParsePhrases(l.files.Phrases, data)
	if err != nil {
		return counts, err
	}

	for _, rec := range records {
		p := rec.Phrase
		if err := exec.Execute(ctx, insertPhrase, p.CategoryID, p.PhraseID, p.ImgFile); err != nil {
			return counts, fmt.Errorf("insert phrase %d: %w", p.PhraseID, err)
		}
		counts.Phrases++

		for _, tr := range rec.Translations {
			if err := exec.Execute(ctx, insertPhraseTranslation, tr.PhraseID, string(tr.Language), tr.Text, tr.AudioFile); err != nil {
				return counts, fmt.Errorf("insert phrase %d translation: %w", tr.PhraseID, err)
			}
			counts.PhraseTranslations++
		}
	}

	l.log.Debug("Phrases loaded", "file", l.files.Phrases, "phrases", counts.Phrases, "translations", counts.PhraseTranslations)
	return counts, nil
}

func (l *Loader) LoadDictionary(ctx context.Context, exec platform.Executor) (Counts, error) {
	var counts Counts

	data, err := l.source.ReadFile(ctx, l.files.Dictionary)
	if err != nil {
		return counts, err
	}
	entries, err := ParseDictionary(l.files.Dictionary, data)
	if err != nil {
		return counts, err
	}

	for _, e := range entries {
		if err := exec.Execute(ctx, insertDictionaryEntry, e.SourceWord, e.DestWord, string(e.SourceLang), string(e.DestLang)); err != nil {
			return counts, fmt.Errorf("insert dictionary word %q: %w", e.SourceWord, err)
		}
		counts.DictionaryEntries++
	}

	l.log.Debug("Dictionary loaded", "file", l.files.Dictionary, "entries", counts.DictionaryEntries)
	return counts, nil
}
