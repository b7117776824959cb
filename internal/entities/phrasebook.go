package entities

import (
	"fmt"
	"strings"
	"time"
)

// Language is a phrasebook language as stored in the translation tables.
type Language string

const (
	LanguageCreole  Language = "Creole"
	LanguageEnglish Language = "English"
)

// Languages lists the languages shipped with the bundled seed data. Seed documents may
// carry others; any name that appears in a language attribute is queryable.
var Languages = []Language{LanguageCreole, LanguageEnglish}

// ParseLanguage trims name and maps the bundled languages to their canonical spelling.
// Other names are returned as given, since stored languages come from the seed data.
func ParseLanguage(name string) (Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("language cannot be empty")
	}
	for _, lang := range Languages {
		if strings.EqualFold(name, string(lang)) {
			return lang, nil
		}
	}
	return Language(name), nil
}

// SyncStatus is the single marker row written at the end of a rebuild.
type SyncStatus struct {
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
}

func (SyncStatus) TableName() string {
	return "Tradui_Status"
}

type Category struct {
	CategoryID int64  `json:"category_id" yaml:"category_id"`
	ImgFile    string `json:"img_file,omitempty" yaml:"img_file,omitempty"`
}

func (Category) TableName() string {
	return "Categories"
}

type CategoryTranslation struct {
	CategoryID int64    `json:"category_id" yaml:"category_id"`
	Language   Language `json:"language" yaml:"language"`
	Title      string   `json:"title" yaml:"title"`
	AudioFile  string   `json:"audio_file,omitempty" yaml:"audio_file,omitempty"`
}

func (CategoryTranslation) TableName() string {
	return "Category_Translations"
}

type Phrase struct {
	CategoryID int64  `json:"category_id" yaml:"category_id"`
	PhraseID   int64  `json:"phrase_id" yaml:"phrase_id"`
	ImgFile    string `json:"img_file,omitempty" yaml:"img_file,omitempty"`
}

func (Phrase) TableName() string {
	return "Phrases"
}

type PhraseTranslation struct {
	PhraseID  int64    `json:"phrase_id" yaml:"phrase_id"`
	Language  Language `json:"language" yaml:"language"`
	Text      string   `json:"text" yaml:"text"`
	AudioFile string   `json:"audio_file,omitempty" yaml:"audio_file,omitempty"`
}

func (PhraseTranslation) TableName() string {
	return "Phrase_Translations"
}

// DictionaryEntry is one directed word pair. Both words are stored lower-case.
type DictionaryEntry struct {
	SourceWord string   `json:"source_word" yaml:"source_word"`
	DestWord   string   `json:"dest_word" yaml:"dest_word"`
	SourceLang Language `json:"source_lang" yaml:"source_lang"`
	DestLang   Language `json:"dest_lang" yaml:"dest_lang"`
}

func (DictionaryEntry) TableName() string {
	return "Dictionary"
}

// CategorySummary is a category listing row: the category, its title in one language and
// the number of phrases it holds.
type CategorySummary struct {
	CategoryID  int64  `json:"category_id" yaml:"category_id"`
	ImgFile     string `json:"img_file,omitempty" yaml:"img_file,omitempty"`
	Title       string `json:"title" yaml:"title"`
	AudioFile   string `json:"audio_file,omitempty" yaml:"audio_file,omitempty"`
	PhraseCount int64  `json:"phrase_count" yaml:"phrase_count"`
}

// PhraseSummary is a phrase listing row within a category.
type PhraseSummary struct {
	PhraseID  int64  `json:"phrase_id" yaml:"phrase_id"`
	ImgFile   string `json:"img_file,omitempty" yaml:"img_file,omitempty"`
	Text      string `json:"text" yaml:"text"`
	AudioFile string `json:"audio_file,omitempty" yaml:"audio_file,omitempty"`
}

// PhraseDetail is a phrase rendered in another language.
type PhraseDetail struct {
	Language  Language `json:"language" yaml:"language"`
	Text      string   `json:"text" yaml:"text"`
	AudioFile string   `json:"audio_file,omitempty" yaml:"audio_file,omitempty"`
}

// SeedCounts reports the rows inserted per table by a seed run.
type SeedCounts struct {
	Categories           int `json:"categories" yaml:"categories"`
	CategoryTranslations int `json:"category_translations" yaml:"category_translations"`
	Phrases              int `json:"phrases" yaml:"phrases"`
	PhraseTranslations   int `json:"phrase_translations" yaml:"phrase_translations"`
	DictionaryEntries    int `json:"dictionary_entries" yaml:"dictionary_entries"`
}

// Total sums every table count.
func (c SeedCounts) Total() int {
	return c.Categories + c.CategoryTranslations + c.Phrases + c.PhraseTranslations + c.DictionaryEntries
}
