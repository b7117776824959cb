// Package phrasebook provides the read-only queries over seeded phrasebook data.
//
// This package implements the PhrasebookStore interface defined in internal/http/phrasebook.go
// and the StatusReader used by the sync controller.
//
// # Interface Implementation
//
//	var _ http.PhrasebookStore = (*Repository)(nil)
//	var _ datasync.StatusReader = (*Repository)(nil)
//
// # Usage
//
//	repo := phrasebook.NewRepository(db.Adapter)
//	categories, err := repo.GetCategories(ctx, entities.LanguageEnglish)
//	entries, err := repo.SearchDictionary(ctx, "bon", entities.LanguageCreole, entities.LanguageEnglish)
package phrasebook

import (
	"context"
	"errors"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/platform"
	"github.com/mrlokans/tradui/internal/utils"
)

// ErrNotFound is returned when no status row exists.
var ErrNotFound = errors.New("record not found")

const (
	selectStatus = `select lastUpdated from Tradui_Status order by lastUpdated desc limit 1`

	selectLanguages = `select distinct language from Category_Translations order by language`

	countPhrases = `select count(*) as phraseCount from Phrases where categoryId = ?`

	// One row per category: duplicate translations for the same language collapse through
	// the aggregates, and the phrase count comes from a correlated subquery.
	selectCategories = `select c.categoryId as categoryId,
		min(c.imgFile) as imgFile,
		min(ct.title) as title,
		min(ct.audioFile) as audioFile,
		(select count(*) from Phrases p where p.categoryId = c.categoryId) as phraseCount
	from Categories c
	join Category_Translations ct on ct.categoryId = c.categoryId
	where ct.language = ? collate nocase
	group by c.categoryId
	order by title, categoryId`

	selectPhrases = `select p.phraseId as phraseId,
		p.imgFile as imgFile,
		pt.text as text,
		pt.audioFile as audioFile
	from Phrases p
	join Phrase_Translations pt on pt.phraseId = p.phraseId
	where p.categoryId = ? and pt.language = ? collate nocase
	order by pt.text, p.phraseId`

	selectPhraseDetails = `select language, text, audioFile
	from Phrase_Translations
	where phraseId = ? and language != ? collate nocase
	order by language`

	selectDictionary = `select sourceWord, destWord, sourceLang, destLang
	from Dictionary
	where sourceWord = ? and sourceLang = ? collate nocase and destLang = ? collate nocase
	order by destWord`

	searchDictionary = `select sourceWord, destWord, sourceLang, destLang
	from Dictionary
	where sourceWord like ? escape '\' and sourceLang = ? collate nocase and destLang = ? collate nocase
	order by sourceWord, destWord`
)

// Repository handles all phrasebook read operations.
type Repository struct {
	db platform.Executor
}

// NewRepository creates a repository over an adapter or an open transaction.
func NewRepository(db platform.Executor) *Repository {
	return &Repository{db: db}
}

// GetTraduiStatus returns the status row, or ErrNotFound when the store was never seeded.
// A missing table surfaces as a *platform.QueryError.
func (r *Repository) GetTraduiStatus(ctx context.Context) (*entities.SyncStatus, error) {
	rows, err := r.db.Query(ctx, selectStatus)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || !rows[0].Has("lastUpdated") {
		return nil, ErrNotFound
	}
	return &entities.SyncStatus{LastUpdated: rows[0].Time("lastUpdated")}, nil
}

// GetLanguages returns every language that has at least one category title.
func (r *Repository) GetLanguages(ctx context.Context) ([]entities.Language, error) {
	rows, err := r.db.Query(ctx, selectLanguages)
	if err != nil {
		return nil, err
	}

	languages := make([]entities.Language, 0, len(rows))
	for _, row := range rows {
		languages = append(languages, entities.Language(row.String("language")))
	}
	return languages, nil
}

// GetCategoryCount returns the number of phrases filed under a category.
func (r *Repository) GetCategoryCount(ctx context.Context, categoryID int64) (int64, error) {
	rows, err := r.db.Query(ctx, countPhrases, categoryID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Int64("phraseCount"), nil
}

// GetCategories lists the categories titled in language, ordered by title.
func (r *Repository) GetCategories(ctx context.Context, language entities.Language) ([]entities.CategorySummary, error) {
	rows, err := r.db.Query(ctx, selectCategories, string(language))
	if err != nil {
		return nil, err
	}

	categories := make([]entities.CategorySummary, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, entities.CategorySummary{
			CategoryID:  row.Int64("categoryId"),
			ImgFile:     row.String("imgFile"),
			Title:       row.String("title"),
			AudioFile:   row.String("audioFile"),
			PhraseCount: row.Int64("phraseCount"),
		})
	}
	return categories, nil
}

// GetPhrases lists the phrases of a category in language, ordered by text.
func (r *Repository) GetPhrases(ctx context.Context, language entities.Language, categoryID int64) ([]entities.PhraseSummary, error) {
	rows, err := r.db.Query(ctx, selectPhrases, categoryID, string(language))
	if err != nil {
		return nil, err
	}

	phrases := make([]entities.PhraseSummary, 0, len(rows))
	for _, row := range rows {
		phrases = append(phrases, entities.PhraseSummary{
			PhraseID:  row.Int64("phraseId"),
			ImgFile:   row.String("imgFile"),
			Text:      row.String("text"),
			AudioFile: row.String("audioFile"),
		})
	}
	return phrases, nil
}

// GetPhraseDetails returns the phrase in every language other than language.
func (r *Repository) GetPhraseDetails(ctx context.Context, language entities.Language, phraseID int64) ([]entities.PhraseDetail, error) {
	rows, err := r.db.Query(ctx, selectPhraseDetails, phraseID, string(language))
	if err != nil {
		return nil, err
	}

	details := make([]entities.PhraseDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, entities.PhraseDetail{
			Language:  entities.Language(row.String("language")),
			Text:      row.String("text"),
			AudioFile: row.String("audioFile"),
		})
	}
	return details, nil
}

// GetDictionary returns the exact translations of word in one direction.
func (r *Repository) GetDictionary(ctx context.Context, word string, sourceLang, destLang entities.Language) ([]entities.DictionaryEntry, error) {
	rows, err := r.db.Query(ctx, selectDictionary, utils.NormalizeWord(word), string(sourceLang), string(destLang))
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// SearchDictionary returns the entries whose source word starts with prefix. LIKE wildcards
// in prefix match literally.
func (r *Repository) SearchDictionary(ctx context.Context, prefix string, sourceLang, destLang entities.Language) ([]entities.DictionaryEntry, error) {
	pattern := utils.EscapeLike(utils.NormalizeWord(prefix)) + "%"
	rows, err := r.db.Query(ctx, searchDictionary, pattern, string(sourceLang), string(destLang))
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func toEntries(rows []platform.Row) []entities.DictionaryEntry {
	entries := make([]entities.DictionaryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entities.DictionaryEntry{
			SourceWord: row.String("sourceWord"),
			DestWord:   row.String("destWord"),
			SourceLang: entities.Language(row.String("sourceLang")),
			DestLang:   entities.Language(row.String("destLang")),
		})
	}
	return entries
}
