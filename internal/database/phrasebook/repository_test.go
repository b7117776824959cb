package phrasebook

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tradui/internal/database"
	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/platform"
)

var fixedClock = time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)

func setupTestRepo(t *testing.T, engine string) (*Repository, platform.Adapter) {
	t.Helper()
	ctx := context.Background()

	adapter, err := platform.Open(ctx, platform.Config{Engine: engine, Path: filepath.Join(t.TempDir(), "tradui.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })

	schema := &database.Schema{Clock: func() time.Time { return fixedClock }}
	require.NoError(t, schema.Rebuild(ctx, adapter))

	return NewRepository(adapter), adapter
}

func seedFixtures(t *testing.T, db platform.Executor) {
	t.Helper()
	ctx := context.Background()

	statements := []struct {
		query string
		args  []any
	}{
		{"insert into Categories values (?, ?)", []any{1, "food.png"}},
		{"insert into Categories values (?, ?)", []any{2, "greet.png"}},
		{"insert into Categories values (?, ?)", []any{3, ""}},
		{"insert into Category_Translations values (?, ?, ?, ?)", []any{1, "English", "Food", "food_en.mp3"}},
		{"insert into Category_Translations values (?, ?, ?, ?)", []any{1, "Creole", "Manje", "food_ht.mp3"}},
		{"insert into Category_Translations values (?, ?, ?, ?)", []any{2, "English", "Greetings", ""}},
		{"insert into Category_Translations values (?, ?, ?, ?)", []any{2, "Creole", "Salitasyon", ""}},
		{"insert into Category_Translations values (?, ?, ?, ?)", []any{3, "English", "Food", ""}},
		{"insert into Phrases values (?, ?, ?)", []any{2, 10, "hello.png"}},
		{"insert into Phrases values (?, ?, ?)", []any{2, 11, ""}},
		{"insert into Phrases values (?, ?, ?)", []any{1, 12, ""}},
		{"insert into Phrase_Translations values (?, ?, ?, ?)", []any{10, "English", "Hello", "hello_en.mp3"}},
		{"insert into Phrase_Translations values (?, ?, ?, ?)", []any{10, "Creole", "Bonjou", "hello_ht.mp3"}},
		{"insert into Phrase_Translations values (?, ?, ?, ?)", []any{11, "English", "Good night", ""}},
		{"insert into Phrase_Translations values (?, ?, ?, ?)", []any{11, "Creole", "Bonswa", ""}},
		{"insert into Phrase_Translations values (?, ?, ?, ?)", []any{12, "English", "Water", ""}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"bonjou", "hello", "Creole", "English"}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"bonjou", "good morning", "Creole", "English"}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"bonswa", "good evening", "Creole", "English"}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"dlo", "water", "Creole", "English"}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"water", "dlo", "English", "Creole"}},
		{"insert into Dictionary values (?, ?, ?, ?)", []any{"bo_n", "literal", "Creole", "English"}},
	}

	for _, s := range statements {
		require.NoError(t, db.Execute(ctx, s.query, s.args...))
	}
}

func TestRepository_GetTraduiStatus(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			ctx := context.Background()
			repo, adapter := setupTestRepo(t, engine)

			status, err := repo.GetTraduiStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, fixedClock.UnixMilli(), status.LastUpdated.UnixMilli())

			require.NoError(t, adapter.Execute(ctx, "delete from Tradui_Status"))
			_, err = repo.GetTraduiStatus(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, adapter.Execute(ctx, "drop table Tradui_Status"))
			_, err = repo.GetTraduiStatus(ctx)
			var qe *platform.QueryError
			assert.True(t, errors.As(err, &qe))
		})
	}
}

func TestRepository_GetLanguages(t *testing.T) {
	repo, adapter := setupTestRepo(t, platform.EngineSQLX)
	seedFixtures(t, adapter)

	languages, err := repo.GetLanguages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.Language{entities.LanguageCreole, entities.LanguageEnglish}, languages)
}

func TestRepository_GetCategoryCount(t *testing.T) {
	repo, adapter := setupTestRepo(t, platform.EngineSQL)
	seedFixtures(t, adapter)
	ctx := context.Background()

	count, err := repo.GetCategoryCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.GetCategoryCount(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_GetCategories(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			repo, adapter := setupTestRepo(t, engine)
			seedFixtures(t, adapter)

			categories, err := repo.GetCategories(context.Background(), entities.LanguageEnglish)
			require.NoError(t, err)

			assert.Equal(t, []entities.CategorySummary{
				{CategoryID: 1, ImgFile: "food.png", Title: "Food", AudioFile: "food_en.mp3", PhraseCount: 1},
				{CategoryID: 3, Title: "Food", PhraseCount: 0},
				{CategoryID: 2, ImgFile: "greet.png", Title: "Greetings", PhraseCount: 2},
			}, categories)
		})
	}
}

func TestRepository_GetCategories_EachCategoryOnce(t *testing.T) {
	ctx := context.Background()
	repo, adapter := setupTestRepo(t, platform.EngineSQLX)
	seedFixtures(t, adapter)

	// A second English title for category 2 must not duplicate the category.
	require.NoError(t, adapter.Execute(ctx, "insert into Category_Translations values (?, ?, ?, ?)", 2, "English", "Hellos", ""))

	categories, err := repo.GetCategories(ctx, entities.LanguageEnglish)
	require.NoError(t, err)

	seen := map[int64]int{}
	for _, c := range categories {
		seen[c.CategoryID]++
	}
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1}, seen)
}

func TestRepository_GetCategories_UnknownLanguage(t *testing.T) {
	repo, adapter := setupTestRepo(t, platform.EngineGorm)
	seedFixtures(t, adapter)

	categories, err := repo.GetCategories(context.Background(), "Klingon")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestRepository_GetCategories_Golden(t *testing.T) {
	repo, adapter := setupTestRepo(t, platform.EngineSQLX)
	seedFixtures(t, adapter)

	categories, err := repo.GetCategories(context.Background(), entities.LanguageCreole)
	require.NoError(t, err)

	data, err := json.MarshalIndent(categories, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "categories_creole", data)
}

func TestRepository_GetPhrases(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			repo, adapter := setupTestRepo(t, engine)
			seedFixtures(t, adapter)
			ctx := context.Background()

			phrases, err := repo.GetPhrases(ctx, entities.LanguageEnglish, 2)
			require.NoError(t, err)
			assert.Equal(t, []entities.PhraseSummary{
				{PhraseID: 11, Text: "Good night"},
				{PhraseID: 10, ImgFile: "hello.png", Text: "Hello", AudioFile: "hello_en.mp3"},
			}, phrases)

			phrases, err = repo.GetPhrases(ctx, entities.LanguageCreole, 1)
			require.NoError(t, err)
			assert.Empty(t, phrases)
		})
	}
}

func TestRepository_GetPhraseDetails(t *testing.T) {
	repo, adapter := setupTestRepo(t, platform.EngineSQL)
	seedFixtures(t, adapter)

	details, err := repo.GetPhraseDetails(context.Background(), entities.LanguageEnglish, 10)
	require.NoError(t, err)
	assert.Equal(t, []entities.PhraseDetail{
		{Language: entities.LanguageCreole, Text: "Bonjou", AudioFile: "hello_ht.mp3"},
	}, details)
}

func TestRepository_LanguageMatchIgnoresCase(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			repo, adapter := setupTestRepo(t, engine)
			seedFixtures(t, adapter)
			ctx := context.Background()
			require.NoError(t, adapter.Execute(ctx, "insert into Category_Translations values (?, ?, ?, ?)", 2, "French", "Salutations", ""))
			require.NoError(t, adapter.Execute(ctx, "insert into Phrase_Translations values (?, ?, ?, ?)", 10, "French", "Bonjour", ""))

			categories, err := repo.GetCategories(ctx, "french")
			require.NoError(t, err)
			require.Len(t, categories, 1)
			assert.Equal(t, "Salutations", categories[0].Title)

			phrases, err := repo.GetPhrases(ctx, "FRENCH", 2)
			require.NoError(t, err)
			require.Len(t, phrases, 1)
			assert.Equal(t, "Bonjour", phrases[0].Text)

			details, err := repo.GetPhraseDetails(ctx, "french", 10)
			require.NoError(t, err)
			require.Len(t, details, 2)
			assert.Equal(t, entities.LanguageCreole, details[0].Language)
			assert.Equal(t, entities.LanguageEnglish, details[1].Language)

			entries, err := repo.GetDictionary(ctx, "dlo", "creole", "english")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, entities.LanguageCreole, entries[0].SourceLang)
		})
	}
}

func TestRepository_GetDictionary(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			repo, adapter := setupTestRepo(t, engine)
			seedFixtures(t, adapter)
			ctx := context.Background()

			entries, err := repo.GetDictionary(ctx, "Bonjou", entities.LanguageCreole, entities.LanguageEnglish)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "good morning", entries[0].DestWord)
			assert.Equal(t, "hello", entries[1].DestWord)

			// Direction matters: no English->Creole row for "bonjou".
			entries, err = repo.GetDictionary(ctx, "bonjou", entities.LanguageEnglish, entities.LanguageCreole)
			require.NoError(t, err)
			assert.Empty(t, entries)

			entries, err = repo.GetDictionary(ctx, "WATER", entities.LanguageEnglish, entities.LanguageCreole)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, entities.DictionaryEntry{SourceWord: "water", DestWord: "dlo", SourceLang: "English", DestLang: "Creole"}, entries[0])
		})
	}
}

func TestRepository_SearchDictionary(t *testing.T) {
	for _, engine := range platform.Engines() {
		t.Run(engine, func(t *testing.T) {
			repo, adapter := setupTestRepo(t, engine)
			seedFixtures(t, adapter)
			ctx := context.Background()

			entries, err := repo.SearchDictionary(ctx, "bon", entities.LanguageCreole, entities.LanguageEnglish)
			require.NoError(t, err)

			var words []string
			for _, e := range entries {
				words = append(words, e.SourceWord+"="+e.DestWord)
			}
			assert.Equal(t, []string{"bonjou=good morning", "bonjou=hello", "bonswa=good evening"}, words)

			// "_" is literal, so "bo_" matches only "bo_n".
			entries, err = repo.SearchDictionary(ctx, "bo_", entities.LanguageCreole, entities.LanguageEnglish)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "bo_n", entries[0].SourceWord)

			entries, err = repo.SearchDictionary(ctx, "xyz", entities.LanguageCreole, entities.LanguageEnglish)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRepository_InsideTransaction(t *testing.T) {
	ctx := context.Background()
	_, adapter := setupTestRepo(t, platform.EngineSQLX)

	err := adapter.Transact(ctx, func(tx platform.Executor) error {
		seedFixtures(t, tx)
		languages, err := NewRepository(tx).GetLanguages(ctx)
		require.NoError(t, err)
		assert.Len(t, languages, 2)
		return errors.New("rollback")
	})
	require.Error(t, err)

	languages, err := NewRepository(adapter).GetLanguages(ctx)
	require.NoError(t, err)
	assert.Empty(t, languages)
}
