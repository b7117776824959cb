package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/seed"
)

type listBody[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func setupPhrasebookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	_, _, repo := setupSeededDB(t)

	controller := NewPhrasebookController(repo, nil)
	router := gin.New()
	router.GET("/api/status", controller.GetStatus)
	router.GET("/api/languages", controller.GetLanguages)
	router.GET("/api/categories", controller.GetCategories)
	router.GET("/api/categories/:id/count", controller.GetCategoryCount)
	router.GET("/api/categories/:id/phrases", controller.GetPhrases)
	router.GET("/api/phrases/:id/details", controller.GetPhraseDetails)
	router.GET("/api/dictionary", controller.GetDictionary)
	router.GET("/api/dictionary/search", controller.SearchDictionary)
	return router
}

func get(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", url, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeList[T any](t *testing.T, w *httptest.ResponseRecorder) listBody[T] {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body listBody[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPhrasebookController_GetStatus(t *testing.T) {
	t.Run("returns the last rebuild time", func(t *testing.T) {
		router := setupPhrasebookRouter(t)

		w := get(t, router, "/api/status")

		assert.Equal(t, http.StatusOK, w.Code)
		var response StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Positive(t, response.LastUpdatedMs)
		assert.NotEmpty(t, response.LastUpdated)
	})

	t.Run("returns 404 when no status row exists", func(t *testing.T) {
		db, _, repo := setupSeededDB(t)
		require.NoError(t, db.Adapter.Execute(context.Background(), "delete from Tradui_Status"))

		controller := NewPhrasebookController(repo, nil)
		router := gin.New()
		router.GET("/api/status", controller.GetStatus)

		w := get(t, router, "/api/status")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "status not found")
	})
}

func TestPhrasebookController_GetLanguages(t *testing.T) {
	router := setupPhrasebookRouter(t)

	body := decodeList[entities.Language](t, get(t, router, "/api/languages"))

	assert.Equal(t, []entities.Language{entities.LanguageCreole, entities.LanguageEnglish}, body.Data)
	assert.Equal(t, 2, body.Total)
}

func TestPhrasebookController_GetCategories(t *testing.T) {
	router := setupPhrasebookRouter(t)

	t.Run("lists categories ordered by title", func(t *testing.T) {
		body := decodeList[entities.CategorySummary](t, get(t, router, "/api/categories?language=English"))

		require.Len(t, body.Data, 6)
		titles := make([]string, 0, len(body.Data))
		for _, c := range body.Data {
			titles = append(titles, c.Title)
		}
		assert.Equal(t, []string{"Directions", "Emergency", "Food", "Greetings", "Health", "Numbers"}, titles)

		food := body.Data[2]
		assert.Equal(t, int64(2), food.CategoryID)
		assert.Equal(t, "cat_food.png", food.ImgFile)
		assert.Equal(t, "cat_food_en.mp3", food.AudioFile)
		assert.Equal(t, int64(3), food.PhraseCount)
	})

	t.Run("language is required", func(t *testing.T) {
		w := get(t, router, "/api/categories")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "language is required")
	})

	t.Run("language without titles lists nothing", func(t *testing.T) {
		w := get(t, router, "/api/categories?language=French")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeList[entities.CategorySummary](t, w)
		assert.Empty(t, body.Data)
	})
}

func TestPhrasebookController_LanguageFromSeedData(t *testing.T) {
	source := &seed.FSSource{Label: "test", FS: fstest.MapFS{
		"categories.xml": {Data: []byte(`<categories>
	<category categoryId="1" img="cat_greetings.png">
		<cattrans language="French" audio="cat_1_fr.mp3">Salutations</cattrans>
		<cattrans language="Creole">Salitasyon</cattrans>
	</category>
</categories>`)},
		"phrases.xml": {Data: []byte(`<phrases>
	<phrase categoryId="1" phraseId="101">
		<phrasetrans language="French" audio="ph_101_fr.mp3">Bonjour</phrasetrans>
		<phrasetrans language="Creole">Bonjou</phrasetrans>
	</phrase>
</phrases>`)},
		"word_dictionary.xml": {Data: []byte(`<dictionary><dict><term word="bonjou"><value>hello</value></term></dict></dictionary>`)},
	}}
	_, _, repo := setupDBFromSource(t, source)

	controller := NewPhrasebookController(repo, nil)
	router := gin.New()
	router.GET("/api/languages", controller.GetLanguages)
	router.GET("/api/categories", controller.GetCategories)
	router.GET("/api/categories/:id/phrases", controller.GetPhrases)
	router.GET("/api/phrases/:id/details", controller.GetPhraseDetails)

	w := get(t, router, "/api/languages")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []entities.Language{"Creole", "French"}, decodeList[entities.Language](t, w).Data)

	for _, name := range []string{"French", "french"} {
		t.Run("categories in "+name, func(t *testing.T) {
			w := get(t, router, "/api/categories?language="+name)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			categories := decodeList[entities.CategorySummary](t, w).Data
			require.Len(t, categories, 1)
			assert.Equal(t, "Salutations", categories[0].Title)
			assert.Equal(t, "cat_1_fr.mp3", categories[0].AudioFile)
		})
	}

	t.Run("phrases and details", func(t *testing.T) {
		w := get(t, router, "/api/categories/1/phrases?language=French")
		require.Equal(t, http.StatusOK, w.Code)
		phrases := decodeList[entities.PhraseSummary](t, w).Data
		require.Len(t, phrases, 1)
		assert.Equal(t, "Bonjour", phrases[0].Text)

		w = get(t, router, "/api/phrases/101/details?language=French")
		require.Equal(t, http.StatusOK, w.Code)
		details := decodeList[entities.PhraseDetail](t, w).Data
		require.Len(t, details, 1)
		assert.Equal(t, entities.LanguageCreole, details[0].Language)
	})
}

func TestPhrasebookController_GetCategoryCount(t *testing.T) {
	router := setupPhrasebookRouter(t)

	t.Run("counts phrases in a category", func(t *testing.T) {
		w := get(t, router, "/api/categories/1/count")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"category_id":1,"phrase_count":4}`, w.Body.String())
	})

	t.Run("unknown category counts zero", func(t *testing.T) {
		w := get(t, router, "/api/categories/999/count")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"category_id":999,"phrase_count":0}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := get(t, router, "/api/categories/abc/count")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPhrasebookController_GetPhrases(t *testing.T) {
	router := setupPhrasebookRouter(t)

	t.Run("lists phrases ordered by text", func(t *testing.T) {
		body := decodeList[entities.PhraseSummary](t, get(t, router, "/api/categories/2/phrases?language=English"))

		require.Len(t, body.Data, 3)
		assert.Equal(t, "How much does it cost?", body.Data[0].Text)
		assert.Equal(t, "I am hungry", body.Data[1].Text)
		assert.Equal(t, "I would like some water", body.Data[2].Text)
		assert.Equal(t, int64(201), body.Data[2].PhraseID)
		assert.Equal(t, "ph_water.png", body.Data[2].ImgFile)
	})

	t.Run("empty category returns empty list", func(t *testing.T) {
		body := decodeList[entities.PhraseSummary](t, get(t, router, "/api/categories/999/phrases?language=English"))

		assert.Empty(t, body.Data)
		assert.Equal(t, 0, body.Total)
	})
}

func TestPhrasebookController_GetPhraseDetails(t *testing.T) {
	router := setupPhrasebookRouter(t)

	body := decodeList[entities.PhraseDetail](t, get(t, router, "/api/phrases/101/details?language=English"))

	require.Len(t, body.Data, 1)
	assert.Equal(t, entities.LanguageCreole, body.Data[0].Language)
	assert.Equal(t, "Bonjou", body.Data[0].Text)
	assert.Equal(t, "ph_101_ht.mp3", body.Data[0].AudioFile)
}

func TestPhrasebookController_Dictionary(t *testing.T) {
	router := setupPhrasebookRouter(t)

	t.Run("exact lookup defaults to Creole to English", func(t *testing.T) {
		body := decodeList[entities.DictionaryEntry](t, get(t, router, "/api/dictionary?word=Bonjou"))

		require.Len(t, body.Data, 2)
		assert.Equal(t, "good morning", body.Data[0].DestWord)
		assert.Equal(t, "hello", body.Data[1].DestWord)
	})

	t.Run("reverse direction", func(t *testing.T) {
		body := decodeList[entities.DictionaryEntry](t, get(t, router, "/api/dictionary?word=hello&source=English&dest=Creole"))

		require.Len(t, body.Data, 2)
		for _, e := range body.Data {
			assert.Equal(t, entities.LanguageEnglish, e.SourceLang)
			assert.Equal(t, entities.LanguageCreole, e.DestLang)
		}
	})

	t.Run("prefix search", func(t *testing.T) {
		body := decodeList[entities.DictionaryEntry](t, get(t, router, "/api/dictionary/search?word=bon"))

		words := make([]string, 0, len(body.Data))
		for _, e := range body.Data {
			words = append(words, e.SourceWord+"="+e.DestWord)
		}
		assert.Equal(t, []string{"bon=good", "bonjou=good morning", "bonjou=hello", "bonswa=good evening"}, words)
	})

	t.Run("wildcards in the prefix match literally", func(t *testing.T) {
		body := decodeList[entities.DictionaryEntry](t, get(t, router, "/api/dictionary/search?word=%25"))

		assert.Empty(t, body.Data)
	})

	t.Run("word is required", func(t *testing.T) {
		w := get(t, router, "/api/dictionary/search")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "word is required")
	})
}
