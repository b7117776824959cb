package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tradui/internal/database/phrasebook"
	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/logger"
)

// PhrasebookController serves the read-only phrasebook queries.
type PhrasebookController struct {
	store PhrasebookStore
	log   *logger.Logger
}

func NewPhrasebookController(store PhrasebookStore, log *logger.Logger) *PhrasebookController {
	if log == nil {
		log = logger.Discard()
	}
	return &PhrasebookController{store: store, log: log.WithComponent("http")}
}

// StatusResponse describes the last completed rebuild.
type StatusResponse struct {
	LastUpdated   string `json:"last_updated"`
	LastUpdatedMs int64  `json:"last_updated_ms"`
}

// GetStatus handles GET /api/status
func (pc *PhrasebookController) GetStatus(c *gin.Context) {
	status, err := pc.store.GetTraduiStatus(c.Request.Context())
	if errors.Is(err, phrasebook.ErrNotFound) {
		respondNotFound(c, "status")
		return
	}
	if err != nil {
		respondFailure(c, pc.log, err, "get status")
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		LastUpdated:   status.LastUpdated.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		LastUpdatedMs: status.LastUpdated.UnixMilli(),
	})
}

// GetLanguages handles GET /api/languages
func (pc *PhrasebookController) GetLanguages(c *gin.Context) {
	languages, err := pc.store.GetLanguages(c.Request.Context())
	if err != nil {
		respondFailure(c, pc.log, err, "get languages")
		return
	}
	respondList(c, languages)
}

// GetCategories handles GET /api/categories?language=
func (pc *PhrasebookController) GetCategories(c *gin.Context) {
	language, ok := parseLanguageQuery(c, "language", "")
	if !ok {
		return
	}

	categories, err := pc.store.GetCategories(c.Request.Context(), language)
	if err != nil {
		respondFailure(c, pc.log, err, "get categories")
		return
	}
	respondList(c, categories)
}

// GetCategoryCount handles GET /api/categories/:id/count
func (pc *PhrasebookController) GetCategoryCount(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := pc.store.GetCategoryCount(c.Request.Context(), categoryID)
	if err != nil {
		respondFailure(c, pc.log, err, "get category count")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category_id": categoryID, "phrase_count": count})
}

// GetPhrases handles GET /api/categories/:id/phrases?language=
func (pc *PhrasebookController) GetPhrases(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	language, ok := parseLanguageQuery(c, "language", "")
	if !ok {
		return
	}

	phrases, err := pc.store.GetPhrases(c.Request.Context(), language, categoryID)
	if err != nil {
		respondFailure(c, pc.log, err, "get phrases")
		return
	}
	respondList(c, phrases)
}

// GetPhraseDetails handles GET /api/phrases/:id/details?language=
// The language names the one already shown; every other translation is returned.
func (pc *PhrasebookController) GetPhraseDetails(c *gin.Context) {
	phraseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	language, ok := parseLanguageQuery(c, "language", "")
	if !ok {
		return
	}

	details, err := pc.store.GetPhraseDetails(c.Request.Context(), language, phraseID)
	if err != nil {
		respondFailure(c, pc.log, err, "get phrase details")
		return
	}
	respondList(c, details)
}

// GetDictionary handles GET /api/dictionary?word=&source=&dest=
func (pc *PhrasebookController) GetDictionary(c *gin.Context) {
	pc.dictionary(c, false)
}

// SearchDictionary handles GET /api/dictionary/search?word=&source=&dest=
func (pc *PhrasebookController) SearchDictionary(c *gin.Context) {
	pc.dictionary(c, true)
}

func (pc *PhrasebookController) dictionary(c *gin.Context, prefix bool) {
	word, ok := requireQuery(c, "word")
	if !ok {
		return
	}
	source, ok := parseLanguageQuery(c, "source", entities.LanguageCreole)
	if !ok {
		return
	}
	dest, ok := parseLanguageQuery(c, "dest", entities.LanguageEnglish)
	if !ok {
		return
	}

	var (
		entries []entities.DictionaryEntry
		err     error
	)
	if prefix {
		entries, err = pc.store.SearchDictionary(c.Request.Context(), word, source, dest)
	} else {
		entries, err = pc.store.GetDictionary(c.Request.Context(), word, source, dest)
	}
	if err != nil {
		respondFailure(c, pc.log, err, "dictionary lookup")
		return
	}
	respondList(c, entries)
}
