package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/translate"
)

// TranslateController proxies free-text translation to the remote provider.
type TranslateController struct {
	client translate.Client
	log    *logger.Logger
}

func NewTranslateController(client translate.Client, log *logger.Logger) *TranslateController {
	if log == nil {
		log = logger.Discard()
	}
	return &TranslateController{client: client, log: log.WithComponent("http")}
}

// Translate handles GET /api/translate?text=&source=&dest=
func (tc *TranslateController) Translate(c *gin.Context) {
	if tc.client == nil {
		respondError(c, http.StatusServiceUnavailable, translate.ErrNotConfigured.Error())
		return
	}

	text, ok := requireQuery(c, "text")
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := tc.client.Translate(ctx, text, source, dest)
	switch {
	case errors.Is(err, translate.ErrNotConfigured):
		respondError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, translate.ErrUnsupportedLanguage):
		respondBadRequest(c, err.Error())
	case err != nil:
		tc.log.Warn("Translation failed", "provider", tc.client.Name(), "error", err)
		respondError(c, http.StatusBadGateway, "translation failed")
	default:
		c.JSON(http.StatusOK, result)
	}
}
