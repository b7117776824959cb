package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/tradui/internal/entities"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("translation service is not configured")
	// ErrUnsupportedLanguage is returned for languages without a service code.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Result contains one remote translation.
type Result struct {
	Text       string            `json:"text" yaml:"text"`
	Translated string            `json:"translated" yaml:"translated"`
	Source     entities.Language `json:"source" yaml:"source"`
	Target     entities.Language `json:"target" yaml:"target"`
	Provider   string            `json:"provider" yaml:"provider"`
}

// Client defines the interface for remote translation providers.
type Client interface {
	Translate(ctx context.Context, text string, source, target entities.Language) (*Result, error)
	Name() string
}

var languageCodes = map[entities.Language]string{
	entities.LanguageCreole:  "ht",
	entities.LanguageEnglish: "en",
}

// LanguageCode maps a phrasebook language to its ISO 639-1 code.
func LanguageCode(lang entities.Language) (string, error) {
	code, ok := languageCodes[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return code, nil
}
