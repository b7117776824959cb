package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"Creole", LanguageCreole},
		{"creole", LanguageCreole},
		{" ENGLISH ", LanguageEnglish},
		{"French", Language("French")},
		{" Español ", Language("Español")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestParseLanguage_Empty(t *testing.T) {
	_, err := ParseLanguage("")
	assert.ErrorContains(t, err, "language cannot be empty")

	_, err = ParseLanguage("   ")
	assert.Error(t, err)
}

func TestSeedCountsTotal(t *testing.T) {
	counts := SeedCounts{Categories: 6, CategoryTranslations: 12, Phrases: 18, PhraseTranslations: 36, DictionaryEntries: 35}
	assert.Equal(t, 107, counts.Total())
}
