package seed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tradui/internal/entities"
)

func TestParseCategories(t *testing.T) {
	doc := `<categories>
		<category categoryId="1" img="x.png">
			<cattrans language="English" audio="a.mp3">
				Food
			</cattrans>
			<cattrans language="Creole">Manje</cattrans>
		</category>
		<group>
			<category categoryId=" 7 "><cattrans language="English">Nested  group</cattrans></category>
		</group>
	</categories>`

	records, err := ParseCategories("categories.xml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entities.Category{CategoryID: 1, ImgFile: "x.png"}, records[0].Category)
	assert.Equal(t, []entities.CategoryTranslation{
		{CategoryID: 1, Language: entities.LanguageEnglish, Title: "Food", AudioFile: "a.mp3"},
		{CategoryID: 1, Language: entities.LanguageCreole, Title: "Manje"},
	}, records[0].Translations)

	assert.Equal(t, int64(7), records[1].Category.CategoryID)
	assert.Equal(t, "", records[1].Category.ImgFile)
	assert.Equal(t, "Nested group", records[1].Translations[0].Title)
}

func TestParseCategories_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		element string
		attr    string
	}{
		{
			name:    "missing categoryId",
			doc:     `<categories><category img="x.png"/></categories>`,
			element: "category",
			attr:    "categoryId",
		},
		{
			name:    "non integer categoryId",
			doc:     `<categories><category categoryId="one"/></categories>`,
			element: "category",
			attr:    "categoryId",
		},
		{
			name:    "missing language",
			doc:     `<categories><category categoryId="1"><cattrans>Food</cattrans></category></categories>`,
			element: "cattrans",
			attr:    "language",
		},
		{
			name: "malformed xml",
			doc:  `<categories><category categoryId="1"></categories>`,
		},
		{
			name: "empty document",
			doc:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategories("categories.xml", []byte(tt.doc))
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "categories.xml", parseErr.File)
			assert.Equal(t, tt.element, parseErr.Element)
			assert.Equal(t, tt.attr, parseErr.Attr)
		})
	}
}

func TestParsePhrases(t *testing.T) {
	doc := `<phrases>
		<phrase categoryId="2" phraseId="10" img="p.png">
			<phrasetrans language="English" audio="e.mp3">Hello</phrasetrans>
			<phrasetrans language="Creole" audio="k.mp3">Bonjou</phrasetrans>
		</phrase>
		<phrase categoryId="2" phraseId="11"/>
	</phrases>`

	records, err := ParsePhrases("phrases.xml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entities.Phrase{CategoryID: 2, PhraseID: 10, ImgFile: "p.png"}, records[0].Phrase)
	require.Len(t, records[0].Translations, 2)
	assert.Equal(t, entities.PhraseTranslation{PhraseID: 10, Language: "Creole", Text: "Bonjou", AudioFile: "k.mp3"}, records[0].Translations[1])
	assert.Empty(t, records[1].Translations)
}

func TestParsePhrases_InvalidPhraseID(t *testing.T) {
	_, err := ParsePhrases("phrases.xml", []byte(`<phrases><phrase categoryId="2" phraseId="1.5"/></phrases>`))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "phraseId", parseErr.Attr)
	assert.ErrorIs(t, err, errNotInt)
	assert.Contains(t, err.Error(), `<phrase> attribute "phraseId"`)
}

func TestParseDictionary(t *testing.T) {
	doc := `<dictionary>
		<dict>
			<term word="Bonjou"><value>Hello</value><value>good morning</value></term>
		</dict>
		<DicE2K>
			<term word="WATER"><value>Dlo</value></term>
		</DicE2K>
	</dictionary>`

	entries, err := ParseDictionary("word_dictionary.xml", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []entities.DictionaryEntry{
		{SourceWord: "bonjou", DestWord: "hello", SourceLang: "Creole", DestLang: "English"},
		{SourceWord: "bonjou", DestWord: "good morning", SourceLang: "Creole", DestLang: "English"},
		{SourceWord: "water", DestWord: "dlo", SourceLang: "English", DestLang: "Creole"},
	}, entries)
}

func TestParseDictionary_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		element string
		attr    string
	}{
		{"missing word", `<d><dict><term><value>x</value></term></dict></d>`, "term", "word"},
		{"blank word", `<d><dict><term word="  "><value>x</value></term></dict></d>`, "term", "word"},
		{"empty value", `<d><DicE2K><term word="x"><value> </value></term></DicE2K></d>`, "value", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDictionary("word_dictionary.xml", []byte(tt.doc))
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.element, parseErr.Element)
			assert.Equal(t, tt.attr, parseErr.Attr)
		})
	}
}
