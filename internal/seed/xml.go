package seed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/utils"
)

var (
	errMissing = errors.New("missing required value")
	errNotInt  = errors.New("not an integer")
	errEmpty   = errors.New("document holds no records")
)

// node is a generic element tree; the seed documents are matched by element name at any
// depth, so no fixed document shape is assumed.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	CharData string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// text returns the concatenated character data of the element and its descendants.
func (n *node) text() string {
	if len(n.Children) == 0 {
		return n.CharData
	}
	var b strings.Builder
	b.WriteString(n.CharData)
	for i := range n.Children {
		b.WriteString(n.Children[i].text())
	}
	return b.String()
}

// find returns every descendant named name, in document order.
func (n *node) find(name string) []*node {
	var out []*node
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == name {
			out = append(out, child)
		}
		out = append(out, child.find(name)...)
	}
	return out
}

func parseDocument(file string, data []byte) (*node, error) {
	var root node
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	// The synthetic wrapper lets find see the root element itself.
	return &node{Children: []node{root}}, nil
}

func requireInt(file, element string, n *node, attr string) (int64, error) {
	raw := strings.TrimSpace(n.attr(attr))
	if raw == "" {
		return 0, &ParseError{File: file, Element: element, Attr: attr, Err: errMissing}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParseError{File: file, Element: element, Attr: attr, Err: fmt.Errorf("%w: %q", errNotInt, raw)}
	}
	return v, nil
}

func requireString(file, element string, n *node, attr string) (string, error) {
	v := strings.TrimSpace(n.attr(attr))
	if v == "" {
		return "", &ParseError{File: file, Element: element, Attr: attr, Err: errMissing}
	}
	return v, nil
}

// CategoryRecord is a category with the titles it carries.
type CategoryRecord struct {
	Category     entities.Category
	Translations []entities.CategoryTranslation
}

// PhraseRecord is a phrase with its translations.
type PhraseRecord struct {
	Phrase       entities.Phrase
	Translations []entities.PhraseTranslation
}

// ParseCategories reads every category element and its cattrans children.
func ParseCategories(file string, data []byte) ([]CategoryRecord, error) {
	doc, err := parseDocument(file, data)
	if err != nil {
		return nil, err
	}

	var records []CategoryRecord
	for _, el := range doc.find("category") {
		id, err := requireInt(file, "category", el, "categoryId")
		if err != nil {
			return nil, err
		}
		rec := CategoryRecord{Category: entities.Category{CategoryID: id, ImgFile: strings.TrimSpace(el.attr("img"))}}

		for _, tr := range el.find("cattrans") {
			lang, err := requireString(file, "cattrans", tr, "language")
			if err != nil {
				return nil, err
			}
			rec.Translations = append(rec.Translations, entities.CategoryTranslation{
				CategoryID: id,
				Language:   entities.Language(lang),
				Title:      utils.NormalizeText(tr.text()),
				AudioFile:  strings.TrimSpace(tr.attr("audio")),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParsePhrases reads every phrase element and its phrasetrans children.
func ParsePhrases(file string, data []byte) ([]PhraseRecord, error) {
	doc, err := parseDocument(file, data)
	if err != nil {
		return nil, err
	}

	var records []PhraseRecord
	for _, el := range doc.find("phrase") {
		categoryID, err := requireInt(file, "phrase", el, "categoryId")
		if err != nil {
			return nil, err
		}
		phraseID, err := requireInt(file, "phrase", el, "phraseId")
		if err != nil {
			return nil, err
		}
		rec := PhraseRecord{Phrase: entities.Phrase{
			CategoryID: categoryID,
			PhraseID:   phraseID,
			ImgFile:    strings.TrimSpace(el.attr("img")),
		}}

		for _, tr := range el.find("phrasetrans") {
			lang, err := requireString(file, "phrasetrans", tr, "language")
			if err != nil {
				return nil, err
			}
			rec.Translations = append(rec.Translations, entities.PhraseTranslation{
				PhraseID:  phraseID,
				Language:  entities.Language(lang),
				Text:      utils.NormalizeText(tr.text()),
				AudioFile: strings.TrimSpace(tr.attr("audio")),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}

// dictionarySections maps a section element to the direction of its terms.
var dictionarySections = []struct {
	element    string
	sourceLang entities.Language
	destLang   entities.Language
}{
	{element: "dict", sourceLang: entities.LanguageCreole, destLang: entities.LanguageEnglish},
	{element: "DicE2K", sourceLang: entities.LanguageEnglish, destLang: entities.LanguageCreole},
}

// ParseDictionary reads dict (Creole to English) and DicE2K (English to Creole) sections.
// Each value under a term becomes its own entry; both words are normalized.
func ParseDictionary(file string, data []byte) ([]entities.DictionaryEntry, error) {
	doc, err := parseDocument(file, data)
	if err != nil {
		return nil, err
	}

	var entries []entities.DictionaryEntry
	for _, section := range dictionarySections {
		for _, sec := range doc.find(section.element) {
			for _, term := range sec.find("term") {
				word, err := requireString(file, "term", term, "word")
				if err != nil {
					return nil, err
				}
				word = utils.NormalizeWord(word)

				for _, value := range term.find("value") {
					dest := utils.NormalizeWord(value.text())
					if dest == "" {
						return nil, &ParseError{File: file, Element: "value", Err: errMissing}
					}
					entries = append(entries, entities.DictionaryEntry{
						SourceWord: word,
						DestWord:   dest,
						SourceLang: section.sourceLang,
						DestLang:   section.destLang,
					})
				}
			}
		}
	}
	return entries, nil
}
