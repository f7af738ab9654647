package service

import (
	"log"
	"strings"

	"github.com/jdkato/prose/v2"
)

const labelPerson = "PERSON"

type Entity struct {
	Text  string
	Label string
}

// EntityTagger yields named entities in document order.
type EntityTagger interface {
	Entities(text string) ([]Entity, error)
}

const proseModelName = "en-v2.0.0"

type proseTagger struct {
	model *prose.Model
}

// NewProseTagger loads the English NER model bundled with prose. The weights
// are decoded here once and shared by every document.
func NewProseTagger() EntityTagger {
	return &proseTagger{model: prose.ModelFromData(proseModelName)}
}

func (t *proseTagger) document(text string) (*prose.Document, error) {
	return prose.NewDocument(text, prose.UsingModel(t.model))
}

func (t *proseTagger) Entities(text string) ([]Entity, error) {
	doc, err := t.document(text)
	if err != nil {
		return nil, err
	}
	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		out = append(out, Entity{Text: e.Text, Label: e.Label})
	}
	return out, nil
}

type NameService struct {
	tagger EntityTagger
}

func NewNameService(tagger EntityTagger) *NameService {
	return &NameService{tagger: tagger}
}

// ExtractName returns the first PERSON entity the tagger yields. It is not
// the best candidate, only the first.
func (s *NameService) ExtractName(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	ents, err := s.tagger.Entities(text)
	if err != nil {
		log.Printf("entity tagging failed: %v", err)
		return "", false
	}
	for _, e := range ents {
		if e.Label == labelPerson {
			return strings.TrimSpace(e.Text), true
		}
	}
	return "", false
}
