// Package keyword provides the Bleve implementation of WordIndex.
package keyword

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/ruigo/internal/models"
)

// wordDoc is the indexed form of a vocabulary entry.
type wordDoc struct {
	Word   string `json:"word"`
	IsNoun bool   `json:"is_noun"`
	IsVerb bool   `json:"is_verb"`
}

// BleveIndex implements WordIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
	path  string
}

func wordIndexMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	// Keyword analyzer keeps the word as a single term, so exact and prefix
	// queries match the stored form rather than analyzer output.
	wordFieldMapping := bleve.NewTextFieldMapping()
	wordFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("word", wordFieldMapping)
	docMapping.AddFieldMappingsAt("is_noun", bleve.NewBooleanFieldMapping())
	docMapping.AddFieldMappingsAt("is_verb", bleve.NewBooleanFieldMapping())
	im.AddDocumentMapping("word", docMapping)
	im.DefaultType = "word"
	im.DefaultMapping = docMapping

	return im
}

// NewBleveIndex creates or opens a Bleve word index at path.
// An existing index is opened and reused so the vocabulary survives restarts.
// If the mapping changes in code, remove the index directory to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index, path: path}, nil
	}

	index, err := bleve.New(path, wordIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index, path: path}, nil
}

// Index adds or replaces a vocabulary entry. The word itself is the document ID.
func (b *BleveIndex) Index(ctx context.Context, word *models.Word) error {
	return b.index.Index(word.Word, &wordDoc{
		Word:   word.Word,
		IsNoun: word.IsNoun,
		IsVerb: word.IsVerb,
	})
}

// Search looks up vocabulary entries matching q. Results are ordered by word
// ascending. A non-positive limit falls back to models.DefaultLimit.
func (b *BleveIndex) Search(ctx context.Context, q SearchQuery) ([]*WordHit, error) {
	if q.Token == "" {
		return nil, fmt.Errorf("search token must not be empty")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	if limit > models.MaxLimit {
		limit = models.MaxLimit
	}

	var tokenQuery blevequery.Query
	switch q.Mode {
	case ModePrefix:
		pq := bleve.NewPrefixQuery(q.Token)
		pq.SetField("word")
		tokenQuery = pq
	case ModeExact, "":
		tq := bleve.NewTermQuery(q.Token)
		tq.SetField("word")
		tokenQuery = tq
	default:
		return nil, fmt.Errorf("unknown search mode %q", q.Mode)
	}

	finalQuery := tokenQuery
	if field := posField(q.POS); field != "" {
		posQuery := bleve.NewBoolFieldQuery(true)
		posQuery.SetField(field)
		finalQuery = bleve.NewConjunctionQuery(tokenQuery, posQuery)
	}

	req := bleve.NewSearchRequest(finalQuery)
	req.Size = limit
	req.Fields = []string{"word", "is_noun", "is_verb"}
	req.SortBy([]string{"word"})

	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	out := make([]*WordHit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		out = append(out, &WordHit{
			Word:   hit.ID,
			IsNoun: fieldBool(hit.Fields["is_noun"]),
			IsVerb: fieldBool(hit.Fields["is_verb"]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}

func posField(pos models.POSFilter) string {
	switch pos {
	case models.POSNoun:
		return "is_noun"
	case models.POSVerb:
		return "is_verb"
	}
	return ""
}

func fieldBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

// Delete removes a word from the index.
func (b *BleveIndex) Delete(ctx context.Context, word string) error {
	return b.index.Delete(word)
}

// Reset drops the index contents by recreating the index directory.
func (b *BleveIndex) Reset() error {
	if err := b.index.Close(); err != nil {
		return fmt.Errorf("failed to close Bleve index: %w", err)
	}
	if err := os.RemoveAll(b.path); err != nil {
		return fmt.Errorf("failed to remove Bleve index: %w", err)
	}
	index, err := bleve.New(b.path, wordIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to recreate Bleve index: %w", err)
	}
	b.index = index
	return nil
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

// WordCount returns the number of indexed words.
func (b *BleveIndex) WordCount() (uint64, error) {
	return b.index.DocCount()
}

// AllWords returns every indexed word from the term dictionary.
// The keyword analyzer stores each word as a single term, so the field
// dictionary of "word" is exactly the vocabulary.
func (b *BleveIndex) AllWords() ([]string, error) {
	dict, err := b.index.FieldDict("word")
	if err != nil {
		return nil, fmt.Errorf("failed to open field dictionary: %w", err)
	}
	defer dict.Close()

	words := make([]string, 0)
	for {
		entry, err := dict.Next()
		if err != nil || entry == nil {
			break
		}
		words = append(words, entry.Term)
	}
	return words, nil
}

// ContainsWord reports whether word is indexed.
func (b *BleveIndex) ContainsWord(word string) (bool, error) {
	hits, err := b.Search(context.Background(), SearchQuery{Token: word, Mode: ModeExact, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(hits) > 0, nil
}
