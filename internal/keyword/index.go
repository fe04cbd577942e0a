// Package keyword provides the word lookup index used for exact and
// prefix search over the vocabulary.
package keyword

import (
	"context"

	"github.com/hyperjump/ruigo/internal/models"
)

// SearchMode selects how the query token is matched against the vocabulary.
type SearchMode string

const (
	// ModeExact matches the whole word.
	ModeExact SearchMode = "exact"
	// ModePrefix matches words starting with the query token.
	ModePrefix SearchMode = "prefix"
)

// SearchQuery is a vocabulary lookup request.
type SearchQuery struct {
	Token string
	Mode  SearchMode
	POS   models.POSFilter
	Limit int
}

// WordHit is a single vocabulary match.
type WordHit struct {
	Word   string `json:"word"`
	IsNoun bool   `json:"is_noun"`
	IsVerb bool   `json:"is_verb"`
}

// WordIndex defines vocabulary lookup operations.
type WordIndex interface {
	Index(ctx context.Context, word *models.Word) error
	Search(ctx context.Context, q SearchQuery) ([]*WordHit, error)
	Delete(ctx context.Context, word string) error
	Reset() error
	Close() error
	// WordCount returns the number of indexed words.
	WordCount() (uint64, error)
}

// WordDictionary exposes the indexed vocabulary for suggestion lookups.
type WordDictionary interface {
	// AllWords returns every indexed word.
	AllWords() ([]string, error)
	// ContainsWord reports whether word is indexed.
	ContainsWord(word string) (bool, error)
}
