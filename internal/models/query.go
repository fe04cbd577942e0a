package models

import (
	"fmt"
	"strconv"
	"strings"
)

// POSFilter restricts similarity candidates by part of speech.
type POSFilter string

const (
	// POSAny applies no part-of-speech restriction.
	POSAny POSFilter = ""
	// POSNoun keeps only words flagged as nouns.
	POSNoun POSFilter = "noun"
	// POSVerb keeps only words flagged as verbs.
	POSVerb POSFilter = "verb"
)

// ParsePOSFilter parses a POS filter string ("", "none", "noun", "verb").
func ParsePOSFilter(s string) (POSFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return POSAny, nil
	case "noun":
		return POSNoun, nil
	case "verb":
		return POSVerb, nil
	default:
		return POSAny, fmt.Errorf("invalid pos filter %q: must be noun, verb, or none", s)
	}
}

// Default and maximum result limits for similarity queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// NoMinSimilarity disables threshold filtering (cosine similarity is never below -1).
const NoMinSimilarity = -1.0

// SimilarityQuery represents a request for words similar to Word.
// Callers that do not want threshold filtering set MinSimilarity to
// NoMinSimilarity; query parsing at the entry points does this when the
// parameter is absent.
type SimilarityQuery struct {
	Word          string    `json:"word"`
	POS           POSFilter `json:"pos,omitempty"`
	Limit         int       `json:"limit,omitempty"`
	MinSimilarity float64   `json:"min_similarity"`
}

// Validate checks the query and normalizes limit and threshold.
// Returns an error if the word is empty or the POS filter is unknown.
func (q *SimilarityQuery) Validate() error {
	if q.Word == "" {
		return fmt.Errorf("word cannot be empty")
	}
	switch q.POS {
	case POSAny, POSNoun, POSVerb:
	default:
		return fmt.Errorf("invalid pos filter %q: must be noun, verb, or none", q.POS)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.MinSimilarity < NoMinSimilarity {
		q.MinSimilarity = NoMinSimilarity
	}
	return nil
}

// CacheKey returns a canonical key for the result cache. Two semantically
// identical queries always produce the same key.
func (q *SimilarityQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString(q.Word)
	b.WriteByte('|')
	b.WriteString(string(q.POS))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(q.Limit))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(q.MinSimilarity, 'g', -1, 64))
	return b.String()
}
