// Package models defines core data structures for words, queries, and similarity results.
package models

import "time"

// Word represents a stored word with part-of-speech flags and its embedding.
type Word struct {
	Word      string    `json:"word" db:"word"`
	IsNoun    bool      `json:"is_noun" db:"is_noun"`
	IsVerb    bool      `json:"is_verb" db:"is_verb"`
	Embedding []float32 `json:"-" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PartOfSpeech returns the word's POS tags as a list ("noun", "verb").
func (w *Word) PartOfSpeech() []string {
	var pos []string
	if w.IsNoun {
		pos = append(pos, "noun")
	}
	if w.IsVerb {
		pos = append(pos, "verb")
	}
	return pos
}

// WordInput is the input for creating or replacing a word record.
type WordInput struct {
	Word      string    `json:"word"`
	IsNoun    bool      `json:"is_noun,omitempty"`
	IsVerb    bool      `json:"is_verb,omitempty"`
	Embedding []float32 `json:"embedding"`
}

// SimilarWord is a single similarity hit: a word and its cosine similarity
// to the query word, in [-1, 1].
type SimilarWord struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// SimilarityResponse is the response for a similarity query.
type SimilarityResponse struct {
	Query     string         `json:"query"`
	Results   []*SimilarWord `json:"results"`
	Total     int            `json:"total"`
	QueryTime int64          `json:"query_time_ms"`
	// Cached indicates the results were served from the result cache.
	Cached bool `json:"cached,omitempty"`
	// OOV indicates the query word was not in the corpus and its vector
	// was synthesized by the embedding source.
	OOV bool `json:"oov,omitempty"`
}
