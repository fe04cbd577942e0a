// Package e2e provides end-to-end tests with a synthetic corpus and multiple queries.
package e2e

import (
	"fmt"
	"strings"
)

// CorpusWord is a word entry in the e2e corpus.
type CorpusWord struct {
	Word      string
	IsNoun    bool
	IsVerb    bool
	Embedding []float32
}

// QueryTestCase defines a similarity query and words that must appear in its
// results.
type QueryTestCase struct {
	Query         string
	POS           string
	ExpectedWords []string
	Description   string
}

// Corpus holds words and query test cases for e2e tests.
type Corpus struct {
	Words     []CorpusWord
	TestCases []QueryTestCase
}

// BuildCorpus returns a deterministic corpus of clustered word vectors.
// Words within a cluster point in nearly the same direction, so cosine
// similarity ranks cluster mates above everything else.
func BuildCorpus() *Corpus {
	cluster := func(base []float32, jitter float32) []float32 {
		out := make([]float32, len(base))
		copy(out, base)
		out[0] += jitter
		return out
	}
	animals := []float32{1, 0, 0, 0}
	vehicles := []float32{0, 1, 0, 0}
	motions := []float32{0, 0, 1, 0}

	words := []CorpusWord{
		{Word: "dog", IsNoun: true, Embedding: cluster(animals, 0.00)},
		{Word: "cat", IsNoun: true, Embedding: cluster(animals, 0.02)},
		{Word: "wolf", IsNoun: true, Embedding: cluster(animals, 0.04)},
		{Word: "horse", IsNoun: true, Embedding: cluster(animals, 0.06)},

		{Word: "car", IsNoun: true, Embedding: cluster(vehicles, 0.00)},
		{Word: "truck", IsNoun: true, Embedding: cluster(vehicles, 0.02)},
		{Word: "bus", IsNoun: true, Embedding: cluster(vehicles, 0.04)},

		{Word: "run", IsVerb: true, Embedding: cluster(motions, 0.00)},
		{Word: "walk", IsNoun: true, IsVerb: true, Embedding: cluster(motions, 0.02)},
		{Word: "sprint", IsVerb: true, Embedding: cluster(motions, 0.04)},
	}

	cases := []QueryTestCase{
		{
			Query:         "dog",
			ExpectedWords: []string{"cat", "wolf"},
			Description:   "animal cluster mates rank first",
		},
		{
			Query:         "truck",
			ExpectedWords: []string{"car", "bus"},
			Description:   "vehicle cluster mates rank first",
		},
		{
			Query:         "run",
			POS:           "verb",
			ExpectedWords: []string{"walk", "sprint"},
			Description:   "verb filter keeps only verbs",
		},
	}
	return &Corpus{Words: words, TestCases: cases}
}

// CSV renders the corpus in the loader's CSV format.
func (c *Corpus) CSV() string {
	var b strings.Builder
	b.WriteString("word,noun,verb,embd\n")
	for _, w := range c.Words {
		b.WriteString(w.Word)
		b.WriteString(",")
		b.WriteString(flag(w.IsNoun))
		b.WriteString(",")
		b.WriteString(flag(w.IsVerb))
		b.WriteString(",\"[")
		for i, v := range w.Embedding {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", v)
		}
		b.WriteString("]\"\n")
	}
	return b.String()
}

func flag(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
