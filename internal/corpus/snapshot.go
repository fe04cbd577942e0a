// Package corpus holds the in-memory word corpus used for similarity scanning.
package corpus

import (
	"github.com/hyperjump/ruigo/pkg/utils"
)

// Snapshot is an immutable, versioned view of the full word corpus.
// Row i of every slice refers to the same token for the snapshot's lifetime.
// A reload never mutates a snapshot in place; it builds and publishes a new one.
type Snapshot struct {
	version    uint64
	dimensions int
	tokens     []string
	vectors    [][]float32
	unit       [][]float32
	isNoun     []bool
	isVerb     []bool
	rowOf      map[string]int
}

// Version returns the snapshot's monotonically increasing version.
func (s *Snapshot) Version() uint64 { return s.version }

// Dimensions returns the corpus-wide embedding dimension. Zero for an empty corpus.
func (s *Snapshot) Dimensions() int { return s.dimensions }

// Size returns the number of words in the snapshot.
func (s *Snapshot) Size() int { return len(s.tokens) }

// Token returns the token at row i.
func (s *Snapshot) Token(i int) string { return s.tokens[i] }

// Row returns the row index of a token, case-sensitive.
func (s *Snapshot) Row(token string) (int, bool) {
	i, ok := s.rowOf[token]
	return i, ok
}

// Vector returns the raw embedding at row i. Callers must not modify it.
func (s *Snapshot) Vector(i int) []float32 { return s.vectors[i] }

// UnitVector returns the precomputed unit-length embedding at row i.
// Rows whose raw embedding has zero norm stay all-zero.
func (s *Snapshot) UnitVector(i int) []float32 { return s.unit[i] }

// IsNoun reports whether the word at row i is flagged as a noun.
func (s *Snapshot) IsNoun(i int) bool { return s.isNoun[i] }

// IsVerb reports whether the word at row i is flagged as a verb.
func (s *Snapshot) IsVerb(i int) bool { return s.isVerb[i] }

// normalizeRows builds the unit-length row matrix from the raw matrix.
// Computed once per snapshot build so that per-query cosine similarity
// reduces to a single dot product per candidate.
func normalizeRows(vectors [][]float32) [][]float32 {
	unit := make([][]float32, len(vectors))
	for i, row := range vectors {
		u := make([]float32, len(row))
		copy(u, row)
		utils.NormalizeL2(u)
		unit[i] = u
	}
	return unit
}
