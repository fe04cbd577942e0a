// Package embedding provides vector embedding of word tokens, used to
// synthesize vectors for out-of-vocabulary queries.
package embedding

import (
	"context"
	"errors"
)

// ErrNoEmbedding is returned when the source cannot produce a vector for a
// token (no subword fallback available).
var ErrNoEmbedding = errors.New("no embedding for token")

// Embedder produces vector embeddings for tokens.
type Embedder interface {
	// Embed returns the embedding for token, or ErrNoEmbedding when the
	// source has no vector for it.
	Embed(ctx context.Context, token string) ([]float32, error)
	EmbedBatch(ctx context.Context, tokens []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
