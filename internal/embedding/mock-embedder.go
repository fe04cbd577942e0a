package embedding

import (
	"context"
	"math"
)

// MockEmbedder is a deterministic embedder for tests. It returns a fixed-dimension
// unit vector derived from the token hash so that the same token always gets
// the same embedding.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder that produces deterministic embeddings of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 300
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a deterministic embedding based on the token hash.
func (e *MockEmbedder) Embed(ctx context.Context, token string) ([]float32, error) {
	h := HashString(token)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*(i+1)))*0.1 + 0.01)
	}
	// Normalize to unit length for cosine similarity
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range emb {
			emb[i] *= float32(norm)
		}
	}
	return emb, nil
}

// EmbedBatch calls Embed for each token.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, tokens []string) ([][]float32, error) {
	embeddings := make([][]float32, len(tokens))
	for i, token := range tokens {
		emb, err := e.Embed(ctx, token)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}

// StaticEmbedder serves embeddings from a fixed map and fails with
// ErrNoEmbedding for any other token. Useful for tests that need a source
// with a closed vocabulary.
type StaticEmbedder struct {
	dimensions int
	vectors    map[string][]float32
}

// NewStaticEmbedder returns an embedder backed by the given token vectors.
func NewStaticEmbedder(dimensions int, vectors map[string][]float32) *StaticEmbedder {
	return &StaticEmbedder{dimensions: dimensions, vectors: vectors}
}

// Embed returns the fixed vector for token, or ErrNoEmbedding.
func (e *StaticEmbedder) Embed(ctx context.Context, token string) ([]float32, error) {
	if v, ok := e.vectors[token]; ok {
		return v, nil
	}
	return nil, ErrNoEmbedding
}

// EmbedBatch calls Embed for each token.
func (e *StaticEmbedder) EmbedBatch(ctx context.Context, tokens []string) ([][]float32, error) {
	out := make([][]float32, len(tokens))
	for i, token := range tokens {
		v, err := e.Embed(ctx, token)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the embedding dimension.
func (e *StaticEmbedder) Dimensions() int { return e.dimensions }

// Close is a no-op for StaticEmbedder.
func (e *StaticEmbedder) Close() error { return nil }
