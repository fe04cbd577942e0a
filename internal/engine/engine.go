// Package engine resolves similarity queries against the corpus snapshot.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/corpus"
	"github.com/hyperjump/ruigo/internal/embedding"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/similarity"
	"github.com/hyperjump/ruigo/internal/storage"
)

// Engine is the similarity query entry point. It resolves the query token to
// a vector (corpus row, or the embedding source for out-of-vocabulary
// tokens), delegates scoring to the ranker, and memoizes results.
type Engine struct {
	storage      storage.Storage
	corpus       *corpus.Store
	embedder     embedding.Embedder
	cache        *ResultCache
	config       *config.SimilarityConfig
	embedTimeout time.Duration
	logger       *zap.Logger
}

// NewEngine creates an engine with the given dependencies. The result cache
// is registered for invalidation on corpus reload.
func NewEngine(
	st storage.Storage,
	corpusStore *corpus.Store,
	embedder embedding.Embedder,
	cfg *config.Config,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		storage:      st,
		corpus:       corpusStore,
		embedder:     embedder,
		cache:        NewResultCache(cfg.Similarity.CacheCapacity),
		config:       &cfg.Similarity,
		embedTimeout: time.Duration(cfg.Embedding.TimeoutMs) * time.Millisecond,
		logger:       logger,
	}
	corpusStore.OnSwap(e.cache.Purge)
	return e
}

// FindSimilar returns words similar to the query word, ordered by descending
// cosine similarity. Fails with models.ErrUnknownWord when the token is
// absent from the corpus and the embedding source has no vector for it, and
// with models.ErrSourceUnavailable when the source cannot be reached in time.
func (e *Engine) FindSimilar(ctx context.Context, query *models.SimilarityQuery) (*models.SimilarityResponse, error) {
	startTime := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snap := e.corpus.Current()
	key := query.CacheKey()
	if results, ok := e.cache.Get(snap.Version(), key); ok {
		return &models.SimilarityResponse{
			Query:     query.Word,
			Results:   results,
			Total:     len(results),
			QueryTime: time.Since(startTime).Milliseconds(),
			Cached:    true,
		}, nil
	}

	target, oov, err := e.resolve(ctx, query.Word, snap)
	if err != nil {
		return nil, err
	}

	results, err := similarity.Rank(target, snap, query.POS, query.Limit, query.MinSimilarity, query.Word)
	if err != nil {
		return nil, err
	}

	e.cache.Set(snap.Version(), key, results)
	e.logger.Debug("similarity query computed",
		zap.String("word", query.Word),
		zap.String("pos", string(query.POS)),
		zap.Int("results", len(results)),
		zap.Bool("oov", oov),
	)

	return &models.SimilarityResponse{
		Query:     query.Word,
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(startTime).Milliseconds(),
		OOV:       oov,
	}, nil
}

// resolve returns the target vector for word: the corpus row when the word
// is known, otherwise a vector synthesized by the embedding source. The
// second return reports whether the word was out of vocabulary.
func (e *Engine) resolve(ctx context.Context, word string, snap *corpus.Snapshot) ([]float32, bool, error) {
	if row, ok := snap.Row(word); ok {
		return snap.Vector(row), false, nil
	}

	embedCtx := ctx
	if e.embedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, e.embedTimeout)
		defer cancel()
	}
	vec, err := e.embedder.Embed(embedCtx, word)
	if err != nil {
		if errors.Is(err, embedding.ErrNoEmbedding) {
			return nil, false, fmt.Errorf("%w: %s", models.ErrUnknownWord, word)
		}
		// Timeouts and inference failures are both transient to the caller.
		return nil, false, fmt.Errorf("%w: embed %q: %v", models.ErrSourceUnavailable, word, err)
	}
	if snap.Size() > 0 && len(vec) != snap.Dimensions() {
		return nil, false, &models.DimensionError{Word: word, Got: len(vec), Want: snap.Dimensions()}
	}
	return vec, true, nil
}

// GetWord returns the stored record for an exact word.
// Returns storage.ErrNotFound when absent.
func (e *Engine) GetWord(ctx context.Context, word string) (*models.Word, error) {
	return e.storage.GetWord(ctx, word)
}

// Reload rebuilds the corpus snapshot from the word store. The result cache
// is invalidated as part of the snapshot swap.
func (e *Engine) Reload(ctx context.Context) (*corpus.Snapshot, error) {
	return e.corpus.Reload(ctx, e.storage)
}

// Snapshot returns the active corpus snapshot.
func (e *Engine) Snapshot() *corpus.Snapshot {
	return e.corpus.Current()
}

// CacheStats returns result cache length, hits, and misses.
func (e *Engine) CacheStats() (length int, hits, misses int64) {
	return e.cache.Len(), e.cache.Hits(), e.cache.Misses()
}
