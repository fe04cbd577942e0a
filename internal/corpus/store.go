package corpus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/storage"
)

// Store owns the active corpus snapshot. Readers always see a fully built
// snapshot; reloads build off to the side and publish with a single atomic
// pointer swap. In-flight reads on the previous snapshot complete against it.
type Store struct {
	active  atomic.Pointer[Snapshot]
	version atomic.Uint64
	logger  *zap.Logger

	// reloadMu serializes concurrent Load/Reload calls; it does not block readers.
	reloadMu sync.Mutex

	swapMu sync.Mutex
	onSwap []func()
}

// NewStore creates a corpus store holding an empty snapshot.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger}
	s.active.Store(&Snapshot{rowOf: map[string]int{}})
	return s
}

// OnSwap registers fn to run every time a new snapshot is published.
// Used by the result cache to invalidate itself on reload.
func (s *Store) OnSwap(fn func()) {
	s.swapMu.Lock()
	s.onSwap = append(s.onSwap, fn)
	s.swapMu.Unlock()
}

// Current returns the active snapshot. Never nil.
func (s *Store) Current() *Snapshot {
	return s.active.Load()
}

// Load builds a snapshot from records and publishes it.
// Records whose embedding dimension disagrees with the corpus dimension
// (fixed by the first valid record) are logged and skipped. If records is
// non-empty but no valid record remains, the load fails and the previous
// snapshot stays active.
func (s *Store) Load(records []*models.Word) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, skipped, err := s.build(records)
	if err != nil {
		return nil, err
	}
	s.publish(snap)
	s.logger.Info("corpus snapshot published",
		zap.Uint64("version", snap.Version()),
		zap.Int("words", snap.Size()),
		zap.Int("dimensions", snap.Dimensions()),
		zap.Int("skipped", skipped),
	)
	return snap, nil
}

// Reload fetches all records from the word store and publishes a fresh snapshot.
func (s *Store) Reload(ctx context.Context, st storage.Storage) (*Snapshot, error) {
	records, err := st.ListAllWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list words for reload: %w", err)
	}
	return s.Load(records)
}

func (s *Store) build(records []*models.Word) (*Snapshot, int, error) {
	snap := &Snapshot{
		version: s.version.Add(1),
		tokens:  make([]string, 0, len(records)),
		vectors: make([][]float32, 0, len(records)),
		isNoun:  make([]bool, 0, len(records)),
		isVerb:  make([]bool, 0, len(records)),
		rowOf:   make(map[string]int, len(records)),
	}

	skipped := 0
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			skipped++
			s.logger.Warn("skipping word with empty embedding", zap.String("word", rec.Word))
			continue
		}
		if snap.dimensions == 0 {
			snap.dimensions = len(rec.Embedding)
		} else if len(rec.Embedding) != snap.dimensions {
			skipped++
			derr := &models.DimensionError{Word: rec.Word, Got: len(rec.Embedding), Want: snap.dimensions}
			s.logger.Warn("skipping word with mismatched embedding dimension", zap.Error(derr))
			continue
		}
		if _, dup := snap.rowOf[rec.Word]; dup {
			skipped++
			s.logger.Warn("skipping duplicate word", zap.String("word", rec.Word))
			continue
		}
		vec := make([]float32, len(rec.Embedding))
		copy(vec, rec.Embedding)
		snap.rowOf[rec.Word] = len(snap.tokens)
		snap.tokens = append(snap.tokens, rec.Word)
		snap.vectors = append(snap.vectors, vec)
		snap.isNoun = append(snap.isNoun, rec.IsNoun)
		snap.isVerb = append(snap.isVerb, rec.IsVerb)
	}

	if len(records) > 0 && len(snap.tokens) == 0 {
		return nil, skipped, fmt.Errorf("corpus load failed: no valid records (%d skipped)", skipped)
	}

	snap.unit = normalizeRows(snap.vectors)
	return snap, skipped, nil
}

// publish swaps the active snapshot and runs invalidation hooks. Hooks run
// after the swap; stale cache entries are additionally rejected by version
// checks at read time.
func (s *Store) publish(snap *Snapshot) {
	s.active.Store(snap)
	s.swapMu.Lock()
	hooks := make([]func(), len(s.onSwap))
	copy(hooks, s.onSwap)
	s.swapMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
