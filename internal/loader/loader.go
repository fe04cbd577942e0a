// Package loader imports corpus CSV files into storage and the word index.
package loader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/keyword"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/storage"
)

// Options controls a load run.
type Options struct {
	// DryRun parses and validates the file without writing anything.
	DryRun bool
	// Limit stops after this many data rows when positive.
	Limit int
	// Clear empties storage and the word index before loading.
	Clear bool
}

// Stats summarizes a load run.
type Stats struct {
	RunID    string        `json:"run_id"`
	Total    int           `json:"total"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Errors   int           `json:"errors"`
	Duration time.Duration `json:"duration"`
}

// Loader reads corpus CSV files into the word store and vocabulary index.
type Loader struct {
	storage storage.Storage
	index   keyword.WordIndex
	logger  *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for per-row warnings and run summaries.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a loader writing to st and idx.
// idx may be nil when no vocabulary index is maintained.
func NewLoader(st storage.Storage, idx keyword.WordIndex, opts ...LoaderOption) *Loader {
	ld := &Loader{storage: st, index: idx, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// expected CSV header columns
const (
	colWord = "word"
	colNoun = "noun"
	colVerb = "verb"
	colEmbd = "embd"
)

// LoadFile imports the corpus CSV at path. Rows that cannot be parsed are
// counted and logged, never fatal. Returns the run stats; the error is
// non-nil only when the file itself is unusable.
func (ld *Loader) LoadFile(ctx context.Context, path string, opts Options) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()
	return ld.Load(ctx, f, opts)
}

// Load imports corpus CSV rows from r. See LoadFile.
func (ld *Loader) Load(ctx context.Context, r io.Reader, opts Options) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: uuid.New().String()}
	logger := ld.logger.With(zap.String("run_id", stats.RunID))

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	if opts.Clear && !opts.DryRun {
		if err := ld.storage.DeleteAllWords(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear storage: %w", err)
		}
		if ld.index != nil {
			if err := ld.index.Reset(); err != nil {
				return nil, fmt.Errorf("failed to reset word index: %w", err)
			}
		}
		logger.Info("cleared existing corpus before load")
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if opts.Limit > 0 && stats.Total >= opts.Limit {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.Errors++
			logger.Warn("unreadable CSV row", zap.Int("line", line), zap.Error(err))
			continue
		}
		stats.Total++

		word, parseErr := parseRecord(record, cols)
		if parseErr != nil {
			stats.Skipped++
			logger.Warn("skipping corpus row",
				zap.Int("line", line),
				zap.Error(parseErr),
			)
			continue
		}

		if opts.DryRun {
			continue
		}
		created, err := ld.store(ctx, word)
		if err != nil {
			stats.Errors++
			logger.Warn("failed to store word",
				zap.Int("line", line),
				zap.String("word", word.Word),
				zap.Error(err),
			)
			continue
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	stats.Duration = time.Since(start)
	logger.Info("corpus load finished",
		zap.Int("total", stats.Total),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors),
		zap.Duration("duration", stats.Duration),
		zap.Bool("dry_run", opts.DryRun),
	)
	return stats, nil
}

// store upserts word and reports whether it was newly created.
func (ld *Loader) store(ctx context.Context, word *models.Word) (bool, error) {
	_, err := ld.storage.GetWord(ctx, word.Word)
	created := errors.Is(err, storage.ErrNotFound)
	if err != nil && !created {
		return false, err
	}
	if err := ld.storage.UpsertWord(ctx, word); err != nil {
		return false, err
	}
	if ld.index != nil {
		if err := ld.index.Index(ctx, word); err != nil {
			return false, fmt.Errorf("failed to index word: %w", err)
		}
	}
	return created, nil
}

// columnMap maps the expected columns to their positions in the header.
type columnMap struct {
	word, noun, verb, embd int
}

func headerColumns(header []string) (*columnMap, error) {
	cols := &columnMap{word: -1, noun: -1, verb: -1, embd: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colWord:
			cols.word = i
		case colNoun:
			cols.noun = i
		case colVerb:
			cols.verb = i
		case colEmbd:
			cols.embd = i
		}
	}
	if cols.word < 0 || cols.noun < 0 || cols.verb < 0 || cols.embd < 0 {
		return nil, fmt.Errorf("CSV header must contain word, noun, verb, embd columns, got %v", header)
	}
	return cols, nil
}

func parseRecord(record []string, cols *columnMap) (*models.Word, error) {
	max := cols.word
	for _, c := range []int{cols.noun, cols.verb, cols.embd} {
		if c > max {
			max = c
		}
	}
	if len(record) <= max {
		return nil, fmt.Errorf("row has %d fields, need %d", len(record), max+1)
	}

	token := cleanToken(record[cols.word])
	if token == "" {
		return nil, fmt.Errorf("empty word")
	}

	embedding, err := parseEmbedding(record[cols.embd])
	if err != nil {
		return nil, fmt.Errorf("word %q: %w", token, err)
	}

	return &models.Word{
		Word:      token,
		IsNoun:    parseFlag(record[cols.noun]),
		IsVerb:    parseFlag(record[cols.verb]),
		Embedding: embedding,
	}, nil
}

// cleanToken strips surrounding whitespace and stray quote characters that
// some corpus exports leave around the word column.
func cleanToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}

// parseFlag reads the Y/N part-of-speech markers. Anything other than an
// explicit yes is treated as no.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// parseEmbedding decodes the embd column, a JSON array of numbers.
func parseEmbedding(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty embedding")
	}
	var values []float32
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, fmt.Errorf("invalid embedding JSON: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}
	return values, nil
}
