// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/ruigo/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		word TEXT PRIMARY KEY,
		is_noun INTEGER NOT NULL DEFAULT 0,
		is_verb INTEGER NOT NULL DEFAULT 0,
		embedding BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_words_is_noun ON words(is_noun);
	CREATE INDEX IF NOT EXISTS idx_words_is_verb ON words(is_verb);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertWord inserts a record or replaces an existing one wholesale.
func (s *SQLiteStorage) UpsertWord(ctx context.Context, w *models.Word) error {
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (word, is_noun, is_verb, embedding, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET
		   is_noun = excluded.is_noun,
		   is_verb = excluded.is_verb,
		   embedding = excluded.embedding,
		   updated_at = excluded.updated_at`,
		w.Word, boolToInt(w.IsNoun), boolToInt(w.IsVerb), encodeEmbedding(w.Embedding), w.CreatedAt, w.UpdatedAt,
	)
	return err
}

// GetWord returns the record for an exact word, or ErrNotFound.
func (s *SQLiteStorage) GetWord(ctx context.Context, word string) (*models.Word, error) {
	var (
		w       models.Word
		noun    int
		verb    int
		embBlob []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT word, is_noun, is_verb, embedding, created_at, updated_at
		 FROM words WHERE word = ?`, word,
	).Scan(&w.Word, &noun, &verb, &embBlob, &w.CreatedAt, &w.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, word)
	}
	if err != nil {
		return nil, err
	}
	w.IsNoun = noun != 0
	w.IsVerb = verb != 0
	w.Embedding = decodeEmbedding(embBlob)
	return &w, nil
}

// ListAllWords returns every stored record ordered by word.
func (s *SQLiteStorage) ListAllWords(ctx context.Context) ([]*models.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, is_noun, is_verb, embedding, created_at, updated_at
		 FROM words ORDER BY word`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

// ListWords returns records ordered by word with offset and limit.
func (s *SQLiteStorage) ListWords(ctx context.Context, offset, limit int) ([]*models.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, is_noun, is_verb, embedding, created_at, updated_at
		 FROM words ORDER BY word LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWords(rows)
}

func scanWords(rows *sql.Rows) ([]*models.Word, error) {
	var words []*models.Word
	for rows.Next() {
		var (
			w       models.Word
			noun    int
			verb    int
			embBlob []byte
		)
		if err := rows.Scan(&w.Word, &noun, &verb, &embBlob, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		w.IsNoun = noun != 0
		w.IsVerb = verb != 0
		w.Embedding = decodeEmbedding(embBlob)
		words = append(words, &w)
	}
	return words, rows.Err()
}

// DeleteWord removes a word by its exact token.
func (s *SQLiteStorage) DeleteWord(ctx context.Context, word string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE word = ?`, word)
	return err
}

// DeleteAllWords removes every record. Used by the loader's clear option.
func (s *SQLiteStorage) DeleteAllWords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM words`)
	return err
}

// CountWords returns the number of stored records.
func (s *SQLiteStorage) CountWords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// encodeEmbedding packs a float32 vector as little-endian bytes for BLOB storage.
func encodeEmbedding(v []float32) []byte {
	const size = 4
	out := make([]byte, len(v)*size)
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(x))
	}
	return out
}

// decodeEmbedding unpacks a little-endian BLOB back into a float32 vector.
func decodeEmbedding(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
