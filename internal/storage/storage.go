// Package storage defines the persistence interface for word records.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/ruigo/internal/models"
)

// ErrNotFound is returned when a word is not in the store.
var ErrNotFound = errors.New("word not found")

// Storage defines word record persistence operations.
type Storage interface {
	// UpsertWord inserts a word record or replaces it wholesale.
	UpsertWord(ctx context.Context, w *models.Word) error
	// GetWord returns the record for an exact, case-sensitive word.
	// Returns ErrNotFound when absent.
	GetWord(ctx context.Context, word string) (*models.Word, error)
	// ListAllWords returns every stored record. Used to build the corpus snapshot.
	ListAllWords(ctx context.Context) ([]*models.Word, error)
	// ListWords returns records ordered by word with offset and limit.
	ListWords(ctx context.Context, offset, limit int) ([]*models.Word, error)
	DeleteWord(ctx context.Context, word string) error
	DeleteAllWords(ctx context.Context) error
	CountWords(ctx context.Context) (int64, error)
	Close() error
}
