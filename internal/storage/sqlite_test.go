package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hyperjump/ruigo/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorage_UpsertGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	w := &models.Word{Word: "dog", IsNoun: true, Embedding: []float32{1, 0, 0.5}}
	if err := s.UpsertWord(ctx, w); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetWord(ctx, "dog")
	if err != nil {
		t.Fatal(err)
	}
	if got.Word != "dog" || !got.IsNoun || got.IsVerb {
		t.Errorf("got %+v", got)
	}
	if len(got.Embedding) != 3 || got.Embedding[0] != 1 || got.Embedding[2] != 0.5 {
		t.Errorf("embedding=%v", got.Embedding)
	}
}

func TestSQLiteStorage_GetMissing(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.GetWord(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_GetIsCaseSensitive(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	if err := s.UpsertWord(ctx, &models.Word{Word: "Dog", Embedding: []float32{1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetWord(ctx, "dog"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lookup must be case-sensitive, got %v", err)
	}
}

func TestSQLiteStorage_UpsertReplaces(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	if err := s.UpsertWord(ctx, &models.Word{Word: "run", IsVerb: true, Embedding: []float32{1, 2}}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertWord(ctx, &models.Word{Word: "run", IsNoun: true, IsVerb: true, Embedding: []float32{3, 4}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetWord(ctx, "run")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsNoun || !got.IsVerb {
		t.Errorf("flags not replaced: %+v", got)
	}
	if got.Embedding[0] != 3 || got.Embedding[1] != 4 {
		t.Errorf("embedding not replaced: %v", got.Embedding)
	}
	count, err := s.CountWords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count=%d, want 1", count)
	}
}

func TestSQLiteStorage_ListAllWords(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	for _, w := range []string{"cat", "apple", "dog"} {
		if err := s.UpsertWord(ctx, &models.Word{Word: w, Embedding: []float32{1}}); err != nil {
			t.Fatal(err)
		}
	}
	words, err := s.ListAllWords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("len=%d", len(words))
	}
	if words[0].Word != "apple" || words[1].Word != "cat" || words[2].Word != "dog" {
		t.Errorf("order: %s %s %s", words[0].Word, words[1].Word, words[2].Word)
	}
}

func TestSQLiteStorage_ListWordsPagination(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	for _, w := range []string{"a", "b", "c", "d"} {
		if err := s.UpsertWord(ctx, &models.Word{Word: w, Embedding: []float32{1}}); err != nil {
			t.Fatal(err)
		}
	}
	page, err := s.ListWords(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Word != "b" || page[1].Word != "c" {
		t.Errorf("page=%v", page)
	}
}

func TestSQLiteStorage_DeleteWord(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	if err := s.UpsertWord(ctx, &models.Word{Word: "gone", Embedding: []float32{1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteWord(ctx, "gone"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetWord(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStorage_DeleteAllWords(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	for _, w := range []string{"x", "y"} {
		if err := s.UpsertWord(ctx, &models.Word{Word: w, Embedding: []float32{1}}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DeleteAllWords(ctx); err != nil {
		t.Fatal(err)
	}
	count, _ := s.CountWords(ctx)
	if count != 0 {
		t.Errorf("count=%d after clear", count)
	}
}

func TestEmbeddingCodecRoundTrip(t *testing.T) {
	in := []float32{0, -1.5, 3.25, 1e-7}
	out := decodeEmbedding(encodeEmbedding(in))
	if len(out) != len(in) {
		t.Fatalf("len=%d", len(out))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("out[%d]=%v, want %v", i, out[i], in[i])
		}
	}
}
