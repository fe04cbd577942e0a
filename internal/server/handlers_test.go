package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/corpus"
	"github.com/hyperjump/ruigo/internal/embedding"
	"github.com/hyperjump/ruigo/internal/engine"
	"github.com/hyperjump/ruigo/internal/keyword"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/storage"
)

// unavailableEmbedder simulates an unreachable embedding source.
type unavailableEmbedder struct{}

func (e *unavailableEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	return nil, context.DeadlineExceeded
}
func (e *unavailableEmbedder) EmbedBatch(ctx context.Context, _ []string) ([][]float32, error) {
	return nil, context.DeadlineExceeded
}
func (e *unavailableEmbedder) Dimensions() int { return 2 }
func (e *unavailableEmbedder) Close() error    { return nil }

func newTestServer(t *testing.T, embedder embedding.Embedder) *Server {
	t.Helper()
	dir := t.TempDir()

	st, err := storage.NewSQLiteStorage(filepath.Join(dir, "words.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })

	idx, err := keyword.NewBleveIndex(filepath.Join(dir, "bleve"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = idx.Close() })

	ctx := context.Background()
	words := []*models.Word{
		{Word: "dog", IsNoun: true, Embedding: []float32{1, 0}},
		{Word: "cat", IsNoun: true, Embedding: []float32{0.9, 0.1}},
		{Word: "car", IsNoun: true, Embedding: []float32{0, 1}},
		{Word: "drive", IsVerb: true, Embedding: []float32{0.1, 0.9}},
	}
	for _, word := range words {
		if err := st.UpsertWord(ctx, word); err != nil {
			t.Fatal(err)
		}
		if err := idx.Index(ctx, word); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Embedding.TimeoutMs = 50
	cfg.Storage.DatabasePath = filepath.Join(dir, "words.db")
	cfg.Storage.BleveIndexPath = filepath.Join(dir, "bleve")

	if embedder == nil {
		embedder = embedding.NewStaticEmbedder(2, nil)
	}
	eng := engine.NewEngine(st, corpus.NewStore(nil), embedder, cfg, nil)
	if _, err := eng.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	return NewServer(eng, st, idx, keyword.NewSuggester(idx), cfg, zap.NewNop())
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "ok" {
		t.Errorf("body=%v", body)
	}
}

func TestHandleGetWord(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/dog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["word"] != "dog" {
		t.Errorf("body=%v", body)
	}
}

func TestHandleGetWord_NotFound(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/zebra")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestHandleSimilar(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/dog/similar?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp models.SimilarityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 || resp.Results[0].Word != "cat" {
		t.Errorf("results=%v", resp.Results)
	}
}

func TestHandleSimilar_POSFilter(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/car/similar?pos=verb")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp models.SimilarityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Word != "drive" {
		t.Errorf("results=%v", resp.Results)
	}
}

func TestHandleSimilar_MinSimilarity(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/dog/similar?min_similarity=0.99")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp models.SimilarityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Word != "cat" {
		t.Errorf("results=%v", resp.Results)
	}
}

func TestHandleSimilar_BadParams(t *testing.T) {
	s := newTestServer(t, nil)
	for _, target := range []string{
		"/api/v1/words/dog/similar?pos=adjective",
		"/api/v1/words/dog/similar?limit=abc",
		"/api/v1/words/dog/similar?min_similarity=abc",
		"/api/v1/words/dog/similar?min_similarity=1.5",
	} {
		rec := doRequest(t, s, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status=%d", target, rec.Code)
		}
	}
}

func TestHandleSimilar_UnknownWordWithSuggestions(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/dogg/similar")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	suggestions, ok := body["suggestions"].([]interface{})
	if !ok || len(suggestions) == 0 {
		t.Fatalf("expected suggestions, body=%v", body)
	}
	if suggestions[0] != "dog" {
		t.Errorf("suggestions=%v", suggestions)
	}
}

func TestHandleSimilar_SourceUnavailable(t *testing.T) {
	s := newTestServer(t, &unavailableEmbedder{})
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words/zebra/similar")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleListWords(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/words?limit=2&offset=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 4 {
		t.Errorf("total=%v", body["total"])
	}
	words := body["words"].([]interface{})
	if len(words) != 2 {
		t.Errorf("words=%v", words)
	}
}

func TestHandleListWords_BadParams(t *testing.T) {
	s := newTestServer(t, nil)
	for _, target := range []string{
		"/api/v1/words?offset=-1",
		"/api/v1/words?limit=0",
		"/api/v1/words?limit=abc",
	} {
		rec := doRequest(t, s, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status=%d", target, rec.Code)
		}
	}
}

func TestHandleSearch_Exact(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/search?q=dog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	hits := body["hits"].([]interface{})
	if len(hits) != 1 {
		t.Errorf("hits=%v", hits)
	}
}

func TestHandleSearch_Prefix(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/search?q=ca&mode=prefix")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body := decodeBody(t, rec)
	hits := body["hits"].([]interface{})
	if len(hits) != 2 {
		t.Errorf("hits=%v", hits)
	}
}

func TestHandleSearch_BadParams(t *testing.T) {
	s := newTestServer(t, nil)
	for _, target := range []string{
		"/api/v1/search",
		"/api/v1/search?q=dog&mode=fuzzy",
		"/api/v1/search?q=dog&pos=adverb",
		"/api/v1/search?q=dog&limit=-1",
	} {
		rec := doRequest(t, s, http.MethodGet, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status=%d", target, rec.Code)
		}
	}
}

func TestHandleReload(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/reload")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "reloaded" {
		t.Errorf("body=%v", body)
	}
	if body["words"].(float64) != 4 {
		t.Errorf("words=%v", body["words"])
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["words"].(float64) != 4 {
		t.Errorf("words=%v", body["words"])
	}
	snapshot := body["snapshot"].(map[string]interface{})
	if snapshot["size"].(float64) != 4 {
		t.Errorf("snapshot=%v", snapshot)
	}
	if _, ok := body["config"]; !ok {
		t.Error("config section missing")
	}
}
