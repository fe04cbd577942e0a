package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/keyword"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/storage"
)

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	record, err := s.storage.GetWord(r.Context(), word)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondNotFound(w, word)
			return
		}
		s.logger.Error("get word failed", zap.String("word", word), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	query, err := similarQueryFromRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("similar request",
		zap.String("word", query.Word),
		zap.String("pos", string(query.POS)),
		zap.Int("limit", query.Limit),
	)

	response, err := s.engine.FindSimilar(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownWord):
			s.respondNotFound(w, query.Word)
		case errors.Is(err, models.ErrSourceUnavailable):
			s.logger.Warn("embedding source unavailable", zap.String("word", query.Word), zap.Error(err))
			s.respondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.logger.Error("similarity query failed", zap.String("word", query.Word), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// similarQueryFromRequest builds a SimilarityQuery from URL and query params.
// An absent min_similarity means unbounded, not zero.
func similarQueryFromRequest(r *http.Request) (*models.SimilarityQuery, error) {
	query := &models.SimilarityQuery{
		Word:          chi.URLParam(r, "word"),
		MinSimilarity: models.NoMinSimilarity,
	}

	params := r.URL.Query()
	pos, err := models.ParsePOSFilter(params.Get("pos"))
	if err != nil {
		return nil, err
	}
	query.POS = pos

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("limit must be an integer")
		}
		query.Limit = limit
	}
	if raw := params.Get("min_similarity"); raw != "" {
		minSim, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("min_similarity must be a number")
		}
		if minSim > 1 {
			return nil, errors.New("min_similarity must not exceed 1")
		}
		query.MinSimilarity = minSim
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return query, nil
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	offset := 0
	limit := models.DefaultLimit
	if raw := params.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = n
	}
	if raw := params.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > models.MaxLimit {
			n = models.MaxLimit
		}
		limit = n
	}

	ctx := r.Context()
	words, err := s.storage.ListWords(ctx, offset, limit)
	if err != nil {
		s.logger.Error("list words failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.storage.CountWords(ctx)
	if err != nil {
		s.logger.Error("count words failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"words":  words,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.respondError(w, http.StatusNotImplemented, "word index not enabled")
		return
	}
	params := r.URL.Query()
	token := params.Get("q")
	if token == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	mode := keyword.ModeExact
	switch params.Get("mode") {
	case "", "exact":
	case "prefix":
		mode = keyword.ModePrefix
	default:
		s.respondError(w, http.StatusBadRequest, "mode must be exact or prefix")
		return
	}
	pos, err := models.ParsePOSFilter(params.Get("pos"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := 0
	if raw := params.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	hits, err := s.index.Search(r.Context(), keyword.SearchQuery{
		Token: token,
		Mode:  mode,
		POS:   pos,
		Limit: limit,
	})
	if err != nil {
		s.logger.Error("search failed", zap.String("q", token), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query": token,
		"mode":  string(mode),
		"hits":  hits,
		"total": len(hits),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.suggester != nil {
		if err := s.suggester.Refresh(); err != nil {
			s.logger.Warn("suggester refresh failed", zap.Error(err))
		}
	}
	s.logger.Info("corpus reloaded",
		zap.Uint64("version", snap.Version()),
		zap.Int("size", snap.Size()),
	)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "reloaded",
		"version": snap.Version(),
		"words":   snap.Size(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wordCount, err := s.storage.CountWords(ctx)
	if err != nil {
		s.logger.Error("status: count words failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap := s.engine.Snapshot()
	cacheLen, cacheHits, cacheMisses := s.engine.CacheStats()

	resp := map[string]interface{}{
		"words": wordCount,
		"snapshot": map[string]interface{}{
			"version":    snap.Version(),
			"size":       snap.Size(),
			"dimensions": snap.Dimensions(),
		},
		"cache": map[string]interface{}{
			"entries": cacheLen,
			"hits":    cacheHits,
			"misses":  cacheMisses,
		},
	}

	if s.index != nil {
		if indexed, err := s.index.WordCount(); err == nil {
			resp["indexed_words"] = indexed
		}
	}

	configInfo := map[string]interface{}{
		"embedding_dimensions": s.config.Embedding.Dimensions,
		"default_limit":        s.config.Similarity.DefaultLimit,
		"max_limit":            s.config.Similarity.MaxLimit,
		"database_path":        s.config.Storage.DatabasePath,
		"bleve_index_path":     s.config.Storage.BleveIndexPath,
		"corpus_path":          s.config.Storage.CorpusPath,
	}
	if diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.BleveIndexPath,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

// respondNotFound reports an unknown word, with nearby vocabulary words as
// suggestions when a suggester is wired in.
func (s *Server) respondNotFound(w http.ResponseWriter, word string) {
	body := map[string]interface{}{"error": "unknown word: " + word}
	if s.suggester != nil {
		if suggestions := s.suggester.Suggest(word); len(suggestions) > 0 {
			words := make([]string, len(suggestions))
			for i, sg := range suggestions {
				words[i] = sg.Word
			}
			body["suggestions"] = words
		}
	}
	s.respondJSON(w, http.StatusNotFound, body)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
