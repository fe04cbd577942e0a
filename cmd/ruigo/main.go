// Package main is the Ruigo CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/cli"
	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/corpus"
	"github.com/hyperjump/ruigo/internal/embedding"
	"github.com/hyperjump/ruigo/internal/engine"
	"github.com/hyperjump/ruigo/internal/keyword"
	"github.com/hyperjump/ruigo/internal/loader"
	"github.com/hyperjump/ruigo/internal/models"
	"github.com/hyperjump/ruigo/internal/server"
	"github.com/hyperjump/ruigo/internal/storage"
	"github.com/hyperjump/ruigo/internal/watcher"
	"github.com/hyperjump/ruigo/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/ruigo/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "ruigo server" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "similar":
		runSimilar()
	case "lookup":
		runLookup()
	case "search":
		runSearch()
	case "load":
		runLoad()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("ruigo version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (corpus reloads, query resolution, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	if snap, err := components.Engine.Reload(ctx); err != nil {
		logger.Warn("initial corpus load failed", zap.Error(err))
	} else {
		logger.Info("corpus loaded",
			zap.Uint64("version", snap.Version()),
			zap.Int("words", snap.Size()),
		)
	}
	if err := components.Suggester.Refresh(); err != nil {
		logger.Warn("suggester refresh failed", zap.Error(err))
	}

	var watchSvc *watcher.Watcher
	if cfg.Storage.CorpusPath != "" {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(cfg.Storage.CorpusPath, func(path string) {
			stats, err := components.Loader.LoadFile(context.Background(), path, loader.Options{})
			if err != nil {
				logger.Warn("corpus file load failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("corpus file loaded",
				zap.String("run_id", stats.RunID),
				zap.Int("created", stats.Created),
				zap.Int("updated", stats.Updated),
				zap.Int("skipped", stats.Skipped),
			)
			if _, err := components.Engine.Reload(context.Background()); err != nil {
				logger.Warn("reload after corpus change failed", zap.Error(err))
			}
			if err := components.Suggester.Refresh(); err != nil {
				logger.Warn("suggester refresh failed", zap.Error(err))
			}
		}, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Warn("corpus watcher not started", zap.String("path", cfg.Storage.CorpusPath), zap.Error(err))
			watchSvc = nil
		}
	}

	srv := server.NewServer(
		components.Engine,
		components.Storage,
		components.WordIndex,
		components.Suggester,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

// argsReorder moves any flags (and their values) that appear after positional
// arguments to the front so flag.Parse() sees them. Go's flag package stops at
// the first non-flag argument, so "ruigo similar dog -limit 5" would otherwise
// leave -limit unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSimilar() {
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	pos := fs.String("pos", "", "part-of-speech filter: noun or verb (empty = all)")
	limit := fs.Int("limit", models.DefaultLimit, "number of results")
	minSimilarity := fs.Float64("min-similarity", models.NoMinSimilarity, "minimum cosine similarity, in [-1, 1]")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ruigo similar [flags] <word>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	word := fs.Arg(0)

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	posFilter, err := models.ParsePOSFilter(*pos)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	query := &models.SimilarityQuery{
		Word:          word,
		POS:           posFilter,
		Limit:         *limit,
		MinSimilarity: *minSimilarity,
	}

	if *serverURL != "" {
		response, err := similarViaHTTP(*serverURL, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Similar failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSimilarityResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	components := mustInitialize(*configPath)
	defer components.Close()

	response, err := components.Engine.FindSimilar(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Similar failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSimilarityResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func similarViaHTTP(serverURL string, query *models.SimilarityQuery) (*models.SimilarityResponse, error) {
	params := url.Values{}
	if query.POS != models.POSAny {
		params.Set("pos", string(query.POS))
	}
	if query.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", query.Limit))
	}
	if query.MinSimilarity > models.NoMinSimilarity {
		params.Set("min_similarity", fmt.Sprintf("%g", query.MinSimilarity))
	}
	target := serverURL + "/api/v1/words/" + url.PathEscape(query.Word) + "/similar"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	resp, err := http.Get(target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeServerError(resp)
	}
	var response models.SimilarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// decodeServerError turns a non-200 API response into an error, carrying
// along any "did you mean" suggestions.
func decodeServerError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var body struct {
		Error       string   `json:"error"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(b, &body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if len(body.Suggestions) > 0 {
		return fmt.Errorf("%s (did you mean: %v)", body.Error, body.Suggestions)
	}
	return fmt.Errorf("%s", body.Error)
}

func runLookup() {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: ruigo lookup [flags] <word>")
		os.Exit(1)
	}
	word := fs.Arg(0)
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var record *models.Word
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/words/" + url.PathEscape(word))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", decodeServerError(resp))
			os.Exit(1)
		}
		record = &models.Word{}
		if err := json.NewDecoder(resp.Body).Decode(record); err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := mustInitialize(*configPath)
		defer components.Close()
		record, err = components.Engine.GetWord(context.Background(), word)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteWord(os.Stdout, record, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	mode := fs.String("mode", "exact", "match mode: exact or prefix")
	pos := fs.String("pos", "", "part-of-speech filter: noun or verb (empty = all)")
	limit := fs.Int("limit", models.DefaultLimit, "number of results")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: ruigo search [flags] <token>")
		os.Exit(1)
	}
	token := fs.Arg(0)

	if *serverURL != "" {
		params := url.Values{}
		params.Set("q", token)
		params.Set("mode", *mode)
		if *pos != "" {
			params.Set("pos", *pos)
		}
		params.Set("limit", fmt.Sprintf("%d", *limit))
		resp, err := http.Get(*serverURL + "/api/v1/search?" + params.Encode())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", decodeServerError(resp))
			os.Exit(1)
		}
		var out struct {
			Hits []*keyword.WordHit `json:"hits"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
			os.Exit(1)
		}
		printHits(out.Hits)
		return
	}

	posFilter, err := models.ParsePOSFilter(*pos)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	components := mustInitialize(*configPath)
	defer components.Close()

	hits, err := components.WordIndex.Search(context.Background(), keyword.SearchQuery{
		Token: token,
		Mode:  keyword.SearchMode(*mode),
		POS:   posFilter,
		Limit: *limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	printHits(hits)
}

func printHits(hits []*keyword.WordHit) {
	if len(hits) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for _, hit := range hits {
		tags := ""
		if hit.IsNoun {
			tags += " noun"
		}
		if hit.IsVerb {
			tags += " verb"
		}
		fmt.Printf("%s%s\n", hit.Word, tags)
	}
}

func runLoad() {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dryRun := fs.Bool("dry-run", false, "parse and validate without writing")
	limit := fs.Int("limit", 0, "stop after this many rows (0 = all)")
	clear := fs.Bool("clear", false, "empty storage and the word index before loading")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Storage.CorpusPath
	if fs.NArg() >= 1 {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Println("Usage: ruigo load [flags] <corpus.csv>")
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	stats, err := components.Loader.LoadFile(context.Background(), path, loader.Options{
		DryRun: *dryRun,
		Limit:  *limit,
		Clear:  *clear,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("run:     %s\n", stats.RunID)
	fmt.Printf("total:   %d\n", stats.Total)
	fmt.Printf("created: %d\n", stats.Created)
	fmt.Printf("updated: %d\n", stats.Updated)
	fmt.Printf("skipped: %d\n", stats.Skipped)
	fmt.Printf("errors:  %d\n", stats.Errors)
	if *dryRun {
		fmt.Println("(dry run, nothing written)")
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Words          int64                  `json:"words"`
	IndexedWords   *uint64                `json:"indexed_words,omitempty"`
	Snapshot       map[string]interface{} `json:"snapshot"`
	Cache          map[string]interface{} `json:"cache"`
	DiskUsageBytes *int64                 `json:"disk_usage_bytes,omitempty"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/status")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", decodeServerError(resp))
			os.Exit(1)
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()

		ctx := context.Background()
		if _, err := components.Engine.Reload(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Corpus load failed: %v\n", err)
			os.Exit(1)
		}
		wordCount, err := components.Storage.CountWords(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count words failed: %v\n", err)
			os.Exit(1)
		}
		snap := components.Engine.Snapshot()
		status = statusResponse{
			Words: wordCount,
			Snapshot: map[string]interface{}{
				"version":    snap.Version(),
				"size":       snap.Size(),
				"dimensions": snap.Dimensions(),
			},
			Config: map[string]interface{}{
				"embedding_dimensions": cfg.Embedding.Dimensions,
				"database_path":        cfg.Storage.DatabasePath,
				"bleve_index_path":     cfg.Storage.BleveIndexPath,
				"corpus_path":          cfg.Storage.CorpusPath,
			},
		}
		if indexed, err := components.WordIndex.WordCount(); err == nil {
			status.IndexedWords = &indexed
		}
		if diskBytes, err := storage.DiskUsageBytes(cfg.Storage.DatabasePath, cfg.Storage.BleveIndexPath); err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("words:              %d   # count of stored words\n", status.Words)
		if status.IndexedWords != nil {
			fmt.Printf("indexed_words:      %d   # count in the lookup index\n", *status.IndexedWords)
		}
		if status.Snapshot != nil {
			fmt.Printf("snapshot_version:   %v\n", status.Snapshot["version"])
			fmt.Printf("snapshot_size:      %v\n", status.Snapshot["size"])
			fmt.Printf("dimensions:         %v\n", status.Snapshot["dimensions"])
		}
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d\n", *status.DiskUsageBytes)
		}
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"embedding_dimensions", "database_path", "bleve_index_path", "corpus_path"} {
				if v, ok := status.Config[key]; ok && v != "" {
					fmt.Printf("%-20s%v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Storage   storage.Storage
	Embedder  embedding.Embedder
	WordIndex keyword.WordIndex
	Corpus    *corpus.Store
	Engine    *engine.Engine
	Suggester *keyword.Suggester
	Loader    *loader.Loader
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.WordIndex != nil {
		_ = c.WordIndex.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		if logger != nil {
			logger.Warn("embedding model unavailable, using mock embedder", zap.Error(err))
		}
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	wordIndex, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize word index: %w", err)
	}

	corpusStore := corpus.NewStore(logger)
	eng := engine.NewEngine(store, corpusStore, embedder, cfg, logger)
	suggester := keyword.NewSuggester(wordIndex)

	loaderOpts := []loader.LoaderOption{}
	if logger != nil {
		loaderOpts = append(loaderOpts, loader.WithLogger(logger))
	}
	ld := loader.NewLoader(store, wordIndex, loaderOpts...)

	return &Components{
		Storage:   store,
		Embedder:  embedder,
		WordIndex: wordIndex,
		Corpus:    corpusStore,
		Engine:    eng,
		Suggester: suggester,
		Loader:    ld,
	}, nil
}

// mustInitialize loads config and builds components for direct-storage
// subcommands, exiting on failure. The corpus snapshot is built from storage.
func mustInitialize(configPath string) *Components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if _, err := components.Engine.Reload(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Corpus load failed: %v\n", err)
		os.Exit(1)
	}
	return components
}

func printUsage() {
	fmt.Println(`ruigo - Word similarity engine

Usage:
  ruigo server [flags]            Start the HTTP server
  ruigo similar [flags] <word>    Find words similar to a word
  ruigo lookup [flags] <word>     Show a stored word record
  ruigo search [flags] <token>    Search the vocabulary (exact or prefix)
  ruigo load [flags] [corpus.csv] Load a corpus CSV into storage
  ruigo status [flags]            Show corpus/storage status
  ruigo version                   Show version
  ruigo help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/ruigo/config.yaml)
  --debug            Enable debug logging

Similar Flags:
  --server string           Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --pos string              Part-of-speech filter: noun or verb
  --limit int               Number of results (default: 10, max: 100)
  --min-similarity float    Minimum cosine similarity in [-1, 1] (default: -1, unbounded)
  --output string           Output format: text, compact, or json

Search Flags:
  --server string    Server URL (empty = direct storage)
  --mode string      Match mode: exact or prefix (default: exact)
  --pos string       Part-of-speech filter: noun or verb
  --limit int        Number of results

Load Flags:
  --dry-run          Parse and validate without writing
  --limit int        Stop after this many rows
  --clear            Empty storage and the word index first

Examples:
  ruigo server
  ruigo similar dog
  ruigo similar --pos noun --limit 5 dog
  ruigo similar --min-similarity 0.7 --output json dog
  ruigo search --mode prefix run
  ruigo load corpus.csv
  ruigo load --dry-run corpus.csv
  ruigo status --output json`)
}
