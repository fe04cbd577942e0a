// Package config provides configuration loading and structs for the Ruigo server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Similarity SimilarityConfig `yaml:"similarity"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the word database, lookup index, and corpus file.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
	// CorpusPath is the CSV corpus file the loader reads. When set, the
	// server watches it and reloads on change.
	CorpusPath string `yaml:"corpus_path"`
}

// EmbeddingConfig holds settings for the out-of-vocabulary embedding source.
type EmbeddingConfig struct {
	ModelPath string `yaml:"model_path"`
	// Dimensions is the embedding dimension the model produces. It must
	// match the corpus dimension; records that disagree are rejected at load.
	Dimensions int `yaml:"dimensions"`
	MaxTokens  int `yaml:"max_tokens"`
	CacheSize  int `yaml:"cache_size"`
	// TimeoutMs bounds a single embed call; expiry surfaces as a retryable
	// source-unavailable error.
	TimeoutMs int `yaml:"timeout_ms"`
}

// SimilarityConfig holds similarity query defaults and result cache sizing.
type SimilarityConfig struct {
	DefaultLimit         int     `yaml:"default_limit"`
	MaxLimit             int     `yaml:"max_limit"`
	DefaultMinSimilarity float64 `yaml:"default_min_similarity"`
	CacheCapacity        int     `yaml:"cache_capacity"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	if cfg.Storage.CorpusPath != "" {
		cfg.Storage.CorpusPath = expandPath(cfg.Storage.CorpusPath, configDir)
	}
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
