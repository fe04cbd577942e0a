package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/ruigo/data/db/words.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/ruigo/data/indices/bleve"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/ruigo/data/models/fasttext-300d.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 300
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 16
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.TimeoutMs == 0 {
		cfg.Embedding.TimeoutMs = 2000
	}
	if cfg.Similarity.DefaultLimit == 0 {
		cfg.Similarity.DefaultLimit = 10
	}
	if cfg.Similarity.MaxLimit == 0 {
		cfg.Similarity.MaxLimit = 100
	}
	if cfg.Similarity.DefaultMinSimilarity == 0 {
		cfg.Similarity.DefaultMinSimilarity = -1.0
	}
	if cfg.Similarity.CacheCapacity == 0 {
		cfg.Similarity.CacheCapacity = 1024
	}
}
