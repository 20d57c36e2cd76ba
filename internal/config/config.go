package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every tunable of the service. Values come from the
// environment with sensible local-development defaults; a .env file in the
// working directory is honored when present.
type Config struct {
	ServerAddr string

	DatasetPath string

	StoreBackend string // "sqlite" or "postgres"
	IndexDir     string
	PgConn       string

	LLMBaseURL     string
	LLMAPIKey      string
	EmbedModel     string
	EmbedDim       int
	ChatModel      string
	LLMTimeoutSecs int

	TopK         int
	ChunkSize    int
	ChunkOverlap int
}

// Load reads the configuration and validates it. Invalid values are a
// startup error, not something to discover on the first request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr:     getenv("SERVER_ADDR", ":8000"),
		DatasetPath:    getenv("DATASET_PATH", "data/data.csv"),
		StoreBackend:   getenv("STORE_BACKEND", "sqlite"),
		IndexDir:       getenv("INDEX_DIR", "data/index"),
		PgConn:         getenv("PG_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=mindmate sslmode=disable"),
		LLMBaseURL:     getenv("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:      getenv("LLM_API_KEY", "not-needed"),
		EmbedModel:     getenv("EMBED_MODEL", "nomic-embed-text"),
		ChatModel:      getenv("LLM_MODEL", "llama3.2"),
		EmbedDim:       getenvInt("EMBED_DIM", 768),
		LLMTimeoutSecs: getenvInt("LLM_TIMEOUT_SECS", 60),
		TopK:           getenvInt("TOP_K", 3),
		ChunkSize:      getenvInt("CHUNK_SIZE", 500),
		ChunkOverlap:   getenvInt("CHUNK_OVERLAP", 50),
	}

	if cfg.StoreBackend != "sqlite" && cfg.StoreBackend != "postgres" {
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("config: TOP_K must be positive, got %d", cfg.TopK)
	}
	if cfg.EmbedDim <= 0 {
		return nil, fmt.Errorf("config: EMBED_DIM must be positive, got %d", cfg.EmbedDim)
	}
	if cfg.LLMTimeoutSecs <= 0 {
		return nil, fmt.Errorf("config: LLM_TIMEOUT_SECS must be positive, got %d", cfg.LLMTimeoutSecs)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkSize <= cfg.ChunkOverlap {
		return nil, fmt.Errorf("config: CHUNK_SIZE (%d) must exceed CHUNK_OVERLAP (%d)", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
