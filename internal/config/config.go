// ABOUTME: Centralized configuration for the studygen pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the study content pipeline
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	MaxBatchSize   int

	// Generation settings
	Temperature float32
	MaxTokens   int
	QuizFormat  string // "marker" or "json"

	// Chunking settings
	ChunkTargetSize int
	ChunkOverlap    int

	// Retrieval settings
	TopK            int
	VectorDimension int

	// Snapshot settings
	SnapshotPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("STUDYGEN_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("STUDYGEN_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MaxBatchSize:    getEnvInt("STUDYGEN_EMBED_BATCH_SIZE", 64),
		Temperature:     float32(getEnvFloat("STUDYGEN_TEMPERATURE", 0.3)),
		MaxTokens:       getEnvInt("STUDYGEN_MAX_TOKENS", 2048),
		QuizFormat:      getEnv("STUDYGEN_QUIZ_FORMAT", "marker"),
		ChunkTargetSize: getEnvInt("STUDYGEN_CHUNK_SIZE", 1000),
		ChunkOverlap:    getEnvInt("STUDYGEN_CHUNK_OVERLAP", 200),
		TopK:            getEnvInt("STUDYGEN_TOP_K", 5),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		SnapshotPath:    os.Getenv("STUDYGEN_DB_PATH"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("OPENAI_RETRY_DELAY must not be negative, got %v", c.RetryDelay)
	}
	if c.ChunkTargetSize <= 0 {
		return fmt.Errorf("STUDYGEN_CHUNK_SIZE must be positive, got %d", c.ChunkTargetSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkTargetSize {
		return fmt.Errorf("STUDYGEN_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("STUDYGEN_EMBED_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("STUDYGEN_TOP_K must be positive, got %d", c.TopK)
	}
	if c.QuizFormat != "marker" && c.QuizFormat != "json" {
		return fmt.Errorf("STUDYGEN_QUIZ_FORMAT must be \"marker\" or \"json\", got %q", c.QuizFormat)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
