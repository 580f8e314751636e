package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/perbu/advomatch/pkg/embedder"
	"github.com/perbu/advomatch/pkg/matcher"
)

// OpenAIConfig holds the credentials and endpoint for the embeddings API.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

// EmbeddingConfig controls how advocate profiles and queries are embedded.
type EmbeddingConfig struct {
	Model         string
	Concurrency   int
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// SourceConfig selects where advocates are loaded from.
type SourceConfig struct {
	// DatabasePath is the SQLite advocates store. Takes precedence over AdvocatesFile.
	DatabasePath string
	// AdvocatesFile is a JSON file or directory of JSON files.
	AdvocatesFile string
}

// Config is the full application configuration.
type Config struct {
	OpenAI      OpenAIConfig
	Embedding   EmbeddingConfig
	Source      SourceConfig
	SearchLimit int
	LogLevel    slog.Level
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var p parser
	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Embedding: EmbeddingConfig{
			Model:         getEnv("EMBEDDING_MODEL", embedder.DefaultModel),
			Concurrency:   p.getInt("EMBED_CONCURRENCY", matcher.DefaultConcurrency),
			Timeout:       p.getDuration("EMBED_TIMEOUT", 0),
			RetryAttempts: p.getInt("EMBED_RETRY_ATTEMPTS", 1),
			RetryDelay:    p.getDuration("EMBED_RETRY_DELAY", 200*time.Millisecond),
		},
		Source: SourceConfig{
			DatabasePath:  getEnv("DATABASE_PATH", ""),
			AdvocatesFile: getEnv("ADVOCATES_FILE", ""),
		},
		SearchLimit: p.getInt("SEARCH_LIMIT", matcher.DefaultLimit),
		LogLevel:    p.getLevel("LOG_LEVEL", slog.LevelInfo),
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Embedding.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("EMBED_CONCURRENCY must be at least 1, got %d", c.Embedding.Concurrency))
	}
	if c.Embedding.Timeout < 0 {
		errs = append(errs, fmt.Errorf("EMBED_TIMEOUT must not be negative, got %s", c.Embedding.Timeout))
	}
	if c.Embedding.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("EMBED_RETRY_ATTEMPTS must be at least 1, got %d", c.Embedding.RetryAttempts))
	}
	if c.SearchLimit < 1 {
		errs = append(errs, fmt.Errorf("SEARCH_LIMIT must be at least 1, got %d", c.SearchLimit))
	}
	if c.Embedding.Model == "" {
		errs = append(errs, errors.New("EMBEDDING_MODEL must not be empty"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser collects malformed values instead of silently using defaults.
type parser struct {
	errs []error
}

func (p *parser) getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func (p *parser) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func (p *parser) getLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return l
}
