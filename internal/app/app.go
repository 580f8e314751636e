// Package app wires the matcher from configuration. It is the only place
// that knows which source and embedder the process uses.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/perbu/advomatch/internal/config"
	"github.com/perbu/advomatch/pkg/embedder"
	"github.com/perbu/advomatch/pkg/matcher"
	"github.com/perbu/advomatch/pkg/source"
)

// OfflineDimension is the vector size of the hashing embedder used in offline mode.
const OfflineDimension = 512

// Options adjusts wiring beyond what the environment configures.
type Options struct {
	// Offline uses the hashing embedder instead of the OpenAI API.
	Offline bool
}

// App owns the engine and whatever the source holds open.
type App struct {
	Engine *matcher.Engine
	closer io.Closer
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// New builds the engine. The index is created uninitialized; the first
// search populates it.
func New(cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	emb, err := NewEmbedder(cfg, opts)
	if err != nil {
		return nil, err
	}

	src, closer, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	index := matcher.NewIndex(source.WithFallback(src, logger), emb,
		matcher.WithConcurrency(cfg.Embedding.Concurrency),
		matcher.WithLogger(logger))

	return &App{
		Engine: matcher.NewEngine(index, logger),
		closer: closer,
	}, nil
}

// NewEmbedder returns the configured embedder, wrapped for retries when
// EMBED_RETRY_ATTEMPTS > 1.
func NewEmbedder(cfg *config.Config, opts Options) (embedder.Embedder, error) {
	if opts.Offline {
		return embedder.NewHashEmbedder(OfflineDimension), nil
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	emb, err := embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.Embedding.Model,
		Timeout: cfg.Embedding.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}
	return embedder.NewRetrying(emb, cfg.Embedding.RetryAttempts, cfg.Embedding.RetryDelay), nil
}

// NewSource returns the primary advocate source, or nil when none is
// configured. The closer is nil unless the source holds resources.
// A store that cannot be opened is logged and served as a source that
// always fails, so the fallback dataset takes over.
func NewSource(cfg *config.Config, logger *slog.Logger) (source.Source, io.Closer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch {
	case cfg.Source.DatabasePath != "":
		store, err := source.OpenSQLite(cfg.Source.DatabasePath)
		if err != nil {
			err = fmt.Errorf("opening advocate store: %w", err)
			logger.Warn("advocate store unavailable", "path", cfg.Source.DatabasePath, "error", err)
			return source.Unavailable{Err: err}, nil, nil
		}
		return store, store, nil
	case cfg.Source.AdvocatesFile != "":
		abs, err := filepath.Abs(cfg.Source.AdvocatesFile)
		if err != nil {
			return nil, nil, err
		}
		dir, name := filepath.Split(abs)
		return source.File{FS: os.DirFS(dir), Path: name}, nil, nil
	default:
		return nil, nil, nil
	}
}
