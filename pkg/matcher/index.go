package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/perbu/advomatch/pkg/embedder"
	"github.com/perbu/advomatch/pkg/source"
)

// ErrIndexFailed wraps the cause of a failed population. A failed index
// stays failed for the lifetime of the process.
var ErrIndexFailed = errors.New("similarity index failed")

// DefaultConcurrency bounds the embedding calls made while populating.
const DefaultConcurrency = 10

// Index caches one embedding per advocate. It is populated at most once,
// on the first EnsureReady call, and is read-only afterwards.
type Index struct {
	source      source.Source
	embedder    embedder.Embedder
	logger      *slog.Logger
	concurrency int

	done chan struct{} // closed when population resolves

	mu      sync.Mutex
	state   State
	err     error
	entries []Entry
	dim     int
}

// Option configures an Index.
type Option func(*Index)

// WithConcurrency sets how many embedding calls population may have in flight.
func WithConcurrency(n int) Option {
	return func(i *Index) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Index) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewIndex creates an uninitialized index. src is wrapped with
// source.WithFallback unless it already is one, so population always has
// a candidate set. src may be nil.
func NewIndex(src source.Source, emb embedder.Embedder, opts ...Option) *Index {
	i := &Index{
		embedder:    emb,
		logger:      slog.Default(),
		concurrency: DefaultConcurrency,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(i)
	}
	if fb, ok := src.(*source.Fallback); ok {
		i.source = fb
	} else {
		i.source = source.WithFallback(src, i.logger)
	}
	return i
}

// EnsureReady populates the index on first use and blocks until the one
// population attempt resolves. Every caller sees the same outcome.
// Cancelling ctx abandons the wait only; population keeps running for the
// other callers.
func (i *Index) EnsureReady(ctx context.Context) error {
	i.mu.Lock()
	switch i.state {
	case Ready:
		i.mu.Unlock()
		return nil
	case Failed:
		err := i.err
		i.mu.Unlock()
		return err
	case Uninitialized:
		i.state = Initializing
		go i.populate(context.WithoutCancel(ctx))
	}
	i.mu.Unlock()

	select {
	case <-i.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// State reports the lifecycle state.
func (i *Index) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Entries returns the cached entries in source order, or nil unless the
// index is Ready. The embeddings are shared and must not be modified.
func (i *Index) Entries() []Entry {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.state != Ready {
		return nil
	}
	return slices.Clone(i.entries)
}

// Dimension is the vector length of every entry, 0 until Ready or when empty.
func (i *Index) Dimension() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.dim
}

func (i *Index) snapshot() ([]Entry, int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.entries, i.dim
}

func (i *Index) populate(ctx context.Context) {
	start := time.Now()
	entries, dim, err := i.build(ctx)

	i.mu.Lock()
	if err != nil {
		i.state = Failed
		i.err = fmt.Errorf("%w: %w", ErrIndexFailed, err)
	} else {
		i.state = Ready
		i.entries = entries
		i.dim = dim
	}
	i.mu.Unlock()
	close(i.done)

	if err != nil {
		i.logger.Error("failed to initialize similarity index", "error", err)
		return
	}
	i.logger.Info("similarity index initialized",
		"advocates", len(entries),
		"dimension", dim,
		"model", i.embedder.ModelInfo(),
		"elapsed", time.Since(start))
}

func (i *Index) build(ctx context.Context) ([]Entry, int, error) {
	advocates, err := i.source.ListAdvocates(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list advocates: %w", err)
	}
	if len(advocates) == 0 {
		return []Entry{}, 0, nil
	}

	texts := make([]string, len(advocates))
	for n, a := range advocates {
		texts[n] = a.Description()
	}

	vectors, err := embedder.EmbedAll(ctx, i.embedder, texts, i.concurrency, func(done, total int) {
		i.logger.Debug("embedding advocates", "done", done, "total", total)
	})
	if err != nil {
		return nil, 0, err
	}

	dim := len(vectors[0])
	entries := make([]Entry, len(advocates))
	for n, a := range advocates {
		if len(vectors[n]) != dim || dim == 0 {
			return nil, 0, &embedder.EmbeddingError{
				Kind:  embedder.KindMalformed,
				Model: i.embedder.ModelInfo(),
				Err:   fmt.Errorf("advocate %d: got %d dimensions, want %d", a.ID, len(vectors[n]), dim),
			}
		}
		entries[n] = Entry{Advocate: a, Embedding: vectors[n]}
	}
	return entries, dim, nil
}
