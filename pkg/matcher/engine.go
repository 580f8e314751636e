package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/perbu/advomatch/pkg/advocate"
)

// DefaultLimit is the number of advocates returned when the caller has no preference.
const DefaultLimit = 3

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("empty query")

// Engine ranks the advocates in an Index against free-text queries.
// It embeds queries with the same embedder the index was built with.
type Engine struct {
	index  *Index
	logger *slog.Logger
}

// NewEngine creates an engine over index.
func NewEngine(index *Index, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{index: index, logger: logger}
}

// Index returns the engine's index.
func (e *Engine) Index() *Index { return e.index }

// Search returns up to limit advocates, most similar first.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]advocate.Advocate, error) {
	results, err := e.SearchScored(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	advocates := make([]advocate.Advocate, len(results))
	for n, r := range results {
		advocates[n] = r.Advocate
	}
	return advocates, nil
}

// SearchScored is Search with the similarity score of each hit.
// Equal scores keep the index order.
func (e *Engine) SearchScored(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		return []Result{}, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	if err := e.index.EnsureReady(ctx); err != nil {
		e.logger.Warn("search failed, index not ready", "error", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	entries, dim := e.index.snapshot()
	if len(entries) == 0 {
		return []Result{}, nil
	}

	queryEmbedding, err := e.index.embedder.Embed(ctx, query)
	if err != nil {
		e.logger.Warn("search failed, could not embed query", "error", err)
		return nil, fmt.Errorf("search: embed query: %w", err)
	}
	if len(queryEmbedding) != dim {
		panic(&ContractViolation{A: len(queryEmbedding), B: dim})
	}

	results := make([]Result, len(entries))
	for n, entry := range entries {
		results[n] = Result{
			Advocate: entry.Advocate,
			Score:    CosineSimilarity(queryEmbedding, entry.Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit < len(results) {
		results = results[:limit]
	}

	e.logger.Debug("search completed",
		"results", len(results),
		"candidates", len(entries),
		"elapsed", time.Since(start))
	return results, nil
}
