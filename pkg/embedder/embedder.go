package embedder

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Embedder turns a text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ModelInfo() string
}

// ErrEmbedding matches every *EmbeddingError via errors.Is.
var ErrEmbedding = errors.New("embedding failed")

// ErrEmptyText is returned when asked to embed an empty string.
var ErrEmptyText = errors.New("cannot embed empty text")

// Kind tells a transport failure apart from a bad provider response.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// EmbeddingError is returned by embedders when the provider call fails or
// returns something unusable.
type EmbeddingError struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding %s (%s): %v", e.Kind, e.Model, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

func (e *EmbeddingError) Is(target error) bool { return target == ErrEmbedding }

// EmbedAll embeds texts with at most limit calls in flight. The result is
// indexed like texts regardless of completion order. The first failure
// cancels the remaining calls and no partial result is returned.
// progressFn, if set, is called with (completed, total) after each success.
func EmbedAll(ctx context.Context, e Embedder, texts []string, limit int, progressFn func(int, int)) ([][]float32, error) {
	if limit <= 0 {
		limit = 1
	}
	embeddings := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	completed := 0
	for i := range texts {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vec, err := e.Embed(gctx, texts[i])
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			embeddings[i] = vec

			mu.Lock()
			completed++
			if progressFn != nil {
				progressFn(completed, len(texts))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

// HashEmbedder is a deterministic offline embedder. Each lower-cased word is
// hashed into one of dim buckets, so texts sharing words point the same way.
// It needs no network and is good enough for local runs and tests.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hashing embedder of the given dimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashEmbedder{dim: dimension}
}

// Embed hashes the words of text into a normalized vector.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, &EmbeddingError{Kind: KindTransport, Model: e.ModelInfo(), Err: err}
	}

	vec := make([]float32, e.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		sum := h.Sum32()
		idx := int(sum % uint32(e.dim))
		if sum&(1<<31) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	l2normalize(vec)
	return vec, nil
}

// Dimension returns the embedding dimension
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// ModelInfo returns model information
func (e *HashEmbedder) ModelInfo() string {
	return "hash-embedder-v1"
}

// l2normalize normalizes a vector to unit length
func l2normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
