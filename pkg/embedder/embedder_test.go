package embedder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcEmbedder adapts a function to the Embedder interface.
type funcEmbedder func(ctx context.Context, text string) ([]float32, error)

func (f funcEmbedder) Embed(ctx context.Context, text string) ([]float32, error) { return f(ctx, text) }
func (f funcEmbedder) Dimension() int                                            { return 2 }
func (f funcEmbedder) ModelInfo() string                                         { return "func" }

func TestEmbedAll_PreservesInputOrder(t *testing.T) {
	texts := []string{"a", "b", "c", "d", "e"}
	// Later texts finish first.
	emb := funcEmbedder(func(ctx context.Context, text string) ([]float32, error) {
		delay := time.Duration('e'-text[0]) * 2 * time.Millisecond
		time.Sleep(delay)
		return []float32{float32(text[0]), 0}, nil
	})

	vecs, err := EmbedAll(context.Background(), emb, texts, 5, nil)
	require.NoError(t, err)
	require.Len(t, vecs, len(texts))
	for i, text := range texts {
		assert.Equal(t, float32(text[0]), vecs[i][0])
	}
}

func TestEmbedAll_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	emb := funcEmbedder(func(ctx context.Context, text string) ([]float32, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return []float32{1, 0}, nil
	})

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("text %d", i)
	}
	_, err := EmbedAll(context.Background(), emb, texts, 3, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestEmbedAll_FailureReturnsNoPartialResult(t *testing.T) {
	boom := &EmbeddingError{Kind: KindTransport, Model: "func", Err: errors.New("boom")}
	emb := funcEmbedder(func(ctx context.Context, text string) ([]float32, error) {
		if text == "c" {
			return nil, boom
		}
		return []float32{1, 0}, nil
	})

	vecs, err := EmbedAll(context.Background(), emb, []string{"a", "b", "c", "d", "e"}, 1, nil)
	require.Error(t, err)
	assert.Nil(t, vecs)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.Contains(t, err.Error(), "text 2")
}

func TestEmbedAll_Progress(t *testing.T) {
	emb := NewHashEmbedder(16)
	var mu sync.Mutex
	var calls []int
	_, err := EmbedAll(context.Background(), emb, []string{"one", "two", "three"}, 2, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, calls)
}

func TestEmbedAll_Empty(t *testing.T) {
	vecs, err := EmbedAll(context.Background(), NewHashEmbedder(8), nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}

func TestHashEmbedder(t *testing.T) {
	e := NewHashEmbedder(64)
	ctx := context.Background()

	a, err := e.Embed(ctx, "anxiety and sleep issues")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "anxiety and sleep issues")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	var norm float64
	for _, x := range a {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)

	_, err = e.Embed(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEmbeddingError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", &EmbeddingError{Kind: KindTransport, Model: "m", Err: cause})

	assert.ErrorIs(t, err, ErrEmbedding)
	assert.ErrorIs(t, err, cause)

	var ee *EmbeddingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindTransport, ee.Kind)
	assert.Contains(t, err.Error(), "transport")
}
