package embedder

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrying wraps an Embedder with bounded exponential backoff. Only transport
// failures are retried; malformed responses and caller errors fail at once.
type Retrying struct {
	next         Embedder
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// NewRetrying returns next unchanged when attempts <= 1.
func NewRetrying(next Embedder, attempts int, initialDelay time.Duration) Embedder {
	if attempts <= 1 {
		return next
	}
	if initialDelay <= 0 {
		initialDelay = 200 * time.Millisecond
	}
	return &Retrying{
		next:         next,
		attempts:     attempts,
		initialDelay: initialDelay,
		maxDelay:     5 * time.Second,
	}
}

// Embed calls the wrapped embedder, retrying transport failures.
func (r *Retrying) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	op := func() error {
		v, err := r.next.Embed(ctx, text)
		if err != nil {
			var ee *EmbeddingError
			if !errors.As(err, &ee) || ee.Kind != KindTransport {
				return backoff.Permanent(err)
			}
			return err
		}
		vec = v
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialDelay
	b.MaxInterval = r.maxDelay
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.attempts-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return vec, nil
}

func (r *Retrying) Dimension() int    { return r.next.Dimension() }
func (r *Retrying) ModelInfo() string { return r.next.ModelInfo() }
