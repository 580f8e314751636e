// Package source supplies the candidate advocates the matcher searches over.
package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/perbu/advomatch/pkg/advocate"
)

// Source lists the current candidate advocates.
type Source interface {
	ListAdvocates(ctx context.Context) ([]advocate.Advocate, error)
}

// ErrSourceUnavailable describes why a fallback happened. It is only ever
// logged, never returned to callers of WithFallback.
var ErrSourceUnavailable = errors.New("advocate source unavailable")

// Static serves the built-in dataset.
type Static struct{}

// ListAdvocates returns a copy of the built-in dataset.
func (Static) ListAdvocates(context.Context) ([]advocate.Advocate, error) {
	return advocate.Fallback(), nil
}

// Unavailable is a source that could not be set up. It reports Err on
// every call.
type Unavailable struct {
	Err error
}

// ListAdvocates returns u.Err.
func (u Unavailable) ListAdvocates(context.Context) ([]advocate.Advocate, error) {
	return nil, u.Err
}

// Fallback wraps a primary source and switches to the built-in dataset when
// the primary fails, returns nothing, or is not configured at all.
type Fallback struct {
	primary Source
	logger  *slog.Logger
}

// WithFallback wraps primary. primary may be nil.
func WithFallback(primary Source, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{primary: primary, logger: logger}
}

// ListAdvocates never fails: any problem with the primary source is logged
// and answered with the static dataset.
func (f *Fallback) ListAdvocates(ctx context.Context) ([]advocate.Advocate, error) {
	if f.primary == nil {
		f.logger.Info("no advocate store configured, using built-in dataset")
		return advocate.Fallback(), nil
	}

	advocates, err := f.primary.ListAdvocates(ctx)
	switch {
	case err != nil:
		f.logger.Warn("advocate store failed, using built-in dataset",
			"error", errors.Join(ErrSourceUnavailable, err))
		return advocate.Fallback(), nil
	case len(advocates) == 0:
		f.logger.Warn("advocate store is empty, using built-in dataset",
			"error", ErrSourceUnavailable)
		return advocate.Fallback(), nil
	}

	f.logger.Debug("loaded advocates from store", "count", len(advocates))
	return advocates, nil
}
