// Package source fetches the current review list for one app/region pair
// from a storefront backend. Backends are interchangeable implementations
// of the Source interface, selected by the "store" config value.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/berayon/review-bot/pkg/domain"
)

// Source fetches reviews for an app in one region. The returned slice is
// ordered oldest-first when the backend provides ordering metadata,
// otherwise backend order is preserved. A failed fetch is not resumable;
// the caller re-fetches from the start on the next tick.
type Source interface {
	Fetch(ctx context.Context, appID, region string) ([]domain.Review, error)
}

// ErrUnavailable indicates a network or auth failure talking to the store.
// Retried on the next tick.
var ErrUnavailable = errors.New("review source unavailable")

// RateLimitedError indicates the store asked us to back off
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("review source rate limited, retry after %v", e.RetryAfter)
	}
	return "review source rate limited"
}

// Options configures a source backend
type Options struct {
	Store        string // "app-store" or "google-play"
	PublisherKey string // service account key path, google-play only
	Timeout      time.Duration
	UserAgent    string
}

// New creates a review source backend by store name
func New(ctx context.Context, opts Options) (Source, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "review-bot/1.0"
	}

	switch opts.Store {
	case "app-store":
		return NewAppStoreSource(opts.Timeout, opts.UserAgent), nil
	case "google-play":
		return NewPlayStoreSource(ctx, opts.PublisherKey)
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Store)
	}
}
