// Package watcher runs the per-app review pipeline: fetch reviews from
// every configured region, drop already-seen ones, filter out 5-star
// noise, deliver the rest to the notification sink and commit each
// review to the dedup cache right after it is processed.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/berayon/review-bot/pkg/domain"
	"github.com/berayon/review-bot/pkg/filter"
	"github.com/berayon/review-bot/pkg/notify"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . ReviewSource
//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . SeenStore

// ReviewSource fetches the current review list for one app/region pair
type ReviewSource interface {
	Fetch(ctx context.Context, appID, region string) ([]domain.Review, error)
}

// Sink delivers one formatted message to the notification destination.
// A notify.ErrRejected result is permanent, everything else is transient.
type Sink interface {
	Send(ctx context.Context, msg notify.Message) error
}

// SeenStore is the dedup cache used by the watcher
type SeenStore interface {
	HasSeen(ctx context.Context, appID, region, reviewID string) (bool, error)
	MarkSeen(ctx context.Context, appID, region, reviewID string) error
}

// Watcher runs the review pipeline for a single tracked app. Ticks for
// one app never overlap; Tick serializes on an internal mutex.
type Watcher struct {
	app    domain.AppWatchConfig
	source ReviewSource
	sink   Sink
	seen   SeenStore

	retryAttempts     int
	retryInitialDelay time.Duration
	retryMaxDelay     time.Duration
	maxFetchers       int

	tickMu sync.Mutex // one tick at a time

	statsMu sync.Mutex
	stats   Stats
}

// Stats is a point-in-time snapshot of one watcher's progress, served by
// the status endpoint.
type Stats struct {
	AppID       string    `json:"app_id"`
	AppName     string    `json:"app_name,omitempty"`
	Store       string    `json:"store"`
	Regions     []string  `json:"regions"`
	LastTick    time.Time `json:"last_tick,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
	Ticks       int       `json:"ticks"`
	Fetched     int       `json:"fetched"`     // new (not yet seen) reviews observed
	Delivered   int       `json:"delivered"`   // sent to the sink
	Skipped     int       `json:"skipped"`     // dropped by the filter
	Undelivered int       `json:"undelivered"` // left for the next tick after retries
}

// Params holds watcher dependencies and retry tuning
type Params struct {
	App    domain.AppWatchConfig
	Source ReviewSource
	Sink   Sink
	Seen   SeenStore

	RetryAttempts     int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
	MaxFetchers       int
}

// New creates a watcher for one app
func New(p Params) *Watcher {
	if p.RetryAttempts == 0 {
		p.RetryAttempts = 5
	}
	if p.RetryInitialDelay == 0 {
		p.RetryInitialDelay = 100 * time.Millisecond
	}
	if p.RetryMaxDelay == 0 {
		p.RetryMaxDelay = 5 * time.Second
	}
	if p.MaxFetchers == 0 {
		p.MaxFetchers = 4
	}

	return &Watcher{
		app:               p.App,
		source:            p.Source,
		sink:              p.Sink,
		seen:              p.Seen,
		retryAttempts:     p.RetryAttempts,
		retryInitialDelay: p.RetryInitialDelay,
		retryMaxDelay:     p.RetryMaxDelay,
		maxFetchers:       p.MaxFetchers,
		stats: Stats{
			AppID:   p.App.AppID,
			AppName: p.App.AppName,
			Store:   p.App.Store,
			Regions: p.App.Regions,
		},
	}
}

// Run executes ticks on the app's interval until the context is canceled.
// The first tick runs immediately.
func (w *Watcher) Run(ctx context.Context) {
	lgr.Printf("[INFO] watcher started for %s (%s), interval %v, regions %v",
		w.app.AppID, w.app.Store, w.app.Interval, w.app.Regions)

	ticker := time.NewTicker(w.app.Interval)
	defer ticker.Stop()

	w.tickLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] watcher stopped for %s", w.app.AppID)
			return
		case <-ticker.C:
			w.tickLogged(ctx)
		}
	}
}

func (w *Watcher) tickLogged(ctx context.Context) {
	if err := w.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Printf("[WARN] tick failed for %s: %v", w.app.AppID, err)
	}
}

// Tick runs one full pipeline pass: concurrent fetch across regions, then
// sequential per-region processing so deliveries keep source order. A
// single region's fetch failure is logged and skipped; an error is
// returned only when every region failed or the dedup cache broke, and in
// the latter case the rest of the tick is abandoned.
func (w *Watcher) Tick(ctx context.Context) error {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()

	results := make([][]domain.Review, len(w.app.Regions))
	fetchErrs := make([]error, len(w.app.Regions))

	var g errgroup.Group
	g.SetLimit(w.maxFetchers)
	for i, region := range w.app.Regions {
		g.Go(func() error {
			reviews, err := w.source.Fetch(ctx, w.app.AppID, region)
			if err != nil {
				fetchErrs[i] = err
				return nil // region failures are isolated, don't cancel siblings
			}
			results[i] = reviews
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	failed := 0
	for i, region := range w.app.Regions {
		if fetchErrs[i] != nil {
			lgr.Printf("[WARN] fetch failed for %s/%s: %v", w.app.AppID, region, fetchErrs[i])
			failed++
			continue
		}
		if err := w.processRegion(ctx, region, results[i]); err != nil {
			w.finishTick(err)
			return fmt.Errorf("process region %s: %w", region, err)
		}
	}

	if failed == len(w.app.Regions) {
		err := fmt.Errorf("all %d regions failed for %s", failed, w.app.AppID)
		w.finishTick(err)
		return err
	}

	w.finishTick(nil)
	return nil
}

// processRegion walks one region's fetch result in order. Cache failures
// are returned and abort the tick; delivery failures only affect the
// review at hand.
func (w *Watcher) processRegion(ctx context.Context, region string, reviews []domain.Review) error {
	for i := range reviews {
		review := &reviews[i]

		seen, err := w.seen.HasSeen(ctx, w.app.AppID, region, review.ID)
		if err != nil {
			return fmt.Errorf("cache read for review %s: %w", review.ID, err)
		}
		if seen {
			continue
		}

		w.bump(func(s *Stats) { s.Fetched++ })
		if w.app.Verbose {
			lgr.Printf("[INFO] new review %s/%s/%s: %q (%s stars)",
				w.app.AppID, region, review.ID, snippet(review.Text), review.Rating)
		}

		if reason := filter.SkipReason(review, w.app.Filter); reason != filter.ReasonNone {
			lgr.Printf("[DEBUG] skipped review %s/%s/%s (%s)", w.app.AppID, region, review.ID, reason)
			if err := w.commit(ctx, region, review.ID); err != nil {
				return err
			}
			w.bump(func(s *Stats) { s.Skipped++ })
			continue
		}

		err = w.deliver(ctx, review)
		switch {
		case err == nil:
			w.bump(func(s *Stats) { s.Delivered++ })
		case errors.Is(err, notify.ErrRejected):
			// permanent, retrying the same payload can't help
			lgr.Printf("[WARN] review %s/%s/%s rejected by sink: %v", w.app.AppID, region, review.ID, err)
		default:
			// leave unmarked so the next tick re-fetches and retries it
			lgr.Printf("[WARN] review %s/%s/%s not delivered, will retry next tick: %v",
				w.app.AppID, region, review.ID, err)
			w.bump(func(s *Stats) { s.Undelivered++ })
			continue
		}

		if err := w.commit(ctx, region, review.ID); err != nil {
			return err
		}
	}
	return nil
}

// deliver sends one review with bounded backoff. notify.ErrRejected stops
// the retry loop immediately.
func (w *Watcher) deliver(ctx context.Context, review *domain.Review) error {
	msg := notify.BuildReviewMessage(&w.app, review)
	retrier := repeater.NewBackoff(w.retryAttempts, w.retryInitialDelay, repeater.WithMaxDelay(w.retryMaxDelay))
	return retrier.Do(ctx, func() error {
		return w.sink.Send(ctx, msg)
	}, notify.ErrRejected)
}

func (w *Watcher) commit(ctx context.Context, region, reviewID string) error {
	if err := w.seen.MarkSeen(ctx, w.app.AppID, region, reviewID); err != nil {
		return fmt.Errorf("cache write for review %s: %w", reviewID, err)
	}
	return nil
}

func (w *Watcher) finishTick(err error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.Ticks++
	w.stats.LastTick = time.Now()
	w.stats.LastError = ""
	if err != nil {
		w.stats.LastError = err.Error()
	}
}

func (w *Watcher) bump(fn func(s *Stats)) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	fn(&w.stats)
}

// Status returns a snapshot of the watcher's counters
func (w *Watcher) Status() Stats {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	res := w.stats
	res.Regions = append([]string(nil), w.stats.Regions...)
	return res
}

// snippet trims long review text for log lines
func snippet(s string) string {
	const maxLen = 80
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
