// Package scheduler owns the lifecycle of all per-app watchers. Each
// watcher runs on its own goroutine and interval; a slow or failing app
// never blocks another app's schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/berayon/review-bot/pkg/watcher"
)

//go:generate moq -out mocks/watcher.go -pkg mocks -skip-ensure -fmt goimports . Watcher

// Watcher is one app's review pipeline as driven by the scheduler
type Watcher interface {
	Run(ctx context.Context)
	Tick(ctx context.Context) error
	Status() watcher.Stats
}

// Scheduler starts and stops a set of watchers
type Scheduler struct {
	watchers []Watcher
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// New creates a scheduler over the given watchers
func New(watchers ...Watcher) *Scheduler {
	return &Scheduler{watchers: watchers}
}

// Start launches every watcher on its own goroutine and returns
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, w := range s.watchers {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			w.Run(ctx)
		}()
	}

	lgr.Printf("[INFO] scheduler started with %d watchers", len(s.watchers))
}

// Stop cancels all watchers and waits for them to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce executes a single tick for every watcher sequentially, without
// scheduling. Used by the one-shot CLI mode.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	failed := 0
	for _, w := range s.watchers {
		if err := w.Tick(ctx); err != nil {
			lgr.Printf("[ERROR] one-shot tick failed for %s: %v", w.Status().AppID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d watchers failed", failed, len(s.watchers))
	}
	return nil
}

// Status returns snapshots for all watchers, in configuration order
func (s *Scheduler) Status() []watcher.Stats {
	res := make([]watcher.Stats, 0, len(s.watchers))
	for _, w := range s.watchers {
		res = append(res, w.Status())
	}
	return res
}
