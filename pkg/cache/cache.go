// Package cache persists which reviews have already been processed, so a
// review is never delivered twice across ticks and process restarts.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Store is the dedup cache capability. MarkSeen is idempotent; after a
// successful MarkSeen the same key reports seen even after a restart.
type Store interface {
	HasSeen(ctx context.Context, appID, region, reviewID string) (bool, error)
	MarkSeen(ctx context.Context, appID, region, reviewID string) error
	Close() error
}

// New creates a cache store for the given DSN. A redis:// (or rediss://)
// URL selects the Redis backend, anything else is treated as a SQLite
// file path.
func New(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("cache DSN is empty")
	}
	if strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://") {
		return NewRedisStore(ctx, dsn)
	}
	return NewSQLiteStore(ctx, dsn)
}
