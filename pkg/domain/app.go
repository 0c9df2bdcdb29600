package domain

import "time"

// FilterConfig is the resolved per-app review filtering policy.
// A nil PopularPhrases means "use built-in defaults", an empty non-nil
// slice disables phrase-based skipping entirely.
type FilterConfig struct {
	MinTextLength  int
	PopularPhrases []string
}

// AppWatchConfig holds everything one watcher needs for a single tracked app.
// Built once at startup by the config resolver, immutable afterwards.
type AppWatchConfig struct {
	AppID        string
	AppName      string
	Store        string // review source backend, e.g. "app-store" or "google-play"
	Regions      []string
	PublisherKey string // path to service account key, google-play only
	Interval     time.Duration
	CacheDSN     string // sqlite file path or redis:// URL
	Filter       FilterConfig

	SlackHook string
	Channel   string
	BotIcon   string
	Verbose   bool
}
