package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/berayon/review-bot/pkg/domain"
)

// Resolve turns the loaded configuration into one AppWatchConfig per app,
// applying the app > root > built-in fallback chain and resolving every
// relative filesystem path against the config file's own directory.
func (c *Config) Resolve(configPath string) ([]domain.AppWatchConfig, error) {
	baseDir := filepath.Dir(configPath)

	apps := make([]domain.AppWatchConfig, 0, len(c.Apps))
	for i := range c.Apps {
		app, err := c.resolveApp(&c.Apps[i], baseDir)
		if err != nil {
			return nil, fmt.Errorf("resolve apps[%d]: %w", i, err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// ResolveApp resolves a single app fragment by index, used by the one-shot
// CLI modes which operate on one app only.
func (c *Config) ResolveApp(index int, configPath string) (domain.AppWatchConfig, error) {
	if index < 0 || index >= len(c.Apps) {
		return domain.AppWatchConfig{}, fmt.Errorf("app with index %d not found in config", index)
	}
	return c.resolveApp(&c.Apps[index], filepath.Dir(configPath))
}

func (c *Config) resolveApp(app *AppFragment, baseDir string) (domain.AppWatchConfig, error) {
	res := domain.AppWatchConfig{
		AppID:        app.AppID,
		AppName:      app.AppName,
		Regions:      append([]string(nil), app.Regions...),
		PublisherKey: resolvePath(app.PublisherKey, baseDir),
		Filter:       c.buildFilter(app),

		SlackHook: c.SlackHook,
		Channel:   fallback(app.Channel, c.Channel),
		BotIcon:   fallback(app.BotIcon, c.BotIcon),
		Verbose:   c.Verbose,

		Store:    fallback(app.Store, c.Store),
		Interval: c.Interval.Value(),
		CacheDSN: resolveCacheDSN(fallback(app.Cache, c.Cache), baseDir),
	}

	if app.Interval != 0 {
		res.Interval = app.Interval.Value()
	}
	if app.Verbose != nil {
		res.Verbose = *app.Verbose
	}

	if res.Store == "google-play" && res.PublisherKey == "" {
		return domain.AppWatchConfig{}, fmt.Errorf("app %s: publisherKey is required for google-play", app.AppID)
	}
	return res, nil
}

// buildFilter produces the resolved filter policy for one app. The merged
// reviewFilters object wins per key; absent keys fall back to the bare
// app-level, then root-level values. Anything still unset is left at its
// zero value and the filter package applies the built-in defaults.
func (c *Config) buildFilter(app *AppFragment) domain.FilterConfig {
	// shallow-merge app fragment over root fragment, app keys win
	var merged FilterFragment
	if c.ReviewFilters != nil {
		merged = *c.ReviewFilters
	}
	if app.ReviewFilters != nil {
		if app.ReviewFilters.MinTextLength != nil {
			merged.MinTextLength = app.ReviewFilters.MinTextLength
		}
		if app.ReviewFilters.PopularPhrases != nil {
			merged.PopularPhrases = app.ReviewFilters.PopularPhrases
		}
	}

	phrases := merged.PopularPhrases
	if phrases == nil {
		phrases = app.PopularPhrases
	}
	if phrases == nil {
		phrases = c.PopularPhrases
	}

	minLen, ok := merged.MinTextLength.Int()
	if !ok {
		minLen, _ = firstInt(app.MinTextLength, c.MinTextLength)
	}

	res := domain.FilterConfig{MinTextLength: minLen}
	if phrases != nil {
		res.PopularPhrases = append([]string(nil), phrases...)
	}
	return res
}

// firstInt returns the first candidate that carries a parsable number
func firstInt(candidates ...*FlexInt) (int, bool) {
	for _, c := range candidates {
		if v, ok := c.Int(); ok {
			return v, true
		}
	}
	return 0, false
}

// resolvePath resolves a relative path against the config file directory.
// Absolute and empty paths pass through unchanged.
func resolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// resolveCacheDSN resolves a cache DSN; URL-style DSNs (redis://) are not
// filesystem paths and pass through unchanged.
func resolveCacheDSN(dsn, baseDir string) string {
	if strings.Contains(dsn, "://") {
		return dsn
	}
	return resolvePath(dsn, baseDir)
}

// ResolveLogDir resolves the configured log directory against the config
// file directory, empty when logging to stdout only.
func (c *Config) ResolveLogDir(configPath string) string {
	return resolvePath(c.Log, filepath.Dir(configPath))
}

func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
