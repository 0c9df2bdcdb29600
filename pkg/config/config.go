package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration: root-level defaults plus a
// list of per-app fragments. Keys are the same camelCase names the config
// document uses, so plain JSON configs load as well (YAML is a superset).
type Config struct {
	SlackHook string `yaml:"slackHook" json:"slackHook" jsonschema:"required,description=Slack incoming webhook URL"`
	Channel   string `yaml:"channel" json:"channel" jsonschema:"description=Default Slack channel"`
	BotIcon   string `yaml:"botIcon" json:"botIcon" jsonschema:"description=Default bot icon (emoji or URL)"`
	Verbose   bool   `yaml:"verbose" json:"verbose" jsonschema:"default=false,description=Log every fetched review"`

	Interval Duration `yaml:"interval" json:"interval" jsonschema:"default=300,description=Default poll interval (seconds or duration string)"`
	Timeout  Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30,description=Per-call timeout for source and sink requests"`

	Store string `yaml:"store" json:"store" jsonschema:"default=app-store,description=Default review source backend"`
	Cache string `yaml:"cache" json:"cache" jsonschema:"default=reviews.db,description=Dedup cache DSN: sqlite file path or redis:// URL"`
	Log   string `yaml:"log" json:"log" jsonschema:"description=Directory for the log file, stdout only when empty"`

	ReviewFilters  *FilterFragment `yaml:"reviewFilters" json:"reviewFilters,omitempty" jsonschema:"description=Default review filter settings"`
	PopularPhrases []string        `yaml:"popularPhrases" json:"popularPhrases,omitempty" jsonschema:"description=Default popular phrases list"`
	MinTextLength  *FlexInt        `yaml:"minTextLength" json:"minTextLength,omitempty" jsonschema:"description=Default minimum text length for 5-star reviews"`

	Server struct {
		Listen  string   `yaml:"listen" json:"listen" jsonschema:"description=Status server listen address, disabled when empty"`
		Timeout Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30,description=Status server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Optional status server"`

	Apps []AppFragment `yaml:"apps" json:"apps" jsonschema:"required,description=Tracked apps"`
}

// AppFragment is the per-app configuration fragment. Missing keys fall
// back to root-level values.
type AppFragment struct {
	AppID        string   `yaml:"appId" json:"appId" jsonschema:"required,description=Store app id (bundle id or package name)"`
	AppName      string   `yaml:"appName" json:"appName" jsonschema:"description=Human readable app name"`
	PublisherKey string   `yaml:"publisherKey" json:"publisherKey,omitempty" jsonschema:"description=Path to the publisher service account key (google-play)"`
	Regions      []string `yaml:"regions" json:"regions" jsonschema:"required,description=Storefront regions to watch"`

	Store    string   `yaml:"store" json:"store,omitempty"`
	Verbose  *bool    `yaml:"verbose" json:"verbose,omitempty"`
	Channel  string   `yaml:"channel" json:"channel,omitempty"`
	BotIcon  string   `yaml:"botIcon" json:"botIcon,omitempty"`
	Interval Duration `yaml:"interval" json:"interval,omitempty"`
	Cache    string   `yaml:"cache" json:"cache,omitempty"`

	ReviewFilters  *FilterFragment `yaml:"reviewFilters" json:"reviewFilters,omitempty"`
	PopularPhrases []string        `yaml:"popularPhrases" json:"popularPhrases,omitempty"`
	MinTextLength  *FlexInt        `yaml:"minTextLength" json:"minTextLength,omitempty"`
}

// FilterFragment is the reviewFilters object as it appears in the config.
// Pointer and nil-slice fields distinguish "absent" from "set to zero".
type FilterFragment struct {
	MinTextLength  *FlexInt `yaml:"minTextLength" json:"minTextLength,omitempty"`
	PopularPhrases []string `yaml:"popularPhrases" json:"popularPhrases,omitempty"`
}

// Duration accepts either a bare number (seconds, as the original config
// format used) or a Go duration string like "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var secs int64
	if err := node.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Value returns the underlying time.Duration
func (d Duration) Value() time.Duration { return time.Duration(d) }

// FlexInt is an integer that also accepts numeric strings in the config.
// A value that can't be parsed as a base-10 integer counts as unset, so
// the resolver moves on to the next candidate.
type FlexInt struct {
	val   int
	valid bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (f *FlexInt) UnmarshalYAML(node *yaml.Node) error {
	var i int
	if err := node.Decode(&i); err == nil {
		f.val, f.valid = i, true
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return nil // not a number and not a string, treat as unset
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		f.val, f.valid = n, true
	}
	return nil
}

// Int returns the value and whether it was set to a parsable number
func (f *FlexInt) Int() (int, bool) {
	if f == nil || !f.valid {
		return 0, false
	}
	return f.val, true
}

// Load reads configuration from a YAML (or JSON) file, expands environment
// variables, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults
	if cfg.Interval == 0 {
		cfg.Interval = Duration(5 * time.Minute)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(30 * time.Second)
	}
	if cfg.Store == "" {
		cfg.Store = "app-store"
	}
	if cfg.Cache == "" {
		cfg.Cache = "reviews.db"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = Duration(30 * time.Second)
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.SlackHook == "" {
		return fmt.Errorf("slackHook is required")
	}
	if len(cfg.Apps) == 0 {
		return fmt.Errorf("at least one app is required")
	}
	if cfg.Interval.Value() <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if cfg.Timeout.Value() < time.Second {
		return fmt.Errorf("timeout must be at least 1 second")
	}

	for i := range cfg.Apps {
		app := &cfg.Apps[i]
		if app.AppID == "" {
			return fmt.Errorf("apps[%d]: appId is required", i)
		}
		if len(app.Regions) == 0 {
			return fmt.Errorf("apps[%d] (%s): regions are required", i, app.AppID)
		}
		if app.Interval.Value() < 0 {
			return fmt.Errorf("apps[%d] (%s): interval must be positive", i, app.AppID)
		}
		store := app.Store
		if store == "" {
			store = cfg.Store
		}
		if !knownStore(store) {
			return fmt.Errorf("apps[%d] (%s): unknown store %q", i, app.AppID, store)
		}
	}

	return nil
}

func knownStore(store string) bool {
	switch store {
	case "app-store", "google-play":
		return true
	}
	return false
}
