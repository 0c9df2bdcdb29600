package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/berayon/review-bot/pkg/cache"
	"github.com/berayon/review-bot/pkg/config"
	"github.com/berayon/review-bot/pkg/domain"
	"github.com/berayon/review-bot/pkg/filter"
	"github.com/berayon/review-bot/pkg/notify"
	"github.com/berayon/review-bot/pkg/scheduler"
	"github.com/berayon/review-bot/pkg/source"
	"github.com/berayon/review-bot/pkg/watcher"
	"github.com/berayon/review-bot/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" description:"config file location, defaults to review-bot.yml next to the executable"`
	Once     bool   `long:"once" description:"run one tick for every app and exit"`
	AppIndex int    `long:"app-index" default:"-1" description:"limit the run to a single app by its position in the config"`
	DryRun   bool   `long:"dry-run" description:"print filter decisions for sample reviews, no fetching or delivery"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, os.Stdout)

	configPath := opts.Config
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[ERROR] can't load config %s: %v", configPath, err)
		os.Exit(1)
	}

	logOut := io.Writer(os.Stdout)
	if logDir := cfg.ResolveLogDir(configPath); logDir != "" {
		f, err := openLogFile(logDir)
		if err != nil {
			log.Printf("[ERROR] can't open log file in %s: %v", logDir, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}
	// re-init logging with the webhook masked and the log file attached
	setupLog(opts.Debug, opts.NoColor, logOut, cfg.SlackHook)

	log.Printf("[INFO] starting review-bot version %s", revision)

	apps, err := resolveApps(cfg, configPath, opts.AppIndex)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	if opts.DryRun {
		dryRun(apps)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, apps, opts.Once, opts.Debug); err != nil {
		cancel()
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	cancel()
	log.Print("[INFO] shutdown complete")
}

// run wires caches, sources and sinks into watchers and drives them via
// the scheduler, either once or on their intervals until ctx is done.
func run(ctx context.Context, cfg *config.Config, apps []domain.AppWatchConfig, once, dbg bool) error {
	// apps sharing a DSN share the store, dedup keys are namespaced by app
	stores := map[string]cache.Store{}
	defer func() {
		for _, st := range stores {
			if err := st.Close(); err != nil {
				log.Printf("[WARN] can't close cache: %v", err)
			}
		}
	}()

	watchers := make([]scheduler.Watcher, 0, len(apps))
	for _, app := range apps {
		st, ok := stores[app.CacheDSN]
		if !ok {
			var err error
			if st, err = cache.New(ctx, app.CacheDSN); err != nil {
				return fmt.Errorf("can't open cache for %s: %w", app.AppID, err)
			}
			stores[app.CacheDSN] = st
		}

		src, err := source.New(ctx, source.Options{
			Store:        app.Store,
			PublisherKey: app.PublisherKey,
			Timeout:      cfg.Timeout.Value(),
			UserAgent:    "review-bot/" + revision,
		})
		if err != nil {
			return fmt.Errorf("can't create %s source for %s: %w", app.Store, app.AppID, err)
		}

		watchers = append(watchers, watcher.New(watcher.Params{
			App:    app,
			Source: src,
			Sink:   notify.NewClient(app.SlackHook, cfg.Timeout.Value()),
			Seen:   st,
		}))
	}

	sched := scheduler.New(watchers...)

	if once {
		return sched.RunOnce(ctx)
	}

	if cfg.Server.Listen != "" {
		srv := server.New(cfg.Server.Listen, cfg.Server.Timeout.Value(), sched, revision, dbg)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("[WARN] status server failed: %v", err)
			}
		}()
	}

	sched.Start(ctx)
	<-ctx.Done()
	sched.Stop()
	return nil
}

// resolveApps returns either all configured apps or the single app picked
// by --app-index
func resolveApps(cfg *config.Config, configPath string, index int) ([]domain.AppWatchConfig, error) {
	if index < 0 {
		return cfg.Resolve(configPath)
	}
	app, err := cfg.ResolveApp(index, configPath)
	if err != nil {
		return nil, err
	}
	return []domain.AppWatchConfig{app}, nil
}

// dryRun prints the filter decision each app would make for a fixed set
// of sample reviews, without touching the store or the webhook
func dryRun(apps []domain.AppWatchConfig) {
	samples := []domain.Review{
		{ID: "sample_popular", Rating: "5", Text: "Best app"},
		{ID: "sample_short", Rating: "5", Text: "Nice"},
		{ID: "sample_ok", Rating: "5", Text: "Great features and support, thank you!"},
	}

	for _, app := range apps {
		name := app.AppName
		if name == "" {
			name = app.AppID
		}
		fmt.Printf("%s (%s, regions %v):\n", name, app.Store, app.Regions)
		for _, sample := range samples {
			if reason := filter.SkipReason(&sample, app.Filter); reason != filter.ReasonNone {
				fmt.Printf("  %q -> skip (%s)\n", sample.Text, reason)
				continue
			}
			fmt.Printf("  %q -> deliver\n", sample.Text)
		}
	}
}

// defaultConfigPath resolves the config location next to the executable,
// falling back to the working directory if the executable path is unknown
func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "review-bot.yml"
	}
	return filepath.Join(filepath.Dir(exe), "review-bot.yml")
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("can't create log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "review-bot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func setupLog(dbg, noColor bool, out io.Writer, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(out), lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug)
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
