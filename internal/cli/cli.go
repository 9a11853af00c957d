package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tilegrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the default
// configuration. The configuration file is loaded before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, appName+":"), c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := cache.Open(ctx, c.Config.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags holds the flags shared by every command that computes a
// layout. Zero values fall back to the configuration file.
type layoutFlags struct {
	width   float64
	padding float64
	spacing float64
	seed    uint64
	strict  bool
}

// options merges the flags over the configuration into pipeline options.
func (c *CLI) options(f layoutFlags) pipeline.Options {
	opts := pipeline.Options{
		Width:       c.Config.Layout.Width,
		SidePadding: c.Config.Layout.Padding,
		CellSpacing: c.Config.Layout.Spacing,
		Seed:        c.Config.Render.Seed,
		Formats:     c.Config.Render.Formats,
		Strict:      f.strict,
		Logger:      c.Logger,
	}
	if f.width != 0 {
		opts.Width = f.width
	}
	if f.padding != 0 {
		opts.SidePadding = f.padding
	}
	if f.spacing != 0 {
		opts.CellSpacing = f.spacing
	}
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	return opts
}
