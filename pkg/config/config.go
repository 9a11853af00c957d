// Package config loads tilegrid's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/tilegrid/config.toml (APPDATA on
// Windows) unless --config names another path. A missing file is not an
// error: every field has a default, and command-line flags override
// whatever the file sets.
//
//	[layout]
//	width = 390
//	padding = 16
//	spacing = 8
//
//	[cache]
//	backend = "file"   # none, memory, file, redis or mongo
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	formats = ["svg"]
//	seed = 42
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/render"
)

// DefaultAddr is the server listen address.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Render Render `toml:"render"`
}

// Layout holds the default layout parameters.
type Layout struct {
	Width   float64 `toml:"width"`
	Padding float64 `toml:"padding"`
	Spacing float64 `toml:"spacing"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir,omitempty"`
	TTL           Duration `toml:"ttl"`
	Size          int      `toml:"size,omitempty"`
	RedisAddr     string   `toml:"redis_addr,omitempty"`
	MongoURI      string   `toml:"mongo_uri,omitempty"`
	MongoDatabase string   `toml:"mongo_database,omitempty"`
}

// Server configures "tilegrid serve".
type Server struct {
	Addr string `toml:"addr"`
}

// Render holds the default render parameters.
type Render struct {
	Formats []string `toml:"formats"`
	Seed    uint64   `toml:"seed"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct{ time.Duration }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Layout: Layout{
			Width:   pipeline.DefaultWidth,
			Padding: layout.DefaultSidePadding,
			Spacing: layout.DefaultCellSpacing,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{pipeline.DefaultTTL},
			Size:    cache.DefaultMemorySize,
		},
		Server: Server{Addr: DefaultAddr},
		Render: Render{
			Formats: []string{render.FormatSVG},
			Seed:    pipeline.DefaultSeed,
		},
	}
}

// Dir returns the tilegrid configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, "tilegrid")
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the file at path over the defaults. An empty path selects
// Path(). A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := errors.ValidatePadding(c.Layout.Padding); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(c.Layout.Spacing); err != nil {
		return err
	}
	if err := errors.ValidateWidth(c.Layout.Width, c.Layout.Padding); err != nil {
		return err
	}
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache ttl must not be negative")
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache backend redis needs redis_addr")
	}
	if c.Cache.Backend == cache.BackendMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache backend mongo needs mongo_uri")
	}
	if err := render.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "render formats")
	}
	return nil
}

// CacheOptions converts the cache section for cache.Open.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		Size:          c.Cache.Size,
		RedisAddr:     c.Cache.RedisAddr,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
