package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent callers with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	doc, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Snapshot = snap
	result.Stats.Tiles = len(opts.Tiles)
	result.Stats.Segments = len(doc.Segments)
	result.Stats.Remainder = len(doc.Remainder)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"frames", len(doc.Frames),
		"segments", len(doc.Segments),
		"height", doc.Content.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo returns the layout document for opts and whether it
// came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (pkgio.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return pkgio.Document{}, false, err
	}

	key, err := r.layoutKey(opts)
	if err != nil {
		return pkgio.Document{}, false, err
	}

	if !opts.Refresh {
		if doc, ok := r.cachedLayout(ctx, key); ok {
			if opts.Strict {
				if err := (tile.Packing{Remainder: doc.Remainder}).Err(); err != nil {
					return pkgio.Document{}, false, err
				}
			}
			return doc, true, nil
		}
	}

	doc, err := GenerateLayout(ctx, opts)
	if err != nil {
		return pkgio.Document{}, false, err
	}
	if data, err := pkgio.MarshalDocument(doc); err == nil {
		r.store(ctx, "layout", key, data)
	}
	return doc, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, opts Options) (pkgio.Document, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return doc, err
}

// RenderWithCacheInfo renders doc in every requested format. The hit flag
// is true only when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc pkgio.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := pkgio.MarshalDocument(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, doc pkgio.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layoutKey hashes the tiles as they will be laid out, after palette
// assignment, so that differently seeded runs never share an entry.
func (r *Runner) layoutKey(opts Options) (string, error) {
	hash, err := cache.HashJSON(tile.AssignColors(opts.Tiles, opts.Seed))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash tiles")
	}
	return r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts()), nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (pkgio.Document, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return pkgio.Document{}, false
	}
	doc, err := pkgio.UnmarshalDocument(data)
	if err == nil {
		_, err = doc.Snapshot()
	}
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "err", err)
		observability.Cache().OnCacheMiss(ctx, "layout")
		return pkgio.Document{}, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return doc, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
