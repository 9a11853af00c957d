// Package pipeline runs the pack → layout → render pipeline for tilegrid.
//
// The CLI and the HTTP server share this package so both apply the same
// defaults, the same validation and the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Pack: group the tile sequence into segment patterns
//  2. Layout: compute frames for a container width and wrap them, with each
//     tile's size and color, in an [io.Document]
//  3. Render: produce SVG, PNG, JSON, DOT or diagram output from the document
//
// Layout documents and rendered artifacts are cached; packing is cheap and
// always recomputed on a layout miss.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Tiles:   tiles,
//	    Width:   390,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [io.Document]: github.com/matzehuels/tilegrid/pkg/io.Document
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/render"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the container width in points used when none is given.
	DefaultWidth = 390.0

	// DefaultSeed seeds the palette for tiles without a color.
	DefaultSeed = uint64(42)

	// DefaultTTL is how long layout documents and artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
// It supports JSON so the server can decode it from request bodies.
type Options struct {
	// Input
	Tiles []tile.Tile `json:"tiles"`
	Seed  uint64      `json:"seed,omitempty"`

	// Pack options
	Strict bool `json:"strict,omitempty"`

	// Layout options
	Width       float64 `json:"width,omitempty"`
	SidePadding float64 `json:"side_padding,omitempty"`
	CellSpacing float64 `json:"cell_spacing,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string     `json:"formats,omitempty"`
	Labels   bool         `json:"labels,omitempty"`
	Segments bool         `json:"segments,omitempty"`
	Detailed bool         `json:"detailed,omitempty"`
	Scale    float64      `json:"scale,omitempty"`
	Viewport *layout.Rect `json:"viewport,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the computed layout with tile sizes and colors.
	Document pkgio.Document

	// Snapshot is the queryable form of Document.
	Snapshot *layout.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tiles      int
	Segments   int
	Remainder  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.SidePadding == 0 {
		o.SidePadding = layout.DefaultSidePadding
	}
	if o.CellSpacing == 0 {
		o.CellSpacing = layout.DefaultCellSpacing
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies layout defaults and validates the tiles and
// layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateTileCount(len(o.Tiles)); err != nil {
		return err
	}
	for i, t := range o.Tiles {
		if !t.Size.Valid() {
			return errors.New(errors.ErrCodeInvalidSize, "tile %d has no valid size", i)
		}
	}
	if err := o.LayoutOptions().Validate(); err != nil {
		return err
	}
	return errors.ValidateWidth(o.Width, o.SidePadding)
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults and validates formats and the
// viewport.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if v := o.Viewport; v != nil {
		return errors.ValidateRect(v.X, v.Y, v.Width, v.Height)
	}
	return nil
}

// LayoutOptions returns the layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{SidePadding: o.SidePadding, CellSpacing: o.CellSpacing}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		SidePadding: o.SidePadding,
		CellSpacing: o.CellSpacing,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Labels:   o.Labels,
		Segments: o.Segments,
		Detailed: o.Detailed,
		Scale:    o.Scale,
	}
	if v := o.Viewport; v != nil {
		k.Viewport = fmt.Sprintf("%g,%g,%g,%g", v.X, v.Y, v.Width, v.Height)
	}
	return k
}
