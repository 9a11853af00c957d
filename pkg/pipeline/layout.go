package pipeline

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Pack groups the tile sizes into segment patterns. With opts.Strict a
// trailing incomplete group is an error.
func Pack(ctx context.Context, opts Options) (tile.Packing, error) {
	hooks := observability.Pipeline()
	hooks.OnPackStart(ctx, len(opts.Tiles))
	start := time.Now()

	packing, err := tile.Pack(tile.Sizes(opts.Tiles))
	if err == nil && opts.Strict {
		err = packing.Err()
	}
	hooks.OnPackComplete(ctx, len(packing.Patterns), len(packing.Remainder), time.Since(start), err)
	if err != nil {
		return tile.Packing{}, err
	}
	return packing, nil
}

// GenerateLayout packs the tiles and computes the layout document for
// opts.Width. Tiles without a color are colored from opts.Seed.
func GenerateLayout(ctx context.Context, opts Options) (pkgio.Document, error) {
	packing, err := Pack(ctx, opts)
	if err != nil {
		return pkgio.Document{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Width, len(packing.Patterns))
	start := time.Now()

	snap, err := layout.Compute(opts.Width, packing.Patterns, opts.LayoutOptions())
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Width, 0, time.Since(start), err)
		return pkgio.Document{}, err
	}
	hooks.OnLayoutComplete(ctx, opts.Width, snap.Len(), time.Since(start), nil)

	tiles := tile.AssignColors(opts.Tiles, opts.Seed)
	return pkgio.NewDocument(snap, tiles, packing.Remainder)
}

// PrepareEngine validates opts, packs the tiles and returns an engine
// already prepared for opts.Width, together with the packing.
func PrepareEngine(ctx context.Context, opts Options) (*layout.Engine, tile.Packing, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, tile.Packing{}, err
	}
	packing, err := Pack(ctx, opts)
	if err != nil {
		return nil, tile.Packing{}, err
	}
	engine, err := layout.NewEngine(packing.Patterns, opts.LayoutOptions())
	if err != nil {
		return nil, tile.Packing{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Width, len(packing.Patterns))
	start := time.Now()
	snap, err := engine.Prepare(opts.Width)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Width, 0, time.Since(start), err)
		return nil, tile.Packing{}, err
	}
	hooks.OnLayoutComplete(ctx, opts.Width, snap.Len(), time.Since(start), nil)
	return engine, packing, nil
}
