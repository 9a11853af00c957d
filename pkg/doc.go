// Package pkg provides the core libraries for tilegrid.
//
// # Overview
//
// Tilegrid packs a sequence of sized tiles into fixed-width two-column
// segments and lays the segments out vertically for a given container
// width. The resulting layout answers two questions quickly: where is the
// tile at index i, and which tiles intersect a rectangle (typically the
// visible viewport).
//
// # Architecture
//
//	tile sizes (JSON, TOML, text)
//	         ↓
//	    [tile] package (pattern matching into segments)
//	         ↓
//	    [layout] package (segment geometry + spatial queries)
//	         ↓
//	    [render] package (SVG, PNG, JSON, DOT)
//
// [pipeline] runs these stages with caching from [cache]; [server] exposes
// them over HTTP and internal/cli as the tilegrid command.
//
// # Quick Start
//
//	packing, _ := tile.Pack([]tile.Size{tile.Square, tile.Square, tile.FullWidth})
//
//	engine, _ := layout.NewEngine(packing.Patterns, layout.DefaultOptions())
//	_, _ = engine.Layout(348)
//
//	f, _ := engine.FrameForIndex(2)
//	visible, _ := engine.FramesIntersecting(layout.Rect{Width: 348, Height: 400})
//
// # Main Packages
//
//   - [errors]: coded errors shared by every package
//   - [tile]: sizes, patterns and the segment packer
//   - [layout]: the layout engine and its spatial index
//   - [io]: tile file readers and layout documents
//   - [render]: output sinks
//   - [cache]: file, memory, Redis and MongoDB caches
//   - [pipeline]: cached pack → layout → render orchestration
//   - [server]: HTTP API for layouts and queries
//   - [config]: TOML configuration
//   - [observability]: hooks for pipeline and server events
//
// # Testing
//
//	go test ./...
//	go test ./pkg/layout/...
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/errors
// [tile]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/tile
// [layout]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/observability
package pkg
