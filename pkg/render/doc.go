// Package render turns computed layouts into images and diagrams.
//
// # Overview
//
// Rendering works on an [io.Document], the serialized form of a layout, so
// that a cached document renders exactly like a freshly computed one.
//
//   - [sink]: SVG, PNG and JSON output of the tile grid
//   - [diagram]: Graphviz diagram of the segment → tile structure
//
// The format names accepted by the CLI and the pipeline are listed in
// [Formats]; [ParseFormats] validates a user-supplied list.
//
//	svg := sink.RenderSVG(doc, sink.WithLabels())
//	png, err := sink.RenderPNG(doc, sink.WithScale(2))
//	dot := diagram.ToDOT(doc, diagram.Options{})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// [io.Document]: github.com/matzehuels/tilegrid/pkg/io.Document
// [sink]: github.com/matzehuels/tilegrid/pkg/render/sink
// [diagram]: github.com/matzehuels/tilegrid/pkg/render/diagram
package render
