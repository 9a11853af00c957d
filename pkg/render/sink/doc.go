// Package sink renders a layout document as SVG, PNG or JSON.
//
// # SVG Output
//
// [RenderSVG] draws one rounded rectangle per frame, filled with the tile's
// color, on a canvas the size of the layout content:
//
//	svg := sink.RenderSVG(doc, sink.WithLabels(), sink.WithSegments())
//
//   - [WithLabels]: print each tile's index and size class
//   - [WithSegments]: outline every segment with a dashed border
//   - [WithViewport]: draw only frames intersecting a rectangle, cropped to it
//
// # PNG Output
//
// [RenderPNG] rasterizes the same picture with fogleman/gg. No external
// tools are required.
//
// # JSON Output
//
// [RenderJSON] writes the document itself, which can be re-imported with
// [io.ReadDocument] and rendered again identically.
//
// [io.ReadDocument]: github.com/matzehuels/tilegrid/pkg/io.ReadDocument
package sink
