// Package diagram draws the structure of a layout as a Graphviz graph.
//
// The graph has one node per segment, labelled with its pattern, and one
// node per tile, filled with the tile's color. Edges run from each segment
// to the tiles it places, so the packing decisions can be read top to
// bottom:
//
//	dot := diagram.ToDOT(doc, diagram.Options{Detailed: true})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// Rendering uses the WebAssembly build of Graphviz bundled with
// goccy/go-graphviz; no system installation is needed.
package diagram
