package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

const (
	cornerRadius   = 6.0
	defaultFill    = "#d0d0d0"
	strokeColor    = "#333333"
	segmentStroke  = "#9a9a9a"
	labelColor     = "#1a1a1a"
	fontHeightRate = 0.3
	fontCharWidth  = 0.55
	fontSizeMin    = 8.0
	fontSizeMax    = 28.0
)

const tileInteractionCSS = `
    .tile { transition: stroke-width 0.15s ease; }
    .tile:hover { stroke-width: 3; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels   bool
	segments bool
	viewport *layout.Rect
}

// WithLabels prints the index and size class inside each tile.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithSegments outlines each segment.
func WithSegments() SVGOption { return func(r *svgRenderer) { r.segments = true } }

// WithViewport restricts output to frames intersecting v and sets the
// canvas to v.
func WithViewport(v layout.Rect) SVGOption {
	return func(r *svgRenderer) { r.viewport = &v }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders doc as an SVG image.
func RenderSVG(doc pkgio.Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	view := canvas(doc, r.viewport)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		view.X, view.Y, view.Width, view.Height, view.Width, view.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n",
		view.X, view.Y, view.Width, view.Height)

	if r.segments {
		for i, s := range doc.Segments {
			rect := layout.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
			if r.viewport != nil && !rect.Intersects(*r.viewport) {
				continue
			}
			fmt.Fprintf(&buf, `  <rect id="segment-%d" class="segment" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 4"><title>%s</title></rect>`+"\n",
				i, s.X, s.Y, s.Width, s.Height, segmentStroke, escapeXML(s.Pattern.String()))
		}
	}

	for _, f := range visibleFrames(doc, r.viewport) {
		fill := f.Color
		if fill == "" {
			fill = defaultFill
		}
		fmt.Fprintf(&buf, `  <rect id="tile-%d" class="tile" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			f.Index, f.X, f.Y, f.Width, f.Height, cornerRadius, escapeXML(fill), strokeColor)
		if r.labels {
			renderLabel(&buf, f)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabel(buf *bytes.Buffer, f pkgio.Frame) {
	text := label(f)
	size := fontSize(f.Width, f.Height, len(text))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central" pointer-events="none">%s</text>`+"\n",
		f.X+f.Width/2, f.Y+f.Height/2, size, labelColor, escapeXML(text))
}

// canvas returns the drawing area: the viewport if set, otherwise the
// content bounds.
func canvas(doc pkgio.Document, viewport *layout.Rect) layout.Rect {
	if viewport != nil {
		return *viewport
	}
	return layout.Rect{Width: doc.Content.Width, Height: max(doc.Content.Height, 1)}
}

// visibleFrames returns the frames to draw. With a viewport the document is
// turned back into a snapshot so the indexed query can be used.
func visibleFrames(doc pkgio.Document, viewport *layout.Rect) []pkgio.Frame {
	if viewport == nil {
		return doc.Frames
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return nil
	}
	hits := snap.Intersecting(*viewport)
	out := make([]pkgio.Frame, len(hits))
	for i, h := range hits {
		out[i] = doc.Frames[h.Index]
	}
	return out
}

func label(f pkgio.Frame) string {
	return fmt.Sprintf("#%d %s", f.Index, f.Size)
}

func fontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRate
	byWidth := (w * 0.85) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
