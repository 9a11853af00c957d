package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	labels   bool
	viewport *layout.Rect
}

// WithScale sets the pixel density (default 2.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGLabels prints the index and size class inside each tile.
func WithPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = true } }

// WithPNGViewport restricts output to frames intersecting v.
func WithPNGViewport(v layout.Rect) PNGOption {
	return func(r *pngRenderer) { r.viewport = &v }
}

// RenderPNG rasterizes doc.
func RenderPNG(doc pkgio.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	view := canvas(doc, r.viewport)
	w, h := int(view.Width*r.scale+0.5), int(view.Height*r.scale+0.5)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(-view.X, -view.Y)

	for _, f := range visibleFrames(doc, r.viewport) {
		fill := f.Color
		if fill == "" {
			fill = defaultFill
		}
		dc.DrawRoundedRectangle(f.X, f.Y, f.Width, f.Height, cornerRadius)
		dc.SetHexColor(fill)
		dc.FillPreserve()
		dc.SetHexColor(strokeColor)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		if r.labels {
			dc.SetHexColor(labelColor)
			dc.DrawStringAnchored(label(f), f.X+f.Width/2, f.Y+f.Height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
