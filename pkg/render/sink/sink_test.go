package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

func testDocument(t *testing.T, sizes ...tile.Size) pkgio.Document {
	t.Helper()
	tiles := tile.AssignColors(tile.FromSizes(sizes), 7)
	packing, err := tile.Pack(sizes)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	snap, err := layout.Compute(348, packing.Patterns, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	doc, err := pkgio.NewDocument(snap, tiles, packing.Remainder)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestRenderSVG(t *testing.T) {
	doc := testDocument(t, tile.Sample()...)
	svg := string(RenderSVG(doc))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if got := strings.Count(svg, `class="tile"`); got != len(doc.Frames) {
		t.Errorf("rendered %d tiles, want %d", got, len(doc.Frames))
	}
	if strings.Contains(svg, "<text") {
		t.Error("labels rendered without WithLabels")
	}
	if strings.Contains(svg, `class="segment"`) {
		t.Error("segments rendered without WithSegments")
	}
	if !strings.Contains(svg, doc.Frames[0].Color) {
		t.Error("tile color missing from output")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	doc := testDocument(t, tile.DoubleHeight, tile.DoubleHeight, tile.FullWidth)
	svg := string(RenderSVG(doc, WithLabels(), WithSegments()))

	if got := strings.Count(svg, "<text"); got != 3 {
		t.Errorf("rendered %d labels, want 3", got)
	}
	if got := strings.Count(svg, `class="segment"`); got != 2 {
		t.Errorf("rendered %d segments, want 2", got)
	}
	if !strings.Contains(svg, "two-double-heights") {
		t.Error("segment title missing")
	}
}

func TestRenderSVGViewport(t *testing.T) {
	doc := testDocument(t, tile.DoubleHeight, tile.DoubleHeight, tile.FullWidth)
	// Only the full-width tile lies below the first segment.
	second := doc.Segments[1]
	view := layout.Rect{X: 0, Y: second.Y, Width: doc.Width, Height: second.Height}

	svg := string(RenderSVG(doc, WithViewport(view)))
	if got := strings.Count(svg, `class="tile"`); got != 1 {
		t.Errorf("rendered %d tiles in viewport, want 1", got)
	}
	if !strings.Contains(svg, `id="tile-2"`) {
		t.Error("viewport should contain tile 2")
	}
}

func TestRenderPNG(t *testing.T) {
	doc := testDocument(t, tile.Square, tile.Square)
	data, err := RenderPNG(doc, WithScale(1), WithPNGLabels())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != int(doc.Content.Width) || b.Dy() != int(doc.Content.Height) {
		t.Errorf("image %dx%d, want %gx%g", b.Dx(), b.Dy(), doc.Content.Width, doc.Content.Height)
	}
}

func TestRenderPNGScale(t *testing.T) {
	doc := testDocument(t, tile.FullWidth)
	data, err := RenderPNG(doc)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != int(2*doc.Content.Width) {
		t.Errorf("width = %d, want %g", cfg.Width, 2*doc.Content.Width)
	}
}

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t, tile.Sample()...)
	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	back, err := pkgio.UnmarshalDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(RenderSVG(back), RenderSVG(doc)) {
		t.Error("re-imported document renders differently")
	}
}

func TestFontSizeBounds(t *testing.T) {
	if s := fontSize(10, 10, 20); s != fontSizeMin {
		t.Errorf("tiny tile font = %v, want %v", s, fontSizeMin)
	}
	if s := fontSize(2000, 2000, 2); s != fontSizeMax {
		t.Errorf("huge tile font = %v, want %v", s, fontSizeMax)
	}
}
