package pipeline

import (
	"context"
	"fmt"
	"time"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/render"
	"github.com/matzehuels/tilegrid/pkg/render/diagram"
	"github.com/matzehuels/tilegrid/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, doc pkgio.Document, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, doc pkgio.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatSVG:
			data = sink.RenderSVG(doc, svgOptions(opts)...)
		case render.FormatPNG:
			data, err = sink.RenderPNG(doc, pngOptions(opts)...)
		case render.FormatJSON:
			data, err = sink.RenderJSON(doc)
		case render.FormatDOT:
			data = []byte(diagram.ToDOT(doc, diagram.Options{Detailed: opts.Detailed}))
		case render.FormatDiagram:
			data, err = diagram.RenderSVG(ctx, diagram.ToDOT(doc, diagram.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	if opts.Segments {
		out = append(out, sink.WithSegments())
	}
	if opts.Viewport != nil {
		out = append(out, sink.WithViewport(*opts.Viewport))
	}
	return out
}

func pngOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.Labels {
		out = append(out, sink.WithPNGLabels())
	}
	if opts.Viewport != nil {
		out = append(out, sink.WithPNGViewport(*opts.Viewport))
	}
	return out
}
