package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds frame geometry to every node label.
	Detailed bool
}

// ToDOT converts a layout document to Graphviz DOT.
func ToDOT(doc pkgio.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  layout [label=%q, shape=folder];\n", rootLabel(doc))
	for i, s := range doc.Segments {
		label := fmt.Sprintf("segment %d\n%s", i, s.Pattern)
		if opts.Detailed {
			label += fmt.Sprintf("\n%s", geometry(s.X, s.Y, s.Width, s.Height))
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightgrey];\n", segmentID(i), label)
	}
	for _, f := range doc.Frames {
		attrs := []string{fmt.Sprintf("label=%q", tileLabel(f, opts.Detailed))}
		if f.Color != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", f.Color))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", tileID(f.Index), strings.Join(attrs, ", "))
	}
	if len(doc.Remainder) > 0 {
		fmt.Fprintf(&buf, "  remainder [label=%q, style=\"rounded,dashed\"];\n", remainderLabel(doc))
	}

	buf.WriteString("\n")
	for i := range doc.Segments {
		fmt.Fprintf(&buf, "  layout -> %q;\n", segmentID(i))
	}
	for i, s := range doc.Segments {
		for j := s.First; j < s.First+s.Count; j++ {
			fmt.Fprintf(&buf, "  %q -> %q;\n", segmentID(i), tileID(j))
		}
	}
	if len(doc.Remainder) > 0 {
		buf.WriteString("  layout -> remainder [style=dashed];\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func segmentID(i int) string { return "s" + strconv.Itoa(i) }
func tileID(i int) string    { return "t" + strconv.Itoa(i) }

func rootLabel(doc pkgio.Document) string {
	return fmt.Sprintf("width %g\ncontent %gx%g", doc.Width, doc.Content.Width, doc.Content.Height)
}

func tileLabel(f pkgio.Frame, detailed bool) string {
	label := fmt.Sprintf("#%d %s", f.Index, f.Size)
	if detailed {
		label += "\n" + geometry(f.X, f.Y, f.Width, f.Height)
	}
	return label
}

func remainderLabel(doc pkgio.Document) string {
	parts := make([]string, len(doc.Remainder))
	for i, s := range doc.Remainder {
		parts[i] = s.String()
	}
	return "unplaced\n" + strings.Join(parts, " ")
}

func geometry(x, y, w, h float64) string {
	return fmt.Sprintf("(%g, %g) %gx%g", x, y, w, h)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg header with a unitless
// one so the diagram scales like the grid SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
