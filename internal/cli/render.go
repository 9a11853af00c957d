package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/render"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output     string
	formats    string
	layoutFile string
	viewport   string
	labels     bool
	segments   bool
	detailed   bool
	scale      float64
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in inputFlags
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tiles-file|-]",
		Short: "Render a layout to SVG, PNG, JSON, DOT or a diagram",
		Long: `Render a layout to SVG, PNG, JSON, DOT or a diagram.

Formats:
  svg      tiles as colored rectangles
  png      the same drawing rasterized
  json     the layout document
  dot      Graphviz source of the layout → segment → tile structure
  diagram  that DOT graph rendered to SVG

Render either from a tile file (packing and laying out first) or from a
layout document written by 'layout' (--layout). --viewport crops the output
to x,y,w,h and only draws the tiles intersecting it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := render.ParseFormats(rf.formats)
			if err != nil {
				return err
			}
			if rf.output == stdinName && len(formats) > 1 {
				return fmt.Errorf("-o - needs a single format")
			}
			opts := c.options(lf)
			opts.Formats = formats
			opts.Labels = rf.labels
			opts.Segments = rf.segments
			opts.Detailed = rf.detailed
			opts.Scale = rf.scale
			opts.Refresh = rf.refresh
			if rf.viewport != "" {
				v, err := parseRect(rf.viewport)
				if err != nil {
					return fmt.Errorf("--viewport: %w", err)
				}
				opts.Viewport = &v
			}

			if rf.layoutFile != "" {
				if len(args) > 0 || in.sizes != "" {
					return fmt.Errorf("--layout replaces the tile input")
				}
				return c.renderDocument(cmd, rf, opts)
			}

			tiles, source, err := in.load(cmd, args)
			if err != nil {
				return err
			}
			opts.Tiles = tiles
			return c.renderTiles(cmd, rf, opts, source)
		},
	}

	in.register(cmd)
	registerLayoutFlags(cmd, &lf)
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), png, json, dot, diagram (comma-separated)")
	cmd.Flags().StringVar(&rf.layoutFile, "layout", "", "render a layout document instead of a tile file")
	cmd.Flags().StringVar(&rf.viewport, "viewport", "", "crop to rectangle x,y,w,h")
	cmd.Flags().BoolVar(&rf.labels, "labels", false, "label each tile with its index and size")
	cmd.Flags().BoolVar(&rf.segments, "segments", false, "outline segments")
	cmd.Flags().BoolVar(&rf.detailed, "detailed", false, "include frame rectangles in DOT and diagram output")
	cmd.Flags().Float64Var(&rf.scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&rf.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// renderTiles runs the full pipeline for a tile sequence.
func (c *CLI) renderTiles(cmd *cobra.Command, rf renderFlags, opts pipeline.Options, source string) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if n := result.Stats.Remainder; n > 0 {
		c.Logger.Warn("trailing tiles were not placed", "count", n)
	}

	return writeArtifacts(artifactWriteParams{
		stdout:    cmd.OutOrStdout(),
		status:    newStatus(cmd),
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		source:    source,
		output:    rf.output,
		doc:       result.Document,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// renderDocument renders a layout document read from disk.
func (c *CLI) renderDocument(cmd *cobra.Command, rf renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	doc, err := pkgio.ImportDocument(rf.layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", rf.layoutFile, err)
	}
	runner, err := c.newRunner(ctx, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return writeArtifacts(artifactWriteParams{
		stdout:    cmd.OutOrStdout(),
		status:    newStatus(cmd),
		artifacts: artifacts,
		formats:   opts.Formats,
		source:    trimLayoutSuffix(rf.layoutFile),
		output:    rf.output,
		doc:       doc,
		cacheHit:  cacheHit,
	})
}

type artifactWriteParams struct {
	stdout    io.Writer
	status    status
	artifacts map[string][]byte
	formats   []string
	source    string
	output    string
	doc       pkgio.Document
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to -o
// verbatim; several formats share the base path with per-format extensions.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.source)
	var paths []string
	for _, f := range p.formats {
		path := base + "." + render.Extension(f)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeOutput(p.stdout, path, p.artifacts[f]); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	if p.output == stdinName {
		return nil
	}

	p.status.success("Rendered %d format(s)", len(paths))
	for _, path := range paths {
		p.status.file(path)
	}
	p.status.stats(len(p.doc.Frames), len(p.doc.Segments), len(p.doc.Remainder), p.cacheHit)
	return nil
}

// trimLayoutSuffix maps "x.layout.json" to "x.json" so outputs derived
// from a layout document land next to it as x.svg, x.png and so on.
func trimLayoutSuffix(path string) string {
	if base, ok := strings.CutSuffix(path, ".layout.json"); ok {
		return base + ".json"
	}
	return path
}
