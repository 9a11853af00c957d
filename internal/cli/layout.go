package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// registerLayoutFlags adds the flags shared by commands that compute a
// layout.
func registerLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "container width in points (default: config layout.width)")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "side padding (default: config layout.padding)")
	cmd.Flags().Float64Var(&f.spacing, "spacing", 0, "cell spacing (default: config layout.spacing)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "palette seed for tiles without a color (default: config render.seed)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail if trailing tiles do not complete a segment")
}

// layoutCommand creates the layout command for computing layout documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in      inputFlags
		lf      layoutFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tiles-file|-]",
		Short: "Compute the layout document for a container width",
		Long: `Compute the layout document for a container width.

The document lists every segment and every tile frame (index, segment, size,
color and rectangle) together with the content size and the remainder. It is
the input of 'render --layout' and the format of 'render -f json'.

Results are cached; use --refresh to recompute or --no-cache to bypass the
cache entirely.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, source, err := in.load(cmd, args)
			if err != nil {
				return err
			}
			opts := c.options(lf)
			opts.Tiles = tiles
			opts.Refresh = refresh
			return c.runLayout(cmd, opts, source, output, noCache)
		},
	}

	in.register(cmd)
	registerLayoutFlags(cmd, &lf)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default: <input>.layout.json)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLayout computes the document and writes it.
func (c *CLI) runLayout(cmd *cobra.Command, opts pipeline.Options, source, output string, noCache bool) error {
	ctx := cmd.Context()
	doc, cached, err := c.computeLayout(ctx, opts, noCache)
	if err != nil {
		return err
	}

	data, err := pkgio.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if output == "" {
		output = basePath("", source) + ".layout.json"
	}
	if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
		return err
	}
	if output == stdinName {
		return nil
	}

	st := newStatus(cmd)
	st.success("Layout complete")
	st.file(output)
	st.stats(len(doc.Frames), len(doc.Segments), len(doc.Remainder), cached)
	st.nextStep("Render", appName+" render --layout "+output)
	return nil
}

func (c *CLI) computeLayout(ctx context.Context, opts pipeline.Options, noCache bool) (pkgio.Document, bool, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return pkgio.Document{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, cached, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return pkgio.Document{}, false, fmt.Errorf("compute layout: %w", err)
	}
	if n := len(doc.Remainder); n > 0 {
		c.Logger.Warn("trailing tiles were not placed", "count", n)
	}
	return doc, cached, nil
}
