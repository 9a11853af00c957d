package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// queryCommand creates the query command, which prepares an engine and
// answers one frame lookup.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		in     inputFlags
		lf     layoutFlags
		index  int
		rect   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query [tiles-file|-] (--index I | --rect x,y,w,h)",
		Short: "Look up frames by tile index or viewport rectangle",
		Long: `Look up frames by tile index or viewport rectangle.

--index prints the frame of one tile. --rect prints every frame intersecting
the rectangle, in tile order, using the segment index rather than a scan of
all frames.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasIndex := cmd.Flags().Changed("index")
			if hasIndex == (rect != "") {
				return fmt.Errorf("give exactly one of --index or --rect")
			}
			var q layout.Rect
			if rect != "" {
				r, err := parseRect(rect)
				if err != nil {
					return err
				}
				q = r
			}

			tiles, source, err := in.load(cmd, args)
			if err != nil {
				return err
			}
			opts := c.options(lf)
			opts.Tiles = tiles
			engine, _, err := pipeline.PrepareEngine(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			var frames []layout.Frame
			if hasIndex {
				f, err := pipeline.QueryIndex(cmd.Context(), engine, index)
				if err != nil {
					return err
				}
				frames = []layout.Frame{f}
			} else {
				frames, err = pipeline.QueryRect(cmd.Context(), engine, q)
				if err != nil {
					return err
				}
			}
			c.Logger.Debug("query answered", "frames", len(frames))

			out := cmd.OutOrStdout()
			if asJSON {
				if frames == nil {
					frames = []layout.Frame{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(frames)
			}
			printFrames(out, frames)
			return nil
		},
	}

	in.register(cmd)
	registerLayoutFlags(cmd, &lf)
	cmd.Flags().IntVar(&index, "index", 0, "tile index")
	cmd.Flags().StringVar(&rect, "rect", "", "viewport rectangle x,y,w,h")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print frames as JSON")

	return cmd
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (layout.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return layout.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return layout.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rectangle %q: %q is not a number", s, p)
		}
		v[i] = f
	}
	r := layout.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if err := errors.ValidateRect(r.X, r.Y, r.Width, r.Height); err != nil {
		return layout.Rect{}, err
	}
	return r, nil
}

func printFrames(w io.Writer, frames []layout.Frame) {
	if len(frames) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no frames"))
		return
	}
	rows := make([][]string, len(frames))
	for i, f := range frames {
		rows[i] = []string{
			strconv.Itoa(f.Index),
			strconv.Itoa(f.Segment),
			num(f.X), num(f.Y), num(f.Width), num(f.Height),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("tile", "segment", "x", "y", "width", "height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Fprintln(w, t.Render())
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
