package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// packCommand creates the pack command, which prints the segment patterns
// chosen for a tile sequence.
func (c *CLI) packCommand() *cobra.Command {
	var (
		in     inputFlags
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "pack [tiles-file|-]",
		Short: "Group a tile sequence into segment patterns",
		Long: `Group a tile sequence into segment patterns.

Tiles are consumed in order and matched greedily against the six segment
patterns. Tiles left over at the end that start a valid segment but do not
complete it are reported as the remainder; with --strict they are an error.
Without a file argument the built-in sample sequence is packed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, source, err := in.load(cmd, args)
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			packing, err := pipeline.Pack(cmd.Context(), pipeline.Options{Tiles: tiles, Strict: strict})
			if err != nil {
				return fmt.Errorf("pack %s: %w", source, err)
			}
			prog.done(fmt.Sprintf("Packed %d tiles", len(tiles)))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(packing)
			}
			printPacking(out, packing)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if trailing tiles do not complete a segment")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the packing as JSON")

	return cmd
}

// printPacking lists one segment per line with the tile indices it holds.
func printPacking(w io.Writer, p tile.Packing) {
	first := 0
	for i, pat := range p.Patterns {
		n := pat.TileCount()
		fmt.Fprintf(w, "%s %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%3d", i)),
			StyleValue.Render(fmt.Sprintf("%-32s", pat)),
			StyleDim.Render(tileRange(first, n)))
		first += n
	}
	if len(p.Remainder) > 0 {
		fmt.Fprintln(w, StyleWarning.Render(fmt.Sprintf("remainder: %d tile(s) from tile %d do not complete a segment", len(p.Remainder), first)))
	}
}

func tileRange(first, n int) string {
	if n == 1 {
		return fmt.Sprintf("tile %d", first)
	}
	return fmt.Sprintf("tiles %d-%d", first, first+n-1)
}
