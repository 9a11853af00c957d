package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// stdinName is the file argument that reads tiles from standard input.
const stdinName = "-"

// inputFlags selects where a command reads its tiles from: a file argument,
// standard input ("-"), an inline --sizes list, or the built-in sample.
type inputFlags struct {
	sizes  string
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sizes, "sizes", "", `inline tile sizes, e.g. "1x2,1x2,2x1"`)
	cmd.Flags().StringVar(&f.format, "input-format", "", "tile file format: json, toml, text (default: from extension)")
}

// load returns the tiles and a short name for their source. With neither a
// file nor --sizes the sample sequence is used.
func (f inputFlags) load(cmd *cobra.Command, args []string) ([]tile.Tile, string, error) {
	switch {
	case len(args) > 0 && f.sizes != "":
		return nil, "", fmt.Errorf("give either a tile file or --sizes, not both")
	case f.sizes != "":
		return readInline(f.sizes)
	case len(args) == 0:
		return tile.FromSizes(tile.Sample()), "sample", nil
	case args[0] == stdinName:
		tiles, err := readStdin(cmd.InOrStdin(), f.format)
		return tiles, "stdin", err
	default:
		tiles, err := readFile(args[0], f.format)
		return tiles, args[0], err
	}
}

func readInline(sizes string) ([]tile.Tile, string, error) {
	tiles, err := pkgio.ReadText(strings.NewReader(sizes))
	if err != nil {
		return nil, "", fmt.Errorf("--sizes: %w", err)
	}
	return tiles, "inline", nil
}

func readStdin(r io.Reader, format string) ([]tile.Tile, error) {
	tiles, err := pkgio.ReadTiles(r, format)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	return tiles, nil
}

func readFile(path, format string) ([]tile.Tile, error) {
	if format == "" {
		return pkgio.ImportTiles(path)
	}
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tiles, err := pkgio.ReadTiles(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tiles, nil
}

// basePath derives the output base path. Without -o it is the input name
// without extension, or "tiles" for the sample, inline and stdin sources.
// A known format extension on -o is stripped.
func basePath(output, source string) string {
	if output == "" {
		switch source {
		case "sample", "inline", "stdin":
			return "tiles"
		}
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == "svg" && strings.HasSuffix(output, ".diagram.svg") {
		return strings.TrimSuffix(output, ".diagram.svg")
	}
	switch ext {
	case "svg", "png", "json", "dot":
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
