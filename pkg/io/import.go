package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Tile file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatText = "text"
)

type tileFile struct {
	Tiles []tile.Tile `json:"tiles"`
}

// tomlTile keeps sizes as strings so parse errors name the tile index.
type tomlTile struct {
	Size  string `toml:"size"`
	Color string `toml:"color"`
}

// ReadJSON decodes tiles from r. The input is either {"tiles": [...]} or a
// bare array of tile objects.
func ReadJSON(r io.Reader) ([]tile.Tile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)

	var tiles []tile.Tile
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &tiles)
	} else {
		var f tileFile
		err = json.Unmarshal(data, &f)
		tiles = f.Tiles
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tile JSON")
	}
	return tiles, validate(tiles)
}

// ReadTOML decodes tiles from a TOML document with a [[tiles]] array.
func ReadTOML(r io.Reader) ([]tile.Tile, error) {
	var f struct {
		Tiles []tomlTile `toml:"tiles"`
	}
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tile TOML")
	}
	tiles := make([]tile.Tile, len(f.Tiles))
	for i, t := range f.Tiles {
		s, err := tile.ParseSize(t.Size)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSize, err, "tile %d", i)
		}
		tiles[i] = tile.Tile{Size: s, Color: t.Color}
	}
	return tiles, validate(tiles)
}

// ReadText decodes sizes separated by commas, whitespace or newlines.
// Text after "#" on a line is ignored.
func ReadText(r io.Reader) ([]tile.Tile, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	sizes, err := tile.ParseSizes(b.String())
	if err != nil {
		return nil, err
	}
	tiles := tile.FromSizes(sizes)
	return tiles, validate(tiles)
}

// ReadTiles decodes tiles from r in the given format. An empty format
// sniffs the first non-space byte: '{' or '[' selects JSON, anything else
// plain text.
func ReadTiles(r io.Reader, format string) ([]tile.Tile, error) {
	if format == "" {
		br := bufio.NewReader(r)
		format = sniff(br)
		r = br
	}
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatText:
		return ReadText(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tile format %q (want json, toml or text)", format)
	}
}

// ImportTiles reads a tile file at path. The format is chosen from the
// extension: .json, .toml, or anything else as plain text.
func ImportTiles(path string) ([]tile.Tile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tile file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tiles, err := ReadTiles(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tiles, nil
}

// FormatForPath maps a file extension to a tile format.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

func sniff(br *bufio.Reader) string {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return FormatText
		}
		switch b[0] {
		case ' ', '\t', '\n', '\r':
			_, _ = br.ReadByte()
		case '{', '[':
			return FormatJSON
		default:
			return FormatText
		}
	}
}

func validate(tiles []tile.Tile) error {
	if err := errors.ValidateTileCount(len(tiles)); err != nil {
		return err
	}
	for i, t := range tiles {
		if !t.Size.Valid() {
			return errors.New(errors.ErrCodeInvalidSize, "tile %d is missing a size", i)
		}
	}
	return nil
}
