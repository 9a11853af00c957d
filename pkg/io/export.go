package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Document is the serialized form of a computed layout.
type Document struct {
	Width       float64     `json:"width"`
	SidePadding float64     `json:"side_padding"`
	CellSpacing float64     `json:"cell_spacing"`
	Content     layout.Size `json:"content_size"`
	Remainder   []tile.Size `json:"remainder,omitempty"`
	Segments    []Segment   `json:"segments"`
	Frames      []Frame     `json:"frames"`
}

// Segment is one serialized segment.
type Segment struct {
	Pattern tile.Pattern `json:"pattern"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	First   int          `json:"first"`
	Count   int          `json:"count"`
}

// Frame is one serialized tile frame.
type Frame struct {
	Index   int       `json:"index"`
	Segment int       `json:"segment"`
	Size    tile.Size `json:"size"`
	Color   string    `json:"color,omitempty"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
}

// NewDocument describes snapshot s. tiles supplies the size and color of
// each placed tile and must hold at least s.Len() entries; remainder lists
// the tiles the packer could not place.
func NewDocument(s *layout.Snapshot, tiles []tile.Tile, remainder []tile.Size) (Document, error) {
	if len(tiles) < s.Len() {
		return Document{}, errors.New(errors.ErrCodeInvalidInput,
			"layout has %d frames but only %d tiles were supplied", s.Len(), len(tiles))
	}
	doc := Document{
		Width:       s.Width,
		SidePadding: s.Options.SidePadding,
		CellSpacing: s.Options.CellSpacing,
		Content:     s.ContentSize(),
		Remainder:   remainder,
		Segments:    make([]Segment, len(s.Segments)),
		Frames:      make([]Frame, len(s.Frames)),
	}
	for i, seg := range s.Segments {
		doc.Segments[i] = Segment{
			Pattern: seg.Pattern,
			X:       seg.Rect.X, Y: seg.Rect.Y, Width: seg.Rect.Width, Height: seg.Rect.Height,
			First: seg.First, Count: seg.Count,
		}
	}
	for i, f := range s.Frames {
		doc.Frames[i] = Frame{
			Index: f.Index, Segment: f.Segment,
			Size: tiles[i].Size, Color: tiles[i].Color,
			X: f.X, Y: f.Y, Width: f.Width, Height: f.Height,
		}
	}
	return doc, nil
}

// Snapshot rebuilds a queryable snapshot from the document.
func (d Document) Snapshot() (*layout.Snapshot, error) {
	s := &layout.Snapshot{
		Width:    d.Width,
		Options:  layout.Options{SidePadding: d.SidePadding, CellSpacing: d.CellSpacing},
		Frames:   make([]layout.Frame, len(d.Frames)),
		Segments: make([]layout.Segment, len(d.Segments)),
		Bounds:   layout.Rect{Width: d.Content.Width, Height: d.Content.Height},
	}
	for i, f := range d.Frames {
		if f.Index != i {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "frame %d has index %d", i, f.Index)
		}
		s.Frames[i] = layout.Frame{
			Index: f.Index, Segment: f.Segment,
			Rect: layout.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		}
	}
	if err := d.checkSegments(); err != nil {
		return nil, err
	}
	for i, seg := range d.Segments {
		s.Segments[i] = layout.Segment{
			Pattern: seg.Pattern,
			Rect:    layout.Rect{X: seg.X, Y: seg.Y, Width: seg.Width, Height: seg.Height},
			First:   seg.First, Count: seg.Count,
		}
	}
	return s, nil
}

// checkSegments verifies what rect queries rely on: segments sorted top to
// bottom without overlap, each owning the next run of frames its pattern
// consumes, together covering every frame exactly once.
func (d Document) checkSegments() error {
	next := 0
	prevBottom := 0.0
	for i, seg := range d.Segments {
		if !seg.Pattern.Valid() {
			return errors.New(errors.ErrCodeInvalidFormat, "segment %d has an invalid pattern", i)
		}
		if seg.First != next || seg.Count != seg.Pattern.TileCount() || seg.First+seg.Count > len(d.Frames) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"segment %d owns frames [%d, %d), want %d %s frame(s) from %d",
				i, seg.First, seg.First+seg.Count, seg.Pattern.TileCount(), seg.Pattern, next)
		}
		if seg.Height <= 0 || (i > 0 && seg.Y < prevBottom) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"segment %d at y=%v overlaps or precedes the segment above it", i, seg.Y)
		}
		for j := seg.First; j < seg.First+seg.Count; j++ {
			if d.Frames[j].Segment != i {
				return errors.New(errors.ErrCodeInvalidFormat,
					"frame %d claims segment %d but lies in segment %d", j, d.Frames[j].Segment, i)
			}
		}
		next += seg.Count
		prevBottom = seg.Y + seg.Height
	}
	if next != len(d.Frames) {
		return errors.New(errors.ErrCodeInvalidFormat, "segments cover %d of %d frames", next, len(d.Frames))
	}
	return nil
}

// Tiles returns the size and color of every frame in the document.
func (d Document) Tiles() []tile.Tile {
	out := make([]tile.Tile, len(d.Frames))
	for i, f := range d.Frames {
		out[i] = tile.Tile{Size: f.Size, Color: f.Color}
	}
	return out
}

// MarshalDocument encodes a document as indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes a document from JSON.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout document")
	}
	return d, nil
}

// WriteDocument encodes d as JSON and writes it to w.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout document")
	}
	return d, nil
}

// ExportDocument writes d to a JSON file at path.
func ExportDocument(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// ImportDocument reads a layout document from a JSON file at path.
func ImportDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
