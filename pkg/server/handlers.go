package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/errors"
	pkgio "github.com/matzehuels/tilegrid/pkg/io"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/render/sink"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

const maxBodyBytes = 8 << 20

type createRequest struct {
	Tiles       []tile.Tile `json:"tiles"`
	Sizes       string      `json:"sizes"`
	Width       float64     `json:"width"`
	SidePadding float64     `json:"side_padding"`
	CellSpacing float64     `json:"cell_spacing"`
	Strict      bool        `json:"strict"`
	Seed        uint64      `json:"seed"`
}

type layoutResponse struct {
	ID          string      `json:"id"`
	Width       float64     `json:"width"`
	ContentSize layout.Size `json:"content_size"`
	Tiles       int         `json:"tiles"`
	Segments    int         `json:"segments"`
	Remainder   []tile.Size `json:"remainder,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type framesResponse struct {
	Frames []layout.Frame `json:"frames"`
}

type resizeRequest struct {
	Width float64 `json:"width"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status  string         `json:"status"`
		Layouts int            `json:"layouts"`
		Build   buildinfo.Info `json:"build"`
	}{"ok", s.registry.Len(), buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tiles := req.Tiles
	if len(tiles) == 0 && req.Sizes != "" {
		sizes, err := tile.ParseSizes(req.Sizes)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		tiles = tile.FromSizes(sizes)
	}

	opts := s.defaults
	opts.Tiles = tiles
	opts.Strict = req.Strict || s.defaults.Strict
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.SidePadding != 0 {
		opts.SidePadding = req.SidePadding
	}
	if req.CellSpacing != 0 {
		opts.CellSpacing = req.CellSpacing
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	opts.SetLayoutDefaults()
	engine, packing, err := pipeline.PrepareEngine(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e := s.registry.Add(engine, tile.AssignColors(opts.Tiles, opts.Seed), packing.Remainder)
	s.logger.Debug("layout created", "id", e.ID, "tiles", len(e.Tiles), "segments", len(packing.Patterns))

	resp, err := describe(e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+e.ID.String())
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	doc, err := document(e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.registry.Delete(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "layout %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req resizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateWidth(req.Width, e.Engine.Options().SidePadding); err != nil {
		s.writeError(w, r, err)
		return
	}
	if e.Engine.Invalidate(req.Width) {
		if _, err := e.Engine.Layout(req.Width); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.logger.Debug("layout resized", "id", e.ID, "width", req.Width)
	}
	resp, err := describe(e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "tile index %q is not an integer", raw))
		return
	}
	f, err := pipeline.QueryIndex(r.Context(), e.Engine, i)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleFramesInRect(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	q, err := parseRect(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if q == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "query rectangle requires x, y, w and h"))
		return
	}
	frames, err := pipeline.QueryRect(r.Context(), e.Engine, *q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if frames == nil {
		frames = []layout.Frame{}
	}
	writeJSON(w, http.StatusOK, framesResponse{Frames: frames})
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	viewport, err := parseRect(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := document(e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []sink.SVGOption
	if viewport != nil {
		if err := errors.ValidateRect(viewport.X, viewport.Y, viewport.Width, viewport.Height); err != nil {
			s.writeError(w, r, err)
			return
		}
		opts = append(opts, sink.WithViewport(*viewport))
	}
	if flag(r, "labels") {
		opts = append(opts, sink.WithLabels())
	}
	if flag(r, "segments") {
		opts = append(opts, sink.WithSegments())
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sink.RenderSVG(doc, opts...))
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*Entry, bool) {
	e, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return e, true
}

func describe(e *Entry) (layoutResponse, error) {
	snap, err := e.Engine.Snapshot()
	if err != nil {
		return layoutResponse{}, err
	}
	return layoutResponse{
		ID:          e.ID.String(),
		Width:       snap.Width,
		ContentSize: snap.ContentSize(),
		Tiles:       snap.Len(),
		Segments:    len(snap.Segments),
		Remainder:   e.Remainder,
		CreatedAt:   e.CreatedAt,
	}, nil
}

func document(e *Entry) (pkgio.Document, error) {
	snap, err := e.Engine.Snapshot()
	if err != nil {
		return pkgio.Document{}, err
	}
	return pkgio.NewDocument(snap, e.Tiles, e.Remainder)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body: %v", err)
	}
	return nil
}

// parseRect reads x, y, w and h from the query string. It returns nil when
// none of them is present.
func parseRect(r *http.Request) (*layout.Rect, error) {
	q := r.URL.Query()
	keys := [4]string{"x", "y", "w", "h"}
	present := 0
	for _, k := range keys {
		if q.Has(k) {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present < len(keys) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "query rectangle requires x, y, w and h")
	}
	var v [4]float64
	for i, k := range keys {
		f, err := strconv.ParseFloat(q.Get(k), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", k, q.Get(k))
		}
		v[i] = f
	}
	return &layout.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func flag(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}
