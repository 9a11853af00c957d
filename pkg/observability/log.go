package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// charm logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetQueryHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (h *LogHooks) OnPackStart(_ context.Context, tiles int) {
	h.logger.Debug("pack start", "tiles", tiles)
}

func (h *LogHooks) OnPackComplete(_ context.Context, segments, remainder int, d time.Duration, err error) {
	h.done("pack", err, "segments", segments, "remainder", remainder, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, width float64, segments int) {
	h.logger.Debug("layout start", "width", width, "segments", segments)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, width float64, frames int, d time.Duration, err error) {
	h.done("layout", err, "width", width, "frames", frames, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnQuery(_ context.Context, kind string, results int, d time.Duration) {
	h.logger.Debug("query", "kind", kind, "results", results, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ QueryHooks    = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
