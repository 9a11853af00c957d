package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/tile"
)

// Registry defaults.
const (
	DefaultMaxLayouts = 1024
	DefaultIdleTTL    = time.Hour
)

// Entry is one registered layout.
type Entry struct {
	ID        uuid.UUID
	Engine    *layout.Engine
	Tiles     []tile.Tile
	Remainder []tile.Size
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

func (e *Entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastUsed = now
	e.mu.Unlock()
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// Registry maps layout ids to engines.
type Registry struct {
	layouts *lru.Cache[uuid.UUID, *Entry]
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates a registry holding at most max layouts, each expiring
// after ttl without use. Non-positive values select the defaults.
func NewRegistry(max int, ttl time.Duration) (*Registry, error) {
	if max <= 0 {
		max = DefaultMaxLayouts
	}
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	c, err := lru.New[uuid.UUID, *Entry](max)
	if err != nil {
		return nil, err
	}
	return &Registry{layouts: c, ttl: ttl, now: time.Now}, nil
}

// Add registers an engine and returns its new entry.
func (r *Registry) Add(engine *layout.Engine, tiles []tile.Tile, remainder []tile.Size) *Entry {
	now := r.now()
	e := &Entry{
		ID:        uuid.New(),
		Engine:    engine,
		Tiles:     tiles,
		Remainder: remainder,
		CreatedAt: now,
		lastUsed:  now,
	}
	r.layouts.Add(e.ID, e)
	return e
}

// Get returns the layout registered under id. Unknown, evicted and expired
// ids fail with NOT_FOUND.
func (r *Registry) Get(id string) (*Entry, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
	}
	e, ok := r.layouts.Get(key)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "layout %s not found", key)
	}
	now := r.now()
	if now.Sub(e.idleSince()) > r.ttl {
		r.layouts.Remove(key)
		return nil, errors.New(errors.ErrCodeNotFound, "layout %s expired", key)
	}
	e.touch(now)
	return e, nil
}

// Delete removes id and reports whether it was present.
func (r *Registry) Delete(id string) bool {
	key, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return r.layouts.Remove(key)
}

// Cleanup drops every expired layout and returns how many were removed.
func (r *Registry) Cleanup() int {
	now := r.now()
	removed := 0
	for _, key := range r.layouts.Keys() {
		e, ok := r.layouts.Peek(key)
		if ok && now.Sub(e.idleSince()) > r.ttl {
			r.layouts.Remove(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int { return r.layouts.Len() }
