package cache

// Keyer derives cache keys from the inputs of each cached stage.
type Keyer interface {
	// LayoutKey identifies a layout document for a tile sequence.
	LayoutKey(tilesHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the tiles.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	SidePadding float64 `json:"side_padding"`
	CellSpacing float64 `json:"cell_spacing"`
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Labels   bool    `json:"labels,omitempty"`
	Segments bool    `json:"segments,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Viewport string  `json:"viewport,omitempty"`
}

// DefaultKeyer hashes the inputs of each stage with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(tilesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tilesHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, giving callers that
// share a backend their own namespace.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(tilesHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(tilesHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
