package ggmask

// Maskable gives an ordinary graphic the stencil test of the masks that
// enclose it, so it only draws where every enclosing mask wrote its bit.
//
// A graphic whose own node carries an active mask is left to that mask's
// push material.
type Maskable struct {
	node    Node
	cache   *MaterialCache
	enabled bool

	// Owned reference into cache; nil when not held.
	material Material
}

var _ MaterialModifier = (*Maskable)(nil)

// NewMaskable creates the clip test for a graphic on node. Only the
// WithMaterialCache option is honoured.
func NewMaskable(node Node, opts ...MaskOption) *Maskable {
	o := defaultMaskOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = DefaultMaterialCache()
	}
	return &Maskable{node: node, cache: o.cache, enabled: true}
}

// SetMaskable toggles whether the graphic is clipped by enclosing masks.
func (m *Maskable) SetMaskable(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.Release()
	}
}

// IsMaskable reports whether the graphic is clipped by enclosing masks.
func (m *Maskable) IsMaskable() bool { return m.enabled }

// ModifiedMaterial returns base with a stencil test requiring all enclosing
// mask bits, or base itself when no mask encloses the graphic.
// Depths beyond MaxStencilDepth clamp to it.
func (m *Maskable) ModifiedMaterial(base Material) Material {
	depth := resolveDepth(m.node)
	if !m.enabled || depth == 0 || m.node.HasActiveMask() {
		m.Release()
		return base
	}

	mat, owned := m.cache.acquire(base, ClipState(depth))
	m.cache.Release(m.material)
	m.material = nil
	if owned {
		m.material = mat
	}
	return mat
}

// Release drops the held material.
func (m *Maskable) Release() {
	m.cache.Release(m.material)
	m.material = nil
}
