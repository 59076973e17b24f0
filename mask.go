package ggmask

import "fmt"

// MaskState is the lifecycle state of a Mask.
type MaskState uint8

const (
	// StateDisabled means the mask clips nothing and holds no materials.
	StateDisabled MaskState = iota
	// StateEnabledNoGraphic means the mask clips its descendants but draws
	// nothing itself.
	StateEnabledNoGraphic
	// StateEnabledWithGraphic means the mask draws its graphic into the
	// stencil buffer.
	StateEnabledWithGraphic
)

// String returns the state name.
func (s MaskState) String() string {
	switch s {
	case StateDisabled:
		return "Disabled"
	case StateEnabledNoGraphic:
		return "EnabledNoGraphic"
	case StateEnabledWithGraphic:
		return "EnabledWithGraphic"
	default:
		return fmt.Sprintf("MaskState(%d)", s)
	}
}

// Mask restricts rendering of a node's descendants to the node's rectangle
// using the stencil buffer.
//
// A mask with a graphic draws that graphic with a push material that sets
// the mask's stencil bit, and has the renderer draw it again with a pop
// material after the subtree, restoring the parent's stencil value. Nested
// masks each own one bit of the 8-bit stencil value; a mask nested deeper
// than MaxStencilDepth is skipped with a diagnostic.
//
// Mask is not safe for concurrent use; one goroutine drives the hierarchy.
type Mask struct {
	node    Node
	rect    RectTransform
	graphic Graphic

	cache    *MaterialCache
	notifier Notifier
	diag     Diagnostics

	enabled         bool
	destroyed       bool
	showMaskGraphic bool

	// applied is set by the last derivation that wrote the mask's bit.
	applied bool

	// Owned references into cache; nil when not held.
	maskMaterial   Material
	unmaskMaterial Material
}

var (
	_ MaterialModifier = (*Mask)(nil)
	_ RaycastFilter    = (*Mask)(nil)
)

// NewMask attaches a disabled mask to node. rect supplies the clip rectangle
// for hit testing; graphic may be nil, in which case the mask draws nothing
// and only contributes to its descendants' stencil depth.
func NewMask(node Node, rect RectTransform, graphic Graphic, opts ...MaskOption) *Mask {
	o := defaultMaskOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = DefaultMaterialCache()
	}

	return &Mask{
		node:            node,
		rect:            rect,
		graphic:         graphic,
		cache:           o.cache,
		notifier:        o.notifier,
		diag:            o.diagnostics,
		showMaskGraphic: o.showMaskGraphic,
	}
}

// Node returns the node the mask is attached to.
func (m *Mask) Node() Node { return m.node }

// Graphic returns the mask's graphic, or nil.
func (m *Mask) Graphic() Graphic { return m.graphic }

// IsActive reports whether the mask is enabled and not destroyed.
func (m *Mask) IsActive() bool {
	return m.enabled && !m.destroyed
}

// State returns the current lifecycle state.
func (m *Mask) State() MaskState {
	switch {
	case !m.IsActive():
		return StateDisabled
	case m.graphic == nil:
		return StateEnabledNoGraphic
	default:
		return StateEnabledWithGraphic
	}
}

// ShowMaskGraphic reports whether the mask's graphic is drawn visibly.
func (m *Mask) ShowMaskGraphic() bool { return m.showMaskGraphic }

// SetShowMaskGraphic toggles whether the mask's graphic is drawn visibly or
// only written to the stencil buffer.
func (m *Mask) SetShowMaskGraphic(show bool) {
	if m.showMaskGraphic == show {
		return
	}
	m.showMaskGraphic = show
	if m.graphic != nil {
		m.graphic.MarkMaterialDirty()
	}
}

// Enable activates the mask. The graphic is flagged for a pop pass and
// dirtied, and the stencil change is announced for the subtree.
// Enabling an active or destroyed mask does nothing.
func (m *Mask) Enable() {
	if m.enabled || m.destroyed {
		return
	}
	m.enabled = true

	if m.graphic != nil {
		m.graphic.SetStencilWriteEnabled(true)
		m.graphic.MarkMaterialDirty()
	}
	m.notifier.NotifyStencilStateChanged(m.node)
}

// Disable deactivates the mask and releases its materials. It is safe to
// call more than once; repeated calls only repeat the no-op releases.
func (m *Mask) Disable() {
	wasEnabled := m.enabled
	m.enabled = false

	if wasEnabled && m.graphic != nil {
		m.graphic.MarkMaterialDirty()
		m.graphic.SetStencilWriteEnabled(false)
		m.graphic.SetPopMaterialSlotCount(0)
	}
	m.releaseMaterials()

	if wasEnabled {
		m.notifier.NotifyStencilStateChanged(m.node)
	}
}

// Validate re-announces the mask after its configuration was edited.
// It does nothing while the mask is inactive.
func (m *Mask) Validate() {
	if !m.IsActive() {
		return
	}
	if m.graphic != nil {
		m.graphic.MarkMaterialDirty()
	}
	m.notifier.NotifyStencilStateChanged(m.node)
}

// Destroy disables the mask for good; it cannot be enabled again.
func (m *Mask) Destroy() {
	m.Disable()
	m.destroyed = true
}

// Materials returns the push and pop materials currently held, or nil.
// A mask skipped by its last derivation may still hold them; see Applied.
func (m *Mask) Materials() (push, pop Material) {
	return m.maskMaterial, m.unmaskMaterial
}

// Applied reports whether the last call to ModifiedMaterial returned the
// push material, so the mask's graphic writes its stencil bit.
func (m *Mask) Applied() bool { return m.applied }

// ModifiedMaterial derives the material the mask's graphic is drawn with.
//
// The mask's stencil depth is resolved against the nearest isolation
// boundary. The returned push material writes this level's bit where all
// ancestor bits are set; the matching pop material is stored in the
// graphic's single pop slot. A mask without a graphic, an inactive mask and
// a mask nested MaxStencilDepth or more levels deep return base unchanged;
// the latter also reports a diagnostic. If the cache cannot provide both
// materials, the mask is skipped for this derivation.
func (m *Mask) ModifiedMaterial(base Material) Material {
	m.applied = false
	if m.graphic == nil || !m.IsActive() {
		return base
	}

	depth := resolveDepth(m.node)
	if depth >= MaxStencilDepth {
		m.diag.Warn(fmt.Sprintf("ggmask: stencil mask nested %d levels deep, at most %d supported",
			depth+1, MaxStencilDepth), m.node)
		// Materials stay held; a pop left over from a shallower derivation
		// would clear the bit of an enclosing mask.
		m.graphic.SetPopMaterialSlotCount(0)
		return base
	}

	push, pushOK := m.swap(&m.maskMaterial, base, PushState(depth, m.showMaskGraphic))
	pop, popOK := m.swap(&m.unmaskMaterial, base, PopState(depth))
	if !pushOK || !popOK {
		// Half a push/pop pair would leave stray stencil bits behind.
		m.releaseMaterials()
		m.graphic.SetPopMaterialSlotCount(0)
		return base
	}

	m.graphic.SetStencilWriteEnabled(true)
	m.graphic.SetPopMaterialSlotCount(1)
	m.graphic.SetPopMaterial(0, pop)
	m.applied = true
	return push
}

// IsRaycastLocationValid reports whether a pointer at screen may hit the
// masked subtree. An inactive mask accepts every point.
func (m *Mask) IsRaycastLocationValid(screen Point, cam Camera) bool {
	if !m.IsActive() || m.rect == nil {
		return true
	}
	return RectContainsScreenPoint(m.rect, screen, cam)
}

// swap acquires the material for (base, s), then releases the one held in
// slot. Acquiring first keeps an unchanged material alive in the cache.
func (m *Mask) swap(slot *Material, base Material, s StencilState) (Material, bool) {
	mat, owned := m.cache.acquire(base, s)
	m.cache.Release(*slot)
	*slot = nil
	if owned {
		*slot = mat
	}
	return mat, owned
}

func (m *Mask) releaseMaterials() {
	m.applied = false
	m.cache.Release(m.maskMaterial)
	m.maskMaterial = nil
	m.cache.Release(m.unmaskMaterial)
	m.unmaskMaterial = nil
}
