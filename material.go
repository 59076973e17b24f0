package ggmask

import (
	"sync/atomic"

	"github.com/gogpu/ggmask/internal/cache"
)

// Material is an opaque render material handle owned by the renderer.
//
// Materials are used as cache keys, so their dynamic type must be
// comparable (in practice, pointers).
type Material interface{}

// stenciled is implemented by materials that carry a stencil configuration.
type stenciled interface {
	Stencil() StencilState
}

// based is implemented by material variants derived from a base material.
type based interface {
	BaseMaterial() Material
}

// StencilOf returns the stencil state m draws with.
// ok is false for materials without a stencil configuration.
func StencilOf(m Material) (s StencilState, ok bool) {
	if st, isStenciled := m.(stenciled); isStenciled {
		return st.Stencil(), true
	}
	return StencilState{}, false
}

// BaseOf unwraps stencil variants and returns the underlying base material.
func BaseOf(m Material) Material {
	for {
		b, ok := m.(based)
		if !ok {
			return m
		}
		m = b.BaseMaterial()
	}
}

// StencilMaterial is the material variant produced by the default factory:
// the base material's output drawn with a stencil configuration.
type StencilMaterial struct {
	Base  Material
	State StencilState
}

// Stencil returns the stencil configuration.
func (m *StencilMaterial) Stencil() StencilState { return m.State }

// BaseMaterial returns the material this variant was derived from.
func (m *StencilMaterial) BaseMaterial() Material { return m.Base }

// MaterialFactory builds and destroys concrete material variants for the
// MaterialCache. CreateMaterial is called once per distinct (base, state)
// pair; DestroyMaterial when the last reference is released.
type MaterialFactory interface {
	CreateMaterial(base Material, s StencilState) (Material, error)
	DestroyMaterial(m Material)
}

// stencilFactory is the default MaterialFactory producing *StencilMaterial.
type stencilFactory struct{}

func (stencilFactory) CreateMaterial(base Material, s StencilState) (Material, error) {
	return &StencilMaterial{Base: base, State: s}, nil
}

func (stencilFactory) DestroyMaterial(Material) {}

// materialKey identifies a shared material variant.
type materialKey struct {
	base  Material
	state StencilState
}

// MaterialCache hands out shared, reference-counted stencil variants of
// base materials. Identical (base, state) pairs share one material.
//
// MaterialCache is safe for concurrent use.
type MaterialCache struct {
	factory MaterialFactory
	entries *cache.Cache[materialKey, Material]
}

// NewMaterialCache creates a cache building materials with f.
// A nil factory selects the default factory producing *StencilMaterial.
func NewMaterialCache(f MaterialFactory) *MaterialCache {
	if f == nil {
		f = stencilFactory{}
	}
	return &MaterialCache{
		factory: f,
		entries: cache.New[materialKey, Material](),
	}
}

// Acquire returns the shared material drawing base with state s and takes a
// reference to it. If the factory fails, the failure is logged and base is
// returned without taking a reference.
func (c *MaterialCache) Acquire(base Material, s StencilState) Material {
	m, _ := c.acquire(base, s)
	return m
}

// acquire is Acquire reporting whether a reference was taken.
func (c *MaterialCache) acquire(base Material, s StencilState) (Material, bool) {
	key := materialKey{base: base, state: s}
	m, err := c.entries.Acquire(key, func() (Material, error) {
		m, err := c.factory.CreateMaterial(base, s)
		if err == nil {
			Logger().Debug("ggmask: stencil material created", "state", s)
		}
		return m, err
	})
	if err != nil {
		Logger().Warn("ggmask: stencil material unavailable", "state", s, "err", err)
		return base, false
	}
	return m, true
}

// Release drops one reference to m and destroys it once unreferenced.
// Releasing nil, a base material, or an already released material is a no-op.
func (c *MaterialCache) Release(m Material) {
	if m == nil {
		return
	}
	c.entries.Release(m, func(m Material) {
		c.factory.DestroyMaterial(m)
		Logger().Debug("ggmask: stencil material destroyed")
	})
}

// RefCount returns the number of live references to m.
func (c *MaterialCache) RefCount(m Material) int {
	if m == nil {
		return 0
	}
	return c.entries.RefCount(m)
}

// Len returns the number of live materials.
func (c *MaterialCache) Len() int {
	return c.entries.Len()
}

// Refs returns the total number of references held across all materials.
func (c *MaterialCache) Refs() int {
	return c.entries.Stats().Refs
}

// Purge destroys every material regardless of outstanding references.
// Use it when tearing down the renderer that owns the materials.
func (c *MaterialCache) Purge() {
	c.entries.Clear(c.factory.DestroyMaterial)
}

var defaultCachePtr atomic.Pointer[MaterialCache]

func init() {
	defaultCachePtr.Store(NewMaterialCache(nil))
}

// DefaultMaterialCache returns the cache masks use when none is injected.
func DefaultMaterialCache() *MaterialCache {
	return defaultCachePtr.Load()
}

// SetDefaultMaterialCache replaces the default cache, typically with one
// backed by a GPU factory. Pass nil to restore a fresh default cache.
// Masks created earlier keep the cache they were built with.
func SetDefaultMaterialCache(c *MaterialCache) {
	if c == nil {
		c = NewMaterialCache(nil)
	}
	propagateLogger(c.factory, Logger())
	defaultCachePtr.Store(c)
}
