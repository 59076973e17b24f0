// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"slices"

	"github.com/gogpu/ggmask"
)

// Renderer draws an element with a material derived from its base material
// by the element's material modifiers.
//
// Renderer implements ggmask.Graphic so that a mask on the same element can
// flag it for a pop pass and hand it the pop material.
type Renderer struct {
	element *Element
	base    ggmask.Material

	maskable  *ggmask.Maskable
	modifiers []ggmask.MaterialModifier

	dirty        bool
	current      ggmask.Material
	stencilWrite bool
	popMaterials []ggmask.Material
}

var _ ggmask.Graphic = (*Renderer)(nil)

func newRenderer(e *Element, base ggmask.Material) *Renderer {
	r := &Renderer{
		element:  e,
		base:     base,
		maskable: ggmask.NewMaskable(e, ggmask.WithMaterialCache(e.canvas.cache)),
		dirty:    true,
	}
	r.modifiers = []ggmask.MaterialModifier{r.maskable}
	return r
}

// Element returns the element the renderer draws.
func (r *Renderer) Element() *Element { return r.element }

// BaseMaterial returns the material the renderer was given.
func (r *Renderer) BaseMaterial() ggmask.Material { return r.base }

// SetBaseMaterial replaces the base material and marks the renderer dirty.
func (r *Renderer) SetBaseMaterial(m ggmask.Material) {
	r.base = m
	r.MarkMaterialDirty()
}

// Maskable returns the clip test applied when the element is inside masks.
func (r *Renderer) Maskable() *ggmask.Maskable { return r.maskable }

// SetMaskable sets whether enclosing masks clip the renderer.
func (r *Renderer) SetMaskable(enabled bool) {
	if r.maskable.IsMaskable() == enabled {
		return
	}
	r.maskable.SetMaskable(enabled)
	r.MarkMaterialDirty()
}

// MarkMaterialDirty schedules the material for re-derivation.
func (r *Renderer) MarkMaterialDirty() { r.dirty = true }

// IsDirty reports whether the material will be re-derived on next use.
func (r *Renderer) IsDirty() bool { return r.dirty }

// SetStencilWriteEnabled records whether the renderer has a pop instruction.
func (r *Renderer) SetStencilWriteEnabled(enabled bool) { r.stencilWrite = enabled }

// HasPopInstruction reports whether pop commands follow the element's
// subtree.
func (r *Renderer) HasPopInstruction() bool { return r.stencilWrite }

// SetPopMaterialSlotCount resizes the pop material slots, keeping the
// materials of retained slots.
func (r *Renderer) SetPopMaterialSlotCount(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(r.popMaterials) {
		clear(r.popMaterials[n:])
		r.popMaterials = r.popMaterials[:n]
		return
	}
	r.popMaterials = append(r.popMaterials, make([]ggmask.Material, n-len(r.popMaterials))...)
}

// SetPopMaterial stores the pop material for slot. Out of range slots are
// ignored.
func (r *Renderer) SetPopMaterial(slot int, m ggmask.Material) {
	if slot < 0 || slot >= len(r.popMaterials) {
		return
	}
	r.popMaterials[slot] = m
}

// PopMaterials returns the materials drawn after the element's subtree.
func (r *Renderer) PopMaterials() []ggmask.Material {
	return r.popMaterials
}

// MaterialForRendering returns the material to draw the element with,
// re-deriving it through the modifiers if the renderer is dirty.
func (r *Renderer) MaterialForRendering() ggmask.Material {
	if !r.dirty && r.current != nil {
		return r.current
	}
	m := r.base
	for _, mod := range r.modifiers {
		m = mod.ModifiedMaterial(m)
	}
	r.current = m
	r.dirty = false
	return m
}

// Release drops the materials the renderer's clip test holds.
func (r *Renderer) Release() {
	r.maskable.Release()
	r.current = nil
	r.dirty = true
}

func (r *Renderer) addModifier(m ggmask.MaterialModifier) {
	r.modifiers = append(r.modifiers, m)
	r.MarkMaterialDirty()
}

func (r *Renderer) removeModifier(m ggmask.MaterialModifier) {
	r.modifiers = slices.DeleteFunc(r.modifiers, func(x ggmask.MaterialModifier) bool { return x == m })
	r.MarkMaterialDirty()
}
