// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"slices"

	"github.com/gogpu/ggmask"
)

// Element is a node of the canvas tree: a rectangle in its own local space
// placed by a transform relative to its parent.
type Element struct {
	canvas   *Canvas
	name     string
	parent   *Element
	children []*Element

	rect     ggmask.Rect
	local    ggmask.Matrix
	isolated bool

	mask     *ggmask.Mask
	renderer *Renderer
}

var (
	_ ggmask.Node          = (*Element)(nil)
	_ ggmask.RectTransform = (*Element)(nil)
)

func newElement(c *Canvas, name string, parent *Element) *Element {
	return &Element{
		canvas: c,
		name:   name,
		parent: parent,
		local:  ggmask.Identity(),
	}
}

// AddChild appends a new child element and returns it.
func (e *Element) AddChild(name string) *Element {
	child := newElement(e.canvas, name, e)
	e.children = append(e.children, child)
	return child
}

// Remove detaches the element from its parent, destroying the masks and
// releasing the materials of its subtree. Removing the root does nothing.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	hadMask := e.HasActiveMask()
	e.walk(func(n *Element) {
		if n.mask != nil {
			n.mask.Destroy()
		}
		if n.renderer != nil {
			n.renderer.Release()
		}
	})
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
	if hadMask {
		ggmask.Logger().Debug("canvas: masked element removed", "element", e.name)
	}
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

// String returns the element name.
func (e *Element) String() string { return e.name }

// Parent returns the parent node, or nil for the root.
func (e *Element) Parent() ggmask.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// ParentElement returns the parent element, or nil for the root.
func (e *Element) ParentElement() *Element { return e.parent }

// Children returns the child elements in draw order.
func (e *Element) Children() []*Element { return e.children }

// Rect returns the element rectangle in local space.
func (e *Element) Rect() ggmask.Rect { return e.rect }

// SetRect sets the element rectangle in local space.
func (e *Element) SetRect(r ggmask.Rect) { e.rect = r }

// Transform returns the transform relative to the parent.
func (e *Element) Transform() ggmask.Matrix { return e.local }

// SetTransform sets the transform relative to the parent.
func (e *Element) SetTransform(m ggmask.Matrix) { e.local = m }

// LocalToWorld returns the transform from local space to canvas space.
func (e *Element) LocalToWorld() ggmask.Matrix {
	m := e.local
	for p := e.parent; p != nil; p = p.parent {
		m = p.local.Multiply(m)
	}
	return m
}

// WorldBounds returns the axis-aligned canvas-space bounds of the element.
func (e *Element) WorldBounds() ggmask.Rect {
	return e.LocalToWorld().TransformRect(e.rect)
}

// IsIsolationBoundary reports whether the element starts its own stencil
// context, ignoring the masks above it.
func (e *Element) IsIsolationBoundary() bool { return e.isolated }

// SetIsolationBoundary makes the element start its own stencil context.
// Masks below it are re-derived.
func (e *Element) SetIsolationBoundary(isolated bool) {
	if e.isolated == isolated {
		return
	}
	e.isolated = isolated
	e.canvas.propagator.NotifyStencilStateChanged(e)
}

// HasActiveMask reports whether the element carries an enabled mask.
func (e *Element) HasActiveMask() bool {
	return e.mask != nil && e.mask.IsActive()
}

// Mask returns the element's mask, or nil.
func (e *Element) Mask() *ggmask.Mask { return e.mask }

// Renderer returns the element's renderer, or nil.
func (e *Element) Renderer() *Renderer { return e.renderer }

// AddRenderer gives the element a drawable with the given base material and
// returns it. An element has at most one renderer; a second call returns
// the existing one with its base material replaced.
func (e *Element) AddRenderer(base ggmask.Material) *Renderer {
	if e.renderer != nil {
		e.renderer.SetBaseMaterial(base)
		return e.renderer
	}
	e.renderer = newRenderer(e, base)
	if e.mask != nil {
		e.renderer.addModifier(e.mask)
	}
	return e.renderer
}

// AddMask attaches a disabled mask to the element and returns it. The
// element's renderer, if any, becomes the mask graphic; add the renderer
// first to have it drawn into the stencil buffer. An element has at most
// one mask; a second call returns the existing one.
func (e *Element) AddMask(opts ...ggmask.MaskOption) *ggmask.Mask {
	if e.mask != nil {
		return e.mask
	}

	var graphic ggmask.Graphic
	if e.renderer != nil {
		graphic = e.renderer
	}
	opts = append(slices.Clone(e.canvas.maskOpts), opts...)
	e.mask = ggmask.NewMask(e, e, graphic, opts...)
	if e.renderer != nil {
		e.renderer.addModifier(e.mask)
	}
	return e.mask
}

// RemoveMask destroys the element's mask.
func (e *Element) RemoveMask() {
	if e.mask == nil {
		return
	}
	e.mask.Destroy()
	if e.renderer != nil {
		e.renderer.removeModifier(e.mask)
	}
	e.mask = nil
}

// walk visits e and its descendants in depth-first order.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}
