// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"github.com/gogpu/ggmask"
	"github.com/gogpu/ggmask/internal/clip"
)

// DrawCommand is one draw of an element's rectangle.
type DrawCommand struct {
	// Element whose rectangle is drawn, with its LocalToWorld transform.
	Element *Element
	// Material to draw with. Stencil variants carry a ggmask.StencilState.
	Material ggmask.Material
	// Pop marks the draw that restores the stencil after a mask's subtree.
	Pop bool
	// Clip is a conservative canvas-space bound of the enclosing masks.
	// Pixels outside it are never written.
	Clip ggmask.Rect
}

// DrawList re-derives dirty materials and returns the draw commands for one
// frame in submission order.
func (c *Canvas) DrawList() []DrawCommand {
	var cmds []DrawCommand
	stack := clip.NewStack(c.Bounds())
	var pushes []int

	c.traverse(
		func(e *Element) {
			n := 0
			if e.isolated {
				stack.PushIsolated()
				n++
			}
			if r := e.renderer; r != nil {
				cmds = append(cmds, DrawCommand{
					Element:  e,
					Material: r.MaterialForRendering(),
					Clip:     stack.Bounds(),
				})
			}
			if e.mask != nil && e.mask.Applied() {
				stack.Push(e.WorldBounds())
				n++
			}
			pushes = append(pushes, n)
		},
		func(e *Element) {
			n := pushes[len(pushes)-1]
			pushes = pushes[:len(pushes)-1]
			for range n {
				stack.Pop()
			}
			if r := e.renderer; r != nil && r.HasPopInstruction() {
				for _, m := range r.PopMaterials() {
					if m == nil {
						continue
					}
					cmds = append(cmds, DrawCommand{
						Element:  e,
						Material: m,
						Pop:      true,
						Clip:     stack.Bounds(),
					})
				}
			}
		},
	)
	return cmds
}

// traverse calls enter before and leave after each element's subtree.
// Isolation-boundary descendants are skipped in place and traversed after
// the subtree that contains them.
func (c *Canvas) traverse(enter, leave func(*Element)) {
	var deferred []*Element
	var visit func(e *Element)
	visit = func(e *Element) {
		enter(e)
		for _, child := range e.children {
			if child.isolated {
				deferred = append(deferred, child)
				continue
			}
			visit(child)
		}
		leave(e)
	}

	visit(c.root)
	for len(deferred) > 0 {
		next := deferred[0]
		deferred = deferred[1:]
		visit(next)
	}
}
