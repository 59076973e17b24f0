// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"github.com/gogpu/ggmask"
	"github.com/gogpu/gpucontext"
)

// HitTest returns the topmost element with a renderer under the pointer, or
// nil. An element is hit when its rectangle contains the pointer and every
// raycast filter from the element up to its isolation boundary accepts it.
// cam maps pointer coordinates to canvas space; nil means they coincide.
func (c *Canvas) HitTest(ev gpucontext.PointerEvent, cam ggmask.Camera) *Element {
	p := ggmask.Pt(ev.X, ev.Y)

	var order []*Element
	c.traverse(func(e *Element) {
		if e.renderer != nil {
			order = append(order, e)
		}
	}, func(*Element) {})

	for i := len(order) - 1; i >= 0; i-- {
		e := order[i]
		if !ggmask.RectContainsScreenPoint(e, p, cam) {
			continue
		}
		if raycastAccepted(e, p, cam) {
			return e
		}
	}
	return nil
}

// raycastAccepted walks the filters from e upwards, stopping after the
// nearest isolation boundary.
func raycastAccepted(e *Element, p ggmask.Point, cam ggmask.Camera) bool {
	for n := e; n != nil; n = n.parent {
		if n.mask != nil && !n.mask.IsRaycastLocationValid(p, cam) {
			return false
		}
		if n.isolated {
			break
		}
	}
	return true
}
