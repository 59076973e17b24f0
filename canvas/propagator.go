// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "github.com/gogpu/ggmask"

// Propagator invalidates the materials of a subtree when a mask in it
// changes. It implements ggmask.Notifier.
type Propagator struct {
	notified int
}

var _ ggmask.Notifier = (*Propagator)(nil)

// NewPropagator creates a propagator.
func NewPropagator() *Propagator {
	return &Propagator{}
}

// NotifyStencilStateChanged marks every renderer in n's subtree dirty,
// including n's own. Nodes that are not canvas elements are ignored.
func (p *Propagator) NotifyStencilStateChanged(n ggmask.Node) {
	e, ok := n.(*Element)
	if !ok || e == nil {
		return
	}
	p.notified++

	dirtied := 0
	e.walk(func(d *Element) {
		if d.renderer != nil {
			d.renderer.MarkMaterialDirty()
			dirtied++
		}
	})
	ggmask.Logger().Debug("canvas: stencil state changed", "element", e.name, "renderers", dirtied)
}

// Notifications returns how many change notifications were handled.
func (p *Propagator) Notifications() int {
	return p.notified
}
