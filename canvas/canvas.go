// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"github.com/gogpu/ggmask"
)

// Canvas owns an element tree and the collaborators its masks share.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	root   *Element
	width  int
	height int

	cache      *ggmask.MaterialCache
	propagator *Propagator
	maskOpts   []ggmask.MaskOption
}

// New creates an empty canvas of the given size in pixels.
// The root element covers the whole canvas.
func New(width, height int, opts ...Option) *Canvas {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = ggmask.DefaultMaterialCache()
	}

	c := &Canvas{
		width:  width,
		height: height,
		cache:  o.cache,
	}
	c.propagator = NewPropagator()
	c.maskOpts = []ggmask.MaskOption{
		ggmask.WithMaterialCache(c.cache),
		ggmask.WithNotifier(c.propagator),
	}
	if o.diag != nil {
		c.maskOpts = append(c.maskOpts, ggmask.WithDiagnostics(o.diag))
	}
	c.maskOpts = append(c.maskOpts, o.maskOpts...)

	c.root = newElement(c, "root", nil)
	c.root.rect = c.Bounds()
	return c
}

// Root returns the root element.
func (c *Canvas) Root() *Element {
	return c.root
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Bounds returns the canvas rectangle in screen space.
func (c *Canvas) Bounds() ggmask.Rect {
	return ggmask.NewRect(0, 0, float64(c.width), float64(c.height))
}

// MaterialCache returns the cache shared by the canvas' masks.
func (c *Canvas) MaterialCache() *ggmask.MaterialCache {
	return c.cache
}

// Propagator returns the notifier the canvas' masks report to.
func (c *Canvas) Propagator() *Propagator {
	return c.propagator
}

// Close destroys every mask and releases every renderer's materials.
// The canvas must not be used afterwards.
func (c *Canvas) Close() {
	c.root.walk(func(e *Element) {
		if e.mask != nil {
			e.mask.Destroy()
		}
		if e.renderer != nil {
			e.renderer.Release()
		}
	})
}
