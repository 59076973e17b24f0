// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas is a small retained-mode UI hierarchy wired to ggmask.
//
// It supplies the scene-graph collaborators a Mask needs: Element implements
// ggmask.Node and ggmask.RectTransform, Renderer implements ggmask.Graphic,
// and Propagator re-derives the materials of a subtree when a mask changes.
//
// # Usage
//
//	c := canvas.New(800, 600)
//	panel := c.Root().AddChild("panel")
//	panel.SetRect(ggmask.NewRect(0, 0, 200, 100))
//	panel.AddRenderer(panelMaterial)
//	panel.AddMask().Enable()
//
//	for _, cmd := range c.DrawList() {
//	    // bind cmd.Material, draw cmd.Element
//	}
//
// # Draw order
//
// DrawList walks the tree depth first. A renderer whose mask flagged a pop
// instruction gets its pop commands after its subtree. Isolation-boundary
// subtrees start their own stencil context and are drawn after the
// subtree that contains them, once its stencil values have been popped.
//
// # Thread Safety
//
// Canvas and its elements are NOT safe for concurrent use.
package canvas
