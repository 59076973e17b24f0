// Package ggmask implements nested rectangular clipping for retained-mode
// 2D UI trees using an 8-bit stencil buffer.
//
// # Overview
//
// A Mask restricts the rendering of its node's descendants to the node's
// rectangle. Masks nest: each nesting level owns one stencil bit, so a
// descendant draws only where the bits of all enclosing masks are set. The
// whole tree renders in one depth-first pass without off-screen targets.
//
//	cache := ggmask.NewMaterialCache(nil)
//	m := ggmask.NewMask(node, node, graphic,
//	    ggmask.WithMaterialCache(cache),
//	    ggmask.WithNotifier(propagator))
//	m.Enable()
//
//	// Renderer, when resolving the graphic's material:
//	mat := m.ModifiedMaterial(baseMaterial)
//
// # Stencil protocol
//
// For a mask at depth d (number of active masks above it, counted up to the
// nearest isolation boundary):
//
//   - d == 0: the graphic writes 1 with Always/Replace; the pop pass clears
//     the stencil with Always/Zero.
//   - d > 0, bit = 1<<d: the graphic writes bit|(bit-1) where the lower
//     d bits are all set; the pop pass writes bit-1 back, clearing this
//     level's bit only.
//   - d >= MaxStencilDepth: the mask is skipped and a diagnostic is reported.
//
// Ordinary graphics use Maskable, which tests for all d enclosing bits.
//
// # Collaborators
//
// The scene graph is reached through Node, RectTransform and Graphic;
// subtree invalidation through Notifier; GPU resources through the
// MaterialFactory behind a MaterialCache. Package canvas provides a
// reference hierarchy, package software a CPU stencil target and package
// gpu a wgpu/hal material factory.
//
// # Logging
//
// ggmask is silent by default. Call SetLogger to receive diagnostics.
package ggmask
