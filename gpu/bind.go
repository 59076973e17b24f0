// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"math"

	"github.com/gogpu/ggmask"
	"github.com/gogpu/wgpu/hal"
)

// Bind sets m's pipeline and stencil reference on pass. It reports false,
// leaving pass untouched, when m is not a live Material of this package.
func Bind(pass hal.RenderPassEncoder, m ggmask.Material) bool {
	gm, ok := m.(*Material)
	if !ok || gm.pipeline == nil {
		return false
	}
	pass.SetPipeline(gm.pipeline)
	pass.SetStencilReference(uint32(gm.state.Ref))
	return true
}

// SetClip sets the scissor rectangle to the pixels r may cover, clamped to
// a width x height target. It reports false when nothing is visible, in
// which case the draw should be skipped.
func SetClip(pass hal.RenderPassEncoder, r ggmask.Rect, width, height int) bool {
	x0 := max(0, int(math.Floor(r.X)))
	y0 := max(0, int(math.Floor(r.Y)))
	x1 := min(width, int(math.Ceil(r.Right())))
	y1 := min(height, int(math.Ceil(r.Bottom())))
	if x1 <= x0 || y1 <= y0 {
		return false
	}
	pass.SetScissorRect(uint32(x0), uint32(y0), uint32(x1-x0), uint32(y1-y0))
	return true
}
