// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// stencilOp converts a gputypes stencil operation to its HAL equivalent.
// Undefined maps to Keep.
func stencilOp(op gputypes.StencilOperation) hal.StencilOperation {
	switch op {
	case gputypes.StencilOperationZero:
		return hal.StencilOperationZero
	case gputypes.StencilOperationReplace:
		return hal.StencilOperationReplace
	case gputypes.StencilOperationInvert:
		return hal.StencilOperationInvert
	case gputypes.StencilOperationIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case gputypes.StencilOperationDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case gputypes.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case gputypes.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}

// stencilFace converts a gputypes face state to its HAL equivalent.
func stencilFace(f gputypes.StencilFaceState) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     f.Compare,
		FailOp:      stencilOp(f.FailOp),
		DepthFailOp: stencilOp(f.DepthFailOp),
		PassOp:      stencilOp(f.PassOp),
	}
}

// depthStencil converts a gputypes depth/stencil state to the HAL descriptor.
func depthStencil(ds gputypes.DepthStencilState) *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:              ds.Format,
		DepthWriteEnabled:   ds.DepthWriteEnabled,
		DepthCompare:        ds.DepthCompare,
		StencilFront:        stencilFace(ds.StencilFront),
		StencilBack:         stencilFace(ds.StencilBack),
		StencilReadMask:     ds.StencilReadMask,
		StencilWriteMask:    ds.StencilWriteMask,
		DepthBias:           ds.DepthBias,
		DepthBiasSlopeScale: ds.DepthBiasSlopeScale,
		DepthBiasClamp:      ds.DepthBiasClamp,
	}
}
