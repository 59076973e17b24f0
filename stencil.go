package ggmask

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// MaxStencilDepth is the number of nested masks an 8-bit stencil buffer can
// represent. Each nesting level owns one bit; a mask at depth >= MaxStencilDepth
// is not applied.
const MaxStencilDepth = 8

// StencilFormat is the depth/stencil attachment format mask materials are
// built for.
const StencilFormat = gputypes.TextureFormatDepth24PlusStencil8

// StencilState is an immutable stencil configuration for one draw.
//
// StencilState is comparable; two states are equivalent iff all fields match,
// which is what the material cache keys on.
type StencilState struct {
	// Ref is the stencil reference value.
	Ref uint8
	// PassOp is applied to the stencil value when the test passes.
	PassOp gputypes.StencilOperation
	// Compare compares (Ref & ReadMask) against (stencil & ReadMask).
	Compare gputypes.CompareFunction
	// ColorWrite selects the color channels the draw writes.
	ColorWrite gputypes.ColorWriteMask
	// ReadMask selects the stencil bits taking part in the test.
	ReadMask uint8
	// WriteMask selects the stencil bits PassOp may modify.
	WriteMask uint8
}

// PushState returns the stencil state a mask at the given depth draws its own
// graphic with; depth must be in [0, MaxStencilDepth). The draw sets this
// level's bit wherever all ancestor bits are already set. showGraphic selects
// whether the graphic's color is written or the graphic only shapes the clip.
func PushState(depth int, showGraphic bool) StencilState {
	colorWrite := gputypes.ColorWriteMaskNone
	if showGraphic {
		colorWrite = gputypes.ColorWriteMaskAll
	}

	if depth == 0 {
		return StencilState{
			Ref:        1,
			PassOp:     gputypes.StencilOperationReplace,
			Compare:    gputypes.CompareFunctionAlways,
			ColorWrite: colorWrite,
			ReadMask:   0xFF,
			WriteMask:  0xFF,
		}
	}

	bit := uint8(1) << depth
	return StencilState{
		Ref:        bit | (bit - 1),
		PassOp:     gputypes.StencilOperationReplace,
		Compare:    gputypes.CompareFunctionEqual,
		ColorWrite: colorWrite,
		ReadMask:   bit - 1,
		WriteMask:  bit | (bit - 1),
	}
}

// PopState returns the stencil state drawn after a mask's subtree to restore
// the stencil value its parent mask left behind.
func PopState(depth int) StencilState {
	if depth == 0 {
		return StencilState{
			Ref:        1,
			PassOp:     gputypes.StencilOperationZero,
			Compare:    gputypes.CompareFunctionAlways,
			ColorWrite: gputypes.ColorWriteMaskNone,
			ReadMask:   0xFF,
			WriteMask:  0xFF,
		}
	}

	bit := uint8(1) << depth
	return StencilState{
		Ref:        bit - 1,
		PassOp:     gputypes.StencilOperationReplace,
		Compare:    gputypes.CompareFunctionEqual,
		ColorWrite: gputypes.ColorWriteMaskNone,
		ReadMask:   bit - 1,
		WriteMask:  bit | (bit - 1),
	}
}

// ClipState returns the read-only stencil test for an ordinary graphic under
// depth enclosing masks: the draw passes only where all depth bits are set.
// depth is clamped to MaxStencilDepth.
func ClipState(depth int) StencilState {
	if depth > MaxStencilDepth {
		depth = MaxStencilDepth
	}
	if depth < 0 {
		depth = 0
	}
	bits := uint8((uint16(1) << depth) - 1)
	return StencilState{
		Ref:        bits,
		PassOp:     gputypes.StencilOperationKeep,
		Compare:    gputypes.CompareFunctionEqual,
		ColorWrite: gputypes.ColorWriteMaskAll,
		ReadMask:   bits,
		WriteMask:  0,
	}
}

// Test reports whether a fragment over the given stencil value passes.
func (s StencilState) Test(stencil uint8) bool {
	ref := s.Ref & s.ReadMask
	val := stencil & s.ReadMask
	switch s.Compare {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < val
	case gputypes.CompareFunctionEqual:
		return ref == val
	case gputypes.CompareFunctionLessEqual:
		return ref <= val
	case gputypes.CompareFunctionGreater:
		return ref > val
	case gputypes.CompareFunctionNotEqual:
		return ref != val
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= val
	default:
		// Always, and Undefined which WebGPU treats as Always.
		return true
	}
}

// Apply returns the stencil value after a passing fragment, with PassOp
// applied through WriteMask.
func (s StencilState) Apply(stencil uint8) uint8 {
	var v uint8
	switch s.PassOp {
	case gputypes.StencilOperationZero:
		v = 0
	case gputypes.StencilOperationReplace:
		v = s.Ref
	case gputypes.StencilOperationInvert:
		v = ^stencil
	case gputypes.StencilOperationIncrementClamp:
		v = stencil
		if v < 0xFF {
			v++
		}
	case gputypes.StencilOperationDecrementClamp:
		v = stencil
		if v > 0 {
			v--
		}
	case gputypes.StencilOperationIncrementWrap:
		v = stencil + 1
	case gputypes.StencilOperationDecrementWrap:
		v = stencil - 1
	default:
		return stencil
	}
	return (stencil &^ s.WriteMask) | (v & s.WriteMask)
}

// WritesColor reports whether the draw produces visible output.
func (s StencilState) WritesColor() bool {
	return s.ColorWrite != gputypes.ColorWriteMaskNone
}

// DepthStencilState converts the state into a pipeline depth/stencil state
// for the given attachment format. Both faces share the configuration; the
// reference value is dynamic pipeline state and is not part of the result.
func (s StencilState) DepthStencilState(format gputypes.TextureFormat) gputypes.DepthStencilState {
	face := gputypes.StencilFaceState{
		Compare:     s.Compare,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      s.PassOp,
	}
	return gputypes.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   uint32(s.ReadMask),
		StencilWriteMask:  uint32(s.WriteMask),
	}
}

// String returns a compact description such as
// "ref=3 op=Replace cmp=Equal color=0xf read=0x1 write=0x3".
func (s StencilState) String() string {
	return fmt.Sprintf("ref=%d op=%s cmp=%s color=%#x read=%#x write=%#x",
		s.Ref, s.PassOp, s.Compare, uint32(s.ColorWrite), s.ReadMask, s.WriteMask)
}
