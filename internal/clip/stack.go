// Package clip tracks the conservative screen-space bounds of nested masks.
//
// The stencil buffer does the exact clipping; the bounds computed here only
// let rasterizers skip pixels no enclosing mask can reach.
package clip

import "github.com/gogpu/ggmask"

// Stack manages hierarchical clip bounds with push/pop operations.
type Stack struct {
	entries []ggmask.Rect // previous bounds, restored on Pop
	bounds  ggmask.Rect
	full    ggmask.Rect
}

// NewStack creates a clip stack covering the given bounds
// (typically the target size).
func NewStack(bounds ggmask.Rect) *Stack {
	return &Stack{
		entries: make([]ggmask.Rect, 0, ggmask.MaxStencilDepth),
		bounds:  bounds,
		full:    bounds,
	}
}

// Push narrows the current bounds to their intersection with r.
func (s *Stack) Push(r ggmask.Rect) {
	s.entries = append(s.entries, s.bounds)
	s.bounds = s.bounds.Intersect(r)
}

// PushIsolated starts a fresh clip context at the full bounds, as for a
// subtree that ignores enclosing masks.
func (s *Stack) PushIsolated() {
	s.entries = append(s.entries, s.bounds)
	s.bounds = s.full
}

// Pop restores the bounds before the most recent push.
// If the stack is empty, this is a no-op.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	last := len(s.entries) - 1
	s.bounds = s.entries[last]
	s.entries = s.entries[:last]
}

// Bounds returns the current effective clip bounds.
func (s *Stack) Bounds() ggmask.Rect {
	return s.bounds
}

// IsVisible reports whether p lies within the current bounds.
func (s *Stack) IsVisible(p ggmask.Point) bool {
	return s.bounds.Contains(p)
}

// Depth returns the number of pushed entries.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Reset clears all entries and restores the full bounds.
func (s *Stack) Reset() {
	s.entries = s.entries[:0]
	s.bounds = s.full
}
