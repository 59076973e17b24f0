package ggmask

// FindIsolationBoundary returns the nearest node, starting with n itself,
// that is an isolation boundary. It returns nil when no boundary exists, in
// which case depth counting runs to the root.
func FindIsolationBoundary(n Node) Node {
	for ; n != nil; n = n.Parent() {
		if n.IsIsolationBoundary() {
			return n
		}
	}
	return nil
}

// StencilDepth returns the number of ancestors of n carrying an active mask,
// walking up until stop (exclusive) or the root when stop is nil.
// n itself is never counted, and StencilDepth(n, n) is 0.
//
// The result may exceed MaxStencilDepth; callers decide how to degrade.
func StencilDepth(n, stop Node) int {
	if n == nil || n == stop {
		return 0
	}

	depth := 0
	for p := n.Parent(); p != nil && p != stop; p = p.Parent() {
		if p.HasActiveMask() {
			depth++
		}
	}
	return depth
}

// resolveDepth finds n's isolation boundary and returns the stencil depth
// bounded by it.
func resolveDepth(n Node) int {
	return StencilDepth(n, FindIsolationBoundary(n))
}
