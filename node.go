package ggmask

// Node is the view of a scene-graph node the stencil depth resolver needs.
//
// Parent must return a nil interface (not a typed nil pointer) at the root.
type Node interface {
	// Parent returns the parent node, or nil at the root.
	Parent() Node
	// IsIsolationBoundary reports whether the node composites its subtree
	// independently, restarting stencil depth counting below it.
	IsIsolationBoundary() bool
	// HasActiveMask reports whether the node carries an enabled mask that
	// currently clips its descendants.
	HasActiveMask() bool
}

// RectTransform gives a node's rectangle and its placement in world space.
type RectTransform interface {
	// Rect returns the node's rectangle in local space.
	Rect() Rect
	// LocalToWorld returns the transform from local to world space.
	LocalToWorld() Matrix
}

// Graphic is the drawable attached to a mask's node.
type Graphic interface {
	// SetStencilWriteEnabled marks the graphic as writing stencil, which
	// makes the renderer issue its pop materials after the graphic's subtree.
	SetStencilWriteEnabled(enabled bool)
	// SetPopMaterialSlotCount resizes the pop material slots.
	SetPopMaterialSlotCount(n int)
	// SetPopMaterial stores m in the given pop slot.
	SetPopMaterial(slot int, m Material)
	// MarkMaterialDirty forces the graphic's material to be re-derived
	// before its next draw.
	MarkMaterialDirty()
}

// MaterialModifier is implemented by components that rewrite the material a
// graphic is drawn with.
type MaterialModifier interface {
	ModifiedMaterial(base Material) Material
}

// RaycastFilter is implemented by components that reject pointer hits.
type RaycastFilter interface {
	IsRaycastLocationValid(screen Point, cam Camera) bool
}
