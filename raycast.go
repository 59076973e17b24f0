package ggmask

// Camera maps screen-space points into world space for hit testing.
// A nil Camera means the canvas is rendered as a screen-space overlay and
// screen and world space coincide.
type Camera interface {
	ScreenToWorld(screen Point) (world Point, ok bool)
}

// Camera2D is an orthographic camera described by its world-to-screen
// transform.
type Camera2D struct {
	View Matrix
}

// ScreenToWorld maps a screen point through the inverse view transform.
// ok is false when the view transform is singular.
func (c Camera2D) ScreenToWorld(screen Point) (Point, bool) {
	inv, ok := c.View.Inverse()
	if !ok {
		return screen, false
	}
	return inv.TransformPoint(screen), true
}

// RectContainsScreenPoint reports whether the screen point, unprojected
// through cam, falls inside rt's rectangle. Rotated and scaled rectangles
// are handled by testing in rt's local space.
func RectContainsScreenPoint(rt RectTransform, screen Point, cam Camera) bool {
	world := screen
	if cam != nil {
		var ok bool
		if world, ok = cam.ScreenToWorld(screen); !ok {
			return false
		}
	}

	toLocal, ok := rt.LocalToWorld().Inverse()
	if !ok {
		return false
	}
	return rt.Rect().Contains(toLocal.TransformPoint(world))
}
