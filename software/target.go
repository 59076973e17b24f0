// Package software renders canvas draw lists on the CPU with an 8-bit
// stencil plane, following the same stencil rules a GPU pipeline applies.
//
// It is the reference renderer for checking mask output without a GPU.
package software

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ggmask"
	"github.com/gogpu/ggmask/canvas"
	"github.com/gogpu/gputypes"
)

// coverageThreshold is the minimum rasterized coverage for a pixel center
// to count as inside a shape.
const coverageThreshold = 0x80

// Target is a color buffer with a matching stencil plane.
type Target struct {
	Width  int
	Height int

	color   *image.RGBA
	stencil []uint8

	raster   *vector.Rasterizer
	coverage *image.Alpha
}

// NewTarget creates a transparent target with a cleared stencil plane.
func NewTarget(width, height int) *Target {
	bounds := image.Rect(0, 0, width, height)
	return &Target{
		Width:    width,
		Height:   height,
		color:    image.NewRGBA(bounds),
		stencil:  make([]uint8, width*height),
		raster:   vector.NewRasterizer(width, height),
		coverage: image.NewAlpha(bounds),
	}
}

// Image returns the color buffer.
func (t *Target) Image() *image.RGBA {
	return t.color
}

// StencilAt returns the stencil value at (x, y), or 0 outside the target.
func (t *Target) StencilAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.stencil[y*t.Width+x]
}

// StencilClear reports whether every stencil value is zero.
func (t *Target) StencilClear() bool {
	for _, v := range t.stencil {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clear fills the color buffer with c and zeroes the stencil plane.
func (t *Target) Clear(c color.Color) {
	draw.Draw(t.color, t.color.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	clear(t.stencil)
}

// Execute draws the commands in order. colorOf supplies the color of each
// command; it is not called for draws that write no color. Pixels outside a
// command's Clip are left untouched, as canvas.DrawList computes it.
//
// Materials carrying a ggmask.StencilState are drawn with its test, pass
// operation and color mask; other materials draw unconditionally.
func (t *Target) Execute(cmds []canvas.DrawCommand, colorOf func(canvas.DrawCommand) color.Color) {
	for _, cmd := range cmds {
		state, stenciled := ggmask.StencilOf(cmd.Material)
		var c color.RGBA
		if !stenciled || state.WritesColor() {
			c = color.RGBAModel.Convert(colorOf(cmd)).(color.RGBA)
		}
		t.fill(cmd, state, stenciled, c)
	}
}

// fill rasterizes the command's transformed rectangle and applies the
// stencil state to each covered pixel inside the command's clip.
func (t *Target) fill(cmd canvas.DrawCommand, state ggmask.StencilState, stenciled bool, c color.RGBA) {
	e := cmd.Element
	area := t.pixelBounds(cmd.Clip).Intersect(t.pixelBounds(e.WorldBounds()))
	if area.Empty() {
		return
	}

	m := e.LocalToWorld()
	corners := e.Rect().Corners()
	t.raster.Reset(t.Width, t.Height)
	t.raster.DrawOp = draw.Src
	for i, p := range corners {
		w := m.TransformPoint(p)
		if i == 0 {
			t.raster.MoveTo(float32(w.X), float32(w.Y))
		} else {
			t.raster.LineTo(float32(w.X), float32(w.Y))
		}
	}
	t.raster.ClosePath()
	t.raster.Draw(t.coverage, t.coverage.Bounds(), image.Opaque, image.Point{})

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if t.coverage.AlphaAt(x, y).A < coverageThreshold {
				continue
			}
			i := y*t.Width + x
			if stenciled {
				if !state.Test(t.stencil[i]) {
					continue
				}
				t.stencil[i] = state.Apply(t.stencil[i])
				if !state.WritesColor() {
					continue
				}
				t.writeColor(x, y, c, state.ColorWrite)
				continue
			}
			t.writeColor(x, y, c, gputypes.ColorWriteMaskAll)
		}
	}
}

// writeColor stores the channels of c selected by mask.
func (t *Target) writeColor(x, y int, c color.RGBA, mask gputypes.ColorWriteMask) {
	if mask == gputypes.ColorWriteMaskAll {
		t.color.SetRGBA(x, y, c)
		return
	}
	dst := t.color.RGBAAt(x, y)
	if mask&gputypes.ColorWriteMaskRed != 0 {
		dst.R = c.R
	}
	if mask&gputypes.ColorWriteMaskGreen != 0 {
		dst.G = c.G
	}
	if mask&gputypes.ColorWriteMaskBlue != 0 {
		dst.B = c.B
	}
	if mask&gputypes.ColorWriteMaskAlpha != 0 {
		dst.A = c.A
	}
	t.color.SetRGBA(x, y, dst)
}

// pixelBounds returns the pixels whose centers r may cover, clamped to the
// target.
func (t *Target) pixelBounds(r ggmask.Rect) image.Rectangle {
	px := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
	return px.Intersect(image.Rect(0, 0, t.Width, t.Height))
}
