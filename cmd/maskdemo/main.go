// Command maskdemo builds a nested mask hierarchy, prints the stencil state
// of every draw and renders the frame to PNG on the CPU.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/ggmask"
	"github.com/gogpu/ggmask/canvas"
	"github.com/gogpu/ggmask/software"
)

// swatch is the base material of every panel in the demo.
type swatch struct {
	name string
	c    color.RGBA
}

func main() {
	var (
		width   = flag.Int("width", 480, "image width")
		height  = flag.Int("height", 360, "image height")
		output  = flag.String("output", "mask.png", "output file")
		labels  = flag.Bool("labels", true, "draw element names")
		verbose = flag.Bool("v", false, "log material and mask activity")
	)
	flag.Parse()

	if *verbose {
		ggmask.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c := canvas.New(*width, *height)
	defer c.Close()
	buildScene(c)

	cmds := c.DrawList()
	for i, cmd := range cmds {
		state, ok := ggmask.StencilOf(cmd.Material)
		desc := "unmasked"
		if ok {
			desc = state.String()
		}
		kind := "draw"
		if cmd.Pop {
			kind = "pop "
		}
		log.Printf("%2d %s %-10s %s", i, kind, cmd.Element.Name(), desc)
	}

	tgt := software.NewTarget(*width, *height)
	tgt.Clear(color.RGBA{R: 24, G: 24, B: 32, A: 255})
	tgt.Execute(cmds, colorOf)
	if !tgt.StencilClear() {
		log.Printf("warning: stencil not cleared at end of frame")
	}
	if *labels {
		drawLabels(tgt.Image(), cmds)
	}

	if err := savePNG(*output, tgt.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d, %d draws)\n", *output, *width, *height, len(cmds))
}

// buildScene lays out a scroll view clipping a list, a card inside the list
// clipping its own content, a hidden-graphic mask and an isolated popup.
func buildScene(c *canvas.Canvas) {
	w, h := float64(c.Width()), float64(c.Height())

	scroll := panel(c.Root(), "scroll", ggmask.NewRect(20, 20, w*0.55, h-40), rgb(60, 70, 90))
	scroll.AddMask().Enable()

	for i := range 6 {
		y := float64(i)*70 - 30
		item := panel(scroll, "item", ggmask.NewRect(10, y, w*0.55-20, 60), rgb(90+uint8(i)*20, 110, 160))
		if i == 2 {
			item.AddMask().Enable()
			panel(item, "badge", ggmask.NewRect(w*0.55-60, -20, 80, 40), rgb(230, 180, 40))
		}
	}

	// The graphic only shapes the clip; the stripes show through a diamond.
	window := panel(c.Root(), "window", ggmask.NewRect(-50, -50, 100, 100), rgb(255, 255, 255))
	window.SetTransform(ggmask.Translate(w*0.8, h*0.35).Multiply(ggmask.Rotate(math.Pi / 4)))
	window.AddMask(ggmask.WithShowMaskGraphic(false)).Enable()
	for i := range 8 {
		f := float64(i)
		stripe := panel(window, "stripe", ggmask.NewRect(-80+f*20, -80, 10, 160), rgb(200, 60+uint8(i)*20, 80))
		stripe.SetTransform(ggmask.Rotate(-math.Pi / 4))
	}

	// The popup escapes the scroll view's clip.
	popup := panel(scroll, "popup", ggmask.NewRect(w*0.45, h*0.6, w*0.35, 80), rgb(70, 160, 110))
	popup.SetIsolationBoundary(true)
	popup.AddMask().Enable()
	panel(popup, "popup-text", ggmask.NewRect(10, 10, w*0.5, 20), rgb(240, 240, 240))
}

func panel(parent *canvas.Element, name string, r ggmask.Rect, c color.RGBA) *canvas.Element {
	e := parent.AddChild(name)
	e.SetRect(r)
	e.AddRenderer(&swatch{name: name, c: c})
	return e
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func colorOf(cmd canvas.DrawCommand) color.Color {
	if s, ok := ggmask.BaseOf(cmd.Material).(*swatch); ok {
		return s.c
	}
	return color.Black
}

// drawLabels writes the title-cased name of each element drawn with color
// at the top left of its world bounds.
func drawLabels(dst *image.RGBA, cmds []canvas.DrawCommand) {
	title := cases.Title(language.English)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 250, G: 250, B: 250, A: 255}),
		Face: basicfont.Face7x13,
	}
	for _, cmd := range cmds {
		if cmd.Pop {
			continue
		}
		if state, ok := ggmask.StencilOf(cmd.Material); ok && !state.WritesColor() {
			continue
		}
		b := cmd.Element.WorldBounds()
		if b.Empty() {
			continue
		}
		d.Dot = fixed.P(int(b.X)+3, int(b.Y)+13)
		d.DrawString(title.String(cmd.Element.Name()))
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
