// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"testing"

	"github.com/gogpu/ggmask"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// paint is a base material for tests.
type paint struct{ name string }

// newTestCanvas creates a canvas with its own material cache.
func newTestCanvas(t *testing.T, opts ...Option) *Canvas {
	t.Helper()
	opts = append([]Option{WithMaterialCache(ggmask.NewMaterialCache(nil))}, opts...)
	c := New(200, 200, opts...)
	t.Cleanup(c.Close)
	return c
}

// addPanel adds a child with a renderer covering rect.
func addPanel(parent *Element, name string, rect ggmask.Rect) *Element {
	e := parent.AddChild(name)
	e.SetRect(rect)
	e.AddRenderer(&paint{name})
	return e
}

// addMaskedPanel adds a child with a renderer and an enabled mask.
func addMaskedPanel(parent *Element, name string, rect ggmask.Rect) *Element {
	e := addPanel(parent, name, rect)
	e.AddMask().Enable()
	return e
}

func commandNames(cmds []DrawCommand) []string {
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Element.Name()
		if cmd.Pop {
			names[i] += "/pop"
		}
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	c := New(320, 240)
	defer c.Close()

	if c.Width() != 320 || c.Height() != 240 {
		t.Errorf("size = %dx%d, want 320x240", c.Width(), c.Height())
	}
	if c.Root() == nil || c.Root().Parent() != nil {
		t.Fatal("root must exist and have an untyped nil parent")
	}
	if c.Root().Rect() != c.Bounds() {
		t.Errorf("root rect = %v, want %v", c.Root().Rect(), c.Bounds())
	}
	if c.MaterialCache() != ggmask.DefaultMaterialCache() {
		t.Error("default canvas should use the default material cache")
	}
}

func TestElementLocalToWorld(t *testing.T) {
	c := newTestCanvas(t)
	a := c.Root().AddChild("a")
	a.SetTransform(ggmask.Translate(10, 20))
	b := a.AddChild("b")
	b.SetTransform(ggmask.Scale(2, 2))
	b.SetRect(ggmask.NewRect(0, 0, 5, 5))

	got := b.LocalToWorld().TransformPoint(ggmask.Pt(5, 5))
	if got != ggmask.Pt(20, 30) {
		t.Errorf("LocalToWorld(5,5) = %v, want (20,30)", got)
	}
	if want := ggmask.NewRect(10, 20, 10, 10); b.WorldBounds() != want {
		t.Errorf("WorldBounds = %v, want %v", b.WorldBounds(), want)
	}
}

func TestDrawListNestedMasks(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	inner := addMaskedPanel(outer, "inner", ggmask.NewRect(50, 50, 100, 100))
	addPanel(inner, "content", ggmask.NewRect(0, 0, 200, 200))
	addPanel(c.Root(), "sibling", ggmask.NewRect(0, 0, 200, 200))

	cmds := c.DrawList()

	want := []string{"outer", "inner", "content", "inner/pop", "outer/pop", "sibling"}
	if got := commandNames(cmds); !equalNames(got, want) {
		t.Fatalf("draw order = %v, want %v", got, want)
	}

	states := []ggmask.StencilState{
		ggmask.PushState(0, true),
		ggmask.PushState(1, true),
		ggmask.ClipState(2),
		ggmask.PopState(1),
		ggmask.PopState(0),
	}
	for i, want := range states {
		got, ok := ggmask.StencilOf(cmds[i].Material)
		if !ok || got != want {
			t.Errorf("command %d (%s) state = %v, want %v", i, cmds[i].Element.Name(), got, want)
		}
	}
	if _, ok := ggmask.StencilOf(cmds[5].Material); ok {
		t.Error("sibling outside all masks should draw with its base material")
	}
	if ggmask.BaseOf(cmds[2].Material) != ggmask.Material(inner.Children()[0].Renderer().BaseMaterial()) {
		t.Error("clip material should wrap the content's base material")
	}

	if want := ggmask.NewRect(50, 50, 50, 50); cmds[2].Clip != want {
		t.Errorf("content clip = %v, want %v", cmds[2].Clip, want)
	}
	if cmds[5].Clip != c.Bounds() {
		t.Errorf("sibling clip = %v, want canvas bounds", cmds[5].Clip)
	}
}

func TestDrawListReusesCleanMaterials(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))

	first := c.DrawList()
	refs := c.MaterialCache().Refs()
	second := c.DrawList()

	for i := range first {
		if first[i].Material != second[i].Material {
			t.Errorf("command %d material changed between frames", i)
		}
	}
	if c.MaterialCache().Refs() != refs {
		t.Errorf("refs changed between identical frames: %d -> %d", refs, c.MaterialCache().Refs())
	}
}

func TestDrawListFollowsMaskDisable(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	content := addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))
	c.DrawList()

	outer.Mask().Disable()
	if !content.Renderer().IsDirty() {
		t.Fatal("disabling the mask should dirty descendant renderers")
	}

	cmds := c.DrawList()
	if got := commandNames(cmds); !equalNames(got, []string{"outer", "content"}) {
		t.Fatalf("draw order = %v, want no pop command", got)
	}
	for _, cmd := range cmds {
		if _, ok := ggmask.StencilOf(cmd.Material); ok {
			t.Errorf("%s still draws with a stencil material", cmd.Element.Name())
		}
	}
	if n := c.MaterialCache().Len(); n != 0 {
		t.Errorf("materials leaked after disable: %d", n)
	}
}

func TestDrawListIsolationBoundary(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	popup := addPanel(outer, "popup", ggmask.NewRect(120, 120, 50, 50))
	popup.SetIsolationBoundary(true)
	addMaskedPanel(popup, "popup-mask", ggmask.NewRect(120, 120, 40, 40))
	addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))

	cmds := c.DrawList()

	want := []string{"outer", "content", "outer/pop", "popup", "popup-mask", "popup-mask/pop"}
	if got := commandNames(cmds); !equalNames(got, want) {
		t.Fatalf("draw order = %v, want %v", got, want)
	}
	if _, ok := ggmask.StencilOf(cmds[3].Material); ok {
		t.Error("an isolated element must not be clipped by masks above it")
	}
	if got, _ := ggmask.StencilOf(cmds[4].Material); got != ggmask.PushState(0, true) {
		t.Errorf("mask inside isolation = %v, want depth 0 push", got)
	}
	if cmds[3].Clip != c.Bounds() {
		t.Errorf("isolated clip = %v, want canvas bounds", cmds[3].Clip)
	}
}

func TestDrawListDepthBudget(t *testing.T) {
	var warnings int
	c := newTestCanvas(t, WithDiagnostics(ggmask.DiagnosticsFunc(func(string, ggmask.Node) { warnings++ })))

	parent := c.Root()
	for range ggmask.MaxStencilDepth + 1 {
		parent = addMaskedPanel(parent, "level", ggmask.NewRect(0, 0, 100, 100))
	}
	addPanel(parent, "leaf", ggmask.NewRect(0, 0, 10, 10))

	cmds := c.DrawList()

	pushes, pops := 0, 0
	for _, cmd := range cmds {
		if cmd.Pop {
			pops++
		} else if s, ok := ggmask.StencilOf(cmd.Material); ok && s.PassOp == gputypes.StencilOperationReplace {
			pushes++
		}
	}
	if pushes != ggmask.MaxStencilDepth || pops != ggmask.MaxStencilDepth {
		t.Errorf("pushes/pops = %d/%d, want %d each", pushes, pops, ggmask.MaxStencilDepth)
	}
	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
	leaf := cmds[len(cmds)-1-ggmask.MaxStencilDepth]
	if s, _ := ggmask.StencilOf(leaf.Material); s != ggmask.ClipState(ggmask.MaxStencilDepth) {
		t.Errorf("leaf state = %v, want clamped clip state", s)
	}
}

func TestDrawListMaskPushedOverBudget(t *testing.T) {
	var warnings int
	c := newTestCanvas(t, WithDiagnostics(ggmask.DiagnosticsFunc(func(string, ggmask.Node) { warnings++ })))

	outermost := addPanel(c.Root(), "level", ggmask.NewRect(0, 0, 100, 100))
	outermost.AddMask()
	parent := outermost
	for range ggmask.MaxStencilDepth - 1 {
		parent = addMaskedPanel(parent, "level", ggmask.NewRect(0, 0, 100, 100))
	}
	deep := addMaskedPanel(parent, "deep", ggmask.NewRect(0, 0, 50, 100))
	addPanel(deep, "deep-content", ggmask.NewRect(0, 0, 100, 100))
	addPanel(parent, "after", ggmask.NewRect(0, 0, 100, 100))

	find := func(cmds []DrawCommand, name string) DrawCommand {
		t.Helper()
		for _, cmd := range cmds {
			if cmd.Element.Name() == name && !cmd.Pop {
				return cmd
			}
		}
		t.Fatalf("no draw command for %q", name)
		return DrawCommand{}
	}

	cmds := c.DrawList()
	if !deep.Mask().Applied() {
		t.Fatal("mask at depth 7 should be applied")
	}
	if got := find(cmds, "deep-content").Clip; got != ggmask.NewRect(0, 0, 50, 100) {
		t.Errorf("clip under applied mask = %+v, want the mask bounds", got)
	}

	outermost.Mask().Enable()
	cmds = c.DrawList()

	if warnings != 1 {
		t.Errorf("warnings = %d, want 1", warnings)
	}
	if deep.Mask().Applied() {
		t.Error("mask pushed to depth 8 should not be applied")
	}
	if n := len(deep.Renderer().PopMaterials()); n != 0 {
		t.Errorf("pop slots = %d, want 0 for a skipped mask", n)
	}
	for _, cmd := range cmds {
		if cmd.Pop && cmd.Element == deep {
			t.Errorf("skipped mask still emits pop %v", cmd.Material)
		}
	}
	if got, want := find(cmds, "deep-content").Clip, find(cmds, "after").Clip; got != want {
		t.Errorf("clip under skipped mask = %+v, want enclosing clip %+v", got, want)
	}
	if push, pop := deep.Mask().Materials(); push == nil || pop == nil {
		t.Error("skipped mask should keep holding its materials")
	}

	// Self-heals once the nesting shrinks again.
	outermost.Mask().Disable()
	c.DrawList()
	if !deep.Mask().Applied() || len(deep.Renderer().PopMaterials()) != 1 {
		t.Error("mask should apply again at depth 7")
	}
}

func TestRemoveMask(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))
	c.DrawList()

	outer.RemoveMask()

	if outer.Mask() != nil || outer.HasActiveMask() {
		t.Fatal("mask still attached")
	}
	if got := commandNames(c.DrawList()); !equalNames(got, []string{"outer", "content"}) {
		t.Errorf("draw order = %v", got)
	}
	if c.MaterialCache().Len() != 0 {
		t.Errorf("materials leaked: %d", c.MaterialCache().Len())
	}
}

func TestElementRemove(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	addMaskedPanel(outer, "inner", ggmask.NewRect(0, 0, 50, 50))
	c.DrawList()

	outer.Remove()

	if len(c.Root().Children()) != 0 {
		t.Error("element still attached to its parent")
	}
	if outer.ParentElement() != nil {
		t.Error("removed element still has a parent")
	}
	if c.MaterialCache().Len() != 0 {
		t.Errorf("materials leaked after remove: %d", c.MaterialCache().Len())
	}

	// Removing the root is a no-op.
	c.Root().Remove()
}

func TestAddMaskWithoutRenderer(t *testing.T) {
	c := newTestCanvas(t)
	holder := c.Root().AddChild("holder")
	holder.SetRect(ggmask.NewRect(0, 0, 50, 50))
	m := holder.AddMask()
	m.Enable()

	if m.State() != ggmask.StateEnabledNoGraphic {
		t.Errorf("state = %v, want EnabledNoGraphic", m.State())
	}
	if holder.AddMask() != m {
		t.Error("second AddMask should return the existing mask")
	}
}

func TestPropagatorDirtiesSubtree(t *testing.T) {
	c := newTestCanvas(t)
	outer := addPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	mid := outer.AddChild("mid")
	leaf := addPanel(mid, "leaf", ggmask.NewRect(0, 0, 10, 10))
	other := addPanel(c.Root(), "other", ggmask.NewRect(0, 0, 10, 10))
	c.DrawList()

	outer.AddMask().Enable()

	for _, e := range []*Element{outer, leaf} {
		if !e.Renderer().IsDirty() {
			t.Errorf("%s not dirtied", e.Name())
		}
	}
	if other.Renderer().IsDirty() {
		t.Error("renderer outside the subtree was dirtied")
	}
	if c.Propagator().Notifications() != 1 {
		t.Errorf("notifications = %d, want 1", c.Propagator().Notifications())
	}
}

func TestPropagatorIgnoresForeignNodes(t *testing.T) {
	p := NewPropagator()
	p.NotifyStencilStateChanged(nil)
	if p.Notifications() != 0 {
		t.Error("nil node should be ignored")
	}
}

func TestRendererPopSlots(t *testing.T) {
	c := newTestCanvas(t)
	r := addPanel(c.Root(), "panel", ggmask.NewRect(0, 0, 10, 10)).Renderer()
	a, b := &paint{"a"}, &paint{"b"}

	r.SetPopMaterialSlotCount(2)
	r.SetPopMaterial(0, a)
	r.SetPopMaterial(1, b)
	r.SetPopMaterial(5, a) // ignored

	r.SetPopMaterialSlotCount(1)
	if got := r.PopMaterials(); len(got) != 1 || got[0] != ggmask.Material(a) {
		t.Errorf("PopMaterials = %v, want [a]", got)
	}
	r.SetPopMaterialSlotCount(2)
	if got := r.PopMaterials(); got[1] != nil {
		t.Errorf("regrown slot = %v, want nil", got[1])
	}
}

func TestRendererSetMaskable(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 100, 100))
	content := addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))

	content.Renderer().SetMaskable(false)
	m := content.Renderer().MaterialForRendering()
	if _, ok := ggmask.StencilOf(m); ok {
		t.Error("non-maskable renderer should ignore enclosing masks")
	}
}

func TestHitTest(t *testing.T) {
	c := newTestCanvas(t)
	outer := addMaskedPanel(c.Root(), "outer", ggmask.NewRect(0, 0, 50, 50))
	content := addPanel(outer, "content", ggmask.NewRect(0, 0, 100, 100))
	popup := addPanel(outer, "popup", ggmask.NewRect(150, 150, 20, 20))
	popup.SetIsolationBoundary(true)

	tests := []struct {
		name string
		x, y float64
		want *Element
	}{
		{"inside mask hits content", 25, 25, content},
		{"outside mask rejected", 75, 75, nil},
		{"isolated element ignores enclosing mask", 160, 160, popup},
		{"empty space", 190, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := gpucontext.PointerEvent{Type: gpucontext.PointerDown, X: tt.x, Y: tt.y}
			if got := c.HitTest(ev, nil); got != tt.want {
				t.Errorf("HitTest(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestCamera(t *testing.T) {
	c := newTestCanvas(t)
	panel := addPanel(c.Root(), "panel", ggmask.NewRect(0, 0, 10, 10))
	cam := ggmask.Camera2D{View: ggmask.Scale(4, 4)}

	ev := gpucontext.PointerEvent{X: 30, Y: 30}
	if got := c.HitTest(ev, cam); got != panel {
		t.Errorf("HitTest through camera = %v, want panel", got)
	}
}
