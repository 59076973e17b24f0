package ggmask

import (
	"errors"
	"testing"
)

// testNode is a minimal scene-graph node for exercising masks.
type testNode struct {
	name     string
	parent   *testNode
	boundary bool
	mask     *Mask
	rect     Rect
	xform    Matrix
}

func newTestNode(name string, parent *testNode) *testNode {
	return &testNode{
		name:   name,
		parent: parent,
		rect:   NewRect(0, 0, 100, 100),
		xform:  Identity(),
	}
}

func (n *testNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *testNode) IsIsolationBoundary() bool { return n.boundary }
func (n *testNode) HasActiveMask() bool       { return n.mask != nil && n.mask.IsActive() }
func (n *testNode) Rect() Rect                { return n.rect }
func (n *testNode) LocalToWorld() Matrix      { return n.xform }
func (n *testNode) String() string            { return n.name }

// fakeGraphic records what a mask does to its drawable.
type fakeGraphic struct {
	stencilWrite bool
	popSlots     []Material
	dirty        int
}

func (g *fakeGraphic) SetStencilWriteEnabled(enabled bool) { g.stencilWrite = enabled }

func (g *fakeGraphic) SetPopMaterialSlotCount(n int) {
	slots := make([]Material, n)
	copy(slots, g.popSlots)
	g.popSlots = slots
}

func (g *fakeGraphic) SetPopMaterial(slot int, m Material) {
	if slot >= 0 && slot < len(g.popSlots) {
		g.popSlots[slot] = m
	}
}

func (g *fakeGraphic) MarkMaterialDirty() { g.dirty++ }

// recorder collects notifications and diagnostics.
type recorder struct {
	notified []Node
	warnings []string
}

func (r *recorder) NotifyStencilStateChanged(n Node) { r.notified = append(r.notified, n) }
func (r *recorder) Warn(msg string, _ Node)          { r.warnings = append(r.warnings, msg) }

// baseMaterial stands in for a renderer material.
type baseMaterial struct{ name string }

// attachMask puts an enabled-ready mask with a graphic on n.
func attachMask(n *testNode, cache *MaterialCache, rec *recorder, opts ...MaskOption) (*Mask, *fakeGraphic) {
	g := &fakeGraphic{}
	opts = append([]MaskOption{
		WithMaterialCache(cache),
		WithNotifier(rec),
		WithDiagnostics(rec),
	}, opts...)
	n.mask = NewMask(n, n, g, opts...)
	return n.mask, g
}

// nestedMasks builds a chain of count nodes, each carrying an enabled mask.
func nestedMasks(t *testing.T, count int, cache *MaterialCache, rec *recorder) ([]*testNode, []*fakeGraphic) {
	t.Helper()
	nodes := make([]*testNode, count)
	graphics := make([]*fakeGraphic, count)
	var parent *testNode
	for i := range nodes {
		n := newTestNode("mask", parent)
		m, g := attachMask(n, cache, rec)
		m.Enable()
		nodes[i], graphics[i] = n, g
		parent = n
	}
	return nodes, graphics
}

func stencilState(t *testing.T, m Material) StencilState {
	t.Helper()
	s, ok := StencilOf(m)
	if !ok {
		t.Fatalf("material %#v carries no stencil state", m)
	}
	return s
}

var errFactory = errors.New("factory failure")

// failingFactory fails for every state fail returns true for.
type failingFactory struct {
	fail      func(StencilState) bool
	destroyed int
}

func (f *failingFactory) CreateMaterial(base Material, s StencilState) (Material, error) {
	if f.fail(s) {
		return nil, errFactory
	}
	return &StencilMaterial{Base: base, State: s}, nil
}

func (f *failingFactory) DestroyMaterial(Material) { f.destroyed++ }
