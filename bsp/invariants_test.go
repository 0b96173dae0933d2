package bsp

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/common"
	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/stretchr/testify/assert"
)

func buildSampleTree(t *testing.T) *Node {
	t.Helper()
	w1, w2, w3 := newClientLeaf(1), newClientLeaf(2), newClientLeaf(3)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)
	root = Insert(root, w3, w2, opts)
	return root
}

// I1/I2: every internal node has exactly two children; every leaf has
// none; parent/child pointers agree both ways.
func TestI1I2_ShapeAndParentConsistency(t *testing.T) {
	root := buildSampleTree(t)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			assert.Nil(t, n.FirstChild)
			assert.Nil(t, n.SecondChild)
		} else {
			assert.NotNil(t, n.FirstChild)
			assert.NotNil(t, n.SecondChild)
			assert.True(t, IsChild(n, n.FirstChild))
			assert.True(t, IsChild(n, n.SecondChild))
			assert.Equal(t, n, n.FirstChild.Parent)
			assert.Equal(t, n, n.SecondChild.Parent)
		}
		walk(n.FirstChild)
		walk(n.SecondChild)
	}
	walk(root)
}

// I3: vacant(internal) iff both children are vacant.
func TestI3_VacancyLaw(t *testing.T) {
	root := buildSampleTree(t)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.IsLeaf() {
			return
		}
		assert.Equal(t, n.FirstChild.Vacant && n.SecondChild.Vacant, n.Vacant)
		walk(n.FirstChild)
		walk(n.SecondChild)
	}
	walk(root)
}

// I4: constraints(internal) equal the axis-appropriate combination of
// child constraints.
func TestI4_ConstraintLaw(t *testing.T) {
	root := buildSampleTree(t)
	root.FirstChild.MinWidth, root.FirstChild.MinHeight = 50, 60
	root.SecondChild.MinWidth, root.SecondChild.MinHeight = 70, 80
	recomputeInternal(root)

	if root.SplitType == SplitVertical {
		assert.Equal(t, int32(120), root.MinWidth)
		assert.Equal(t, int32(80), root.MinHeight)
	} else {
		assert.Equal(t, int32(140), root.MinHeight)
		assert.Equal(t, int32(70), root.MinWidth)
	}
}

// I8: every identifier in the tree is unique.
func TestI8_UniqueIdentifiers(t *testing.T) {
	root := buildSampleTree(t)
	seen := map[uint32]bool{}
	for _, l := range CollectLeaves(root) {
		assert.False(t, seen[l.ID], "duplicate id %d", l.ID)
		seen[l.ID] = true
	}
}

// B1: inserting into an empty desktop makes the new leaf the root with
// no parent.
func TestB1_EmptyDesktopInsert(t *testing.T) {
	w1 := newClientLeaf(1)
	nextID := uint32(100)
	var root *Node
	root = Insert(root, w1, nil, testInsertOpts(&nextID))

	assert.Equal(t, w1, root)
	assert.Nil(t, root.Parent)
}

// B2: removing the root leaves root nil (desktop.Focus handling is the
// caller's responsibility, exercised in the desktop package tests).
func TestB2_RemoveRoot(t *testing.T) {
	w1 := newClientLeaf(1)
	nextID := uint32(100)
	var root *Node
	root = Insert(root, w1, nil, testInsertOpts(&nextID))
	root = Unlink(root, w1, RemoveOptions{})
	assert.Nil(t, root)
}

// B3: splits whose combined minimum exceeds the available axis length
// leave the ratio unclamped.
func TestB3_UnclampedWhenMinimumsExceedAxis(t *testing.T) {
	root := &Node{
		SplitType: SplitVertical,
		Ratio:     0.9,
		FirstChild: &Node{ID: 1, Client: &Client{State: StateTiled}, MinWidth: 600},
		SecondChild: &Node{ID: 2, Client: &Client{State: StateTiled}, MinWidth: 600},
	}
	root.FirstChild.Parent, root.SecondChild.Parent = root, root

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{Layout: LayoutTiled})
	assert.InDelta(t, 0.9, root.Ratio, 1e-9)
	assert.Len(t, placements, 2)
}

// B4: saturating arithmetic near int16 bounds produces no wraparound.
func TestB4_SaturatingArithmetic(t *testing.T) {
	assert.Equal(t, int32(32767), geom.AddSat(32760, 100))
	assert.Equal(t, int32(-32768), geom.SubSat(-32760, 100))
}

// R4: insert then remove restores the tree modulo regenerated internal
// node identifiers.
func TestR4_InsertRemoveRoundTrip(t *testing.T) {
	w1 := newClientLeaf(1)
	w2 := newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)
	root = Unlink(root, w2, RemoveOptions{RemovalAdjustment: true, Scheme: common.SchemeLongestSide})

	assert.Equal(t, w1, root)
	assert.Nil(t, root.Parent)
}

// R5: equalize then balance on a full, uniform tree yields identical
// ratios (both converge to 0.5 for a two-leaf tree).
func TestR5_EqualizeThenBalance(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	Equalize(root, 0.5)
	eqRatio := root.Ratio
	Balance(root)
	assert.InDelta(t, eqRatio, root.Ratio, 1e-9)
}
