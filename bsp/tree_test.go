package bsp

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/common"
	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientLeaf(id uint32) *Node {
	return MakeClientLeaf(id, &Client{Window: id, State: StateTiled, Shown: true})
}

func testInsertOpts(nextID *uint32) InsertOptions {
	return InsertOptions{
		Scheme:          common.SchemeLongestSide,
		InitialPolarity: common.PolaritySecondChild,
		DefaultRatio:    0.5,
		NextID: func() uint32 {
			*nextID++
			return *nextID
		},
	}
}

// S1: empty desktop, manage W1. Root becomes leaf(W1), projected to the
// full monitor rectangle.
func TestS1_InsertIntoEmptyDesktop(t *testing.T) {
	w1 := newClientLeaf(1)
	var root *Node
	nextID := uint32(100)
	root = Insert(root, w1, nil, testInsertOpts(&nextID))

	require.NotNil(t, root)
	assert.Equal(t, w1, root)
	assert.Nil(t, root.Parent)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{
		Layout: LayoutTiled, OnlyWindow: true,
	})
	require.Len(t, placements, 1)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, placements[0].Rect)
}

// S2: manage W2 with initial_polarity=second_child, scheme=longest_side.
// Root becomes a vertical split (width>height): first=W1 at (0,0,500,800),
// second=W2 at (500,0,500,800), ratio=0.5.
func TestS2_AutomaticLongestSideSplit(t *testing.T) {
	w1 := newClientLeaf(1)
	w2 := newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root.Rect = geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	root = Insert(root, w2, w1, opts)

	require.True(t, root.IsInternal())
	assert.Equal(t, SplitVertical, root.SplitType)
	assert.Equal(t, w1, root.FirstChild)
	assert.Equal(t, w2, root.SecondChild)
	assert.InDelta(t, 0.5, root.Ratio, 1e-9)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{Layout: LayoutTiled})
	byID := map[uint32]geom.Rect{}
	for _, p := range placements {
		byID[p.Node.ID] = p.Rect
	}
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 500, Height: 800}, byID[1])
	assert.Equal(t, geom.Rect{X: 500, Y: 0, Width: 500, Height: 800}, byID[2])
}

// S3: preselect W2 direction=south ratio=0.3, then manage W3. W2 is
// replaced by a horizontal split: first=W2 at (500,0,500,240),
// second=W3 at (500,240,500,560).
func TestS3_PreselectionConsumedOnInsert(t *testing.T) {
	w1, w2, w3 := newClientLeaf(1), newClientLeaf(2), newClientLeaf(3)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	SetPreselDir(w2, South)
	SetPreselRatio(w2, 0.3)

	root = Insert(root, w3, w2, opts)

	require.NotNil(t, w2.Parent)
	split := w2.Parent
	assert.Equal(t, SplitHorizontal, split.SplitType)
	assert.Equal(t, w2, split.FirstChild)
	assert.Equal(t, w3, split.SecondChild)
	assert.Nil(t, w2.Presel)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{Layout: LayoutTiled})
	byID := map[uint32]geom.Rect{}
	for _, p := range placements {
		byID[p.Node.ID] = p.Rect
	}
	assert.Equal(t, geom.Rect{X: 500, Y: 0, Width: 500, Height: 240}, byID[2])
	assert.Equal(t, geom.Rect{X: 500, Y: 240, Width: 500, Height: 560}, byID[3])
}

// S4: continuing S2, rotate root by 90. Root becomes horizontal; first
// child is the former right subtree (now top), second is W1 (now bottom).
func TestS4_Rotate90(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	Rotate(root, 90)

	assert.Equal(t, SplitHorizontal, root.SplitType)
	assert.Equal(t, w2, root.FirstChild)
	assert.Equal(t, w1, root.SecondChild)
	assert.InDelta(t, 0.5, root.Ratio, 1e-9)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{Layout: LayoutTiled})
	byID := map[uint32]geom.Rect{}
	for _, p := range placements {
		byID[p.Node.ID] = p.Rect
	}
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 400}, byID[2])
	assert.Equal(t, geom.Rect{X: 0, Y: 400, Width: 1000, Height: 400}, byID[1])
}

// S5: window-gap=10 on S2. Outer gap applied once, inner fence aligned
// at x=500.
func TestS5_WindowGap(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{
		Layout: LayoutTiled, WindowGap: 10, DefaultBorderWidth: 0, BorderlessSingleton: false,
	})
	byID := map[uint32]geom.Rect{}
	for _, p := range placements {
		byID[p.Node.ID] = p.Rect
	}
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 480, Height: 780}, byID[1])
	assert.Equal(t, geom.Rect{X: 500, Y: 10, Width: 490, Height: 780}, byID[2])
}

// S6: S2 then set W2 state=fullscreen. Stacking level of W2 = 5;
// projected to the full monitor rect with border 0; W1 stays tiled.
func TestS6_Fullscreen(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	SetState(w2, StateFullscreen, nil)
	assert.True(t, w2.Vacant)

	placements := Project(root, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, ProjectOptions{Layout: LayoutTiled})
	byID := map[uint32]geom.Rect{}
	byBorder := map[uint32]uint16{}
	for _, p := range placements {
		byID[p.Node.ID] = p.Rect
		byBorder[p.Node.ID] = p.BorderWidth
	}
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, byID[2])
	assert.Equal(t, uint16(0), byBorder[2])
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, byID[1])
}

func TestRemoveRootEmptiesDesktop(t *testing.T) {
	w1 := newClientLeaf(1)
	var root *Node
	nextID := uint32(100)
	root = Insert(root, w1, nil, testInsertOpts(&nextID))

	root = Unlink(root, w1, RemoveOptions{})
	assert.Nil(t, root)
}

func TestRemoveNonRootRestoresSibling(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	root = Unlink(root, w2, RemoveOptions{RemovalAdjustment: true, Scheme: common.SchemeLongestSide})
	assert.Equal(t, w1, root)
	assert.Nil(t, root.Parent)
}

func TestCollectLeavesOrder(t *testing.T) {
	w1, w2, w3 := newClientLeaf(1), newClientLeaf(2), newClientLeaf(3)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)
	root = Insert(root, w3, w2, opts)

	leaves := CollectLeaves(root)
	require.Len(t, leaves, 3)
	var ids []uint32
	for _, l := range leaves {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []uint32{1, 2, 3}, ids)
}

func TestRotate90Then270IsIdentity(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	before := root.SplitType
	beforeFirst, beforeSecond := root.FirstChild, root.SecondChild

	Rotate(root, 90)
	Rotate(root, 270)

	assert.Equal(t, before, root.SplitType)
	assert.Equal(t, beforeFirst, root.FirstChild)
	assert.Equal(t, beforeSecond, root.SecondChild)
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	w1, w2 := newClientLeaf(1), newClientLeaf(2)
	nextID := uint32(100)
	opts := testInsertOpts(&nextID)

	var root *Node
	root = Insert(root, w1, nil, opts)
	root = Insert(root, w2, w1, opts)

	beforeFirst, beforeSecond := root.FirstChild, root.SecondChild
	beforeRatio := root.Ratio

	Flip(root, FlipHorizontal)
	Flip(root, FlipHorizontal)

	assert.Equal(t, beforeFirst, root.FirstChild)
	assert.Equal(t, beforeSecond, root.SecondChild)
	assert.InDelta(t, beforeRatio, root.Ratio, 1e-9)
}

func TestTileLimitCoercesToFloating(t *testing.T) {
	w1 := newClientLeaf(1)
	w2 := MakeClientLeaf(2, &Client{Window: 2, State: StateTiled})
	nextID := uint32(100)

	var root *Node
	opts := testInsertOpts(&nextID)
	root = Insert(root, w1, nil, opts)

	limited := opts
	limited.TileLimitEnabled = true
	limited.MaxTilesPerDesktop = 1
	limited.TiledCount = 1
	root = Insert(root, w2, w1, limited)

	assert.Equal(t, StateFloating, w2.Client.State)
	assert.True(t, root.IsInternal())
}
