package stack

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRaiser struct {
	calls []Move
}

func (f *fakeRaiser) Above(id, sibling uint32) {
	f.calls = append(f.calls, Move{ID: id, Sibling: sibling, Above: true})
}

func (f *fakeRaiser) Below(id, sibling uint32) {
	f.calls = append(f.calls, Move{ID: id, Sibling: sibling, Above: false})
}

func leaf(id uint32, state bsp.State, layer bsp.Layer) *bsp.Node {
	return bsp.MakeClientLeaf(id, &bsp.Client{Window: id, State: state, Layer: layer, Shown: true})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 3, Level(&bsp.Client{State: bsp.StateTiled, Layer: bsp.LayerNormal}))
	assert.Equal(t, 4, Level(&bsp.Client{State: bsp.StateFloating, Layer: bsp.LayerNormal}))
	assert.Equal(t, 5, Level(&bsp.Client{State: bsp.StateFullscreen, Layer: bsp.LayerNormal}))
	assert.Equal(t, 8, Level(&bsp.Client{State: bsp.StateFullscreen, Layer: bsp.LayerAbove}))
	assert.Equal(t, 0, Level(&bsp.Client{State: bsp.StateTiled, Layer: bsp.LayerBelow}))
}

func TestInsertAfterAndRemove(t *testing.T) {
	var l List
	n1, n2, n3 := leaf(1, bsp.StateTiled, bsp.LayerNormal), leaf(2, bsp.StateTiled, bsp.LayerNormal), leaf(3, bsp.StateTiled, bsp.LayerNormal)

	l.InsertAfter(nil, n1)
	require.NotNil(t, l.Head)
	assert.Equal(t, n1, l.Head.Node)
	assert.Equal(t, n1, l.Tail.Node)

	l.InsertAfter(l.Head, n2)
	assert.Equal(t, n2, l.Tail.Node)

	l.InsertBefore(l.Head, n3)
	assert.Equal(t, n3, l.Head.Node)

	order := []uint32{}
	for s := l.Head; s != nil; s = s.Next {
		order = append(order, s.Node.ID)
	}
	assert.Equal(t, []uint32{3, 1, 2}, order)

	l.RemoveNode(n1)
	order = order[:0]
	for s := l.Head; s != nil; s = s.Next {
		order = append(order, s.Node.ID)
	}
	assert.Equal(t, []uint32{3, 2}, order)
}

// A newly focused tiled client should rise to just below the first
// entry whose level exceeds its own, per the focused-insertion rule.
func TestRestackFocusedRisesAboveEqualLevelPeers(t *testing.T) {
	var l List
	n1 := leaf(1, bsp.StateTiled, bsp.LayerNormal)
	n2 := leaf(2, bsp.StateTiled, bsp.LayerNormal)
	l.InsertAfter(nil, n1)
	l.InsertAfter(l.Head, n2)

	r := &fakeRaiser{}
	moves := l.Restack(n1, true, r)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Above)
	assert.Equal(t, n1.Client.Window, moves[0].ID)

	order := []uint32{}
	for s := l.Head; s != nil; s = s.Next {
		order = append(order, s.Node.ID)
	}
	assert.Equal(t, []uint32{2, 1}, order)
}

func TestRestackUnfocusedSinksBelowEqualLevelPeers(t *testing.T) {
	var l List
	n1 := leaf(1, bsp.StateTiled, bsp.LayerNormal)
	n2 := leaf(2, bsp.StateTiled, bsp.LayerNormal)
	l.InsertAfter(nil, n1)
	l.InsertAfter(l.Head, n2)

	moves := l.Restack(n2, false, nil)
	require.Len(t, moves, 1)
	assert.False(t, moves[0].Above)

	order := []uint32{}
	for s := l.Head; s != nil; s = s.Next {
		order = append(order, s.Node.ID)
	}
	assert.Equal(t, []uint32{2, 1}, order)
}

func TestFullscreenAlwaysAboveTiled(t *testing.T) {
	var l List
	tiled := leaf(1, bsp.StateTiled, bsp.LayerNormal)
	full := leaf(2, bsp.StateFullscreen, bsp.LayerNormal)
	l.InsertAfter(nil, tiled)
	l.Restack(full, true, nil)

	require.Equal(t, tiled, l.Head.Node)
	require.Equal(t, full, l.Tail.Node)
}
