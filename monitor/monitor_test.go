package monitor

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderRestoresLeftToRightOrder(t *testing.T) {
	a := Make("A", geom.Rect{X: 1000, Y: 0, Width: 800, Height: 600}, 1)
	b := Make("B", geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, 2)
	a.Next, b.Prev = b, a

	head, tail := a, b
	head, tail = Reorder(head, tail, b)

	assert.Equal(t, b, head)
	assert.Equal(t, a, tail)
	assert.Equal(t, a, b.Next)
	assert.Equal(t, b, a.Prev)
}

func TestEmbraceClientClampsIntoBounds(t *testing.T) {
	m := Make("M", geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}, 1)
	r := geom.Rect{X: -50, Y: 900, Width: 200, Height: 100}
	EmbraceClient(m, &r)
	assert.Equal(t, int32(0), r.X)
	assert.Equal(t, int32(700), r.Y)
}

func TestAdaptGeometryScalesProportionally(t *testing.T) {
	c := &bsp.Client{Window: 1, State: bsp.StateFloating, FloatingRect: geom.Rect{X: 100, Y: 100, Width: 200, Height: 200}}
	n := bsp.MakeClientLeaf(1, c)

	rs := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	rd := geom.Rect{X: 0, Y: 0, Width: 2000, Height: 1600}

	AdaptGeometry(rs, rd, n)
	require.NotNil(t, n.Client)
	assert.Equal(t, int32(200), n.Client.FloatingRect.Width)
	assert.Equal(t, int32(200), n.Client.FloatingRect.Height)
	assert.Equal(t, int32(225), n.Client.FloatingRect.X)
	assert.Equal(t, int32(233), n.Client.FloatingRect.Y)
}

func TestAdaptGeometryRefusesWhenDestinationTooSmall(t *testing.T) {
	c := &bsp.Client{
		Window:       1,
		State:        bsp.StateFloating,
		FloatingRect: geom.Rect{X: 100, Y: 100, Width: 200, Height: 200},
		Hints:        bsp.SizeHints{HasMin: true, MinWidth: 500, MinHeight: 500},
	}
	n := bsp.MakeClientLeaf(1, c)

	rs := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	rd := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	AdaptGeometry(rs, rd, n)
	assert.Equal(t, geom.Rect{X: 100, Y: 100, Width: 200, Height: 200}, n.Client.FloatingRect)
}
