package pointer

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/stretchr/testify/assert"
)

func TestGetHandleCornerQuadrants(t *testing.T) {
	rect := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.Equal(t, HandleTopLeft, GetHandle(rect, geom.Point{X: 10, Y: 10}, ActionResizeCorner))
	assert.Equal(t, HandleTopRight, GetHandle(rect, geom.Point{X: 90, Y: 10}, ActionResizeCorner))
	assert.Equal(t, HandleBottomLeft, GetHandle(rect, geom.Point{X: 10, Y: 90}, ActionResizeCorner))
	assert.Equal(t, HandleBottomRight, GetHandle(rect, geom.Point{X: 90, Y: 90}, ActionResizeCorner))
}

func TestGetHandleSideSquareDiagonals(t *testing.T) {
	rect := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.Equal(t, HandleTop, GetHandle(rect, geom.Point{X: 50, Y: 5}, ActionResizeSide))
	assert.Equal(t, HandleBottom, GetHandle(rect, geom.Point{X: 50, Y: 95}, ActionResizeSide))
	assert.Equal(t, HandleLeft, GetHandle(rect, geom.Point{X: 5, Y: 50}, ActionResizeSide))
	assert.Equal(t, HandleRight, GetHandle(rect, geom.Point{X: 95, Y: 50}, ActionResizeSide))
}

func TestGetHandleDegenerateRectFallsBackToBottomRight(t *testing.T) {
	rect := geom.Rect{X: 0, Y: 0, Width: 0, Height: 50}
	assert.Equal(t, HandleBottomRight, GetHandle(rect, geom.Point{X: 10, Y: 10}, ActionResizeCorner))
}

func TestGetSnapZoneDisabledAlwaysNone(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	assert.Equal(t, SnapNone, GetSnapZone(geom.Point{X: 0, Y: 0}, m, 20, false))
}

func TestGetSnapZoneCornersTakePriorityOverEdges(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	assert.Equal(t, SnapTopLeft, GetSnapZone(geom.Point{X: 5, Y: 5}, m, 20, true))
	assert.Equal(t, SnapBottomRight, GetSnapZone(geom.Point{X: 995, Y: 795}, m, 20, true))
}

func TestGetSnapZoneTopEdgeIsMaximize(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	assert.Equal(t, SnapMaximize, GetSnapZone(geom.Point{X: 500, Y: 2}, m, 20, true))
}

func TestGetSnapZoneSidesAreHalfScreen(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	assert.Equal(t, SnapLeft, GetSnapZone(geom.Point{X: 2, Y: 400}, m, 20, true))
	assert.Equal(t, SnapRight, GetSnapZone(geom.Point{X: 998, Y: 400}, m, 20, true))
}

func TestGetSnapZoneCenterIsNone(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	assert.Equal(t, SnapNone, GetSnapZone(geom.Point{X: 500, Y: 400}, m, 20, true))
}

func TestSnapTargetLeftHalvesWidthWithinPadding(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	target, maximize, ok := SnapTarget(m, 10, 10, 10, 10, SnapLeft)
	assert.True(t, ok)
	assert.False(t, maximize)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 490, Height: 780}, target)
}

func TestSnapTargetMaximizeReturnsWorkArea(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	target, maximize, ok := SnapTarget(m, 0, 0, 0, 0, SnapMaximize)
	assert.True(t, ok)
	assert.True(t, maximize)
	assert.Equal(t, m, target)
}

func TestSnapTargetNoneReportsNotOk(t *testing.T) {
	_, _, ok := SnapTarget(geom.Rect{Width: 100, Height: 100}, 0, 0, 0, 0, SnapNone)
	assert.False(t, ok)
}

func TestMoveClientTranslates(t *testing.T) {
	r := geom.Rect{X: 10, Y: 10, Width: 50, Height: 50}
	moved := MoveClient(r, 5, -3)
	assert.Equal(t, geom.Rect{X: 15, Y: 7, Width: 50, Height: 50}, moved)
}

func TestResizeClientRightHandleGrowsWidth(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	resized := ResizeClient(r, HandleRight, 20, 0)
	assert.Equal(t, int32(120), resized.Width)
}

func TestResizeClientLeftHandleMovesXAndShrinksWidth(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	resized := ResizeClient(r, HandleLeft, 20, 0)
	assert.Equal(t, int32(20), resized.X)
	assert.Equal(t, int32(80), resized.Width)
}

func TestResizeClientClampsToMinimumOne(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	resized := ResizeClient(r, HandleRight, -50, 0)
	assert.Equal(t, int32(1), resized.Width)
}

func TestResizeClientTopLeftAdjustsBothAxes(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	resized := ResizeClient(r, HandleTopLeft, 10, 10)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 90, Height: 90}, resized)
}
