package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRightAndBottomAreExclusive(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.EqualValues(t, 40, r.Right())
	assert.EqualValues(t, 60, r.Bottom())
}

func TestValidRejectsZeroOrNegativeExtent(t *testing.T) {
	assert.True(t, Rect{Width: 1, Height: 1}.Valid())
	assert.False(t, Rect{Width: 0, Height: 1}.Valid())
	assert.False(t, Rect{Width: 1, Height: 0}.Valid())
}

func TestIsInsideHalfOpenOnHighSide(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, IsInside(Point{X: 0, Y: 0}, r))
	assert.True(t, IsInside(Point{X: 9, Y: 9}, r))
	assert.False(t, IsInside(Point{X: 10, Y: 0}, r))
	assert.False(t, IsInside(Point{X: 0, Y: 10}, r))
}

func TestContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.True(t, Contains(outer, Rect{X: 10, Y: 10, Width: 10, Height: 10}))
	assert.False(t, Contains(outer, Rect{X: 90, Y: 90, Width: 20, Height: 20}))
}

func TestRectsOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}
	c := Rect{X: 200, Y: 200, Width: 50, Height: 50}
	assert.True(t, RectsOverlap(a, b))
	assert.True(t, RectsOverlap(b, a))
	assert.False(t, RectsOverlap(a, c))
}

func TestRectsOverlapEdgeTouchingIsNotOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 100, Y: 0, Width: 50, Height: 100}
	assert.False(t, RectsOverlap(a, b))
}

func TestRectMaxPicksLargerArea(t *testing.T) {
	small := Rect{Width: 10, Height: 10}
	big := Rect{Width: 20, Height: 20}
	assert.Equal(t, big, RectMax(small, big))
	assert.Equal(t, big, RectMax(big, small))
}

func TestBoundaryDistance(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	r2 := Rect{X: 20, Y: 0, Width: 10, Height: 10}
	assert.EqualValues(t, 10, BoundaryDistance(r1, r2, East))
	assert.EqualValues(t, 10, BoundaryDistance(r2, r1, West))
}

func TestOnDirSideLowVsHighTightness(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	overlappingNeighbor := Rect{X: 5, Y: -10, Width: 10, Height: 15}
	assert.True(t, OnDirSide(r1, overlappingNeighbor, North, Low))
	assert.False(t, OnDirSide(r1, overlappingNeighbor, North, High))

	clearNeighbor := Rect{X: 5, Y: -20, Width: 10, Height: 10}
	assert.True(t, OnDirSide(r1, clearNeighbor, North, High))
}

func TestOnDirSideRequiresPerpendicularOverlap(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	farOffToTheSide := Rect{X: 100, Y: -20, Width: 10, Height: 10}
	assert.False(t, OnDirSide(r1, farOffToTheSide, North, Low))
}

func TestRectEq(t *testing.T) {
	a := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	b := a
	assert.True(t, RectEq(a, b))
	b.Width = 5
	assert.False(t, RectEq(a, b))
}

func TestRectCmpOrdersTopToBottomLeftToRight(t *testing.T) {
	top := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	bottom := Rect{X: 0, Y: 10, Width: 10, Height: 10}
	assert.Negative(t, RectCmp(top, bottom))
	assert.Positive(t, RectCmp(bottom, top))

	left := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	right := Rect{X: 10, Y: 0, Width: 10, Height: 10}
	assert.Negative(t, RectCmp(left, right))
}

func TestRectCmpTiesBreakByArea(t *testing.T) {
	smaller := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	bigger := Rect{X: 0, Y: 0, Width: 20, Height: 20}
	assert.Negative(t, RectCmp(smaller, bigger))
}

func TestCenter(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 20}
	assert.Equal(t, Point{X: 5, Y: 10}, r.Center())
}

func TestShrunkByClampsAtZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	shrunk := r.ShrunkBy(3, 3, 3, 3)
	assert.Equal(t, Rect{X: 3, Y: 3, Width: 4, Height: 4}, shrunk)

	collapsed := r.ShrunkBy(20, 0, 0, 0)
	assert.EqualValues(t, 0, collapsed.Width)
}

func TestAddSatSubSatSaturateAtInt16Bounds(t *testing.T) {
	assert.EqualValues(t, maxCoord, AddSat(maxCoord, 100))
	assert.EqualValues(t, minCoord, SubSat(minCoord, 100))
	assert.EqualValues(t, 0, AddSat(0, 0))
}
