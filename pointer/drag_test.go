package pointer

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragMotionThrottlesRapidEvents(t *testing.T) {
	d := Begin(ActionMove, HandleBottomRight, geom.Point{X: 0, Y: 0}, 1000, 17, false, 0)
	res := d.Motion(geom.Point{X: 5, Y: 5}, 1005, true, 1, geom.Rect{})
	assert.False(t, res.Applied)
}

func TestDragMotionAppliesAfterInterval(t *testing.T) {
	d := Begin(ActionMove, HandleBottomRight, geom.Point{X: 0, Y: 0}, 1000, 17, false, 0)
	res := d.Motion(geom.Point{X: 5, Y: 8}, 1020, true, 1, geom.Rect{})
	require.True(t, res.Applied)
	assert.Equal(t, int32(5), res.DX)
	assert.Equal(t, int32(8), res.DY)
}

func TestDragMotionTracksSnapZoneWhenEnabled(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	d := Begin(ActionMove, HandleBottomRight, geom.Point{X: 500, Y: 400}, 1000, 17, true, 20)
	res := d.Motion(geom.Point{X: 2, Y: 400}, 1020, true, 1, m)
	assert.Equal(t, SnapLeft, res.Zone)
}

func TestDragMotionOffMonitorKeepsLastZone(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	d := Begin(ActionMove, HandleBottomRight, geom.Point{X: 500, Y: 400}, 1000, 17, true, 20)
	d.Motion(geom.Point{X: 2, Y: 400}, 1020, true, 1, m)

	res := d.Motion(geom.Point{X: -50, Y: 400}, 1040, false, 0, geom.Rect{})
	assert.False(t, res.OnMonitor)
	assert.Equal(t, SnapLeft, res.Zone)
}

func TestDragReleaseReturnsNoneForNonMoveActions(t *testing.T) {
	d := Begin(ActionResizeCorner, HandleBottomRight, geom.Point{}, 0, 17, true, 20)
	assert.Equal(t, SnapNone, d.Release())
}

func TestDragReleaseReturnsTrackedZoneForMove(t *testing.T) {
	m := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	d := Begin(ActionMove, HandleBottomRight, geom.Point{X: 500, Y: 400}, 1000, 17, true, 20)
	d.Motion(geom.Point{X: 2, Y: 2}, 1020, true, 1, m)
	assert.Equal(t, SnapTopLeft, d.Release())
}
