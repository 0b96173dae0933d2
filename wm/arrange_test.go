package wm

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrangeSingleTiledFillsPaddedMonitor(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()
	m.Padding.Left, m.Padding.Top = 10, 10
	leaf := Manage(w, m, &bsp.Client{Window: 1, State: bsp.StateTiled})

	placements := w.Arrange(m, d1)
	require.Len(t, placements, 1)
	assert.Equal(t, leaf, placements[0].Node)
	assert.Equal(t, int32(10), placements[0].Rect.X)
	assert.Equal(t, int32(10), placements[0].Rect.Y)
}

func TestArrangeTwoTiledSplitsHorizontally(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()
	Manage(w, m, &bsp.Client{Window: 1, State: bsp.StateTiled})
	Manage(w, m, &bsp.Client{Window: 2, State: bsp.StateTiled})

	placements := w.Arrange(m, d1)
	require.Len(t, placements, 2)
	assert.NotEqual(t, placements[0].Rect, placements[1].Rect)
}

func TestArrangeNilMonitorOrDesktopReturnsNil(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()
	assert.Nil(t, w.Arrange(nil, d1))
	assert.Nil(t, w.Arrange(m, nil))
}
