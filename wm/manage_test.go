package wm

import (
	"testing"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManageBecomesSoleRootOnEmptyDesktop(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()

	leaf := Manage(w, m, &bsp.Client{Window: 42, State: bsp.StateTiled})
	require.NotNil(t, leaf)
	assert.Equal(t, d1.Root, leaf)
	assert.Equal(t, d1.Focus, leaf)
	assert.Equal(t, 1, w.ClientCount)
	assert.NotNil(t, w.Stack.Find(leaf))
}

func TestManageSplitsAroundFocusedAnchor(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()

	first := Manage(w, m, &bsp.Client{Window: 1, State: bsp.StateTiled})
	second := Manage(w, m, &bsp.Client{Window: 2, State: bsp.StateTiled})

	require.True(t, d1.Root.IsInternal())
	assert.Equal(t, d1.Focus, second)
	leaves := bsp.CollectLeaves(d1.Root)
	assert.Len(t, leaves, 2)
	assert.Contains(t, leaves, first)
	assert.Contains(t, leaves, second)
}

func TestUnmanageFallsBackFocusToHistory(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()

	first := Manage(w, m, &bsp.Client{Window: 1, State: bsp.StateTiled})
	second := Manage(w, m, &bsp.Client{Window: 2, State: bsp.StateTiled})
	require.Equal(t, d1.Focus, second)

	Unmanage(w, m, d1, second)

	assert.Equal(t, 1, w.ClientCount)
	assert.Nil(t, w.Stack.Find(second))
	require.NotNil(t, d1.Focus)
	assert.Equal(t, first, d1.Root)
}

func TestUnmanageEmptiesDesktopWhenLastLeafRemoved(t *testing.T) {
	w, m, d1, _ := setupOneMonitorTwoDesktops()
	leaf := Manage(w, m, &bsp.Client{Window: 1, State: bsp.StateTiled})

	Unmanage(w, m, d1, leaf)

	assert.Nil(t, d1.Root)
	assert.Nil(t, d1.Focus)
	assert.Equal(t, 0, w.ClientCount)
}
