package wm

import (
	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/common"
	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/monitor"
	"github.com/rotkonetworks/bspwm1/stack"
)

// Manage inserts a freshly mapped window as a new tiled leaf on m's
// active desktop, the Go analogue of make_node+insert_node reached from
// a CreateNotify/MapRequest pair in windowmanager.c. The anchor is
// always the desktop's focused leaf (insert_receptacle's default). It registers the
// node in the stacking list above its anchor and marks it the new
// focus, but does not itself raise or configure the X window — the
// caller (xserver's event pump) does that with the bsp.Placement
// Manage leaves for it to read via World.Arrange.
func Manage(w *World, m *monitor.Monitor, c *bsp.Client) *bsp.Node {
	if m == nil || m.Desk == nil || c == nil {
		return nil
	}
	d := m.Desk
	leaf := bsp.MakeClientLeaf(c.Window, c)

	var anchorEntry *stack.Entry
	anchor := d.Focus
	if anchor != nil {
		anchorEntry = w.Stack.Find(anchor)
	}

	d.Root = bsp.Insert(d.Root, leaf, anchor, bsp.InsertOptions{
		Scheme:             common.Scheme(w.Config.AutomaticScheme),
		InitialPolarity:    common.Polarity(w.Config.InitialPolarity),
		DefaultRatio:       w.Config.SplitRatio,
		TileLimitEnabled:   d.TileLimitEnabled,
		MaxTilesPerDesktop: d.MaxTilesPerDesktop,
		TiledCount:         countTiled(d.Root),
		NextID:             w.NextNodeID,
	})
	d.Focus = leaf

	w.Stack.InsertAfter(anchorEntry, leaf)
	w.History.Add(m, d, leaf)
	w.ClientCount++

	return leaf
}

// Unmanage removes n (a DestroyNotify/UnmapNotify target) from d's tree
// and every piece of bookkeeping that referenced it: the stacking list
// entry, focus history, and — if n held focus — the desktop's focus
// pointer falls back to the new nearest-in-history leaf. Mirrors
// remove_node's side-effect sequence in tree.c.
func Unmanage(w *World, m *monitor.Monitor, d *desktop.Desktop, n *bsp.Node) {
	if d == nil || n == nil {
		return
	}
	wasFocus := d.Focus == n

	w.Stack.RemoveNode(n)
	w.History.Remove(d, n)

	d.Root = bsp.Unlink(d.Root, n, bsp.RemoveOptions{
		RemovalAdjustment: w.Config.RemovalAdjustment,
		Scheme:            common.Scheme(w.Config.AutomaticScheme),
	})

	if wasFocus {
		d.Focus = w.History.LastNode(d, nil)
		if d.Focus == nil {
			d.Focus = bsp.FirstExtrema(d.Root)
		}
	}
	if w.ClientCount > 0 {
		w.ClientCount--
	}
}

func countTiled(n *bsp.Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		if bsp.IsTiled(n) {
			return 1
		}
		return 0
	}
	return countTiled(n.FirstChild) + countTiled(n.SecondChild)
}
