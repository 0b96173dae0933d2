// Package desktop implements the per-monitor desktop container: the
// named slot that holds one bsp tree, its layout mode, and its own
// gap/border overrides. Cross-monitor orchestration (activation,
// transfer, swap) lives one layer up in wm, since it needs to see both
// the source and destination monitor at once.
package desktop

import (
	"github.com/rotkonetworks/bspwm1/bsp"
)

// Layout selects how Project treats the desktop's tree.
type Layout int

const (
	LayoutTiled Layout = iota
	LayoutMonocle
)

func (l Layout) String() string {
	if l == LayoutMonocle {
		return "monocle"
	}
	return "tiled"
}

// Padding overrides the usable area within a monitor's rectangle,
// independently of window_gap (padding shrinks the whole desktop area
// once; window_gap separates individual tiles).
type Padding struct {
	Top, Right, Bottom, Left int32
}

// Desktop is one named tiling surface. Prev/Next link it into its
// owning monitor's desktop list.
type Desktop struct {
	ID   uint32
	Name string

	Root  *bsp.Node
	Focus *bsp.Node

	UserLayout Layout
	Layout     Layout

	Padding     Padding
	WindowGap   int32
	BorderWidth uint16

	UrgentCount        int
	TileLimitEnabled   bool
	MaxTilesPerDesktop int

	Prev, Next *Desktop
}

const defaultName = "Desktop"

// Make constructs a desktop, defaulting its layout to monocle when
// singleMonocle forces every desktop to start that way.
func Make(name string, id uint32, singleMonocle bool) *Desktop {
	if name == "" {
		name = defaultName
	}
	layout := LayoutTiled
	if singleMonocle {
		layout = LayoutMonocle
	}
	return &Desktop{
		ID:         id,
		Name:       name,
		UserLayout: LayoutTiled,
		Layout:     layout,
	}
}

// Rename changes the desktop's display name in place.
func (d *Desktop) Rename(name string) {
	if name == "" {
		return
	}
	d.Name = name
}

// IsUrgent reports whether any client on the desktop is flagged urgent.
func (d *Desktop) IsUrgent() bool {
	return d != nil && d.UrgentCount > 0
}

// SetLayout applies l, honoring the user/auto distinction: a
// user-requested layout is recorded as UserLayout and becomes the
// effective layout unless single-monocle is on and the desktop has at
// most one tiled leaf; an automatic one (driven by e.g. single_monocle
// bookkeeping) sets the effective layout directly. Returns whether the
// effective layout changed.
func (d *Desktop) SetLayout(l Layout, user bool, singleMonocle bool) bool {
	if user && d.UserLayout == l {
		return false
	}
	if !user && d.Layout == l {
		return false
	}

	old := d.Layout
	if user {
		d.UserLayout = l
	} else {
		d.Layout = l
	}

	if user && (!singleMonocle || bsp.CountTiledLeaves(d.Root) > 1) {
		d.Layout = l
	}

	return d.Layout != old
}

// Show clears Hidden on every leaf of the desktop's tree.
func Show(d *Desktop) {
	if d == nil {
		return
	}
	setHidden(d.Root, false)
}

// Hide sets Hidden on every leaf of the desktop's tree.
func Hide(d *Desktop) {
	if d == nil {
		return
	}
	setHidden(d.Root, true)
}

func setHidden(root *bsp.Node, hidden bool) {
	for _, l := range bsp.CollectLeaves(root) {
		l.Hidden = hidden
	}
}

// FindByID searches the desktop list starting at head for the desktop
// with the given id.
func FindByID(head *Desktop, id uint32) *Desktop {
	for d := head; d != nil; d = d.Next {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Insert appends d to the list described by head/tail, returning the
// updated head/tail (head is unchanged unless the list was empty).
func Insert(head, tail, d *Desktop) (newHead, newTail *Desktop) {
	if d == nil {
		return head, tail
	}
	if tail == nil {
		return d, d
	}
	tail.Next = d
	d.Prev = tail
	return head, d
}

// Unlink removes d from the list described by head/tail, returning the
// updated head/tail.
func Unlink(head, tail, d *Desktop) (newHead, newTail *Desktop) {
	if d == nil {
		return head, tail
	}
	if d.Prev != nil {
		d.Prev.Next = d.Next
	}
	if d.Next != nil {
		d.Next.Prev = d.Prev
	}
	if head == d {
		head = d.Next
	}
	if tail == d {
		tail = d.Prev
	}
	d.Prev, d.Next = nil, nil
	return head, tail
}
