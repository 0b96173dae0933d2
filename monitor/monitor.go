// Package monitor models a physical output: its geometry, its desktop
// list, and the RandR-driven reconfiguration that keeps the former in
// sync with the latter.
package monitor

import (
	"github.com/sirupsen/logrus"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/geom"
)

const defaultName = "Monitor"

// Monitor is one output in the monitor list, ordered top-to-bottom,
// then left-to-right by geom.RectCmp.
type Monitor struct {
	ID      uint32
	RandRID uint32 // XCB_NONE (0) until bound to a RandR output
	Name    string

	Rect geom.Rect

	Desk     *desktop.Desktop
	DeskHead *desktop.Desktop
	DeskTail *desktop.Desktop

	Padding     desktop.Padding
	WindowGap   int32
	BorderWidth uint16

	StickyCount int
	Wired       bool

	Prev, Next *Monitor
}

// Make constructs a monitor with rect as its initial geometry.
func Make(name string, rect geom.Rect, id uint32) *Monitor {
	if name == "" {
		name = defaultName
	}
	return &Monitor{
		ID:    id,
		Name:  name,
		Rect:  rect,
		Wired: true,
	}
}

// FindByID scans the monitor list starting at head.
func FindByID(head *Monitor, id uint32) *Monitor {
	for m := head; m != nil; m = m.Next {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// FindByRandRID scans the monitor list for the output bound to id.
func FindByRandRID(head *Monitor, id uint32) *Monitor {
	for m := head; m != nil; m = m.Next {
		if m.RandRID == id {
			return m
		}
	}
	return nil
}

// InsertDesktop appends d to m's desktop list.
func (m *Monitor) InsertDesktop(d *desktop.Desktop) {
	if m == nil || d == nil {
		return
	}
	if m.Desk == nil {
		m.Desk, m.DeskHead, m.DeskTail = d, d, d
		return
	}
	m.DeskHead, m.DeskTail = desktop.Insert(m.DeskHead, m.DeskTail, d)
}

// UnlinkDesktop removes d from m's desktop list without destroying it.
func (m *Monitor) UnlinkDesktop(d *desktop.Desktop) {
	if m == nil || d == nil {
		return
	}
	m.DeskHead, m.DeskTail = desktop.Unlink(m.DeskHead, m.DeskTail, d)
	if m.Desk == d {
		m.Desk = nil
	}
}

// FindDesktop searches m's own desktop list for id.
func (m *Monitor) FindDesktop(id uint32) *desktop.Desktop {
	if m == nil {
		return nil
	}
	return desktop.FindByID(m.DeskHead, id)
}

// Reorder moves m within the monitor list described by head/tail to
// restore geom.RectCmp order after a geometry change, returning the
// (possibly updated) head/tail.
func Reorder(head, tail, m *Monitor) (newHead, newTail *Monitor) {
	for m.Prev != nil && geom.RectCmp(m.Rect, m.Prev.Rect) < 0 {
		head, tail = Swap(head, tail, m, m.Prev)
	}
	for m.Next != nil && geom.RectCmp(m.Rect, m.Next.Rect) > 0 {
		head, tail = Swap(head, tail, m, m.Next)
	}
	return head, tail
}

// Swap exchanges the list positions of a and b (which must be
// adjacent) within the list described by head/tail.
func Swap(head, tail, a, b *Monitor) (newHead, newTail *Monitor) {
	if a == nil || b == nil {
		return head, tail
	}
	if a.Next == b {
		// a immediately precedes b
	} else if b.Next == a {
		a, b = b, a
	} else {
		return head, tail
	}

	before, after := a.Prev, b.Next
	if before != nil {
		before.Next = b
	}
	b.Prev = before
	b.Next = a
	a.Prev = b
	a.Next = after
	if after != nil {
		after.Prev = a
	}

	if head == a {
		head = b
	}
	if tail == b {
		tail = a
	}
	return head, tail
}

// Insert appends m to the list described by head/tail in geom.RectCmp
// order, the Go analogue of add_monitor's list-splice half (the
// RandR-walk half lives in the xserver package, which is the only
// place screen-resources can actually be queried).
func Insert(head, tail, m *Monitor) (newHead, newTail *Monitor) {
	if m == nil {
		return head, tail
	}
	if tail == nil {
		return m, m
	}
	tail.Next = m
	m.Prev = tail
	newHead, newTail = head, m
	return Reorder(newHead, newTail, m)
}

// Unlink removes m from the list described by head/tail, the list-
// splice half of remove_monitor; the caller is responsible for
// reassigning m's desktops (merge_monitors) before calling this, since
// unlink_monitor in monitor.c is likewise a pure structural primitive.
func Unlink(head, tail, m *Monitor) (newHead, newTail *Monitor) {
	if m == nil {
		return head, tail
	}
	if m.Prev != nil {
		m.Prev.Next = m.Next
	}
	if m.Next != nil {
		m.Next.Prev = m.Prev
	}
	if head == m {
		head = m.Next
	}
	if tail == m {
		tail = m.Prev
	}
	m.Prev, m.Next = nil, nil
	return head, tail
}

// Merge transfers every desktop from src onto dst (appended to dst's
// list), the Go port of merge_monitors — used when a RandR output
// disappears and remove_unplugged_monitors folds its desktops onto the
// nearest surviving monitor rather than discarding them.
func Merge(src, dst *Monitor) {
	if src == nil || dst == nil {
		return
	}
	for d := src.DeskHead; d != nil; {
		next := d.Next
		d.Prev, d.Next = nil, nil
		dst.InsertDesktop(d)
		d = next
	}
	src.DeskHead, src.DeskTail, src.Desk = nil, nil, nil
}

// EmbraceClient clamps a floating rectangle so it stays fully inside
// m, preferring to slide it in rather than shrink it.
func EmbraceClient(m *Monitor, r *geom.Rect) {
	if m == nil || r == nil {
		return
	}
	if r.X < m.Rect.X {
		r.X = m.Rect.X
	} else if r.Width <= m.Rect.Width {
		maxX := m.Rect.X + m.Rect.Width - r.Width
		if r.X > maxX {
			r.X = maxX
		}
	}
	if r.Y < m.Rect.Y {
		r.Y = m.Rect.Y
	} else if r.Height <= m.Rect.Height {
		maxY := m.Rect.Y + m.Rect.Height - r.Height
		if r.Y > maxY {
			r.Y = maxY
		}
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// AdaptGeometry repositions the floating rect of every client under n
// as the containing monitor rect changes from rs to rd: the part of the
// rect that overhangs rs is set aside, the remaining position is
// rescaled proportionally into rd, and the overhang is restored. The
// rect's size is kept.
// Where the spec's original behavior silently floors a collapsed
// dimension to 1px, this implementation instead refuses the adaptation
// for a client whose size-hint minimum wouldn't fit in rd at all,
// leaving that client's rect untouched and logging a warning — the
// resolved "adapt-on-overflow" policy (SPEC_FULL.md §9): better an
// unmoved window than an invisible one.
func AdaptGeometry(rs, rd geom.Rect, n *bsp.Node) {
	if n == nil {
		return
	}
	for f := bsp.FirstExtrema(n); f != nil; f = bsp.NextLeaf(f, n) {
		if f.Client == nil {
			continue
		}
		c := f.Client
		cr := c.FloatingRect

		minW, minH := int32(1), int32(1)
		if c.Hints.HasMin {
			minW, minH = max32(1, c.Hints.MinWidth), max32(1, c.Hints.MinHeight)
		}
		if rd.Width < minW || rd.Height < minH {
			logrus.WithFields(logrus.Fields{
				"window": c.Window,
				"dest":   rd,
				"minW":   minW,
				"minH":   minH,
			}).Warn("adapt_geometry: destination too small, leaving client rect unchanged")
			continue
		}

		leftAdjust := max32(rs.X-cr.X, 0)
		topAdjust := max32(rs.Y-cr.Y, 0)
		rightAdjust := max32((cr.X+cr.Width)-(rs.X+rs.Width), 0)
		bottomAdjust := max32((cr.Y+cr.Height)-(rs.Y+rs.Height), 0)

		cr.X = geom.AddSat(cr.X, leftAdjust)
		cr.Y = geom.AddSat(cr.Y, topAdjust)
		cr.Width = geom.SubSat(cr.Width, geom.AddSat(leftAdjust, rightAdjust))
		cr.Height = geom.SubSat(cr.Height, geom.AddSat(topAdjust, bottomAdjust))

		if cr.Width < minW {
			cr.Width = minW
		}
		if cr.Height < minH {
			cr.Height = minH
		}

		dxS := geom.SubSat(cr.X, rs.X)
		dyS := geom.SubSat(cr.Y, rs.Y)
		denoX := geom.SubSat(rs.Width, cr.Width)
		denoY := geom.SubSat(rs.Height, cr.Height)

		var dxD, dyD int32
		if denoX > 0 && rd.Width > cr.Width {
			dxD = int32(int64(dxS) * int64(rd.Width-cr.Width) / int64(denoX))
		}
		if denoY > 0 && rd.Height > cr.Height {
			dyD = int32(int64(dyS) * int64(rd.Height-cr.Height) / int64(denoY))
		}

		cr.Width = geom.AddSat(cr.Width, geom.AddSat(leftAdjust, rightAdjust))
		cr.Height = geom.AddSat(cr.Height, geom.AddSat(topAdjust, bottomAdjust))
		cr.X = geom.SubSat(geom.AddSat(rd.X, dxD), leftAdjust)
		cr.Y = geom.SubSat(geom.AddSat(rd.Y, dyD), topAdjust)

		c.FloatingRect = cr
	}
}
