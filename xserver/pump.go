package xserver

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xevent"
	"github.com/sirupsen/logrus"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/rotkonetworks/bspwm1/ipc"
	"github.com/rotkonetworks/bspwm1/monitor"
	"github.com/rotkonetworks/bspwm1/pointer"
	"github.com/rotkonetworks/bspwm1/wm"
)

// Pump owns the subset of state an event callback needs that World
// itself doesn't track: which window is mid-grab, and the adapters the
// callbacks hand to wm/bsp/stack so they never touch the connection
// directly. Every callback's body is just "translate this event into a
// closure, post it to commands" — the single queue World.Arrange/Manage/
// Unmanage etc. are actually called from, so World needs no locking
// even though the callbacks run on xgbutil's own goroutine.
type Pump struct {
	Conn     *Conn
	Commands chan<- func(*wm.World)
	Mover    Mover
	Raiser   Raiser
	Preview  *Preview
	Status   *ipc.Status // optional; nil means no subscribe-stream reporting

	drag *pointer.Drag
}

// report emits one subscribe-stream status line, a no-op if no Status
// was wired (ipc's subscribe token is one of several bspc features this
// daemon can run without).
func (p *Pump) report(kind string, ids []uint32, payload string) {
	if p.Status == nil {
		return
	}
	p.Status.Emit(kind, ids, payload)
}

// NewPump wires a Pump's adapters to conn and registers every callback
// SPEC_FULL names onto conn's root window — CreateNotify/DestroyNotify/
// MapRequest/UnmapNotify/ConfigureRequest/PropertyNotify/EnterNotify/
// FocusIn/ButtonPress/MotionNotify/ButtonRelease/ClientMessage. RandR
// is handled separately by Conn.MonitorEvents, which owns its own
// connection exactly as the teacher's monitorRandREvents does.
func NewPump(conn *Conn, commands chan<- func(*wm.World)) *Pump {
	p := &Pump{
		Conn:     conn,
		Commands: commands,
		Mover:    Mover{C: conn},
		Raiser:   Raiser{C: conn},
		Preview:  NewPreview(conn),
	}

	xevent.CreateNotifyFun(p.onCreate).Connect(conn.X, conn.Root)
	xevent.DestroyNotifyFun(p.onDestroy).Connect(conn.X, conn.Root)
	xevent.MapRequestFun(p.onMapRequest).Connect(conn.X, conn.Root)
	xevent.UnmapNotifyFun(p.onUnmap).Connect(conn.X, conn.Root)
	xevent.ConfigureRequestFun(p.onConfigureRequest).Connect(conn.X, conn.Root)
	xevent.PropertyNotifyFun(p.onPropertyNotify).Connect(conn.X, conn.Root)
	xevent.EnterNotifyFun(p.onEnterNotify).Connect(conn.X, conn.Root)
	xevent.FocusInFun(p.onFocusIn).Connect(conn.X, conn.Root)
	xevent.ButtonPressFun(p.onButtonPress).Connect(conn.X, conn.Root)
	xevent.MotionNotifyFun(p.onMotionNotify).Connect(conn.X, conn.Root)
	xevent.ButtonReleaseFun(p.onButtonRelease).Connect(conn.X, conn.Root)
	xevent.ClientMessageFun(p.onClientMessage).Connect(conn.X, conn.Root)

	return p
}

// Run drives xevent's main loop on the calling goroutine — xgbutil
// dispatches registered callbacks synchronously as events arrive, so
// this blocks until conn's connection is closed.
func (p *Pump) Run() {
	xevent.Main(p.Conn.X)
}

// onCreate corresponds to a new top-level window appearing. Real
// management is deferred to MapRequest (a window isn't managed until it
// asks to be mapped, per ICCCM) — this callback only logs at Trace,
// mirroring how most WMs treat CreateNotify as a no-op.
func (p *Pump) onCreate(X *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
	logrus.WithField("window", ev.Window).Trace("CreateNotify")
}

// onMapRequest manages the window: reads its properties, inserts it as
// a tiled leaf on the focused monitor's active desktop, arranges the
// desktop, and actually maps + configures the window. This is the
// core "become the window manager" responsibility the teacher's
// EWMH-client architecture never needed, since it rode atop another WM
// that already did this — see DESIGN.md's xserver section.
func (p *Pump) onMapRequest(X *xgbutil.XUtil, ev xevent.MapRequestEvent) {
	client := p.Conn.NewClient(ev.Window)
	p.Commands <- func(w *wm.World) {
		if w.Mon == nil {
			return
		}
		leaf := wm.Manage(w, w.Mon, client)
		if leaf == nil {
			return
		}
		p.Conn.SetWmDesktop(ev.Window, 0)
		xproto.MapWindow(p.Conn.X.Conn(), ev.Window)
		p.applyPlacements(w.Arrange(w.Mon, w.Mon.Desk))
		p.Conn.InputFocus(ev.Window)
		p.Conn.SetActiveWindow(ev.Window)
		w.Stack.Restack(leaf, true, p.Raiser)
		p.Conn.BatchEWMHUpdate(w)
		p.report("window_manage", []uint32{leaf.Client.Window}, "")
	}
}

// onDestroy unmanages a window whose client has gone away.
func (p *Pump) onDestroy(X *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
	p.unmanage(ev.Window)
}

// onUnmap unmanages a window the client withdrew (ICCCM withdrawal via
// UnmapNotify is indistinguishable here from destruction once the
// window is gone from the tree; a client that wants to stay managed
// across an unmap/remap pair is out of scope, matching most tiling
// WMs' treatment).
func (p *Pump) onUnmap(X *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
	p.unmanage(ev.Window)
}

func (p *Pump) unmanage(win xproto.Window) {
	p.Commands <- func(w *wm.World) {
		for m := w.MonHead; m != nil; m = m.Next {
			for d := m.DeskHead; d != nil; d = d.Next {
				for _, leaf := range bsp.CollectLeaves(d.Root) {
					if leaf.Client != nil && leaf.Client.Window == uint32(win) {
						id := leaf.Client.Window
						wm.Unmanage(w, m, d, leaf)
						p.applyPlacements(w.Arrange(m, d))
						p.Conn.BatchEWMHUpdate(w)
						p.report("window_unmanage", []uint32{id}, "")
						return
					}
				}
			}
		}
	}
}

// onConfigureRequest honors an unmanaged/floating window's own resize
// request directly (ICCCM requires acknowledging it one way or
// another); a tiled window's request is acknowledged with its current
// tiled rectangle instead of the requested one, since the tree — not
// the client — owns tiled geometry.
func (p *Pump) onConfigureRequest(X *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
	win := ev.Window
	p.Commands <- func(w *wm.World) {
		leaf := findLeaf(w, win)
		if leaf == nil || leaf.Client == nil || leaf.Client.State == bsp.StateFloating {
			mask := uint16(0)
			var values []uint32
			if ev.ValueMask&xproto.ConfigWindowX != 0 {
				mask |= xproto.ConfigWindowX
				values = append(values, uint32(ev.X))
			}
			if ev.ValueMask&xproto.ConfigWindowY != 0 {
				mask |= xproto.ConfigWindowY
				values = append(values, uint32(ev.Y))
			}
			if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
				mask |= xproto.ConfigWindowWidth
				values = append(values, uint32(ev.Width))
			}
			if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
				mask |= xproto.ConfigWindowHeight
				values = append(values, uint32(ev.Height))
			}
			xproto.ConfigureWindow(p.Conn.X.Conn(), win, mask, values)
			return
		}
		p.Mover.MoveResize(leaf.Client.Window, leaf.Client.TiledRect)
	}
}

// onPropertyNotify refreshes size hints (class and urgency are not
// re-read) when a managed client updates its own WM_NORMAL_HINTS or
// WM_HINTS, the
// event-driven counterpart of the teacher's StateUpdate (which watched
// EWMH properties on the root; this watches ICCCM properties on client
// windows instead, since this process is the one setting the EWMH
// properties now rather than reading them).
func (p *Pump) onPropertyNotify(X *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	win := ev.Window
	atomName, err := xproto.GetAtomName(p.Conn.X.Conn(), ev.Atom).Reply()
	if err != nil {
		return
	}
	name := string(atomName.Name)
	if name != "WM_NORMAL_HINTS" && name != "WM_HINTS" {
		return
	}
	hints := p.Conn.ReadSizeHints(win)
	p.Commands <- func(w *wm.World) {
		leaf := findLeaf(w, win)
		if leaf == nil || leaf.Client == nil {
			return
		}
		leaf.Client.Hints = hints
		if m := monitorOf(w, leaf); m != nil {
			p.applyPlacements(w.Arrange(m, m.Desk))
		}
	}
}

// onEnterNotify implements focus_follows_pointer: entering a managed
// window's frame focuses it, only when the config flag is set (the
// same gate the teacher's input/mousebinding.go applies before acting
// on a hover).
func (p *Pump) onEnterNotify(X *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
	win := ev.Event
	p.Commands <- func(w *wm.World) {
		if !w.Config.FocusFollowsPointer {
			return
		}
		leaf := findLeaf(w, win)
		if leaf == nil {
			return
		}
		focusLeaf(p, w, leaf)
	}
}

// onFocusIn keeps World's notion of the focused leaf in sync when focus
// changes through a path other than this WM's own FocusLeaf call (e.g.
// a client calling _NET_ACTIVE_WINDOW itself).
func (p *Pump) onFocusIn(X *xgbutil.XUtil, ev xevent.FocusInEvent) {
	win := ev.Event
	p.Commands <- func(w *wm.World) {
		leaf := findLeaf(w, win)
		if leaf == nil {
			return
		}
		if m := monitorOf(w, leaf); m != nil && m.Desk != nil {
			m.Desk.Focus = leaf
		}
	}
}

// onButtonPress focuses the pressed managed window and begins a
// pointer-driven move grab, translating the press into a pointer.Drag
// the way track_pointer's caller does in pointer.c. Every press starts
// a move; resize grabs and the pointer_modifier/click_to_focus settings
// are not consulted here.
func (p *Pump) onButtonPress(X *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	win := ev.Event
	pos := geom.Point{X: int32(ev.RootX), Y: int32(ev.RootY)}
	p.Commands <- func(w *wm.World) {
		leaf := findLeaf(w, win)
		if leaf == nil || leaf.Client == nil {
			return
		}
		focusLeaf(p, w, leaf)

		action := pointer.ActionMove
		handle := pointer.GetHandle(leaf.Client.FloatingRect, pos, action)
		p.drag = pointer.Begin(action, handle, pos, 0, int64(w.Config.PointerMotionInterval),
			w.Config.EdgeSnapEnabled, w.Config.EdgeSnapThreshold)
	}
}

// onMotionNotify feeds every motion event into the in-flight Drag,
// applying the resulting delta to the grabbed client's floating rect
// and showing the snap preview when a zone is tracked.
func (p *Pump) onMotionNotify(X *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	win := ev.Event
	pos := geom.Point{X: int32(ev.RootX), Y: int32(ev.RootY)}
	timeMS := int64(ev.Time)
	p.Commands <- func(w *wm.World) {
		if p.drag == nil {
			return
		}
		leaf := findLeaf(w, win)
		if leaf == nil || leaf.Client == nil {
			return
		}
		m := monitorOf(w, leaf)
		if m == nil {
			return
		}
		res := p.drag.Motion(pos, timeMS, true, m.ID, m.Rect)
		if !res.Applied {
			return
		}
		leaf.Client.FloatingRect = pointer.MoveClient(leaf.Client.FloatingRect, res.DX, res.DY)
		p.Mover.MoveResize(leaf.Client.Window, leaf.Client.FloatingRect)
		if res.Zone != pointer.SnapNone {
			if target, _, ok := pointer.SnapTarget(m.Rect, m.Padding.Top, m.Padding.Right, m.Padding.Bottom, m.Padding.Left, res.Zone); ok {
				p.Preview.Show(target)
			}
		} else {
			p.Preview.Hide()
		}
	}
}

// onButtonRelease ends the grab, snapping the client into the tracked
// zone's target rect if one was pending.
func (p *Pump) onButtonRelease(X *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	win := ev.Event
	p.Commands <- func(w *wm.World) {
		if p.drag == nil {
			return
		}
		zone := p.drag.Release()
		p.drag = nil
		p.Preview.Hide()
		if zone == pointer.SnapNone {
			return
		}
		leaf := findLeaf(w, win)
		if leaf == nil || leaf.Client == nil {
			return
		}
		m := monitorOf(w, leaf)
		if m == nil {
			return
		}
		if target, maximize, ok := pointer.SnapTarget(m.Rect, m.Padding.Top, m.Padding.Right, m.Padding.Bottom, m.Padding.Left, zone); ok {
			leaf.Client.FloatingRect = target
			if maximize {
				leaf.Client.State = bsp.StateFullscreen
			}
			p.Mover.MoveResize(leaf.Client.Window, target)
		}
	}
}

// onClientMessage handles the one EWMH client-to-WM request a
// compliant pager/taskbar actually sends unprompted: _NET_ACTIVE_WINDOW,
// asking the WM to focus a window on the caller's behalf.
func (p *Pump) onClientMessage(X *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
	win := ev.Window
	atomName, err := xproto.GetAtomName(p.Conn.X.Conn(), ev.Type).Reply()
	if err != nil || string(atomName.Name) != "_NET_ACTIVE_WINDOW" {
		return
	}
	p.Commands <- func(w *wm.World) {
		leaf := findLeaf(w, win)
		if leaf == nil {
			return
		}
		focusLeaf(p, w, leaf)
	}
}

func (p *Pump) applyPlacements(placements []bsp.Placement) {
	for _, pl := range placements {
		if pl.Node.Client == nil {
			continue
		}
		p.Mover.MoveResize(pl.Node.Client.Window, pl.Rect)
	}
}

func focusLeaf(p *Pump, w *wm.World, leaf *bsp.Node) {
	if leaf.Client == nil {
		return
	}
	m := monitorOf(w, leaf)
	if m == nil || m.Desk == nil {
		return
	}
	m.Desk.Focus = leaf
	w.Mon = m
	w.History.Add(m, m.Desk, leaf)
	w.Stack.Restack(leaf, true, p.Raiser)
	p.Conn.InputFocus(xproto.Window(leaf.Client.Window))
	p.Conn.SetActiveWindow(xproto.Window(leaf.Client.Window))
}

func findLeaf(w *wm.World, win xproto.Window) *bsp.Node {
	for m := w.MonHead; m != nil; m = m.Next {
		for d := m.DeskHead; d != nil; d = d.Next {
			for _, leaf := range bsp.CollectLeaves(d.Root) {
				if leaf.Client != nil && leaf.Client.Window == uint32(win) {
					return leaf
				}
			}
		}
	}
	return nil
}

func monitorOf(w *wm.World, leaf *bsp.Node) *monitor.Monitor {
	for m := w.MonHead; m != nil; m = m.Next {
		for d := m.DeskHead; d != nil; d = d.Next {
			for _, l := range bsp.CollectLeaves(d.Root) {
				if l == leaf {
					return m
				}
			}
		}
	}
	return nil
}
