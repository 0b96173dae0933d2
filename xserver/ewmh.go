package xserver

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/sirupsen/logrus"

	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/monitor"
	"github.com/rotkonetworks/bspwm1/wm"
)

// BatchEWMHUpdate writes the EWMH root properties for desktop
// count/names/current and the client list (stacking order). The active
// window and per-client _NET_WM_DESKTOP are not written here; they go
// through SetActiveWindow and SetWmDesktop. One
// call per call site in the original's desktop.c/monitor.c becomes one
// error-logged write here — write failures are non-fatal (a compositor
// reading a stale property for one frame is not worth crashing the WM
// over), matching the teacher's log.Error-and-continue pattern.
func (c *Conn) BatchEWMHUpdate(w *wm.World) {
	var names []string
	var count uint32
	for m := w.MonHead; m != nil; m = m.Next {
		for d := m.DeskHead; d != nil; d = d.Next {
			names = append(names, d.Name)
			count++
		}
	}
	if err := ewmh.NumberOfDesktopsSet(c.X, count); err != nil {
		logrus.WithError(err).Warn("failed to set _NET_NUMBER_OF_DESKTOPS")
	}
	if err := ewmh.DesktopNamesSet(c.X, names); err != nil {
		logrus.WithError(err).Warn("failed to set _NET_DESKTOP_NAMES")
	}

	if w.Mon != nil && w.Mon.Desk != nil {
		if idx := desktopIndex(w, w.Mon.Desk); idx >= 0 {
			if err := ewmh.CurrentDesktopSet(c.X, uint32(idx)); err != nil {
				logrus.WithError(err).Warn("failed to set _NET_CURRENT_DESKTOP")
			}
		}
	}

	var stacking []xproto.Window
	for e := w.Stack.Head; e != nil; e = e.Next {
		if e.Node.Client != nil {
			stacking = append(stacking, xproto.Window(e.Node.Client.Window))
		}
	}
	if err := ewmh.ClientListStackingSet(c.X, stacking); err != nil {
		logrus.WithError(err).Warn("failed to set _NET_CLIENT_LIST_STACKING")
	}
}

func desktopIndex(w *wm.World, target *desktop.Desktop) int {
	idx := 0
	for m := w.MonHead; m != nil; m = m.Next {
		for d := m.DeskHead; d != nil; d = d.Next {
			if d == target {
				return idx
			}
			idx++
		}
	}
	return -1
}

// SetActiveWindow publishes _NET_ACTIVE_WINDOW, called once per
// successful focus change.
func (c *Conn) SetActiveWindow(win xproto.Window) {
	if err := ewmh.ActiveWindowSet(c.X, win); err != nil {
		logrus.WithError(err).Warn("failed to set _NET_ACTIVE_WINDOW")
	}
}

// SetWmDesktop publishes a client's owning desktop index via
// _NET_WM_DESKTOP, called when a window is managed.
func (c *Conn) SetWmDesktop(win xproto.Window, deskIndex uint32) {
	if err := ewmh.WmDesktopSet(c.X, win, deskIndex); err != nil {
		logrus.WithError(err).Warn("failed to set _NET_WM_DESKTOP")
	}
}

// InputFocus sets the X input focus to win, the non-EWMH half of a
// focus change (SetActiveWindow covers the EWMH-visible half).
func (c *Conn) InputFocus(win xproto.Window) {
	xproto.SetInputFocus(c.X.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

// RefreshMonitorRect logs m's new rectangle at Debug after AdaptGeometry
// or a RandR reconfiguration, used by the reconciliation loop in
// randr.go; it sends nothing to the X server.
func (c *Conn) RefreshMonitorRect(m *monitor.Monitor) {
	logrus.WithFields(logrus.Fields{"monitor": m.Name, "rect": m.Rect}).Debug("monitor geometry updated")
}
