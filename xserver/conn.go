// Package xserver is the X11 transport: connection bootstrap, RandR
// output reconciliation, ICCCM/EWMH property translation, and the
// event pump that drives wm.World from the display server's substructure
// events. Every outward call funnels through a single command channel
// so World itself never needs locking.
package xserver

import (
	"fmt"
	"time"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/sirupsen/logrus"
)

// Conn wraps the display connection this process manages as a window
// manager. Unlike the teacher's Connected(), which verifies an
// externally running WM's EWMH compliance before riding on top of it,
// this dials the display and then claims the window-manager role
// itself by selecting SubstructureRedirect on the root window — see
// Acquire.
type Conn struct {
	X    *xgbutil.XUtil
	Root xproto.Window

	WMCheckWin xproto.Window
}

// Connect dials the display with a bounded retry loop, mirroring the
// teacher's Connected() backoff shape (fixed 1s delay, fixed retry
// count) rather than its EWMH-compliance check, since this process is
// the window manager, not a client riding on top of one.
func Connect(retries int, delay time.Duration) (*Conn, error) {
	if retries <= 0 {
		retries = 10
	}
	if delay <= 0 {
		delay = time.Second
	}

	var lastErr error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			logrus.WithFields(logrus.Fields{"attempt": i, "max": retries}).Warn("retrying X connection")
			time.Sleep(delay)
		}
		X, err := xgbutil.NewConn()
		if err != nil {
			lastErr = err
			logrus.WithError(err).Error("connection to X server failed")
			continue
		}
		if err := randr.Init(X.Conn()); err != nil {
			lastErr = err
			logrus.WithError(err).Error("RandR extension init failed")
			continue
		}
		return &Conn{X: X, Root: X.RootWin()}, nil
	}
	return nil, fmt.Errorf("xserver: connect: %w", lastErr)
}

// Acquire claims the window-manager role: selecting
// SubstructureRedirect|SubstructureNotify on the root window fails with
// BadAccess if another window manager already holds it, exactly as
// real WMs detect a running peer.
func (c *Conn) Acquire() error {
	cookie := xproto.ChangeWindowAttributesChecked(c.X.Conn(), c.Root, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange)})
	if err := cookie.Check(); err != nil {
		return fmt.Errorf("xserver: another window manager is already running: %w", err)
	}
	return nil
}

// PublishIdentity creates the check window and _NET_SUPPORTING_WM_CHECK/
// _NET_WM_NAME/_NET_SUPPORTED pairing EWMH requires of a compliant WM —
// the inverse of the teacher's ewmh.GetEwmhWM read, since this process
// is the one being checked now, not the one doing the checking.
func (c *Conn) PublishIdentity(name string, supported []string) error {
	win, err := xproto.NewWindowId(c.X.Conn())
	if err != nil {
		return fmt.Errorf("xserver: allocate check window: %w", err)
	}
	if err := xproto.CreateWindowChecked(c.X.Conn(), xproto.WindowClassCopyFromParent, win, c.Root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOutput, 0, 0, nil).Check(); err != nil {
		return fmt.Errorf("xserver: create check window: %w", err)
	}
	c.WMCheckWin = win

	if err := ewmh.SupportingWmCheckSet(c.X, c.Root, win); err != nil {
		return fmt.Errorf("xserver: set supporting-wm-check on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.X, win, win); err != nil {
		return fmt.Errorf("xserver: set supporting-wm-check on check window: %w", err)
	}
	if err := ewmh.WmNameSet(c.X, win, name); err != nil {
		return fmt.Errorf("xserver: set wm name: %w", err)
	}
	if err := ewmh.SupportedSet(c.X, c.Root, supported); err != nil {
		return fmt.Errorf("xserver: set supported atoms: %w", err)
	}
	return nil
}

// Close tears down the connection and the identity check window.
func (c *Conn) Close() {
	if c.WMCheckWin != 0 {
		xproto.DestroyWindow(c.X.Conn(), c.WMCheckWin)
	}
	c.X.Conn().Close()
}

// QueryExistingWindows walks the root's current window tree so a
// restarting daemon re-synthesizes Client/Node state for every window
// already mapped, exactly as a fresh CreateNotify would — the "no
// persisted state, restart re-scans" model from the external
// interfaces. Override-redirect windows are skipped (they manage
// themselves: menus, tooltips, drag icons).
func (c *Conn) QueryExistingWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.X.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("xserver: query tree: %w", err)
	}
	var out []xproto.Window
	for _, w := range tree.Children {
		attr, err := xproto.GetWindowAttributes(c.X.Conn(), w).Reply()
		if err != nil || attr.OverrideRedirect {
			continue
		}
		if attr.MapState != xproto.MapStateViewable {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
