package xserver

import (
	"github.com/jezek/xgb/xproto"

	"github.com/rotkonetworks/bspwm1/geom"
)

// Mover adapts Conn to animate.Mover: one ConfigureWindow call moving
// and resizing a window to the animation's current interpolated rect.
type Mover struct{ C *Conn }

func (m Mover) MoveResize(window uint32, r geom.Rect) {
	m.C.configure(xproto.Window(window), r, nil)
}

// Raiser adapts Conn to stack.Raiser: ConfigureWindow with a Sibling +
// StackMode, the restack primitive every Compare-driven reorder in
// stack.List.Restack ultimately calls.
type Raiser struct{ C *Conn }

func (r Raiser) Above(id, sibling uint32) { r.C.restack(xproto.Window(id), xproto.Window(sibling), xproto.StackModeAbove) }
func (r Raiser) Below(id, sibling uint32) { r.C.restack(xproto.Window(id), xproto.Window(sibling), xproto.StackModeBelow) }

func (c *Conn) configure(w xproto.Window, r geom.Rect, borderWidth *uint16) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height)}
	if borderWidth != nil {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(*borderWidth))
	}
	xproto.ConfigureWindow(c.X.Conn(), w, mask, values)
}

func (c *Conn) restack(w, sibling xproto.Window, mode byte) {
	mask := uint16(xproto.ConfigWindowStackMode)
	values := []uint32{uint32(mode)}
	if sibling != 0 {
		mask |= xproto.ConfigWindowSibling
		values = []uint32{uint32(sibling), uint32(mode)}
	}
	xproto.ConfigureWindow(c.X.Conn(), w, mask, values)
}

// Preview adapts Conn to pointer.Preview: an override-redirect window
// shown/hidden/destroyed to draw the snap-target outline during a
// pointer-driven move, the Go equivalent of the teacher's
// show_snap_preview/hide_snap_preview/destroy_snap_preview.
type Preview struct {
	C   *Conn
	win xproto.Window
}

func NewPreview(c *Conn) *Preview { return &Preview{C: c} }

func (p *Preview) ensure() error {
	if p.win != 0 {
		return nil
	}
	win, err := xproto.NewWindowId(p.C.X.Conn())
	if err != nil {
		return err
	}
	if err := xproto.CreateWindowChecked(p.C.X.Conn(), xproto.WindowClassCopyFromParent, win, p.C.Root,
		0, 0, 1, 1, 2, xproto.WindowClassInputOutput, 0,
		xproto.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return err
	}
	p.win = win
	return nil
}

func (p *Preview) Show(r geom.Rect) {
	if err := p.ensure(); err != nil {
		return
	}
	p.C.configure(p.win, r, nil)
	xproto.MapWindow(p.C.X.Conn(), p.win)
}

func (p *Preview) Hide() {
	if p.win != 0 {
		xproto.UnmapWindow(p.C.X.Conn(), p.win)
	}
}

func (p *Preview) Destroy() {
	if p.win != 0 {
		xproto.DestroyWindow(p.C.X.Conn(), p.win)
		p.win = 0
	}
}
