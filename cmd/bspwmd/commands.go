package main

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/monitor"
	"github.com/rotkonetworks/bspwm1/wm"
	"github.com/rotkonetworks/bspwm1/xserver"
)

func toXWindow(id uint32) xproto.Window { return xproto.Window(id) }

// daemon owns the single command channel World's mutations funnel
// through, plus the connection command handlers need for X11 side
// effects (closing a client, re-broadcasting EWMH state) that wm itself
// has no way to perform. quit is closed by the "quit" command to signal
// the top-level drain loop to stop.
type daemon struct {
	commands chan func(*wm.World)
	conn     *xserver.Conn
	quit     chan struct{}
}

// handle adapts ipc.Handler's synchronous request/response shape onto
// the command channel: it posts a closure that runs execute on World's
// single goroutine and waits for the result, so a command handler never
// races the event pump or the RandR reconciler over World's fields.
func (d *daemon) handle(tokens []string) (string, error) {
	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	d.commands <- func(w *wm.World) {
		out, err := d.execute(w, tokens)
		done <- result{out, err}
	}
	r := <-done
	return r.out, r.err
}

// execute interprets one command. The retrieval pack did not carry
// bspc's message grammar (messages.c/messages.h never made it into
// original_source/), only bspc.c's transport half — so this is a
// deliberately modest, documented subset covering the operations this
// module's packages already implement and test, not a transcription of
// the original catalog.
func (d *daemon) execute(w *wm.World, tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", fmt.Errorf("empty command")
	}

	switch tokens[0] {
	case "quit":
		close(d.quit)
		return "", nil

	case "window":
		return d.execWindow(w, tokens[1:])

	case "desktop":
		return d.execDesktop(w, tokens[1:])

	case "monitor":
		return d.execMonitor(w, tokens[1:])

	case "config":
		return d.execConfig(w, tokens[1:])
	}

	return "", fmt.Errorf("unknown command: %s", tokens[0])
}

func (d *daemon) focused(w *wm.World) (*monitor.Monitor, *desktop.Desktop, *bsp.Node) {
	m := w.Mon
	if m == nil || m.Desk == nil {
		return m, nil, nil
	}
	return m, m.Desk, m.Desk.Focus
}

func (d *daemon) execWindow(w *wm.World, args []string) (string, error) {
	m, dk, leaf := d.focused(w)
	if leaf == nil || leaf.Client == nil {
		return "", fmt.Errorf("no focused window")
	}

	if len(args) == 0 {
		return "", fmt.Errorf("window: missing action")
	}

	switch args[0] {
	case "-c", "--close":
		return "", d.conn.CloseClient(toXWindow(leaf.Client.Window), leaf.Client.AcceptsDelete)

	case "-f", "--focus":
		dir := "next"
		if len(args) > 1 {
			dir = args[1]
		}
		var next *bsp.Node
		if dir == "prev" {
			next = bsp.PrevTiledLeaf(leaf, dk.Root)
		} else {
			next = bsp.NextTiledLeaf(leaf, dk.Root)
		}
		if next == nil || next.Client == nil {
			return "", fmt.Errorf("no window in that direction")
		}
		dk.Focus = next
		w.History.Add(m, dk, next)
		w.Stack.Restack(next, true, xserver.Raiser{C: d.conn})
		d.conn.InputFocus(toXWindow(next.Client.Window))
		d.conn.SetActiveWindow(toXWindow(next.Client.Window))
		return "", nil

	case "-t", "--state":
		if len(args) < 2 {
			return "", fmt.Errorf("window -t: missing state")
		}
		var ns bsp.State
		switch args[1] {
		case "tiled":
			ns = bsp.StateTiled
		case "floating":
			ns = bsp.StateFloating
		case "fullscreen":
			ns = bsp.StateFullscreen
		case "pseudo_tiled":
			ns = bsp.StatePseudoTiled
		default:
			return "", fmt.Errorf("window -t: unknown state %q", args[1])
		}
		bsp.SetState(leaf, ns, bsp.CollectLeaves(dk.Root))
		d.applyArrange(w, m, dk)
		return "", nil
	}

	return "", fmt.Errorf("window: unknown action %q", args[0])
}

func (d *daemon) execDesktop(w *wm.World, args []string) (string, error) {
	m, dk, _ := d.focused(w)
	if m == nil {
		return "", fmt.Errorf("no focused monitor")
	}

	if len(args) == 0 {
		if dk != nil {
			return dk.Name + "\n", nil
		}
		return "", nil
	}

	switch args[0] {
	case "-f", "--focus":
		if len(args) < 2 {
			return "", fmt.Errorf("desktop -f: missing name")
		}
		target := findDesktopByName(m, args[1])
		if target == nil {
			return "", fmt.Errorf("desktop %q not found", args[1])
		}
		if !wm.ActivateDesktop(w, m, target) {
			return "", fmt.Errorf("desktop %q already active", args[1])
		}
		d.applyArrange(w, m, target)
		return "", nil

	case "-l", "--layout":
		if len(args) < 2 || dk == nil {
			return "", fmt.Errorf("desktop -l: missing layout")
		}
		l := desktop.LayoutTiled
		if args[1] == "monocle" {
			l = desktop.LayoutMonocle
		}
		wm.SetLayout(m, dk, l, true, w.Config.SingleMonocle, func(mm *monitor.Monitor, dd *desktop.Desktop) {
			d.applyArrange(w, mm, dd)
		})
		return "", nil
	}

	return "", fmt.Errorf("desktop: unknown action %q", args[0])
}

func (d *daemon) execMonitor(w *wm.World, args []string) (string, error) {
	if len(args) == 0 {
		if w.Mon != nil {
			return w.Mon.Name + "\n", nil
		}
		return "", nil
	}

	switch args[0] {
	case "-f", "--focus":
		if len(args) < 2 {
			return "", fmt.Errorf("monitor -f: missing name")
		}
		for mm := w.MonHead; mm != nil; mm = mm.Next {
			if mm.Name == args[1] {
				w.Mon = mm
				return "", nil
			}
		}
		return "", fmt.Errorf("monitor %q not found", args[1])
	}

	return "", fmt.Errorf("monitor: unknown action %q", args[0])
}

func (d *daemon) execConfig(w *wm.World, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("config: missing key")
	}
	key := args[0]

	if len(args) == 1 {
		switch key {
		case "window_gap":
			return fmt.Sprintf("%d\n", w.Config.WindowGap), nil
		case "split_ratio":
			return fmt.Sprintf("%g\n", w.Config.SplitRatio), nil
		case "border_width":
			return fmt.Sprintf("%d\n", w.Config.BorderWidth), nil
		case "focus_follows_pointer":
			return fmt.Sprintf("%v\n", w.Config.FocusFollowsPointer), nil
		}
		return "", fmt.Errorf("config: unknown key %q", key)
	}

	value := args[1]
	switch key {
	case "window_gap":
		var v int32
		if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
			return "", fmt.Errorf("config window_gap: %w", err)
		}
		w.Config.WindowGap = v
	case "split_ratio":
		var v float64
		if _, err := fmt.Sscanf(value, "%g", &v); err != nil {
			return "", fmt.Errorf("config split_ratio: %w", err)
		}
		w.Config.SplitRatio = v
	case "border_width":
		var v uint16
		if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
			return "", fmt.Errorf("config border_width: %w", err)
		}
		w.Config.BorderWidth = v
	case "focus_follows_pointer":
		w.Config.FocusFollowsPointer = value == "true" || value == "on"
	default:
		return "", fmt.Errorf("config: unknown key %q", key)
	}

	if m, dk, _ := d.focused(w); dk != nil {
		d.applyArrange(w, m, dk)
	}
	return "", nil
}

func (d *daemon) applyArrange(w *wm.World, m *monitor.Monitor, dk *desktop.Desktop) {
	if m == nil || dk == nil {
		return
	}
	for _, pl := range w.Arrange(m, dk) {
		if pl.Node.Client == nil {
			continue
		}
		(xserver.Mover{C: d.conn}).MoveResize(pl.Node.Client.Window, pl.Rect)
	}
	d.conn.BatchEWMHUpdate(w)
}

func findDesktopByName(m *monitor.Monitor, name string) *desktop.Desktop {
	for dd := m.DeskHead; dd != nil; dd = dd.Next {
		if dd.Name == name {
			return dd
		}
	}
	return nil
}
