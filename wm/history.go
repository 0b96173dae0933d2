package wm

import (
	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/monitor"
)

// maxHistoryLen bounds the ring so a long session doesn't grow this
// without limit; old entries are simply dropped, oldest first.
const maxHistoryLen = 512

// HistoryEntry records one point the focus passed through: which
// monitor and desktop were active, and which node (possibly nil, for a
// desktop with no clients) had focus.
type HistoryEntry struct {
	Mon  *monitor.Monitor
	Desk *desktop.Desktop
	Node *bsp.Node
}

// History is the append-only (bounded) log driving history_last_desktop
// and friends: desktop.c's activate_desktop falls back to it when no
// desktop is explicitly given, and transfer/remove call its Remove to
// purge entries about to become dangling. desktop.c calls history_add/
// history_last_desktop/history_remove without this module shipping in
// the retrieval pack, so its shape here is inferred from those call
// sites rather than transcribed.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty history log.
func NewHistory() *History {
	return &History{}
}

// Add records a new most-recent entry, evicting the oldest once the
// log exceeds maxHistoryLen.
func (h *History) Add(m *monitor.Monitor, d *desktop.Desktop, n *bsp.Node) {
	h.entries = append(h.entries, HistoryEntry{Mon: m, Desk: d, Node: n})
	if len(h.entries) > maxHistoryLen {
		h.entries = h.entries[len(h.entries)-maxHistoryLen:]
	}
}

// Remove drops every entry referencing d (and, if n is non-nil,
// specifically referencing n within d) — called before a desktop or
// node is destroyed or relocated so stale pointers never surface from
// LastDesktop/LastNode.
func (h *History) Remove(d *desktop.Desktop, n *bsp.Node) {
	if d == nil {
		return
	}
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.Desk == d && (n == nil || e.Node == n) {
			continue
		}
		kept = append(kept, e)
	}
	h.entries = kept
}

// LastDesktop returns the most recently active desktop on m other than
// exclude, walking backward through the log.
func (h *History) LastDesktop(m *monitor.Monitor, exclude *desktop.Desktop) *desktop.Desktop {
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Mon == m && e.Desk != nil && e.Desk != exclude {
			return e.Desk
		}
	}
	return nil
}

// LastNode returns the most recently focused node within d other than
// exclude.
func (h *History) LastNode(d *desktop.Desktop, exclude *bsp.Node) *bsp.Node {
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if e.Desk == d && e.Node != nil && e.Node != exclude {
			return e.Node
		}
	}
	return nil
}
