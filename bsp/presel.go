package bsp

// MakePresel attaches a fresh preselection to n if it has none, and
// returns n's preselection; an existing one is kept unchanged.
func MakePresel(n *Node) *Presel {
	if n.Presel == nil {
		n.Presel = &Presel{Dir: East, Ratio: 0.5}
	}
	return n.Presel
}

// SetPreselDir updates the direction of n's preselection, creating one
// if absent.
func SetPreselDir(n *Node, dir Direction) {
	p := MakePresel(n)
	p.Dir = dir
}

// SetPreselRatio updates the ratio of n's preselection, clamped to
// [0,1].
func SetPreselRatio(n *Node, ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	p := MakePresel(n)
	p.Ratio = ratio
}

// CancelPresel clears n's own preselection (not its subtree's), returning
// the feedback-window id that was cleared, or 0 if none was set.
func CancelPresel(n *Node) uint32 {
	if n.Presel == nil {
		return 0
	}
	fb := n.Presel.Feedback
	n.Presel = nil
	return fb
}
