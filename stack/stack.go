// Package stack maintains the global Z-order of every client window as
// a doubly linked list, independent of the tiling tree's parent/child
// shape. Tree position determines layout; stack position determines
// what's on top.
package stack

import "github.com/rotkonetworks/bspwm1/bsp"

const maxDepth = 1000

// Entry is one link in the stacking list.
type Entry struct {
	Node       *bsp.Node
	Prev, Next *Entry
}

// List is the process-wide stacking order, oldest-bottom to
// newest-top within each level.
type List struct {
	Head, Tail *Entry
}

// Raiser performs the X11 side effects of a restack: placing a
// window's frame immediately above or below another window's. Callers
// supply an implementation backed by a real display connection;
// nothing in this package talks to X directly.
type Raiser interface {
	Above(id, sibling uint32)
	Below(id, sibling uint32)
}

// Find locates the entry for n by linear scan, mirroring the C list's
// lack of an index. Callers outside this package use it to resolve the
// sibling entry InsertAfter/InsertBefore splice against.
func (l *List) Find(n *bsp.Node) *Entry {
	return l.find(n)
}

// find locates the entry for n by linear scan, mirroring the C list's
// lack of an index.
func (l *List) find(n *bsp.Node) *Entry {
	for s := l.Head; s != nil; s = s.Next {
		if s.Node == n {
			return s
		}
	}
	return nil
}

// InsertAfter splices n into the list immediately after a (nil a means
// "make n the sole entry"). Any existing entry for n is removed first.
func (l *List) InsertAfter(a *Entry, n *bsp.Node) {
	if n == nil {
		return
	}
	if a == nil {
		s := &Entry{Node: n}
		l.Head, l.Tail = s, s
		return
	}
	if a.Node == n {
		return
	}
	l.RemoveNode(n)
	s := &Entry{Node: n}
	b := a.Next
	if b != nil {
		b.Prev = s
	}
	s.Next = b
	s.Prev = a
	a.Next = s
	if l.Tail == a {
		l.Tail = s
	}
}

// InsertBefore splices n into the list immediately before a.
func (l *List) InsertBefore(a *Entry, n *bsp.Node) {
	if n == nil {
		return
	}
	if a == nil {
		s := &Entry{Node: n}
		l.Head, l.Tail = s, s
		return
	}
	if a.Node == n {
		return
	}
	l.RemoveNode(n)
	s := &Entry{Node: n}
	b := a.Prev
	if b != nil {
		b.Next = s
	}
	s.Prev = b
	s.Next = a
	a.Prev = s
	if l.Head == a {
		l.Head = s
	}
}

// Remove unlinks a specific entry.
func (l *List) Remove(s *Entry) {
	if s == nil {
		return
	}
	a, b := s.Prev, s.Next
	if a != nil {
		a.Next = b
	}
	if b != nil {
		b.Prev = a
	}
	if l.Head == s {
		l.Head = b
	}
	if l.Tail == s {
		l.Tail = a
	}
}

// RemoveNode removes every leaf of n's subtree from the stacking list,
// used both for a single client going away and a whole subtree being
// unlinked from the tree.
func (l *List) RemoveNode(n *bsp.Node) {
	if n == nil {
		return
	}
	for f := bsp.FirstExtrema(n); f != nil; f = bsp.NextLeaf(f, n) {
		if s := l.find(f); s != nil {
			l.Remove(s)
		}
	}
}

// Level returns a leaf's stacking level: layer contributes the major
// axis (3 levels apart), state the minor one within a layer. Tiled and
// pseudo-tiled share a level since neither occludes the other by state
// alone.
func Level(c *bsp.Client) int {
	if c == nil {
		return 0
	}
	stateRank := map[bsp.State]int{
		bsp.StateTiled:       0,
		bsp.StatePseudoTiled: 0,
		bsp.StateFloating:    1,
		bsp.StateFullscreen:  2,
	}
	return 3*int(c.Layer) + stateRank[c.State]
}

// Compare orders two clients by stacking level; nil sorts below
// everything.
func Compare(c1, c2 *bsp.Client) int {
	if c1 == nil && c2 == nil {
		return 0
	}
	if c1 == nil {
		return -1
	}
	if c2 == nil {
		return 1
	}
	return Level(c1) - Level(c2)
}

// LimitAbove finds, scanning from the bottom, the lowest entry whose
// level is strictly above n's (the top entry when there is none), one
// step lower if that entry is n itself — the insertion point used when
// n is gaining focus (focused clients go as high as their level allows).
func (l *List) LimitAbove(n *bsp.Node) *Entry {
	if n == nil || n.Client == nil {
		return nil
	}
	s := l.Head
	for s != nil && s.Node != nil && s.Node.Client != nil && Compare(n.Client, s.Node.Client) >= 0 {
		s = s.Next
	}
	if s == nil {
		s = l.Tail
	}
	if s != nil && s.Node == n {
		s = s.Prev
	}
	return s
}

// LimitBelow finds, scanning from the top, the highest entry whose
// level is strictly below n's (the bottom entry when there is none),
// one step higher if that entry is n itself — the insertion point used
// when n is not focused.
func (l *List) LimitBelow(n *bsp.Node) *Entry {
	if n == nil || n.Client == nil {
		return nil
	}
	s := l.Tail
	for s != nil && s.Node != nil && s.Node.Client != nil && Compare(n.Client, s.Node.Client) <= 0 {
		s = s.Prev
	}
	if s == nil {
		s = l.Head
	}
	if s != nil && s.Node == n {
		s = s.Next
	}
	return s
}

// AutoRaise controls whether floating clients participate in the
// focus-driven restack below, or keep whatever position they already
// hold in the list.
var AutoRaise = true

// Move records one restack step: window ID was placed directly above
// (Above true) or below window Sibling.
type Move struct {
	ID, Sibling uint32
	Above       bool
}

// Restack repositions every leaf of n relative to the rest of the
// list according to focused, issuing the corresponding X restack calls
// through r and returning the (id, reference-id, above) triples for
// callers that want to broadcast a status line per move.
func (l *List) Restack(n *bsp.Node, focused bool, r Raiser) []Move {
	if n == nil {
		return nil
	}
	var moves []Move
	for f := bsp.FirstExtrema(n); f != nil; f = bsp.NextLeaf(f, n) {
		if f.Client == nil || (f.Client.State == bsp.StateFloating && !AutoRaise) {
			continue
		}
		if l.Head == nil {
			l.InsertAfter(nil, f)
			continue
		}
		var s *Entry
		if focused {
			s = l.LimitAbove(f)
		} else {
			s = l.LimitBelow(f)
		}
		if s == nil || s.Node == nil || s.Node.Client == nil {
			continue
		}
		i := Compare(f.Client, s.Node.Client)
		if i < 0 || (i == 0 && !focused) {
			l.InsertBefore(s, f)
			if r != nil {
				r.Below(f.Client.Window, s.Node.Client.Window)
			}
			moves = append(moves, Move{ID: f.Client.Window, Sibling: s.Node.Client.Window, Above: false})
		} else {
			l.InsertAfter(s, f)
			if r != nil {
				r.Above(f.Client.Window, s.Node.Client.Window)
			}
			moves = append(moves, Move{ID: f.Client.Window, Sibling: s.Node.Client.Window, Above: true})
		}
	}
	return moves
}

// RestackPreselFeedbacks raises every feedback window in the tree
// rooted at root above the highest tiled client currently in the
// list — preselection feedback should always sit just above the tiled
// layer, never above a floating or fullscreen client.
func (l *List) RestackPreselFeedbacks(root *bsp.Node, r Raiser) {
	s := l.Tail
	for s != nil && s.Node != nil && s.Node.Client != nil && !bsp.IsTiled(s.Node) {
		s = s.Prev
	}
	if s == nil || s.Node == nil {
		return
	}
	restackPreselDepth(root, s.Node, 0, r)
}

func restackPreselDepth(r *bsp.Node, ref *bsp.Node, depth int, raiser Raiser) {
	if r == nil || ref == nil || depth > maxDepth {
		return
	}
	if r.Presel != nil && raiser != nil && r.Presel.Feedback != 0 && ref.Client != nil {
		raiser.Above(r.Presel.Feedback, ref.Client.Window)
	}
	restackPreselDepth(r.FirstChild, ref, depth+1, raiser)
	restackPreselDepth(r.SecondChild, ref, depth+1, raiser)
}
