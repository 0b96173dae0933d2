package bsp

import "github.com/rotkonetworks/bspwm1/common"

// RemoveOptions carries the configuration unlink_node/remove_node read.
type RemoveOptions struct {
	RemovalAdjustment bool
	Scheme            common.Scheme
}

// Unlink detaches n from the tree rooted at root, reshaping the
// sibling per removal_adjustment, and returns the (possibly new) root.
// It does not free n's own subtree's bookkeeping (stacking list
// removal, sticky-count decrement, preselection cancellation, grab
// state) — callers in the desktop package handle those, mirroring how
// unlink_node in tree.c is a pure structural primitive that
// remove_node wraps with side effects.
func Unlink(root, n *Node, opts RemoveOptions) *Node {
	if n == nil || root == nil {
		return root
	}
	if n == root {
		return nil
	}

	p := n.Parent
	b := Sibling(n)
	g := p.Parent

	if opts.RemovalAdjustment && !n.Vacant {
		reshapeSibling(b, p, g, n, opts.Scheme)
	}

	b.Parent = g
	if g == nil {
		root = b
	} else if g.FirstChild == p {
		g.FirstChild = b
	} else {
		g.SecondChild = b
	}

	propagateUp(g)
	if g == nil {
		propagateUp(b)
	}

	return root
}

// reshapeSibling implements removal_adjustment: the surviving sibling
// b is reshaped according to the active automatic scheme so future
// insertions continue to flow the way they would have had n never
// existed.
func reshapeSibling(b, p, g *Node, n *Node, scheme common.Scheme) {
	if b == nil || b.IsLeaf() {
		return
	}

	switch scheme {
	case common.SchemeSpiral:
		if IsFirstChild(n) {
			Rotate(b, 270)
		} else {
			Rotate(b, 90)
		}
	case common.SchemeLongestSide:
		if p.Rect.Width >= p.Rect.Height {
			b.SplitType = SplitVertical
		} else {
			b.SplitType = SplitHorizontal
		}
	case common.SchemeAlternate:
		if g != nil {
			b.SplitType = flipAxis(g.SplitType)
		}
	}
}

// CancelPreselInSubtree clears every preselection under n, returning
// the feedback-window ids that were cleared so the caller can destroy
// the corresponding server-side indicators.
func CancelPreselInSubtree(n *Node) []uint32 {
	var feedbacks []uint32
	cancelPreselDepth(n, &feedbacks, 0)
	return feedbacks
}

func cancelPreselDepth(n *Node, feedbacks *[]uint32, depth int) {
	if n == nil || depth > MaxDepth {
		return
	}
	if n.Presel != nil {
		if n.Presel.Feedback != 0 {
			*feedbacks = append(*feedbacks, n.Presel.Feedback)
		}
		n.Presel = nil
	}
	cancelPreselDepth(n.FirstChild, feedbacks, depth+1)
	cancelPreselDepth(n.SecondChild, feedbacks, depth+1)
}
