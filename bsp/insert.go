package bsp

import "github.com/rotkonetworks/bspwm1/common"

// InsertOptions carries the configuration insert_node reads.
type InsertOptions struct {
	Scheme          common.Scheme
	InitialPolarity common.Polarity
	DefaultRatio    float64

	TileLimitEnabled   bool
	MaxTilesPerDesktop int
	TiledCount         int // current count of tiled clients on the desktop
	Exempt             bool // true if rule exempts this client from the tile limit

	NextID func() uint32 // allocates a fresh internal-node id
}

// Insert implements insert_node(desktop, newLeaf, anchor): it either
// becomes the root of an empty desktop, replaces a bare receptacle
// in-place, or creates a new internal node splitting anchor and
// newLeaf. It returns the (possibly new) root of the tree.
func Insert(root *Node, newLeaf *Node, anchor *Node, opts InsertOptions) *Node {
	if opts.TileLimitEnabled && !opts.Exempt && newLeaf.Client != nil &&
		newLeaf.Client.State == StateTiled && opts.TiledCount >= opts.MaxTilesPerDesktop {
		newLeaf.Client.State = StateFloating
		newLeaf.Vacant = true
	}

	if root == nil {
		return newLeaf
	}

	if anchor == nil {
		anchor = FirstExtrema(root)
	}

	if anchor.IsReceptacle() && anchor.Presel == nil {
		replaceInPlace(anchor, newLeaf)
		refreshLeafFlags(newLeaf)
		return root
	}

	if anchor.Private {
		if pub := findPublicSibling(anchor); pub != nil {
			anchor = pub
		} else {
			forcePreselection(anchor)
		}
	}

	var dir Direction
	var ratio float64
	var firstIsAnchor bool

	if anchor.Presel != nil {
		dir = anchor.Presel.Dir
		ratio = anchor.Presel.Ratio
		// The anchor lands on the side opposite newLeaf.
		firstIsAnchor = dir == East || dir == South
		anchor.Presel = nil
	} else {
		dir, firstIsAnchor = automaticOrientation(anchor, opts.Scheme, opts.InitialPolarity)
		ratio = opts.DefaultRatio
	}

	splitType := SplitVertical
	if dir == North || dir == South {
		splitType = SplitHorizontal
	}

	c := &Node{ID: opts.NextID(), SplitType: splitType, Ratio: ratio}
	parent := anchor.Parent
	if firstIsAnchor {
		c.FirstChild, c.SecondChild = anchor, newLeaf
	} else {
		c.FirstChild, c.SecondChild = newLeaf, anchor
	}
	anchor.Parent = c
	newLeaf.Parent = c
	c.Parent = parent

	if parent == nil {
		root = c
	} else if parent.FirstChild == anchor {
		parent.FirstChild = c
	} else {
		parent.SecondChild = c
	}

	refreshLeafFlags(newLeaf)
	recomputeInternal(c)
	propagateUp(c)

	return root
}

func replaceInPlace(receptacle, newLeaf *Node) {
	newLeaf.Parent = receptacle.Parent
	if p := receptacle.Parent; p != nil {
		if p.FirstChild == receptacle {
			p.FirstChild = newLeaf
		} else {
			p.SecondChild = newLeaf
		}
	}
}

// findPublicSibling scans anchor's ancestors' subtrees for a leaf not
// marked Private, mirroring find_public's receptacle-conflict scan.
func findPublicSibling(anchor *Node) *Node {
	depth := 0
	for cur := anchor.Parent; cur != nil && depth < MaxDepth; cur, depth = cur.Parent, depth+1 {
		for _, l := range CollectLeaves(cur) {
			if l != anchor && !l.Private {
				return l
			}
		}
	}
	return nil
}

// forcePreselection sets a preselection on anchor when no public leaf
// is available to redirect to: east if wider than tall, south
// otherwise.
func forcePreselection(anchor *Node) {
	dir := East
	if anchor.Rect.Width <= anchor.Rect.Height {
		dir = South
	}
	anchor.Presel = &Presel{Dir: dir, Ratio: 0.5}
}

// automaticOrientation chooses a split direction and whether anchor
// lands on the first-child side, implementing the three automatic
// schemes plus initial_polarity fallback.
func automaticOrientation(anchor *Node, scheme common.Scheme, polarity common.Polarity) (dir Direction, firstIsAnchor bool) {
	firstIsAnchor = polarity != common.PolarityFirstChild

	switch scheme {
	case common.SchemeAlternate:
		ancestor := FindFirstAncestor(anchor, func(n *Node) bool { return !n.Vacant })
		if ancestor != nil && ancestor.SplitType == SplitVertical {
			return North, firstIsAnchor
		}
		return East, firstIsAnchor

	case common.SchemeSpiral:
		if IsSecondChild(anchor) {
			return South, firstIsAnchor
		}
		return East, firstIsAnchor

	default: // longest_side
		if anchor.Rect.Width >= anchor.Rect.Height {
			return East, firstIsAnchor
		}
		return South, firstIsAnchor
	}
}

// InsertReceptacle inserts a bare placeholder leaf the same way a
// client leaf would be inserted, so later window placement can target
// it via preselection.
func InsertReceptacle(root *Node, anchor *Node, opts InsertOptions) (*Node, *Node) {
	r := MakeReceptacle(opts.NextID())
	newRoot := Insert(root, r, anchor, opts)
	return newRoot, r
}
