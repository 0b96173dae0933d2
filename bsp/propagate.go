package bsp

// propagateUp recomputes Vacant, Hidden and the constraint fields from n
// up to the root, enforcing invariants 3-5. It must run after every
// structural change and before Project is allowed to run.
func propagateUp(n *Node) {
	depth := 0
	for cur := n; cur != nil && depth < MaxDepth; cur, depth = cur.Parent, depth+1 {
		if cur.IsLeaf() {
			continue
		}
		recomputeInternal(cur)
	}
}

func recomputeInternal(n *Node) {
	a, b := n.FirstChild, n.SecondChild
	n.Vacant = a.Vacant && b.Vacant
	n.Hidden = a.Hidden && b.Hidden

	if n.SplitType == SplitVertical {
		n.MinWidth = a.MinWidth + b.MinWidth
		n.MinHeight = max32(a.MinHeight, b.MinHeight)
	} else {
		n.MinHeight = a.MinHeight + b.MinHeight
		n.MinWidth = max32(a.MinWidth, b.MinWidth)
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// leafVacancy computes the vacancy of a leaf per invariant 3: a
// receptacle, or a non-tiled client, is vacant.
func leafVacancy(n *Node) bool {
	if !n.IsLeaf() {
		return n.Vacant
	}
	if n.Client == nil {
		return true
	}
	return n.Client.State != StateTiled && n.Client.State != StatePseudoTiled
}

// refreshLeafFlags recomputes a leaf's own Vacant flag from its client
// state, then propagates upward.
func refreshLeafFlags(n *Node) {
	if n.IsLeaf() {
		n.Vacant = leafVacancy(n)
	}
	propagateUp(n)
}
