package bsp

// Swap exchanges n1 and n2's positions in their (possibly different)
// trees by rewiring both parents to point at the other's former child.
// It refuses (returning ok=false, no mutation, unchanged roots) when
// either node is nil, when n1 == n2, or when one node is a descendant
// of the other (which would create a cycle). It does not look at any
// desktop's focus: a swap that moves a focused node into the other
// tree is carried out, and no focus pointer is updated.
//
// Swap returns the (possibly changed) roots of both trees: when n1 or
// n2 was its tree's root, that tree's root becomes the other node.
// Callers must use these returned roots rather than their prior root
// pointers, mirroring Transfer's contract.
func Swap(root1 *Node, n1 *Node, root2 *Node, n2 *Node) (newRoot1, newRoot2 *Node, ok bool) {
	if n1 == nil || n2 == nil || n1 == n2 {
		return root1, root2, false
	}
	if IsDescendant(n1, n2) || IsDescendant(n2, n1) {
		return root1, root2, false
	}

	p1, p2 := n1.Parent, n2.Parent

	// A swap of two roots (both nil parents) just exchanges which tree
	// each node belongs to; any other node can only remain reachable
	// from its desktop's root if the swap doesn't detach an ancestor
	// chain, which IsDescendant above already rejects.
	newRoot1, newRoot2 = root1, root2
	if p1 == nil {
		newRoot1 = n2
	}
	if p2 == nil {
		newRoot2 = n1
	}

	if p1 == p2 && p1 != nil {
		// Swapping two children of the same parent: no-op structurally
		// useful only when they're literally the two children already.
		if p1.FirstChild == n1 && p1.SecondChild == n2 {
			p1.FirstChild, p1.SecondChild = n2, n1
			n1.Parent, n2.Parent = p1, p1
			propagateUp(p1)
			return newRoot1, newRoot2, true
		}
	}

	if p1 != nil {
		if p1.FirstChild == n1 {
			p1.FirstChild = n2
		} else {
			p1.SecondChild = n2
		}
	}
	if p2 != nil {
		if p2.FirstChild == n2 {
			p2.FirstChild = n1
		} else {
			p2.SecondChild = n1
		}
	}
	n1.Parent, n2.Parent = p2, p1

	if p1 != nil {
		propagateUp(p1)
	}
	if p2 != nil {
		propagateUp(p2)
	}

	return newRoot1, newRoot2, true
}

// Transfer moves ns (with its whole subtree) to become the sibling of
// nd, inserting a fresh internal parent, and returns the new root of
// ns's former tree (nil if ns was that tree's root) and the (possibly
// new) root of nd's tree.
func Transfer(rootSrc *Node, ns *Node, rootDst *Node, nd *Node, opts InsertOptions) (newRootSrc, newRootDst *Node) {
	if ns == nil || nd == nil || ns == nd {
		return rootSrc, rootDst
	}

	newRootSrc = Unlink(rootSrc, ns, RemoveOptions{RemovalAdjustment: opts.Scheme != "", Scheme: opts.Scheme})
	ns.Parent = nil

	newRootDst = Insert(rootDst, ns, nd, opts)
	return newRootSrc, newRootDst
}
