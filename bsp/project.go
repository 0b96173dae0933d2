package bsp

import "github.com/rotkonetworks/bspwm1/geom"

// Layout is the desktop-level layout mode that Project honors.
type Layout int

const (
	LayoutTiled Layout = iota
	LayoutMonocle
)

// ProjectOptions carries every setting arrange() reads out of the
// desktop/monitor/global configuration in original_source/src/tree.c.
type ProjectOptions struct {
	Layout Layout

	WindowGap           int32
	GaplessMonocle      bool
	BorderlessMonocle   bool
	BorderlessSingleton bool
	CenterPseudoTiled   bool
	DefaultBorderWidth  uint16

	// OnlyWindow is true when the desktop has exactly one tiled window,
	// needed for the borderless_singleton rule.
	OnlyWindow bool
}

// Placement is one leaf's computed target rectangle plus the border
// width that rectangle was computed against.
type Placement struct {
	Node        *Node
	Rect        geom.Rect
	BorderWidth uint16
	Changed     bool
}

// Project walks root and returns a Placement for every leaf holding a
// client, implementing arrange()/apply_layout() from tree.c. outer is
// the monitor rectangle already shrunk by monitor+desktop padding (and,
// by the caller, the monocle padding when Layout==LayoutMonocle).
//
// The window gap is applied exactly once as an outer margin here (per
// apply_layout's int wg = gapless_monocle && layout==monocle ? 0 :
// window_gap, consumed before any split runs), then as a one-sided
// gutter carved out of each split's first child by fenceSplit — never
// as a per-leaf reduction, which would apply it once per window instead
// of once per boundary.
func Project(root *Node, outer geom.Rect, opts ProjectOptions) []Placement {
	wg := opts.WindowGap
	if opts.GaplessMonocle && opts.Layout == LayoutMonocle {
		wg = 0
	}
	if wg != 0 {
		outer = outer.ShrunkBy(wg, wg, wg, wg)
	}

	var out []Placement
	projectRec(root, outer, opts, wg, &out, 0)
	return out
}

func projectRec(n *Node, rect geom.Rect, opts ProjectOptions, wg int32, out *[]Placement, depth int) {
	if n == nil || depth > MaxDepth {
		return
	}
	n.Rect = rect

	if n.IsLeaf() {
		projectLeaf(n, rect, opts, out)
		return
	}

	// Monocle or a vacant child: both children get the full rect.
	if opts.Layout == LayoutMonocle || n.FirstChild.Vacant || n.SecondChild.Vacant {
		projectRec(n.FirstChild, rect, opts, wg, out, depth+1)
		projectRec(n.SecondChild, rect, opts, wg, out, depth+1)
		return
	}

	first, second := fenceSplit(n, rect, wg)
	projectRec(n.FirstChild, first, opts, wg, out, depth+1)
	projectRec(n.SecondChild, second, opts, wg, out, depth+1)
}

// fenceSplit computes the fence position clamped into the children's
// minimum-size window, rewriting n.Ratio to match when clamping moved
// the fence (so a subsequent read of n.Ratio reflects what was actually
// drawn). Per B3, when the combined minimums exceed the available axis
// length, the clamp is skipped entirely and the raw ratio is honored.
//
// The first child's trailing edge gives up wg so a single gap-width
// gutter separates it from the second child; the second child starts
// exactly at the fence and keeps its full share — the gutter is spent
// once per boundary, not once per window.
func fenceSplit(n *Node, rect geom.Rect, wg int32) (geom.Rect, geom.Rect) {
	vertical := n.SplitType == SplitVertical

	var axisLen int32
	var minSum int32
	if vertical {
		axisLen = rect.Width
		minSum = n.FirstChild.MinWidth + n.SecondChild.MinWidth
	} else {
		axisLen = rect.Height
		minSum = n.FirstChild.MinHeight + n.SecondChild.MinHeight
	}

	fence := int32(n.Ratio * float64(axisLen))

	if minSum <= axisLen {
		lo := n.FirstChild.minAlongAxis(vertical) + wg
		hi := axisLen - n.SecondChild.minAlongAxis(vertical)
		if hi < lo {
			hi = lo
		}
		if fence < lo {
			fence = lo
		}
		if fence > hi {
			fence = hi
		}
		if axisLen > 0 {
			n.Ratio = float64(fence) / float64(axisLen)
		}
	}

	firstWidth := fence - wg
	if firstWidth < 0 {
		firstWidth = 0
	}

	if vertical {
		a := geom.Rect{X: rect.X, Y: rect.Y, Width: firstWidth, Height: rect.Height}
		b := geom.Rect{X: rect.X + fence, Y: rect.Y, Width: rect.Width - fence, Height: rect.Height}
		return a, b
	}
	a := geom.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: firstWidth}
	b := geom.Rect{X: rect.X, Y: rect.Y + fence, Width: rect.Width, Height: rect.Height - fence}
	return a, b
}

func (n *Node) minAlongAxis(vertical bool) int32 {
	if vertical {
		return n.MinWidth
	}
	return n.MinHeight
}

func projectLeaf(n *Node, rect geom.Rect, opts ProjectOptions, out *[]Placement) {
	c := n.Client
	if c == nil {
		return
	}

	border := leafBorderWidth(n, opts)
	var target geom.Rect

	switch c.State {
	case StateFullscreen:
		target = rect
		border = 0
	case StateFloating:
		target = c.FloatingRect
	case StatePseudoTiled:
		bleed := 2 * int32(border)
		shrunk := geom.Rect{X: rect.X, Y: rect.Y, Width: rect.Width - bleed, Height: rect.Height - bleed}
		if opts.CenterPseudoTiled {
			target = clampAndCenter(c.FloatingRect, shrunk)
		} else {
			target = clampTopLeft(c.FloatingRect, shrunk)
		}
	default: // StateTiled
		bleed := 2 * int32(border)
		target = geom.Rect{X: rect.X, Y: rect.Y, Width: rect.Width - bleed, Height: rect.Height - bleed}
	}

	target = applySizeHints(target, c.Hints)

	changed := !geom.RectEq(target, c.TiledRect) && c.State == StateTiled
	if c.State != StateFloating {
		c.TiledRect = target
	}

	*out = append(*out, Placement{Node: n, Rect: target, BorderWidth: border, Changed: changed})
}

// leafBorderWidth implements the zero-border rules: borderless_monocle
// in monocle layout, borderless_singleton when it is the only window,
// and always zero for fullscreen.
func leafBorderWidth(n *Node, opts ProjectOptions) uint16 {
	c := n.Client
	if c == nil {
		return opts.DefaultBorderWidth
	}
	if c.State == StateFullscreen {
		return 0
	}
	if opts.BorderlessMonocle && opts.Layout == LayoutMonocle && IsTiled(n) {
		return 0
	}
	if opts.BorderlessSingleton && opts.OnlyWindow {
		return 0
	}
	return c.BorderWidth
}

// clampAndCenter clamps a floating rectangle's size to fit within
// bound, then centers the result, implementing the pseudo-tiled
// placement rule.
func clampAndCenter(want, bound geom.Rect) geom.Rect {
	w, h := want.Width, want.Height
	if w > bound.Width {
		w = bound.Width
	}
	if h > bound.Height {
		h = bound.Height
	}
	x := bound.X + (bound.Width-w)/2
	y := bound.Y + (bound.Height-h)/2
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

// clampTopLeft clamps a floating rectangle's size to fit within bound
// without recentering it, for the center_pseudo_tiled=false case.
func clampTopLeft(want, bound geom.Rect) geom.Rect {
	w, h := want.Width, want.Height
	if w > bound.Width {
		w = bound.Width
	}
	if h > bound.Height {
		h = bound.Height
	}
	return geom.Rect{X: bound.X, Y: bound.Y, Width: w, Height: h}
}

// applySizeHints rounds width/height down to the nearest WidthInc/HeightInc
// step above BaseWidth/BaseHeight, and enforces MinWidth/MinHeight, per
// ICCCM WM_NORMAL_HINTS semantics.
func applySizeHints(r geom.Rect, h SizeHints) geom.Rect {
	w, ht := r.Width, r.Height

	if h.HasMin {
		if w < h.MinWidth {
			w = h.MinWidth
		}
		if ht < h.MinHeight {
			ht = h.MinHeight
		}
	}

	if h.HasInc && h.WidthInc > 0 && h.HeightInc > 0 {
		if extra := w - h.BaseWidth; extra > 0 {
			w = h.BaseWidth + (extra/h.WidthInc)*h.WidthInc
		}
		if extra := ht - h.BaseHeight; extra > 0 {
			ht = h.BaseHeight + (extra/h.HeightInc)*h.HeightInc
		}
	}

	if w < 1 {
		w = 1
	}
	if ht < 1 {
		ht = 1
	}

	return geom.Rect{X: r.X, Y: r.Y, Width: w, Height: ht}
}
