package wm

import (
	"github.com/rotkonetworks/bspwm1/bsp"
	"github.com/rotkonetworks/bspwm1/desktop"
	"github.com/rotkonetworks/bspwm1/geom"
	"github.com/rotkonetworks/bspwm1/monitor"
)

// Arrange projects d's tree onto m's rectangle, shrunk by monitor and
// desktop padding (arrange() in tree.c applies padding once regardless
// of layout, which this mirrors). The xserver package feeds the
// returned placements straight into ConfigureWindow/MoveResizeWindow
// calls.
func (w *World) Arrange(m *monitor.Monitor, d *desktop.Desktop) []bsp.Placement {
	if m == nil || d == nil {
		return nil
	}
	outer := geom.Rect{
		X:      m.Rect.X + m.Padding.Left + d.Padding.Left,
		Y:      m.Rect.Y + m.Padding.Top + d.Padding.Top,
		Width:  m.Rect.Width - m.Padding.Left - m.Padding.Right - d.Padding.Left - d.Padding.Right,
		Height: m.Rect.Height - m.Padding.Top - m.Padding.Bottom - d.Padding.Top - d.Padding.Bottom,
	}

	layout := bsp.LayoutTiled
	if d.Layout == desktop.LayoutMonocle {
		layout = bsp.LayoutMonocle
	}

	onlyWindow := false
	if n := bsp.FirstExtrema(d.Root); n != nil && bsp.Sibling(n) == nil && bsp.IsTiled(n) {
		onlyWindow = true
	}

	return bsp.Project(d.Root, outer, bsp.ProjectOptions{
		Layout:              layout,
		WindowGap:           d.WindowGap,
		GaplessMonocle:      w.Config.GaplessMonocle,
		BorderlessMonocle:   w.Config.BorderlessMonocle,
		BorderlessSingleton: w.Config.BorderlessSingleton,
		CenterPseudoTiled:   w.Config.CenterPseudoTiled,
		DefaultBorderWidth:  d.BorderWidth,
		OnlyWindow:          onlyWindow,
	})
}
