package xserver

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/motif"
	"github.com/sirupsen/logrus"

	"github.com/rotkonetworks/bspwm1/bsp"
)

// ReadSizeHints translates icccm.WmNormalHintsGet's WM_NORMAL_HINTS
// reply into bsp.SizeHints, the same property GetInfo reads in the
// teacher's client.go, but narrowed to the fields bsp.Project actually
// consumes (min size, resize increment, aspect ratio).
func (c *Conn) ReadSizeHints(w xproto.Window) bsp.SizeHints {
	nh, err := icccm.WmNormalHintsGet(c.X, w)
	if err != nil || nh == nil {
		return bsp.SizeHints{}
	}

	var h bsp.SizeHints
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.HasMin = true
		h.MinWidth = int32(nh.MinWidth)
		h.MinHeight = int32(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.HasInc = true
		h.WidthInc = int32(nh.WidthInc)
		h.HeightInc = int32(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseWidth = int32(nh.BaseWidth)
		h.BaseHeight = int32(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectDen != 0 && nh.MaxAspectDen != 0 {
		h.HasAspect = true
		h.MinAspect = float64(nh.MinAspectNum) / float64(nh.MinAspectDen)
		h.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}
	return h
}

// ReadClass returns WM_CLASS's class/instance pair, falling back to
// empty strings the way GetInfo falls back to the class itself for a
// missing WM_NAME — here there is no good fallback, so a read failure
// just yields "".
func (c *Conn) ReadClass(w xproto.Window) (class, instance string) {
	cls, err := icccm.WmClassGet(c.X, w)
	if err != nil || cls == nil {
		return "", ""
	}
	return cls.Class, cls.Instance
}

// ReadICCCMHints returns the input-hint and accepts-delete bits
// GetInfo's caller needs to populate bsp.Client; urgency and
// takes-focus are not read.
func (c *Conn) ReadICCCMHints(w xproto.Window) (inputHint, acceptsDelete bool) {
	hints, err := icccm.WmHintsGet(c.X, w)
	if err == nil && hints != nil {
		inputHint = hints.Flags&icccm.HintInput == 0 || hints.Input
	} else {
		inputHint = true
	}
	protocols, err := icccm.WmProtocolsGet(c.X, w)
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				acceptsDelete = true
			}
		}
	}
	return inputHint, acceptsDelete
}

// ReadDecorationHints reports whether the Motif _MOTIF_WM_HINTS property
// asks for no server-side decoration — the one Motif-hint bit bspwm's
// peers use to decide whether a client wants a border at all.
func (c *Conn) ReadDecorationHints(w xproto.Window) (wantsBorder bool) {
	mh, err := motif.WmHintsGet(c.X, w)
	if err != nil || mh == nil {
		return true
	}
	if mh.Flags&motif.HintDecorations == 0 {
		return true
	}
	return mh.Decoration != 0
}

// NewClient assembles a bsp.Client for a freshly discovered window by
// reading every property GetInfo in the teacher's client.go reads for
// the same purpose, then setting its floating rect to the window's
// current geometry as GetGeometry reports it, or leaving the zero rect
// when that read fails.
func (c *Conn) NewClient(w xproto.Window) *bsp.Client {
	class, instance := c.ReadClass(w)
	inputHint, acceptsDelete := c.ReadICCCMHints(w)

	client := &bsp.Client{
		Window:        uint32(w),
		State:         bsp.StateTiled,
		Layer:         bsp.LayerNormal,
		BorderWidth:   1,
		Shown:         true,
		Hints:         c.ReadSizeHints(w),
		InputHint:     inputHint,
		TakesFocus:    true,
		AcceptsDelete: acceptsDelete,
		Class:         class,
		Instance:      instance,
	}

	geo, err := xproto.GetGeometry(c.X.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		logrus.WithError(err).WithField("window", w).Debug("failed to read initial geometry")
		return client
	}
	client.FloatingRect.X = int32(geo.X)
	client.FloatingRect.Y = int32(geo.Y)
	client.FloatingRect.Width = int32(geo.Width)
	client.FloatingRect.Height = int32(geo.Height)
	return client
}
