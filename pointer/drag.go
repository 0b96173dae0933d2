package pointer

import "github.com/rotkonetworks/bspwm1/geom"

// Preview displays (or hides) the translucent rectangle shown while a
// window is being dragged into an edge-snap zone. The real
// implementation — an override-redirect X window — lives in xserver;
// this package only decides when to show, move or hide it.
type Preview interface {
	Show(r geom.Rect)
	Hide()
	Destroy()
}

// NodeRef identifies the monitor a drag's pointer currently sits over,
// as reported by the caller's hit-testing (monitor_from_point).
type NodeRef struct {
	MonitorID uint32
	Rect      geom.Rect
}

// Drag tracks one in-progress move/resize/focus grab across a series
// of motion events, throttling updates to at most one per
// motionIntervalMS and, for moves, tracking which edge-snap zone the
// pointer currently sits in so Release can decide whether to apply a
// snap. It mirrors track_pointer's local state without owning the
// blocking xcb_wait_for_event loop itself.
type Drag struct {
	Action Action
	Handle Handle

	lastPos  geom.Point
	lastTime int64

	motionIntervalMS int64

	edgeSnapEnabled   bool
	edgeSnapThreshold int32

	zone      SnapZone
	zoneOwner uint32 // monitor id the current zone belongs to, for change detection
	haveZone  bool
}

// Begin starts tracking a drag of the given action, with handle
// already resolved (via GetHandle) against the node's rect at grab
// time.
func Begin(action Action, handle Handle, startPos geom.Point, startTimeMS int64, motionIntervalMS int64, edgeSnapEnabled bool, edgeSnapThreshold int32) *Drag {
	return &Drag{
		Action:            action,
		Handle:            handle,
		lastPos:           startPos,
		lastTime:          startTimeMS,
		motionIntervalMS:  motionIntervalMS,
		edgeSnapEnabled:   edgeSnapEnabled,
		edgeSnapThreshold: edgeSnapThreshold,
	}
}

// MotionResult reports what a throttled-through motion event produced.
type MotionResult struct {
	Applied bool // false when the event was dropped by throttling
	DX, DY  int32
	Zone    SnapZone
	OnMonitor bool // whether pos landed on a known monitor (for snap purposes)
}

// Motion feeds one pointer-motion event at (pos, timeMS). If fewer
// than motionIntervalMS have elapsed since the last accepted event it
// is dropped (Applied=false) exactly as dtime < pointer_motion_interval
// does in the original. onMonitor, when true, means the caller
// resolved pos to a monitor rect (monRect) for edge-snap purposes;
// when false (pointer currently between monitors) any existing snap
// preview should be hidden rather than updated.
func (d *Drag) Motion(pos geom.Point, timeMS int64, onMonitor bool, monitorID uint32, monRect geom.Rect) MotionResult {
	dtime := timeMS - d.lastTime
	if dtime < d.motionIntervalMS {
		return MotionResult{Applied: false}
	}

	dx := pos.X - d.lastPos.X
	dy := pos.Y - d.lastPos.Y
	d.lastPos = pos
	d.lastTime = timeMS

	zone := SnapNone
	if d.Action == ActionMove && d.edgeSnapEnabled {
		if onMonitor {
			zone = GetSnapZone(pos, monRect, d.edgeSnapThreshold, true)
			d.zone = zone
			d.zoneOwner = monitorID
			d.haveZone = true
		}
		// onMonitor false: keep d.zone as the last known zone (the
		// original preserves current_snap_zone while hiding the
		// preview, so a release between monitors still re-shows the
		// last zone's preview rather than losing it outright).
		if d.haveZone {
			zone = d.zone
		}
	}

	return MotionResult{Applied: true, DX: dx, DY: dy, Zone: zone, OnMonitor: onMonitor}
}

// Release finalizes the drag, reporting the zone (if any, only for
// ActionMove) that a snap should be applied to on pointer-button-up.
func (d *Drag) Release() SnapZone {
	if d.Action != ActionMove {
		return SnapNone
	}
	return d.zone
}
