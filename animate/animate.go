// Package animate interpolates a window's rectangle from its current
// geometry to a target one over a short duration, driven by an
// external ticker rather than its own goroutine so the caller (wm's
// serialized command loop) controls exactly when frames are pushed.
package animate

import (
	"math"

	"github.com/rotkonetworks/bspwm1/geom"
)

const (
	maxAnimations        = 64
	minAnimationDistance = 3
	maxAnimationDuration = 1000 // ms
)

// Easing selects the interpolation curve.
type Easing int

const (
	EaseLinear Easing = iota
	EaseOutCubic
	EaseInOutCubic
	EaseInOutQuart
	EaseOutBack
	EaseWindowMove
)

// Ease evaluates the curve at progress t (clamped to [0,1] by every
// branch per the original's defensive bounds checks).
func Ease(e Easing, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EaseOutCubic:
		t1 := t - 1
		return t1*t1*t1 + 1
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		f := 2*t - 2
		return 1 + f*f*f*0.5
	case EaseInOutQuart:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		f := t - 1
		return 1 - 8*f*f*f*f
	case EaseOutBack:
		const c1 = 1.70158
		const c3 = c1 + 1
		t1 := t - 1
		if t1 < -1 {
			t1 = -1
		}
		return 1 + c3*(t1*t1*t1) + c1*(t1*t1)
	case EaseWindowMove:
		return t * t * (3 - 2*t)
	default:
		return t
	}
}

// Animation interpolates one window's rectangle from From to To.
type Animation struct {
	Window    uint32
	From, To  geom.Rect
	StartMS   int64
	Duration  int64 // ms
	Easing    Easing
	OnComplete func()
}

// Mover performs the one X11 side effect an animation needs: moving
// and resizing a window. Nothing here talks to X directly so the
// interpolation math stays testable without a display connection.
type Mover interface {
	MoveResize(window uint32, r geom.Rect)
}

// Set is the live animation list, keyed by window so retargeting a
// window cancels its prior animation in favor of the new one.
type Set struct {
	Enabled  bool
	Duration int64 // ms, clamped to maxAnimationDuration

	byWindow map[uint32]*Animation
}

// NewSet returns an empty animation set, enabled or not per enabled,
// with the given default duration.
func NewSet(enabled bool, durationMS int64) *Set {
	if durationMS > maxAnimationDuration {
		durationMS = maxAnimationDuration
	}
	return &Set{Enabled: enabled, Duration: durationMS, byWindow: make(map[uint32]*Animation)}
}

func rectDistance(from, to geom.Rect) (dx, dy, dw, dh int32) {
	abs := func(v int32) int32 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(to.X - from.X), abs(to.Y - from.Y), abs(to.Width - from.Width), abs(to.Height - from.Height)
}

// MoveWindow starts (or retargets) an animation of window from its
// current rect to to, stamped at nowMS. If animation is disabled, the
// duration is zero, the animation-count cap is hit, or the movement is
// below the minimum visible distance, it jumps straight to to via mv
// and returns false (no animation was created).
func (s *Set) MoveWindow(mv Mover, window uint32, from, to geom.Rect, nowMS int64) bool {
	if !s.Enabled || s.Duration == 0 || len(s.byWindow) >= maxAnimations {
		mv.MoveResize(window, to)
		return false
	}

	dx, dy, dw, dh := rectDistance(from, to)
	if dx < minAnimationDistance && dy < minAnimationDistance && dw < minAnimationDistance && dh < minAnimationDistance {
		mv.MoveResize(window, to)
		return false
	}

	s.Stop(window)
	s.byWindow[window] = &Animation{
		Window:   window,
		From:     from,
		To:       to,
		StartMS:  nowMS,
		Duration: s.Duration,
		Easing:   EaseWindowMove,
	}
	return true
}

// MoveWindowCentered is MoveWindow with the centering-animation
// profile: ease-in-out-quart and 50ms extra duration, matching
// animate_window_center's "feels more natural" tweak.
func (s *Set) MoveWindowCentered(mv Mover, window uint32, from, to geom.Rect, nowMS int64) bool {
	if !s.MoveWindow(mv, window, from, to, nowMS) {
		return false
	}
	a := s.byWindow[window]
	a.Easing = EaseInOutQuart
	if a.Duration <= maxAnimationDuration-50 {
		a.Duration += 50
	}
	return true
}

// Stop cancels any in-flight animation for window without moving it.
func (s *Set) Stop(window uint32) {
	delete(s.byWindow, window)
}

func interpolate32(from, to int32, progress float64) int32 {
	if progress <= 0 {
		return from
	}
	if progress >= 1 {
		return to
	}
	diff := float64(to) - float64(from)
	result := float64(from) + diff*progress
	return int32(math.Round(result))
}

// Tick advances every in-flight animation to nowMS, pushing an
// intermediate (or final) rect through mv for each, and removing any
// that completed. A clock that runs backwards (nowMS < an animation's
// start) completes that animation immediately rather than stalling it
// forever, matching the original's "clock went backwards" handling.
func (s *Set) Tick(mv Mover, nowMS int64) {
	if !s.Enabled || len(s.byWindow) == 0 {
		return
	}
	for w, a := range s.byWindow {
		var elapsed int64
		if nowMS < a.StartMS {
			elapsed = a.Duration
		} else {
			elapsed = nowMS - a.StartMS
		}

		if elapsed >= a.Duration {
			mv.MoveResize(a.Window, a.To)
			delete(s.byWindow, w)
			if a.OnComplete != nil {
				a.OnComplete()
			}
			continue
		}

		progress := float64(elapsed) / float64(a.Duration)
		if progress > 1 {
			progress = 1
		}
		if progress < 0 {
			progress = 0
		}
		eased := Ease(a.Easing, progress)

		r := geom.Rect{
			X:      interpolate32(a.From.X, a.To.X, eased),
			Y:      interpolate32(a.From.Y, a.To.Y, eased),
			Width:  interpolate32(a.From.Width, a.To.Width, eased),
			Height: interpolate32(a.From.Height, a.To.Height, eased),
		}
		mv.MoveResize(a.Window, r)
	}
}

// SetEnabled toggles the set. Disabling completes every in-flight
// animation immediately rather than leaving windows mid-transition.
func (s *Set) SetEnabled(mv Mover, enabled bool) {
	if !enabled && s.Enabled {
		for _, a := range s.byWindow {
			mv.MoveResize(a.Window, a.To)
		}
		s.byWindow = make(map[uint32]*Animation)
	}
	s.Enabled = enabled
}

// SetDuration updates the default duration for new animations,
// clamped to maxAnimationDuration.
func (s *Set) SetDuration(ms int64) {
	if ms > maxAnimationDuration {
		ms = maxAnimationDuration
	}
	s.Duration = ms
}

// Active reports whether window currently has an in-flight animation.
func (s *Set) Active(window uint32) bool {
	_, ok := s.byWindow[window]
	return ok
}
