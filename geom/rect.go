// Package geom implements pure value-level predicates over axis-aligned
// integer rectangles, mirroring original_source/src/geometry.c.
package geom

import "math"

// Direction is one of the four cardinal directions used by on_dir_side and
// boundary distance calculations.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Tightness controls how on_dir_side admits a candidate rectangle.
type Tightness int

const (
	// Low admits any r2 whose far edge does not cross r1's far edge.
	Low Tightness = iota
	// High requires r2's near edge to lie strictly past r1's near edge.
	High
)

// Point is an integer screen coordinate.
type Point struct {
	X, Y int32
}

// Rect is an axis-aligned rectangle in window coordinates. Width/Height are
// always non-negative; coordinates saturate at int16 bounds the way the
// original 16-bit X11 geometry fields do (see AddSat/SubSat below).
type Rect struct {
	X, Y          int32
	Width, Height int32
}

const (
	minCoord = math.MinInt16
	maxCoord = math.MaxInt16
)

// clamp16 saturates v into the int16 range instead of wrapping, matching
// bspwm's SAFE_ADD/SAFE_SUB macros.
func clamp16(v int64) int32 {
	if v > maxCoord {
		return maxCoord
	}
	if v < minCoord {
		return minCoord
	}
	return int32(v)
}

// AddSat adds b to a with saturation at int16 bounds.
func AddSat(a, b int32) int32 {
	return clamp16(int64(a) + int64(b))
}

// SubSat subtracts b from a with saturation at int16 bounds.
func SubSat(a, b int32) int32 {
	return clamp16(int64(a) - int64(b))
}

// Right is the exclusive right edge (X + Width).
func (r Rect) Right() int32 { return AddSat(r.X, r.Width) }

// Bottom is the exclusive bottom edge (Y + Height).
func (r Rect) Bottom() int32 { return AddSat(r.Y, r.Height) }

// Valid reports whether the rectangle has strictly positive extent.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Area returns width*height, computed in int64 so the product of two
// int32 sides cannot overflow.
func Area(r Rect) int64 {
	return int64(r.Width) * int64(r.Height)
}

// IsInside reports whether p lies in r, half-open on the high side
// (matches is_inside in geometry.c).
func IsInside(p Point, r Rect) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Contains reports whether b lies entirely inside a.
func Contains(a, b Rect) bool {
	return b.X >= a.X && b.Y >= a.Y && b.Right() <= a.Right() && b.Bottom() <= a.Bottom()
}

// RectsOverlap reports whether a and b share any area, the test
// merge_overlapping_monitors in monitor.c runs pairwise over the
// monitor list.
func RectsOverlap(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}

// RectMax returns the largest rectangle fitting both dimensions by
// comparing area, mirroring rect_max's "biggest wins" tie-break.
func RectMax(a, b Rect) Rect {
	if Area(b) > Area(a) {
		return b
	}
	return a
}

// BoundaryDistance returns the absolute distance between the two
// relevant edges of r1 and r2 along dir.
func BoundaryDistance(r1, r2 Rect, dir Direction) int32 {
	switch dir {
	case North:
		return abs32(r1.Y - r2.Bottom())
	case South:
		return abs32(r2.Y - r1.Bottom())
	case East:
		return abs32(r2.X - r1.Right())
	case West:
		return abs32(r1.X - r2.Right())
	}
	return 0
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// OnDirSide reports whether r2 lies on the named side of r1 and overlaps
// r1 on the perpendicular axis, per the two tightness modes documented in
// geometry.c's on_dir_side.
func OnDirSide(r1, r2 Rect, dir Direction, t Tightness) bool {
	switch dir {
	case North:
		if t == Low {
			if r2.Y >= r1.Y {
				return false
			}
		} else if r2.Bottom() > r1.Y {
			return false
		}
	case South:
		if t == Low {
			if r2.Bottom() <= r1.Bottom() {
				return false
			}
		} else if r2.Y < r1.Bottom() {
			return false
		}
	case East:
		if t == Low {
			if r2.Right() <= r1.Right() {
				return false
			}
		} else if r2.X < r1.Right() {
			return false
		}
	case West:
		if t == Low {
			if r2.X >= r1.X {
				return false
			}
		} else if r2.Right() > r1.X {
			return false
		}
	}

	// Perpendicular overlap test.
	switch dir {
	case North, South:
		return r1.X < r2.Right() && r2.X < r1.Right()
	default:
		return r1.Y < r2.Bottom() && r2.Y < r1.Bottom()
	}
}

// RectEq is a field-wise equality check.
func RectEq(a, b Rect) bool {
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height
}

// RectCmp induces the top-to-bottom, left-to-right monitor ordering used
// by monitor reconfiguration, ties broken by area.
func RectCmp(a, b Rect) int {
	if a.Y != b.Y {
		return int(a.Y - b.Y)
	}
	if a.X != b.X {
		return int(a.X - b.X)
	}
	da, db := Area(a), Area(b)
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	return 0
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ShrunkBy insets r by the given left/top/right/bottom margins,
// flooring the resulting width and height at 0.
func (r Rect) ShrunkBy(left, top, right, bottom int32) Rect {
	w := r.Width - left - right
	h := r.Height - top - bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: AddSat(r.X, left), Y: AddSat(r.Y, top), Width: w, Height: h}
}
