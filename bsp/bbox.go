package bsp

import (
	"fmt"
	"math"

	"github.com/achilleasa/bsptrace/types"
)

// Boxes whose extents are within Epsilon of each other are treated as
// overlapping.
const Epsilon float32 = 1e-4

var negInf = float32(math.Inf(-1))

// BBox is an axis-aligned bounding box defined by its min and max corners.
//
// The zero value is a degenerate box located at the origin. Use EmptyBBox to
// get a box that can be grown with Extend.
type BBox struct {
	Min types.Vec3
	Max types.Vec3
}

// EmptyBBox returns a box with Min set to +Inf and Max set to -Inf so that
// the first call to Extend establishes a valid box.
func EmptyBBox() BBox {
	return BBox{
		Min: types.Vec3{posInf, posInf, posInf},
		Max: types.Vec3{negInf, negInf, negInf},
	}
}

// NewBBox returns the box spanned by two corners, in any order.
func NewBBox(c0, c1 types.Vec3) BBox {
	return BBox{
		Min: types.MinVec3(c0, c1),
		Max: types.MaxVec3(c0, c1),
	}
}

// IsEmpty returns true if Min exceeds Max along any axis.
func (b BBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box so that it contains point.
func (b *BBox) Extend(point types.Vec3) {
	b.Min = types.MinVec3(b.Min, point)
	b.Max = types.MaxVec3(b.Max, point)
}

// ExtendBBox grows the box so that it contains other. Extending by an empty
// box is a no-op.
func (b *BBox) ExtendBBox(other BBox) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Overlaps returns true if the two boxes intersect along all three axes.
func (b BBox) Overlaps(other BBox) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}

	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] > other.Max[axis]+Epsilon || b.Max[axis]+Epsilon < other.Min[axis] {
			return false
		}
	}
	return true
}

// Contains returns true if point lies inside the box or on its boundary.
func (b BBox) Contains(point types.Vec3) bool {
	return point[0] >= b.Min[0] && point[0] <= b.Max[0] &&
		point[1] >= b.Min[1] && point[1] <= b.Max[1] &&
		point[2] >= b.Min[2] && point[2] <= b.Max[2]
}

// ContainsBBox returns true if other fits inside the box. An empty box is
// contained by any box.
func (b BBox) ContainsBBox(other BBox) bool {
	if other.IsEmpty() {
		return true
	}
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Center returns the mid-point of the box.
func (b BBox) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b BBox) Size() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// SplitAt cuts the box with the plane perpendicular to axis at value and
// returns the box parts below and above the plane.
func (b BBox) SplitAt(axis int, value float32) (left, right BBox) {
	left, right = b, b
	left.Max[axis] = value
	right.Min[axis] = value
	return left, right
}

// Clip intersects the ray with the box slabs and returns the distances at
// which the ray enters and leaves the box. The returned flag is false if the
// ray misses the box (tEntry > tExit), if the box lies behind the ray origin
// (tExit < 0) or if the box is empty.
//
// An axis with a zero direction component does not constrain the interval
// when the ray origin lies within that axis' slab; if the origin lies outside
// the slab the ray can never enter the box.
func (b BBox) Clip(ray *Ray) (tEntry, tExit float32, ok bool) {
	if b.IsEmpty() {
		return posInf, negInf, false
	}

	tEntry, tExit = negInf, posInf
	for axis := 0; axis < 3; axis++ {
		dir := ray.Dir[axis]
		origin := ray.Origin[axis]

		if dir == 0 {
			if origin < b.Min[axis] || origin > b.Max[axis] {
				return posInf, negInf, false
			}
			continue
		}

		t0 := (b.Min[axis] - origin) / dir
		t1 := (b.Max[axis] - origin) / dir
		if dir < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tEntry {
			tEntry = t0
		}
		if t1 < tExit {
			tExit = t1
		}
	}

	return tEntry, tExit, tEntry <= tExit && tExit >= 0
}

func (b BBox) String() string {
	if b.IsEmpty() {
		return "BBox{empty}"
	}
	return fmt.Sprintf("BBox{min: %v, max: %v}", b.Min, b.Max)
}
