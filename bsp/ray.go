package bsp

import (
	"math"

	"github.com/achilleasa/bsptrace/types"
)

var posInf = float32(math.Inf(1))

// A Ray is owned by the caller for the duration of a query. The tree only
// reads Origin and Dir; T and Hit are reset when a query starts and updated
// by primitives whenever they find a hit closer than T.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3

	// Distance to the closest hit found so far.
	T float32

	// The primitive that produced the hit at distance T and any surface
	// coordinates it recorded.
	Hit  Primitive
	U, V float32
}

// Create a new ray with an infinite hit distance.
func NewRay(origin, dir types.Vec3) *Ray {
	return &Ray{
		Origin: origin,
		Dir:    dir,
		T:      posInf,
	}
}

// Reset hit state so the ray can be reused for another query.
func (r *Ray) Reset() {
	r.T = posInf
	r.Hit = nil
	r.U, r.V = 0, 0
}

// Point returns the position along the ray at distance t.
func (r *Ray) Point(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// HasHit returns true if a primitive has recorded a hit on this ray.
func (r *Ray) HasHit() bool {
	return r.Hit != nil
}
