package bsp

// The Primitive interface is implemented by all geometry that can be
// partitioned by the tree builder.
type Primitive interface {
	// Get a tight axis-aligned box containing the primitive.
	BBox() BBox

	// Test the primitive against the ray. If the primitive is hit at a
	// distance closer than ray.T, Intersect must update ray.T (and Hit)
	// and return true; otherwise it must leave the ray untouched and
	// return false.
	Intersect(ray *Ray) bool
}
