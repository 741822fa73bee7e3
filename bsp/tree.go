package bsp

import (
	"github.com/achilleasa/bsptrace/log"
)

// Tree is a binary space partition over a static set of primitives. A tree
// is immutable once built; Intersect may be called concurrently as long as
// each caller supplies its own Ray.
type Tree struct {
	bounds BBox
	root   Node
	opts   Options
	stats  BuildStats
}

// NewTree partitions prims into a tree whose root cell is bounds. bounds is
// expected to contain the bounds of every primitive; a box with Min > Max
// along any axis is treated as empty and the resulting tree never reports a
// hit.
//
// If opts fails validation the default options are used instead.
func NewTree(bounds BBox, prims []Primitive, opts Options) *Tree {
	logger := log.New("bspBuilder")
	if err := opts.Validate(); err != nil {
		logger.Warningf("%s; falling back to default options", err.Error())
		cb := opts.LeafCallback
		opts = DefaultOptions()
		opts.LeafCallback = cb
	}

	// The tree owns its primitive lists
	workList := make([]Primitive, len(prims))
	copy(workList, prims)

	root, stats := buildTree(bounds, workList, opts, logger)
	return &Tree{
		bounds: bounds,
		root:   root,
		opts:   opts,
		stats:  stats,
	}
}

// Bounds returns the root cell of the tree.
func (t *Tree) Bounds() BBox {
	return t.bounds
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.root
}

// Options returns the options the tree was built with.
func (t *Tree) Options() Options {
	return t.opts
}

// Stats returns the statistics collected while building the tree.
func (t *Tree) Stats() BuildStats {
	return t.stats
}

// Intersect finds the closest primitive hit by ray. On return ray.T holds the
// distance to the closest hit (or +Inf) and ray.Hit the primitive that
// produced it.
func (t *Tree) Intersect(ray *Ray) bool {
	ray.Reset()

	if _, _, ok := t.bounds.Clip(ray); !ok {
		return false
	}
	return t.traverse(t.root, ray)
}

// Occluded returns true if ray hits any primitive closer than maxT. It
// stops at the first hit found, which is not necessarily the closest one.
func (t *Tree) Occluded(ray *Ray, maxT float32) bool {
	ray.Reset()
	ray.T = maxT

	if _, _, ok := t.bounds.Clip(ray); !ok {
		return false
	}
	return t.traverseAny(t.root, ray)
}

// Visit the near child of each internal node before the far one. The ray is
// re-clipped against the bounds of the primitives below each child.
//
// A child is skipped if the ray misses the bounds of its primitives or if
// the closest hit found so far lies before the ray reaches them.
func (t *Tree) traverse(node Node, ray *Ray) bool {
	switch n := node.(type) {
	case *Leaf:
		hit := false
		for _, prim := range n.Primitives {
			if prim.Intersect(ray) {
				hit = true
			}
		}
		return hit
	case *Internal:
		near, far, nearBounds, farBounds := n.Children(ray.Dir[n.Axis])

		hit := false
		if t0, _, ok := nearBounds.Clip(ray); ok && t0 <= ray.T {
			hit = t.traverse(near, ray)
		}
		if t0, _, ok := farBounds.Clip(ray); ok && t0 <= ray.T {
			if t.traverse(far, ray) {
				hit = true
			}
		}
		return hit
	}

	return false
}

// Same as traverse but returns as soon as any primitive is hit.
func (t *Tree) traverseAny(node Node, ray *Ray) bool {
	switch n := node.(type) {
	case *Leaf:
		for _, prim := range n.Primitives {
			if prim.Intersect(ray) {
				return true
			}
		}
	case *Internal:
		near, far, nearBounds, farBounds := n.Children(ray.Dir[n.Axis])
		if t0, _, ok := nearBounds.Clip(ray); ok && t0 <= ray.T && t.traverseAny(near, ray) {
			return true
		}
		if t0, _, ok := farBounds.Clip(ray); ok && t0 <= ray.T && t.traverseAny(far, ray) {
			return true
		}
	}

	return false
}

// A WalkFunc is invoked for each node visited by Walk together with the cell
// it covers and its depth. Returning false skips the node's children.
type WalkFunc func(node Node, cell BBox, depth int) bool

// Walk visits the tree in pre-order.
func (t *Tree) Walk(fn WalkFunc) {
	walk(t.root, t.bounds, 0, fn)
}

func walk(node Node, cell BBox, depth int, fn WalkFunc) {
	if !fn(node, cell, depth) {
		return
	}

	if n, isInternal := node.(*Internal); isInternal {
		leftCell, rightCell := cell.SplitAt(n.Axis, n.Split)
		walk(n.Left, leftCell, depth+1, fn)
		walk(n.Right, rightCell, depth+1, fn)
	}
}
