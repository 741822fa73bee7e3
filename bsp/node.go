package bsp

// Node is either a *Leaf or an *Internal node. The set of implementations is
// closed; code that walks the tree dispatches on the concrete type.
type Node interface {
	isNode()
}

// Leaf nodes hold the primitives that were routed to their cell. A leaf may
// be empty.
type Leaf struct {
	Primitives []Primitive
}

// Internal nodes split their cell in two halves with the plane perpendicular
// to Axis at Split. Left covers coordinates below Split and Right coordinates
// at or above it. Both children are always set.
type Internal struct {
	Axis  int
	Split float32

	Left  Node
	Right Node

	// Union of the bounds of the primitives routed to each child. A
	// primitive that straddles the split plane may extend past its
	// child's cell; traversal uses these bounds for pruning.
	LeftBounds  BBox
	RightBounds BBox
}

func (*Leaf) isNode()     {}
func (*Internal) isNode() {}

// Children returns the child nodes in the order a ray with direction
// component dir along the split axis enters them.
func (n *Internal) Children(dir float32) (near, far Node, nearBounds, farBounds BBox) {
	if dir < 0 {
		return n.Right, n.Left, n.RightBounds, n.LeftBounds
	}
	return n.Left, n.Right, n.LeftBounds, n.RightBounds
}
