package bsp

import "fmt"

const (
	// Default hard limit for the tree depth.
	DefaultMaxDepth = 20

	// Cells with this many primitives or fewer become leaves.
	DefaultLeafThreshold = 4

	// Leaves with fewer primitives than this are reported as sparse.
	DefaultMinLeafPrimitives = 3
)

// A callback that is invoked whenever the builder creates a new leaf. cell is
// the region of space covered by the leaf.
type LeafCallback func(leaf *Leaf, cell BBox, depth int)

// Options control tree construction.
type Options struct {
	// Nodes at this depth always become leaves. The root is at depth 0.
	MaxDepth int

	// A cell is turned into a leaf when it holds LeafThreshold primitives
	// or fewer. This is the only primitive count that gates leaf creation.
	LeafThreshold int

	// Leaves holding fewer primitives than this (but at least one) are
	// counted as sparse in the build stats. It does not affect the tree
	// layout.
	MinLeafPrimitives int

	// Optional observer invoked for every created leaf.
	LeafCallback LeafCallback
}

// DefaultOptions returns the options used when building trees for scenes.
func DefaultOptions() Options {
	return Options{
		MaxDepth:          DefaultMaxDepth,
		LeafThreshold:     DefaultLeafThreshold,
		MinLeafPrimitives: DefaultMinLeafPrimitives,
	}
}

// Validate checks that the options describe a tree that can be built.
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("bsp: max depth must be >= 0; got %d", o.MaxDepth)
	}
	if o.LeafThreshold < 0 {
		return fmt.Errorf("bsp: leaf threshold must be >= 0; got %d", o.LeafThreshold)
	}
	if o.MinLeafPrimitives < 0 {
		return fmt.Errorf("bsp: min leaf primitives must be >= 0; got %d", o.MinLeafPrimitives)
	}
	return nil
}
