package bsp

import (
	"time"

	"github.com/achilleasa/bsptrace/log"
)

type bspBuilder struct {
	logger log.Logger

	opts Options

	// Stats
	stats BuildStats
}

// Recursively partition the primitive list and return the root node.
func buildTree(bounds BBox, workList []Primitive, opts Options, logger log.Logger) (Node, BuildStats) {
	builder := &bspBuilder{
		logger: logger,
		opts:   opts,
		stats: BuildStats{
			Primitives: len(workList),
		},
	}

	start := time.Now()
	root := builder.partition(bounds, workList, 0)
	builder.stats.BuildTime = time.Since(start)
	builder.logger.Debugf(
		"BSP tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		builder.stats.BuildTime.Nanoseconds()/1e6,
		builder.stats.MaxDepth, builder.stats.Nodes, builder.stats.Leaves,
	)
	return root, builder.stats
}

// Partition the work list that falls inside cell and return the subtree.
func (b *bspBuilder) partition(cell BBox, workList []Primitive, depth int) Node {
	if depth >= b.opts.MaxDepth || len(workList) <= b.opts.LeafThreshold {
		return b.createLeaf(cell, workList, depth)
	}

	// Cycle split axis with depth and cut the cell in half
	axis := depth % 3
	splitVal := cell.Max[axis] - (cell.Max[axis]-cell.Min[axis])/2

	node := &Internal{
		Axis:        axis,
		Split:       splitVal,
		LeftBounds:  EmptyBBox(),
		RightBounds: EmptyBBox(),
	}

	// Route each item to exactly one side using the max extent of its bbox
	leftWorkList := make([]Primitive, 0, len(workList)/2)
	rightWorkList := make([]Primitive, 0, len(workList)/2)
	for _, item := range workList {
		itemBBox := item.BBox()
		if itemBBox.Max[axis] < splitVal {
			leftWorkList = append(leftWorkList, item)
			node.LeftBounds.ExtendBBox(itemBBox)
		} else {
			rightWorkList = append(rightWorkList, item)
			node.RightBounds.ExtendBBox(itemBBox)
		}
	}

	b.stats.Nodes++

	leftCell, rightCell := cell.SplitAt(axis, splitVal)
	node.Left = b.partition(leftCell, leftWorkList, depth+1)
	node.Right = b.partition(rightCell, rightWorkList, depth+1)
	return node
}

// Wrap the work list in a leaf node and update stats.
func (b *bspBuilder) createLeaf(cell BBox, workList []Primitive, depth int) Node {
	leaf := &Leaf{Primitives: workList}

	b.stats.Leaves++
	b.stats.LeafPrimitives += len(workList)
	switch {
	case len(workList) == 0:
		b.stats.EmptyLeaves++
	case len(workList) < b.opts.MinLeafPrimitives:
		b.stats.SparseLeaves++
	}
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	if b.opts.LeafCallback != nil {
		b.opts.LeafCallback(leaf, cell, depth)
	}
	return leaf
}
