package bsp

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// BuildStats summarizes the layout of a built tree.
type BuildStats struct {
	// Number of primitives passed to the builder.
	Primitives int

	// Number of internal nodes and leaves.
	Nodes  int
	Leaves int

	// Leaves without primitives and leaves holding fewer than
	// Options.MinLeafPrimitives primitives.
	EmptyLeaves  int
	SparseLeaves int

	// Depth of the deepest leaf.
	MaxDepth int

	// Total number of primitive references stored in leaves.
	LeafPrimitives int

	BuildTime time.Duration
}

// Table builds a tabular representation of the build statistics.
func (s BuildStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BSP tree", "Value"})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", s.Primitives)})
	table.Append([]string{"Internal nodes", fmt.Sprintf("%d", s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", s.Leaves)})
	table.Append([]string{"Empty leaves", fmt.Sprintf("%d", s.EmptyLeaves)})
	table.Append([]string{"Sparse leaves", fmt.Sprintf("%d", s.SparseLeaves)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", s.MaxDepth)})
	table.Append([]string{"Avg prims/leaf", fmt.Sprintf("%3.2f", s.avgLeafPrimitives())})
	table.SetFooter([]string{"Build time", s.BuildTime.String()})

	table.Render()
	return buf.String()
}

func (s BuildStats) avgLeafPrimitives() float32 {
	if s.Leaves == 0 {
		return 0
	}
	return float32(s.LeafPrimitives) / float32(s.Leaves)
}
