package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Per-depth node counts.
type depthSummary struct {
	internal   int
	leaves     int
	primitives int
}

// Display scene statistics and a per-depth summary of the tree layout.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sc, tree, err := loadScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	logger.Noticef("partition tree statistics:\n%s", tree.Stats().Table())
	logger.Noticef("partition tree layout:\n%s", treeLayout(tree))

	return nil
}

// Summarize the tree layout as a table with one row per depth.
func treeLayout(tree *bsp.Tree) string {
	summary := make([]depthSummary, 0)
	tree.Walk(func(node bsp.Node, cell bsp.BBox, depth int) bool {
		for len(summary) <= depth {
			summary = append(summary, depthSummary{})
		}

		switch n := node.(type) {
		case *bsp.Internal:
			summary[depth].internal++
		case *bsp.Leaf:
			summary[depth].leaves++
			summary[depth].primitives += len(n.Primitives)
		}
		return true
	})

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Depth", "Internal nodes", "Leaves", "Leaf primitives"})
	for depth, s := range summary {
		table.Append([]string{
			fmt.Sprintf("%d", depth),
			fmt.Sprintf("%d", s.internal),
			fmt.Sprintf("%d", s.leaves),
			fmt.Sprintf("%d", s.primitives),
		})
	}
	table.Render()

	return buf.String()
}
