package cmd

import (
	"strings"
	"testing"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/scene"
	"github.com/achilleasa/bsptrace/types"
)

func TestTreeLayout(t *testing.T) {
	sc := scene.NewScene()
	mat := scene.DefaultMaterial()
	sc.AddMaterial(mat)
	for i := 0; i < 8; i++ {
		x := float32(i) * 2
		sc.AddPrimitive(scene.NewBox(types.Vec3{x, 0, 0}, types.Vec3{x + 1, 1, 1}, mat))
	}

	tree, err := sc.BuildTree(bsp.Options{MaxDepth: 1, LeafThreshold: 4})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(treeLayout(tree)), "\n")

	// header + separators + one row per depth
	var rows []string
	for _, line := range lines {
		if strings.HasPrefix(line, "|") && !strings.Contains(line, "Depth") {
			rows = append(rows, line)
		}
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 depth rows; got %d:\n%s", len(rows), strings.Join(lines, "\n"))
	}

	fields := strings.Fields(strings.Replace(rows[1], "|", " ", -1))
	if len(fields) != 4 || fields[0] != "1" || fields[1] != "0" || fields[2] != "2" || fields[3] != "8" {
		t.Fatalf("expected depth 1 to hold 2 leaves with 8 primitives; got %v", fields)
	}
}
