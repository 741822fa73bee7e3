package cmd

import (
	"errors"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/scene"
	"github.com/achilleasa/bsptrace/scene/reader"
	"github.com/urfave/cli"
)

// Flags that control scene parsing and tree construction.
var SceneFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "max-depth",
		Value: bsp.DefaultMaxDepth,
		Usage: "max depth of the partition tree",
	},
	cli.IntFlag{
		Name:  "leaf-threshold",
		Value: bsp.DefaultLeafThreshold,
		Usage: "cells with this many primitives or fewer become leaves",
	},
	cli.IntFlag{
		Name:  "min-leaf-primitives",
		Value: bsp.DefaultMinLeafPrimitives,
		Usage: "leaves with fewer primitives are reported as sparse",
	},
	cli.Float64Flag{
		Name:  "scale",
		Value: 1.0,
		Usage: "scale factor applied to scene vertices",
	},
}

func treeOptions(ctx *cli.Context) bsp.Options {
	return bsp.Options{
		MaxDepth:          ctx.Int("max-depth"),
		LeafThreshold:     ctx.Int("leaf-threshold"),
		MinLeafPrimitives: ctx.Int("min-leaf-primitives"),
	}
}

func readerOptions(ctx *cli.Context) reader.Options {
	return reader.Options{
		Scale: float32(ctx.Float64("scale")),
	}
}

// Parse the scene file passed as the first command argument and build its
// partition tree.
func loadScene(ctx *cli.Context) (*scene.Scene, *bsp.Tree, error) {
	if ctx.NArg() != 1 {
		return nil, nil, errors.New("missing scene file argument")
	}

	return loadSceneFile(ctx, ctx.Args().First())
}

func loadSceneFile(ctx *cli.Context, sceneFile string) (*scene.Scene, *bsp.Tree, error) {
	sc, err := reader.ReadScene(sceneFile, readerOptions(ctx))
	if err != nil {
		return nil, nil, err
	}

	tree, err := sc.BuildTree(treeOptions(ctx))
	if err != nil {
		return nil, nil, err
	}

	return sc, tree, nil
}

// Parse one or more scenes and display scene and tree statistics.
func BuildTree(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		logger.Noticef("parsing scene and building partition tree: %s", sceneFile)

		sc, tree, err := loadSceneFile(ctx, sceneFile)
		if err != nil {
			return err
		}

		logger.Noticef("scene information:\n%s", sc.Stats())
		logger.Noticef("partition tree statistics:\n%s", tree.Stats().Table())
	}

	return nil
}
