package cmd

import (
	"fmt"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/types"
	"github.com/urfave/cli"
)

// Trace a single ray against the scene and report the closest hit.
func TraceRay(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	origin, err := types.ParseVec3(ctx.String("origin"))
	if err != nil {
		return fmt.Errorf("invalid ray origin: %s", err.Error())
	}
	dir, err := types.ParseVec3(ctx.String("dir"))
	if err != nil {
		return fmt.Errorf("invalid ray direction: %s", err.Error())
	}

	_, tree, err := loadScene(ctx)
	if err != nil {
		return err
	}

	ray := bsp.NewRay(origin, dir)
	if !tree.Intersect(ray) {
		logger.Noticef("ray %v -> %v: no hit", origin, dir)
		return nil
	}

	logger.Noticef(
		"ray %v -> %v: hit at t=%3.5f, point %v, barycentrics (%3.3f, %3.3f), primitive %v",
		origin, dir, ray.T, ray.Point(ray.T), ray.U, ray.V, ray.Hit,
	)
	return nil
}
