package tracer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/log"
	"github.com/achilleasa/bsptrace/scene"
	"github.com/achilleasa/bsptrace/types"
)

// A tracer that shades primary rays on the cpu using the eyelight shader.
type cpuTracer struct {
	logger log.Logger

	// The tracer id.
	id string

	sceneData *scene.Scene
	tree      *bsp.Tree
	shader    scene.EyelightShader

	// Statistics for last rendered block.
	stats *Stats
}

// Create a new cpu tracer.
func NewCPUTracer(id string) Tracer {
	return &cpuTracer{
		logger: log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:     id,
		stats:  &Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers run at the baseline speed.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

// Attach scene data.
func (tr *cpuTracer) Setup(sc *scene.Scene, tree *bsp.Tree) error {
	if sc == nil || tree == nil {
		return ErrNoSceneData
	}
	if sc.Camera == nil {
		return ErrCameraNotDefined
	}

	tr.sceneData = sc
	tr.tree = tree
	tr.shader = scene.EyelightShader{BgColor: sc.BgColor}
	return nil
}

// Trace block rows. The context is checked before each row; if it gets
// cancelled the tracer returns ctx.Err() leaving the remaining rows untouched.
func (tr *cpuTracer) Trace(ctx context.Context, req BlockRequest, frame *image.RGBA) error {
	if tr.sceneData == nil {
		return ErrNoSceneData
	}
	if req.BlockY+req.BlockH > req.FrameH {
		return ErrBlockOutOfBounds
	}

	start := time.Now()
	camera := tr.sceneData.Camera
	var rays, hits uint64
	for y := req.BlockY; y < req.BlockY+req.BlockH; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for x := uint32(0); x < req.FrameW; x++ {
			ray := camera.Ray(x, y, req.FrameW, req.FrameH)
			rays++
			if tr.tree.Intersect(ray) {
				hits++
			}
			frame.SetRGBA(int(x), int(y), toRGBA(tr.shader.Shade(ray)))
		}
	}

	tr.stats.BlockH = req.BlockH
	tr.stats.BlockTime = time.Since(start).Nanoseconds()
	tr.stats.Rays = rays
	tr.stats.Hits = hits

	tr.logger.Debugf("traced rows [%d, %d) in %s", req.BlockY, req.BlockY+req.BlockH, time.Since(start))
	return nil
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.sceneData = nil
	tr.tree = nil
}

// Convert a linear color to an 8-bit RGBA value.
func toRGBA(c types.Vec3) color.RGBA {
	return color.RGBA{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
		A: 255,
	}
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
