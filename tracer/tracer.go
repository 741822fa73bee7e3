package tracer

import (
	"context"
	"image"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/scene"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Block start row and height.
	BlockY uint32
	BlockH uint32
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering this block (in nanoseconds)
	BlockTime int64

	// Number of traced rays and the number of rays that hit a primitive.
	Rays uint64
	Hits uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracers computation speed estimate compared to a
	// baseline (single cpu) implementation.
	SpeedEstimate() float32

	// Attach the scene and its partition tree. Both are shared read-only
	// between tracers.
	Setup(sc *scene.Scene, tree *bsp.Tree) error

	// Trace the rows of the frame described by the block request. Tracers
	// only write to pixels inside their block.
	Trace(ctx context.Context, req BlockRequest, frame *image.RGBA) error

	// Retrieve last block statistics.
	Stats() *Stats
}
