package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/log"
	"github.com/achilleasa/bsptrace/scene"
	"github.com/achilleasa/bsptrace/tracer"
	"golang.org/x/sync/errgroup"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) (*image.RGBA, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// The default renderer splits each frame into row blocks and traces them
// concurrently using a pool of cpu tracers.
type defaultRenderer struct {
	logger log.Logger

	scene     *scene.Scene
	tree      *bsp.Tree
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer

	options          Options
	blockAssignments []uint32
	stats            FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, tree *bsp.Tree, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil || tree == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := sc.Camera.Validate(); err != nil {
		return nil, err
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("renderer: invalid frame dimensions %dx%d", opts.FrameW, opts.FrameH)
	}
	if opts.NumTracers <= 0 {
		opts.NumTracers = runtime.NumCPU()
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		scene:     sc,
		tree:      tree,
		scheduler: scheduler,
		options:   opts,
		tracers:   make([]tracer.Tracer, 0, opts.NumTracers),
	}

	for idx := 0; idx < opts.NumTracers; idx++ {
		tr := tracer.NewCPUTracer(fmt.Sprintf("cpu-%d", idx))
		if err := tr.Setup(sc, tree); err != nil {
			tr.Close()
			r.Close()
			return nil, err
		}
		r.tracers = append(r.tracers, tr)
	}

	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.logger.Infof("attached %d tracers", len(r.tracers))
	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get last frame statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render a frame. If ctx is cancelled while tracing, ErrInterrupted is
// returned.
func (r *defaultRenderer) Render(ctx context.Context) (*image.RGBA, error) {
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	frameW, frameH := r.options.FrameW, r.options.FrameH
	r.scene.Camera.SetupProjection(float32(frameW) / float32(frameH))

	frame := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	r.blockAssignments = r.scheduler.Schedule(r.tracers, frameH)

	group, groupCtx := errgroup.WithContext(ctx)
	var blockY uint32 = 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr := tr
		req := tracer.BlockRequest{
			FrameW: frameW,
			FrameH: frameH,
			BlockY: blockY,
			BlockH: blockH,
		}
		group.Go(func() error {
			return tr.Trace(groupCtx, req, frame)
		})
		blockY += blockH
	}

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrInterrupted
		}
		return nil, err
	}

	r.updateStats(time.Since(start))
	r.logger.Infof("rendered %dx%d frame in %s", frameW, frameH, r.stats.RenderTime)
	return frame, nil
}

// Collect tracer statistics for the last rendered frame.
func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime
	r.stats.Tracers = make([]TracerStat, len(r.tracers))
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		stat := TracerStat{
			Id:           tr.Id(),
			BlockH:       blockH,
			FramePercent: 100.0 * float32(blockH) / float32(r.options.FrameH),
		}
		if blockH != 0 {
			trStats := tr.Stats()
			stat.RenderTime = time.Duration(trStats.BlockTime)
			stat.Rays = trStats.Rays
			stat.Hits = trStats.Hits
		}
		r.stats.Tracers[idx] = stat
	}
}
