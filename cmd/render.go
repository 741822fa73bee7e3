package cmd

import (
	"context"
	"fmt"
	"image/png"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/achilleasa/bsptrace/renderer"
	"github.com/achilleasa/bsptrace/tracer"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := frameOptions(ctx.Int("width"), ctx.Int("height"), ctx.Int("tracers"))
	if err != nil {
		return err
	}
	scheduler, err := newScheduler(ctx.String("scheduler"))
	if err != nil {
		return err
	}

	sc, tree, err := loadScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, tree, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	// Abort rendering on ctrl+c
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Notice("rendering frame")
	frame, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	// Display stats
	logger.Noticef("frame statistics\n%s", r.Stats().Table())

	// Export PNG
	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1000000)

	return nil
}

// Validate the frame flags and convert them to renderer options.
func frameOptions(width, height, tracers int) (renderer.Options, error) {
	if width <= 0 || height <= 0 {
		return renderer.Options{}, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if int64(width) > math.MaxUint32 || int64(height) > math.MaxUint32 {
		return renderer.Options{}, fmt.Errorf("frame dimensions %dx%d are too large", width, height)
	}
	if tracers < 0 {
		return renderer.Options{}, fmt.Errorf("invalid number of tracers %d", tracers)
	}

	return renderer.Options{
		FrameW:     uint32(width),
		FrameH:     uint32(height),
		NumTracers: tracers,
	}, nil
}

// Select a block scheduler by name.
func newScheduler(name string) (tracer.BlockScheduler, error) {
	switch strings.ToLower(name) {
	case "naive":
		return tracer.NaiveScheduler(), nil
	case "perfect":
		return tracer.PerfectScheduler(), nil
	}
	return nil, fmt.Errorf("unknown block scheduler '%s'; supported values are: naive, perfect", name)
}
