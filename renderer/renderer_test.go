package renderer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/scene"
	"github.com/achilleasa/bsptrace/tracer"
	"github.com/achilleasa/bsptrace/types"
)

func testScene(t *testing.T) (*scene.Scene, *bsp.Tree) {
	sc := scene.NewScene()
	sc.BgColor = types.Vec3{0, 0, 1}

	cam := scene.NewCamera(60)
	cam.Eye = types.Vec3{0, 0, 10}
	cam.Look = types.Vec3{0, 0, 0}
	sc.SetCamera(cam)

	red := scene.NewMaterial("red", types.Vec3{1, 0, 0})
	green := scene.NewMaterial("green", types.Vec3{0, 1, 0})
	sc.AddMaterial(red)
	sc.AddMaterial(green)

	for i := -2; i <= 2; i++ {
		x := float32(i) * 1.5
		if err := sc.AddPrimitive(scene.NewSphere(types.Vec3{x, 0, 0}, 0.5, red)); err != nil {
			t.Fatal(err)
		}
	}
	sc.AddPrimitive(scene.NewBox(types.Vec3{-4, -3, -2}, types.Vec3{4, -2, -1}, green))

	tree, err := sc.BuildTree(bsp.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return sc, tree
}

func TestNewDefaultErrors(t *testing.T) {
	sc, tree := testScene(t)
	opts := Options{FrameW: 16, FrameH: 16, NumTracers: 2}

	if _, err := NewDefault(nil, tree, tracer.NaiveScheduler(), opts); err != ErrSceneNotDefined {
		t.Fatalf("expected to get ErrSceneNotDefined; got %v", err)
	}

	cam := sc.Camera
	sc.Camera = nil
	if _, err := NewDefault(sc, tree, tracer.NaiveScheduler(), opts); err != ErrCameraNotDefined {
		t.Fatalf("expected to get ErrCameraNotDefined; got %v", err)
	}
	sc.Camera = cam

	// Looking straight down with the default +Y up vector
	sc.Camera = scene.NewCamera(60)
	sc.Camera.Eye = types.Vec3{0, 10, 0}
	sc.Camera.Look = types.Vec3{0, 0, 0}
	if _, err := NewDefault(sc, tree, tracer.NaiveScheduler(), opts); !errors.Is(err, scene.ErrInvalidCamera) {
		t.Fatalf("expected to get ErrInvalidCamera; got %v", err)
	}
	sc.Camera = cam

	if _, err := NewDefault(sc, tree, tracer.NaiveScheduler(), Options{FrameW: 0, FrameH: 16}); err == nil {
		t.Fatal("expected to get an error for an empty frame")
	}
}

func TestRenderFrame(t *testing.T) {
	sc, tree := testScene(t)

	// A single tracer renders the reference frame
	ref, err := NewDefault(sc, tree, tracer.NaiveScheduler(), Options{FrameW: 32, FrameH: 24, NumTracers: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer ref.Close()
	refFrame, err := ref.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewDefault(sc, tree, tracer.PerfectScheduler(), Options{FrameW: 32, FrameH: 24, NumTracers: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	// Render twice so the perfect scheduler uses the collected stats
	for pass := 0; pass < 2; pass++ {
		frame, err := r.Render(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		for idx := range refFrame.Pix {
			if frame.Pix[idx] != refFrame.Pix[idx] {
				t.Fatalf("[pass %d] expected frame rendered by 4 tracers to match the single tracer frame at byte %d", pass, idx)
			}
		}

		stats := r.Stats()
		if len(stats.Tracers) != 4 {
			t.Fatalf("[pass %d] expected stats for 4 tracers; got %d", pass, len(stats.Tracers))
		}
		var rows uint32
		var rays uint64
		for _, stat := range stats.Tracers {
			rows += stat.BlockH
			rays += stat.Rays
		}
		if rows != 24 {
			t.Fatalf("[pass %d] expected block heights to add up to 24; got %d", pass, rows)
		}
		if rays != 32*24 {
			t.Fatalf("[pass %d] expected %d rays; got %d", pass, 32*24, rays)
		}
	}

	// The center pixel hits the middle sphere
	c := refFrame.RGBAAt(16, 12)
	if c.R == 0 || c.B != 0 {
		t.Fatalf("expected center pixel to hit the red sphere; got %v", c)
	}

	table := r.Stats().Table()
	if !strings.Contains(table, "cpu-3") || !strings.Contains(table, "TOTAL") {
		t.Fatalf("unexpected stats table:\n%s", table)
	}
}

func TestRenderInterrupted(t *testing.T) {
	sc, tree := testScene(t)
	r, err := NewDefault(sc, tree, tracer.NaiveScheduler(), Options{FrameW: 16, FrameH: 16, NumTracers: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err = r.Render(ctx); err != ErrInterrupted {
		t.Fatalf("expected to get ErrInterrupted; got %v", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	sc, tree := testScene(t)
	r, err := NewDefault(sc, tree, tracer.NaiveScheduler(), Options{FrameW: 16, FrameH: 16, NumTracers: 1})
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	if _, err = r.Render(context.Background()); err != ErrNoTracers {
		t.Fatalf("expected to get ErrNoTracers; got %v", err)
	}
}
