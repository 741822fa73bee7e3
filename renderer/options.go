package renderer

import "runtime"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of cpu tracers to spawn. If 0, one tracer per cpu is used.
	NumTracers int
}

func DefaultOptions() Options {
	return Options{
		FrameW:     512,
		FrameH:     512,
		NumTracers: runtime.NumCPU(),
	}
}
