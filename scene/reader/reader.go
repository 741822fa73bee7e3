package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/bsptrace/asset"
	"github.com/achilleasa/bsptrace/scene"
)

// Options that control how scene files are parsed.
type Options struct {
	// Multiplier applied to all vertex coordinates.
	Scale float32
}

func DefaultOptions() Options {
	return Options{Scale: 1}
}

type sceneReader interface {
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a file or URL. The reader implementation is selected based
// on the file extension.
func ReadScene(pathToScene string, opts Options) (*scene.Scene, error) {
	res, err := asset.NewResource(pathToScene, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res, opts)
}

// Read scene from an already opened resource.
func Read(res *asset.Resource, opts Options) (*scene.Scene, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	var r sceneReader
	switch ext := strings.ToLower(filepath.Ext(res.Name())); ext {
	case ".obj":
		r = newWavefrontReader(opts)
	default:
		return nil, fmt.Errorf("reader: unsupported file extension '%s'", ext)
	}

	return r.Read(res)
}
