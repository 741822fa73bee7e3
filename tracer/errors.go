package tracer

import "errors"

var (
	ErrNoSceneData      = errors.New("tracer: no scene data attached")
	ErrCameraNotDefined = errors.New("tracer: scene does not define a camera")
	ErrBlockOutOfBounds = errors.New("tracer: block request exceeds frame bounds")
)
