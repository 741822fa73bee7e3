package scene

import "errors"

var (
	ErrNoPrimitives    = errors.New("scene: no primitives defined")
	ErrNoMaterial      = errors.New("scene: no material assigned to primitive")
	ErrUnknownMaterial = errors.New("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
	ErrDuplicateMat    = errors.New("scene: material already added")
	ErrDuplicatePrim   = errors.New("scene: primitive already added")
	ErrInvalidCamera   = errors.New("scene: invalid camera")
)
