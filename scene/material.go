package scene

import "github.com/achilleasa/bsptrace/types"

// A Material defines the surface color used by the eyelight shader.
type Material struct {
	Name string

	// Diffuse color.
	Kd types.Vec3
}

// Create a material with the given name and diffuse color.
func NewMaterial(name string, kd types.Vec3) *Material {
	return &Material{
		Name: name,
		Kd:   kd,
	}
}

// Create the material assigned to surfaces that do not specify one.
func DefaultMaterial() *Material {
	return NewMaterial("", types.Vec3{0.7, 0.7, 0.7})
}
