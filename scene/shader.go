package scene

import (
	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/types"
)

// EyelightShader colors hits by their material diffuse color scaled by the
// cosine of the angle between the surface normal and the ray.
type EyelightShader struct {
	BgColor types.Vec3
}

// Shade returns the color for a ray that was traced against the scene tree.
// Rays without a hit, or hits on primitives that are not surfaces, receive
// the background color.
func (s EyelightShader) Shade(ray *bsp.Ray) types.Vec3 {
	if !ray.HasHit() {
		return s.BgColor
	}
	surface, ok := ray.Hit.(Surface)
	if !ok {
		return s.BgColor
	}

	mat := surface.Material()
	if mat == nil {
		mat = DefaultMaterial()
	}

	cosTheta := surface.Normal(ray).Dot(ray.Dir.Normalize())
	if cosTheta < 0 {
		cosTheta = -cosTheta
	}
	return mat.Kd.Mul(cosTheta)
}
