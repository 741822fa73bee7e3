package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/types"
)

// Basis vectors shorter than this are treated as zero.
const basisEpsilon float32 = 1e-6

// The camera type generates primary rays for each frame pixel.
type Camera struct {
	Eye  types.Vec3
	Look types.Vec3
	Up   types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	// Camera basis and the half extents of the image plane at unit
	// distance; populated by SetupProjection.
	forward, right, up types.Vec3
	halfW, halfH       float32
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		Eye:  types.Vec3{0, 0, 0},
		Look: types.Vec3{0, 0, -1},
		Up:   types.Vec3{0, 1, 0},
		FOV:  fov,
	}
}

// Check that the camera settings define a usable projection: the eye must
// not coincide with the look-at point, the up vector must not be parallel to
// the view direction and the field of view must lie in (0, 180).
func (c *Camera) Validate() error {
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: field of view %3.1f outside (0, 180)", ErrInvalidCamera, c.FOV)
	}

	view := c.Look.Sub(c.Eye)
	if view.Len() < basisEpsilon {
		return fmt.Errorf("%w: eye and look positions coincide at %v", ErrInvalidCamera, c.Eye)
	}
	if view.Normalize().Cross(c.Up.Normalize()).Len() < basisEpsilon {
		return fmt.Errorf("%w: up vector %v is parallel to view direction %v", ErrInvalidCamera, c.Up, view)
	}
	return nil
}

// Setup camera basis for the given frame aspect ratio (width / height).
// It must be called again whenever Eye, Look, Up or FOV change. The result
// is undefined for cameras that do not pass Validate.
func (c *Camera) SetupProjection(aspect float32) {
	c.forward = c.Look.Sub(c.Eye).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.up = c.right.Cross(c.forward)

	c.halfH = float32(math.Tan(float64(c.FOV) * math.Pi / 360.0))
	c.halfW = c.halfH * aspect
}

// Generate a ray through the center of pixel (x, y). Pixel (0, 0) is the
// top-left corner of the frame.
func (c *Camera) Ray(x, y, frameW, frameH uint32) *bsp.Ray {
	ndcX := 2*(float32(x)+0.5)/float32(frameW) - 1
	ndcY := 1 - 2*(float32(y)+0.5)/float32(frameH)

	dir := c.forward.
		Add(c.right.Mul(ndcX * c.halfW)).
		Add(c.up.Mul(ndcY * c.halfH)).
		Normalize()

	return bsp.NewRay(c.Eye, dir)
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera{eye: %v, look: %v, up: %v, fov: %3.1f}", c.Eye, c.Look, c.Up, c.FOV)
}
