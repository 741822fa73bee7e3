package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/types"
)

// Hits closer than this distance are ignored to avoid self-intersections.
const hitEpsilon float32 = 1e-6

// Rays whose direction is closer than this sine to the triangle plane are
// treated as parallel.
const parallelEpsilon float32 = 1e-6

// A Surface is a primitive that can be shaded.
type Surface interface {
	bsp.Primitive

	// Get the surface normal at the hit point recorded by ray.
	Normal(ray *bsp.Ray) types.Vec3

	// Get the surface material.
	Material() *Material
}

// Triangle primitive.
type Triangle struct {
	Vertices [3]types.Vec3

	// Optional per-vertex normals; if not set the face normal is used.
	Normals    [3]types.Vec3
	hasNormals bool

	edge1, edge2 types.Vec3
	normal       types.Vec3
	crossLen     float32
	bbox         bsp.BBox
	material     *Material
}

// Create new triangle primitive.
func NewTriangle(vertices [3]types.Vec3, material *Material) *Triangle {
	tri := &Triangle{
		Vertices: vertices,
		edge1:    vertices[1].Sub(vertices[0]),
		edge2:    vertices[2].Sub(vertices[0]),
		bbox:     bsp.EmptyBBox(),
		material: material,
	}
	cross := tri.edge1.Cross(tri.edge2)
	tri.normal = cross.Normalize()
	tri.crossLen = cross.Len()
	for _, v := range vertices {
		tri.bbox.Extend(v)
	}
	return tri
}

// Set per-vertex normals which are interpolated when shading.
func (t *Triangle) SetNormals(normals [3]types.Vec3) {
	for idx, n := range normals {
		t.Normals[idx] = n.Normalize()
	}
	t.hasNormals = true
}

func (t *Triangle) BBox() bsp.BBox {
	return t.bbox
}

// Intersect the triangle with the ray using the Möller-Trumbore algorithm.
// On a hit, ray.U and ray.V receive the barycentric coords of the hit point
// relative to the second and third vertex.
func (t *Triangle) Intersect(ray *bsp.Ray) bool {
	pvec := ray.Dir.Cross(t.edge2)
	det := t.edge1.Dot(pvec)

	// det = dir·(edge2×edge1) so it scales with the triangle area and the
	// direction length. Ray is parallel to the triangle plane (or the
	// triangle is degenerate) when the angle between them is ~0.
	if absf(det) <= parallelEpsilon*t.crossLen*ray.Dir.Len() {
		return false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Sub(t.Vertices[0])
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(t.edge1)
	v := ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	dist := t.edge2.Dot(qvec) * invDet
	if dist < hitEpsilon || dist >= ray.T {
		return false
	}

	ray.T = dist
	ray.Hit = t
	ray.U, ray.V = u, v
	return true
}

func (t *Triangle) Normal(ray *bsp.Ray) types.Vec3 {
	if !t.hasNormals {
		return t.normal
	}

	w := 1 - ray.U - ray.V
	return t.Normals[0].Mul(w).Add(t.Normals[1].Mul(ray.U)).Add(t.Normals[2].Mul(ray.V)).Normalize()
}

func (t *Triangle) Material() *Material {
	return t.material
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle{%v, %v, %v}", t.Vertices[0], t.Vertices[1], t.Vertices[2])
}

// Sphere primitive.
type Sphere struct {
	Center types.Vec3
	Radius float32

	material *Material
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float32, material *Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

func (s *Sphere) BBox() bsp.BBox {
	r := types.Vec3{s.Radius, s.Radius, s.Radius}
	return bsp.NewBBox(s.Center.Sub(r), s.Center.Add(r))
}

// Intersect the sphere with the ray by solving the quadratic
// |o + t*d - c|^2 = r^2 for the closest t in front of the ray origin.
func (s *Sphere) Intersect(ray *bsp.Ray) bool {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return false
	}
	sqrtDisc := float32(math.Sqrt(float64(disc)))

	dist := (-halfB - sqrtDisc) / a
	if dist < hitEpsilon {
		// Origin is inside the sphere; use the far root
		dist = (-halfB + sqrtDisc) / a
		if dist < hitEpsilon {
			return false
		}
	}
	if dist >= ray.T {
		return false
	}

	ray.T = dist
	ray.Hit = s
	ray.U, ray.V = 0, 0
	return true
}

func (s *Sphere) Normal(ray *bsp.Ray) types.Vec3 {
	return ray.Point(ray.T).Sub(s.Center).Normalize()
}

func (s *Sphere) Material() *Material {
	return s.material
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere{center: %v, radius: %3.3f}", s.Center, s.Radius)
}

// Axis-aligned box primitive.
type Box struct {
	bounds   bsp.BBox
	material *Material
}

// Create new box primitive spanning two corners.
func NewBox(c0, c1 types.Vec3, material *Material) *Box {
	return &Box{
		bounds:   bsp.NewBBox(c0, c1),
		material: material,
	}
}

func (b *Box) BBox() bsp.BBox {
	return b.bounds
}

// Intersect the box with the ray. If the ray starts inside the box the hit
// is reported at the point where the ray exits it.
func (b *Box) Intersect(ray *bsp.Ray) bool {
	t0, t1, ok := b.bounds.Clip(ray)
	if !ok {
		return false
	}

	dist := t0
	if dist < hitEpsilon {
		dist = t1
		if dist < hitEpsilon {
			return false
		}
	}
	if dist >= ray.T {
		return false
	}

	ray.T = dist
	ray.Hit = b
	ray.U, ray.V = 0, 0
	return true
}

// Normal returns the normal of the box face closest to the hit point.
func (b *Box) Normal(ray *bsp.Ray) types.Vec3 {
	p := ray.Point(ray.T)

	var normal types.Vec3
	bestDist := float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if d := absf(p[axis] - b.bounds.Min[axis]); d < bestDist {
			bestDist = d
			normal = types.Vec3{}
			normal[axis] = -1
		}
		if d := absf(p[axis] - b.bounds.Max[axis]); d < bestDist {
			bestDist = d
			normal = types.Vec3{}
			normal[axis] = 1
		}
	}
	return normal
}

func (b *Box) Material() *Material {
	return b.material
}

func (b *Box) String() string {
	return fmt.Sprintf("Box{min: %v, max: %v}", b.bounds.Min, b.bounds.Max)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
