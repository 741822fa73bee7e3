package scene

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/bsptrace/bsp"
	"github.com/achilleasa/bsptrace/types"
	"github.com/olekukonko/tablewriter"
)

type Scene struct {
	Camera *Camera

	Materials  []*Material
	Primitives []Surface

	BgColor types.Vec3

	materialSet  map[*Material]struct{}
	primitiveSet map[Surface]struct{}
}

func NewScene() *Scene {
	return &Scene{
		Materials:    make([]*Material, 0),
		Primitives:   make([]Surface, 0),
		materialSet:  make(map[*Material]struct{}),
		primitiveSet: make(map[Surface]struct{}),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	if _, exists := s.materialSet[material]; exists {
		return ErrDuplicateMat
	}
	s.materialSet[material] = struct{}{}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a primitive to the scene. The primitive material must already be
// added to the scene.
func (s *Scene) AddPrimitive(primitive Surface) error {
	if _, exists := s.primitiveSet[primitive]; exists {
		return ErrDuplicatePrim
	}
	mat := primitive.Material()
	if mat == nil {
		return ErrNoMaterial
	}
	if _, known := s.materialSet[mat]; !known {
		return ErrUnknownMaterial
	}

	s.primitiveSet[primitive] = struct{}{}
	s.Primitives = append(s.Primitives, primitive)
	return nil
}

// Get the union of all primitive bounds. An empty scene yields an empty box.
func (s *Scene) BBox() bsp.BBox {
	bounds := bsp.EmptyBBox()
	for _, prim := range s.Primitives {
		bounds.ExtendBBox(prim.BBox())
	}
	return bounds
}

// Partition the scene primitives into a BSP tree.
func (s *Scene) BuildTree(opts bsp.Options) (*bsp.Tree, error) {
	if len(s.Primitives) == 0 {
		return nil, ErrNoPrimitives
	}

	prims := make([]bsp.Primitive, len(s.Primitives))
	for idx, prim := range s.Primitives {
		prims[idx] = prim
	}
	return bsp.NewTree(s.BBox(), prims, opts), nil
}

// Generate a table with scene statistics.
func (s *Scene) Stats() string {
	var triangles, spheres, boxes int
	for _, prim := range s.Primitives {
		switch prim.(type) {
		case *Triangle:
			triangles++
		case *Sphere:
			spheres++
		case *Box:
			boxes++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Materials", "Triangles", "Spheres", "Boxes", "Scene center", "Scene size"})
	center, size := "-", "-"
	if bounds := s.BBox(); !bounds.IsEmpty() {
		center, size = fmt.Sprintf("%v", bounds.Center()), fmt.Sprintf("%v", bounds.Size())
	}
	table.Append([]string{
		fmt.Sprintf("%d", len(s.Materials)),
		fmt.Sprintf("%d", triangles),
		fmt.Sprintf("%d", spheres),
		fmt.Sprintf("%d", boxes),
		center,
		size,
	})
	table.SetFooter([]string{"", "", "", "", "Total primitives", fmt.Sprintf("%d", len(s.Primitives))})
	table.Render()

	return buf.String()
}
