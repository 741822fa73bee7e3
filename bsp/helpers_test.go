package bsp

import (
	"math/rand"
	"sync/atomic"

	"github.com/achilleasa/bsptrace/types"
)

// An axis-aligned box primitive that counts intersection tests.
type boxPrimitive struct {
	name  string
	bbox  BBox
	tests int32
}

func newBoxPrimitive(name string, min, max types.Vec3) *boxPrimitive {
	return &boxPrimitive{name: name, bbox: NewBBox(min, max)}
}

func (p *boxPrimitive) BBox() BBox {
	return p.bbox
}

func (p *boxPrimitive) Intersect(ray *Ray) bool {
	atomic.AddInt32(&p.tests, 1)

	t0, t1, ok := p.bbox.Clip(ray)
	if !ok {
		return false
	}

	// If the origin is inside the box we hit its far side
	t := t0
	if t < 0 {
		t = t1
	}
	if t >= ray.T {
		return false
	}

	ray.T = t
	ray.Hit = p
	return true
}

func (p *boxPrimitive) String() string {
	return p.name
}

func sceneBounds(prims []Primitive) BBox {
	bounds := EmptyBBox()
	for _, prim := range prims {
		bounds.ExtendBBox(prim.BBox())
	}
	return bounds
}

// Generate count random boxes inside [-10, 10]^3.
func randomBoxes(rng *rand.Rand, count int) []Primitive {
	prims := make([]Primitive, count)
	for index := range prims {
		var center, halfSize types.Vec3
		for axis := 0; axis < 3; axis++ {
			center[axis] = rng.Float32()*18 - 9
			halfSize[axis] = rng.Float32()*0.9 + 0.01
		}
		prims[index] = newBoxPrimitive("rnd", center.Sub(halfSize), center.Add(halfSize))
	}
	return prims
}

// Generate a ray whose origin lies outside [-10, 10]^3 and which points
// roughly towards the scene center.
func randomRay(rng *rand.Rand) *Ray {
	var origin, target types.Vec3
	for axis := 0; axis < 3; axis++ {
		origin[axis] = rng.Float32()*60 - 30
		target[axis] = rng.Float32()*16 - 8
	}
	origin[rng.Intn(3)] = 25
	return NewRay(origin, target.Sub(origin).Normalize())
}

// Find the closest hit by testing every primitive.
func bruteForceIntersect(prims []Primitive, ray *Ray) bool {
	ray.Reset()
	hit := false
	for _, prim := range prims {
		if prim.Intersect(ray) {
			hit = true
		}
	}
	return hit
}

func collectLeaves(tree *Tree) []*Leaf {
	leaves := make([]*Leaf, 0)
	tree.Walk(func(node Node, _ BBox, _ int) bool {
		if leaf, isLeaf := node.(*Leaf); isLeaf {
			leaves = append(leaves, leaf)
		}
		return true
	})
	return leaves
}
