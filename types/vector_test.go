package types

import (
	"reflect"
	"testing"
)

func TestMinMaxVec3(t *testing.T) {
	v1 := XYZ(1, -2, 3)
	v2 := XYZ(-1, 2, 3)

	expMin := XYZ(-1, -2, 3)
	if min := MinVec3(v1, v2); !reflect.DeepEqual(min, expMin) {
		t.Fatalf("expected min to be %v; got %v", expMin, min)
	}

	expMax := XYZ(1, 2, 3)
	if max := MaxVec3(v1, v2); !reflect.DeepEqual(max, expMax) {
		t.Fatalf("expected max to be %v; got %v", expMax, max)
	}
}

func TestCrossProduct(t *testing.T) {
	out := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0))
	expVal := XYZ(0, 0, 1)
	if !reflect.DeepEqual(out, expVal) {
		t.Fatalf("expected cross product to be %v; got %v", expVal, out)
	}
}

func TestNormalize(t *testing.T) {
	out := XYZ(0, 3, 4).Normalize()
	expVal := XYZ(0, 0.6, 0.8)
	if out.Sub(expVal).Len() > 1e-6 {
		t.Fatalf("expected normalized vector to be %v; got %v", expVal, out)
	}

	if out = (Vec3{}).Normalize(); out != (Vec3{}) {
		t.Fatalf("expected zero vector to normalize to zero; got %v", out)
	}
}

func TestMaxComponent(t *testing.T) {
	type spec struct {
		in  Vec3
		exp int
	}
	specs := []spec{
		{XYZ(3, 2, 1), 0},
		{XYZ(1, 3, 2), 1},
		{XYZ(1, 2, 3), 2},
		{XYZ(1, 1, 1), 2},
	}

	for index, s := range specs {
		if out := s.in.MaxComponent(); out != s.exp {
			t.Fatalf("[spec %d] expected max component of %v to be %d; got %d", index, s.in, s.exp, out)
		}
	}
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3("0, 1.5,-2")
	if err != nil {
		t.Fatal(err)
	}
	expVal := XYZ(0, 1.5, -2)
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}

	expError := "expected 3 comma-separated components; got 2"
	_, err = ParseVec3("1,2")
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = ParseVec3("1,foo,2")
	if err == nil {
		t.Fatal("expected to get a parse error")
	}
}
