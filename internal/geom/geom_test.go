package geom

import (
	"math"
	"testing"
)

func TestCylinderDistanceSigns(t *testing.T) {
	c := Cylinder(10, 50)

	inside := Point3D{X: 0, Y: 0, Z: 25}
	if d := c.Distance(inside); d >= 0 {
		t.Errorf("axis point distance = %.3f, want negative (inside)", d)
	}
	outside := Point3D{X: 15, Y: 0, Z: 25}
	if d := c.Distance(outside); d <= 0 {
		t.Errorf("outside point distance = %.3f, want positive", d)
	}
	surface := Point3D{X: 10, Y: 0, Z: 25}
	if d := c.Distance(surface); math.Abs(d) > 1e-6 {
		t.Errorf("surface point distance = %.6f, want ~0", d)
	}
}

func TestCylinderBounds(t *testing.T) {
	c := Cylinder(10, 50)
	b := c.Bounds()
	if b.Min.Z > 1e-6 || b.Max.Z < 50-1e-6 {
		t.Errorf("Z bounds [%.3f, %.3f], want covering [0, 50]", b.Min.Z, b.Max.Z)
	}
	if b.Max.X < 10-1e-6 || b.Min.X > -10+1e-6 {
		t.Errorf("X bounds [%.3f, %.3f], want covering [-10, 10]", b.Min.X, b.Max.X)
	}
}

func TestSteppedShaftRadii(t *testing.T) {
	s := SteppedShaft([]ShaftStep{
		{Radius: 20, Length: 30},
		{Radius: 10, Length: 30},
	})

	// fat section
	if d := s.Distance(Point3D{X: 15, Y: 0, Z: 15}); d >= 0 {
		t.Errorf("point inside the 20mm section: distance = %.3f", d)
	}
	// same radius in the thin section is outside
	if d := s.Distance(Point3D{X: 15, Y: 0, Z: 45}); d <= 0 {
		t.Errorf("point outside the 10mm section: distance = %.3f", d)
	}
}

func TestGroovedRemovesRing(t *testing.T) {
	g := Grooved(10, 60, 30, 6, 3)

	// inside the groove band the outer radius is reduced to 7
	if d := g.Distance(Point3D{X: 8.5, Y: 0, Z: 30}); d <= 0 {
		t.Errorf("point in the groove void: distance = %.3f, want positive", d)
	}
	if d := g.Distance(Point3D{X: 6, Y: 0, Z: 30}); d >= 0 {
		t.Errorf("point below the groove floor: distance = %.3f, want negative", d)
	}
	// outside the groove band the full radius survives
	if d := g.Distance(Point3D{X: 8.5, Y: 0, Z: 10}); d >= 0 {
		t.Errorf("point on the barrel: distance = %.3f, want negative", d)
	}
}

func TestAxisValid(t *testing.T) {
	if !ZAxis().Valid() {
		t.Error("the standard Z axis must be valid")
	}
	if (Axis{}).Valid() {
		t.Error("a zero-direction axis must be invalid")
	}
}

func TestVectorOps(t *testing.T) {
	v := Vector3D{X: 3, Y: 4, Z: 0}
	if math.Abs(v.Length()-5) > 1e-9 {
		t.Errorf("Length = %.3f, want 5", v.Length())
	}
	n := v.Normalized()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("normalized length = %.6f, want 1", n.Length())
	}
	x := Vector3D{X: 1}
	y := Vector3D{Y: 1}
	cross := x.Cross(y)
	if cross != (Vector3D{Z: 1}) {
		t.Errorf("x×y = %+v, want +z", cross)
	}
	if x.Dot(y) != 0 {
		t.Error("orthogonal dot product should be zero")
	}
}
