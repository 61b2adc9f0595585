// Package geom defines the geometric value types and the opaque solid-model
// handle the toolpath engine works against. The geometry kernel itself
// (github.com/deadsy/sdfx) stays behind the Solid interface so the rest of
// the system never depends on a specific kernel type.
package geom

import "math"

// Point3D is a position in 3D model space, in mm.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector3D is a direction in 3D model space.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the Euclidean norm.
func (v Vector3D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction. The zero vector is
// returned unchanged; callers validating an axis must check Length first.
func (v Vector3D) Normalized() Vector3D {
	l := v.Length()
	if l < 1e-12 {
		return v
	}
	return Vector3D{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

// Cross returns the cross product v × w.
func (v Vector3D) Cross(w Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product v · w.
func (v Vector3D) Dot(w Vector3D) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// BoundingBox is an axis-aligned box in model space.
type BoundingBox struct {
	Min Point3D `json:"min"`
	Max Point3D `json:"max"`
}

// Diagonal returns the length of the box diagonal.
func (b BoundingBox) Diagonal() float64 {
	return Vector3D{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y, Z: b.Max.Z - b.Min.Z}.Length()
}

// Axis is the lathe turning axis: an origin point and a direction. All
// profile radius/Z coordinates are measured against it.
type Axis struct {
	Origin Point3D  `json:"origin"`
	Dir    Vector3D `json:"dir"`
}

// ZAxis returns the conventional turning axis through the origin along +Z.
func ZAxis() Axis {
	return Axis{Dir: Vector3D{Z: 1}}
}

// Valid reports whether the axis direction is usable.
func (a Axis) Valid() bool {
	return a.Dir.Length() > 1e-9
}

// Solid is an opaque handle to a geometry-kernel solid. Implementations wrap
// their internal representation; Distance is the signed distance to the
// surface, negative inside the material.
type Solid interface {
	Distance(p Point3D) float64
	Bounds() BoundingBox
}
