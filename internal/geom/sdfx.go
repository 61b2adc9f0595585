package geom

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// sdfxSolid wraps an sdf.SDF3 to implement Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// Compile-time interface check.
var _ Solid = (*sdfxSolid)(nil)

// FromSDF3 wraps a kernel solid in the engine's opaque Solid handle.
func FromSDF3(s sdf.SDF3) Solid {
	return &sdfxSolid{s: s}
}

func (w *sdfxSolid) Distance(p Point3D) float64 {
	return w.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (w *sdfxSolid) Bounds() BoundingBox {
	bb := w.s.BoundingBox()
	return BoundingBox{
		Min: Point3D{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: Point3D{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// Cylinder returns a solid cylinder of the given radius spanning z ∈ [0, length],
// centered on the Z axis. Used as raw stock and as a test fixture.
func Cylinder(radius, length float64) Solid {
	s, err := sdf.Cylinder3D(length, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	// Cylinder3D centers the solid at the origin; shift so the back face
	// sits at z=0 and the part grows toward +Z.
	m := sdf.Translate3d(v3.Vec{Z: length / 2})
	return FromSDF3(sdf.Transform3D(s, m))
}

// ShaftStep is one cylindrical section of a stepped shaft, ordered from z=0
// outward.
type ShaftStep struct {
	Radius float64
	Length float64
}

// SteppedShaft builds a union of coaxial cylinders, each stacked along +Z.
// A typical turned-part fixture for extraction and roughing tests.
func SteppedShaft(steps []ShaftStep) Solid {
	var combined sdf.SDF3
	z := 0.0
	for _, st := range steps {
		c, err := sdf.Cylinder3D(st.Length, st.Radius, 0)
		if err != nil {
			panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
		}
		placed := sdf.Transform3D(c, sdf.Translate3d(v3.Vec{Z: z + st.Length/2}))
		if combined == nil {
			combined = placed
		} else {
			combined = sdf.Union3D(combined, placed)
		}
		z += st.Length
	}
	return FromSDF3(combined)
}

// Grooved returns a cylinder with an annular groove cut into it. grooveZ is
// the groove center along the axis; grooveDepth is radial.
func Grooved(radius, length, grooveZ, grooveWidth, grooveDepth float64) Solid {
	outer, err := sdf.Cylinder3D(length, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	outerPlaced := sdf.Transform3D(outer, sdf.Translate3d(v3.Vec{Z: length / 2}))

	// The groove is the difference with a larger, short cylinder ring.
	ring, err := sdf.Cylinder3D(grooveWidth, radius*2, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	core, err := sdf.Cylinder3D(grooveWidth*2, radius-grooveDepth, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	cutter := sdf.Difference3D(ring, core)
	cutterPlaced := sdf.Transform3D(cutter, sdf.Translate3d(v3.Vec{Z: grooveZ}))

	return FromSDF3(sdf.Difference3D(outerPlaced, cutterPlaced))
}
