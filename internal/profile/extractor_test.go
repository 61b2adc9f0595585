package profile

import (
	"math"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

const testTol = 0.05

func TestExtractCylinder(t *testing.T) {
	solid := geom.Cylinder(10, 50)
	prof, err := Extract(solid, geom.ZAxis(), testTol)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if prof.IsEmpty() {
		t.Fatal("cylinder profile should not be empty")
	}

	if got := prof.MinZ(); math.Abs(got) > 2*testTol {
		t.Errorf("MinZ = %.4f, want ~0", got)
	}
	if got := prof.MaxZ(); math.Abs(got-50) > 2*testTol {
		t.Errorf("MaxZ = %.4f, want ~50", got)
	}

	// constant radius everywhere on the barrel
	for _, z := range []float64{5, 25, 45} {
		r, ok := prof.RadiusAt(z)
		if !ok {
			t.Fatalf("RadiusAt(%.0f) not covered", z)
		}
		if math.Abs(r-10) > 2*testTol {
			t.Errorf("RadiusAt(%.0f) = %.4f, want ~10", z, r)
		}
	}
}

func TestExtractSegmentsSortedByZ(t *testing.T) {
	solid := geom.SteppedShaft([]geom.ShaftStep{
		{Radius: 20, Length: 30},
		{Radius: 12, Length: 30},
		{Radius: 8, Length: 20},
	})
	prof, err := Extract(solid, geom.ZAxis(), testTol)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i := 1; i < len(prof.Segments); i++ {
		if prof.Segments[i].Start.Z < prof.Segments[i-1].Start.Z {
			t.Fatalf("segment %d starts at Z %.4f before segment %d at Z %.4f",
				i, prof.Segments[i].Start.Z, i-1, prof.Segments[i-1].Start.Z)
		}
	}
	if got := prof.MaxRadius(); math.Abs(got-20) > 2*testTol {
		t.Errorf("MaxRadius = %.4f, want ~20", got)
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := Extract(nil, geom.ZAxis(), 0.01); err == nil {
		t.Error("nil solid must be an error")
	}
	badAxis := geom.Axis{}
	if _, err := Extract(geom.Cylinder(5, 10), badAxis, 0.01); err == nil {
		t.Error("degenerate axis must be an error")
	}
	if _, err := Extract(geom.Cylinder(5, 10), geom.ZAxis(), 0); err == nil {
		t.Error("zero tolerance must be an error")
	}
	if _, err := Extract(geom.Cylinder(5, 10), geom.ZAxis(), -1); err == nil {
		t.Error("negative tolerance must be an error")
	}
}

func TestExtractGeometryErrorType(t *testing.T) {
	_, err := Extract(nil, geom.ZAxis(), 0.01)
	if _, ok := err.(*model.GeometryError); !ok {
		t.Errorf("error type = %T, want *model.GeometryError", err)
	}
}

func TestToPointsOrderedAndBounded(t *testing.T) {
	solid := geom.Cylinder(10, 40)
	prof, err := Extract(solid, geom.ZAxis(), testTol)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	pts := prof.ToPoints(0.01)
	if len(pts) < 2 {
		t.Fatalf("expected at least two points, got %d", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Z < pts[i-1].Z {
			t.Fatalf("points not ordered by Z at index %d", i)
		}
	}
	if math.Abs(pts[0].Z-prof.MinZ()) > 1e-9 {
		t.Errorf("first point Z = %.4f, want profile MinZ %.4f", pts[0].Z, prof.MinZ())
	}
	if math.Abs(pts[len(pts)-1].Z-prof.MaxZ()) > 1e-9 {
		t.Errorf("last point Z = %.4f, want profile MaxZ %.4f", pts[len(pts)-1].Z, prof.MaxZ())
	}
}

func TestRevolvedVolumeCylinder(t *testing.T) {
	solid := geom.Cylinder(10, 50)
	prof, err := Extract(solid, geom.ZAxis(), testTol)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := math.Pi * 10 * 10 * 50
	got := prof.RevolvedVolume(0.01)
	if math.Abs(got-want)/want > 0.02 {
		t.Errorf("RevolvedVolume = %.1f, want within 2%% of %.1f", got, want)
	}
}

func TestGroovedProfileHasReducedRadius(t *testing.T) {
	solid := geom.Grooved(10, 60, 30, 6, 3)
	prof, err := Extract(solid, geom.ZAxis(), testTol)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	r, ok := prof.RadiusAt(30)
	if !ok {
		t.Fatal("groove center not covered")
	}
	if math.Abs(r-7) > 0.2 {
		t.Errorf("radius at groove center = %.4f, want ~7", r)
	}
	if got := prof.MinRadius(); got > 7.2 {
		t.Errorf("MinRadius = %.4f, should reflect the groove floor", got)
	}
}
