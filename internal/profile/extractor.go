package profile

import (
	"math"
	"sort"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// Sampling bounds for the extraction sweep. The station step adapts to the
// requested tolerance but is clamped so pathological tolerances cannot make
// extraction unbounded.
const (
	minStations = 16
	maxStations = 4096
	bisectIters = 48
)

// Extract sections the solid with the half-plane containing the turning
// axis and returns the positive-radius boundary as an ordered profile.
// Geometry on the mirror side of the axis is discarded by construction:
// the sweep only ever samples positive radii. Segments shorter than
// tolerance are dropped and the result is sorted by non-decreasing Z.
//
// An empty profile with a nil error means the solid never intersects the
// half-plane; callers must check IsEmpty. A nil solid or degenerate axis is
// a GeometryError.
func Extract(solid geom.Solid, axis geom.Axis, tolerance float64) (*Profile, error) {
	if solid == nil {
		return nil, &model.GeometryError{Stage: "section", Reason: "nil part solid"}
	}
	if !axis.Valid() {
		return nil, &model.GeometryError{Stage: "axis", Reason: "degenerate turning axis direction"}
	}
	if tolerance <= 0 {
		return nil, &model.GeometryError{Stage: "profile", Reason: "tolerance must be positive"}
	}

	w := axis.Dir.Normalized()
	u := radialDirection(w)
	bounds := solid.Bounds()

	zLo, zHi, rMax := sweepExtents(bounds, axis.Origin, w)
	if zHi-zLo < tolerance || rMax <= 0 {
		return &Profile{}, nil
	}

	span := zHi - zLo
	stations := int(span / tolerance)
	if stations < minStations {
		stations = minStations
	}
	if stations > maxStations {
		stations = maxStations
	}
	step := span / float64(stations)

	// Sample the outermost surface radius at each axial station.
	type station struct {
		z, r float64
		hit  bool
	}
	samples := make([]station, 0, stations+1)
	for i := 0; i <= stations; i++ {
		z := zLo + float64(i)*step
		r, hit := surfaceRadius(solid, axis.Origin, w, u, z, rMax, tolerance)
		samples = append(samples, station{z: z, r: r, hit: hit})
	}

	// Chain contiguous hit runs into simplified segments, splitting at gaps
	// where the solid leaves the half-plane.
	var prof Profile
	run := make([]model.Point2D, 0, len(samples))
	flush := func() {
		prof.Segments = append(prof.Segments, simplifyRun(run, tolerance)...)
		run = run[:0]
	}
	for _, s := range samples {
		if !s.hit {
			flush()
			continue
		}
		run = append(run, model.Point2D{X: s.r, Z: s.z})
	}
	flush()

	// Drop fragments shorter than the tolerance.
	kept := prof.Segments[:0]
	for _, s := range prof.Segments {
		if s.Length() >= tolerance {
			kept = append(kept, s)
		}
	}
	prof.Segments = kept

	sort.SliceStable(prof.Segments, func(i, j int) bool {
		return prof.Segments[i].Start.Z < prof.Segments[j].Start.Z
	})
	return &prof, nil
}

// radialDirection picks a unit vector perpendicular to the axis direction,
// fixing the half-plane the sweep samples in.
func radialDirection(w geom.Vector3D) geom.Vector3D {
	ref := geom.Vector3D{X: 1}
	if math.Abs(w.X) > 0.9 {
		ref = geom.Vector3D{Y: 1}
	}
	return w.Cross(ref).Cross(w).Normalized()
}

// sweepExtents projects the solid bounds onto the axis to get the axial
// sweep range and the largest possible radius.
func sweepExtents(b geom.BoundingBox, origin geom.Point3D, w geom.Vector3D) (zLo, zHi, rMax float64) {
	zLo = math.Inf(1)
	zHi = math.Inf(-1)
	for _, x := range [2]float64{b.Min.X, b.Max.X} {
		for _, y := range [2]float64{b.Min.Y, b.Max.Y} {
			for _, z := range [2]float64{b.Min.Z, b.Max.Z} {
				d := geom.Vector3D{X: x - origin.X, Y: y - origin.Y, Z: z - origin.Z}
				axial := d.Dot(w)
				radial := math.Sqrt(math.Max(0, d.Dot(d)-axial*axial))
				if axial < zLo {
					zLo = axial
				}
				if axial > zHi {
					zHi = axial
				}
				if radial > rMax {
					rMax = radial
				}
			}
		}
	}
	return zLo, zHi, rMax
}

// surfaceRadius finds the outermost radius at axial position z where the
// signed distance crosses zero, marching inward from rMax and refining the
// bracket by bisection.
func surfaceRadius(solid geom.Solid, origin geom.Point3D, w, u geom.Vector3D, z, rMax, tolerance float64) (float64, bool) {
	at := func(r float64) float64 {
		p := geom.Point3D{
			X: origin.X + w.X*z + u.X*r,
			Y: origin.Y + w.Y*z + u.Y*r,
			Z: origin.Z + w.Z*z + u.Z*r,
		}
		return solid.Distance(p)
	}

	coarse := math.Max(tolerance, rMax/256)
	outside := rMax + coarse
	inside := -1.0
	for r := rMax; r >= -coarse/2; r -= coarse {
		rr := math.Max(r, 0)
		if at(rr) <= 0 {
			inside = rr
			break
		}
		outside = rr
	}
	if inside < 0 {
		return 0, false
	}
	lo, hi := inside, outside
	for i := 0; i < bisectIters && hi-lo > tolerance*1e-3; i++ {
		mid := (lo + hi) / 2
		if at(mid) <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

// simplifyRun greedily merges a sampled polyline into maximal segments whose
// interior samples stay within tolerance of the chord. Segments whose
// samples hug the chord tightly are flagged linear; the rest keep their
// interior samples and are flagged curved.
func simplifyRun(run []model.Point2D, tolerance float64) []Segment {
	if len(run) < 2 {
		return nil
	}
	var segs []Segment
	anchor := 0
	for anchor < len(run)-1 {
		end := anchor + 1
		for end+1 < len(run) && maxChordDeviation(run, anchor, end+1) <= tolerance {
			end++
		}
		dev := maxChordDeviation(run, anchor, end)
		seg := Segment{
			Start:  run[anchor],
			End:    run[end],
			Linear: dev <= tolerance*0.5,
		}
		if !seg.Linear {
			seg.interior = append(seg.interior, run[anchor+1:end]...)
		}
		segs = append(segs, seg)
		anchor = end
	}
	return segs
}

func maxChordDeviation(run []model.Point2D, lo, hi int) float64 {
	var max float64
	for i := lo + 1; i < hi; i++ {
		if d := chordDeviation(run[lo], run[hi], run[i]); d > max {
			max = d
		}
	}
	return max
}
