// Package profile extracts and represents the 2D generatrix of a solid of
// revolution: the ordered (radius, z) boundary the operation planners cut
// against.
package profile

import (
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// Segment is one boundary piece of the profile. Points use X as the radius.
// Linear marks segments that are straight within the extraction tolerance;
// curved segments carry their sampled interior points so consumers can
// re-derive intermediate radii.
type Segment struct {
	Start  model.Point2D `json:"start"`
	End    model.Point2D `json:"end"`
	Linear bool          `json:"linear"`

	// interior samples for curved segments, exclusive of the endpoints
	interior []model.Point2D
}

// Length returns the chord length of the segment.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// Profile is an ordered segment sequence sorted by non-decreasing Z.
// An empty profile is a valid, checkable state.
type Profile struct {
	Segments []Segment `json:"segments"`
}

// IsEmpty reports whether extraction produced no usable boundary.
func (p *Profile) IsEmpty() bool {
	return p == nil || len(p.Segments) == 0
}

// MinZ returns the smallest Z covered by the profile.
func (p *Profile) MinZ() float64 {
	if p.IsEmpty() {
		return 0
	}
	return p.Segments[0].Start.Z
}

// MaxZ returns the largest Z covered by the profile.
func (p *Profile) MaxZ() float64 {
	if p.IsEmpty() {
		return 0
	}
	return p.Segments[len(p.Segments)-1].End.Z
}

// MinRadius returns the smallest radius over all segment endpoints.
func (p *Profile) MinRadius() float64 {
	if p.IsEmpty() {
		return 0
	}
	min := math.Inf(1)
	for _, s := range p.Segments {
		if s.Start.X < min {
			min = s.Start.X
		}
		if s.End.X < min {
			min = s.End.X
		}
	}
	return min
}

// MaxRadius returns the largest radius over all segment endpoints.
func (p *Profile) MaxRadius() float64 {
	if p.IsEmpty() {
		return 0
	}
	max := math.Inf(-1)
	for _, s := range p.Segments {
		if s.Start.X > max {
			max = s.Start.X
		}
		if s.End.X > max {
			max = s.End.X
		}
	}
	return max
}

// RadiusAt interpolates the profile radius at the given Z. ok is false when
// z falls outside the covered span.
func (p *Profile) RadiusAt(z float64) (r float64, ok bool) {
	if p.IsEmpty() {
		return 0, false
	}
	for _, s := range p.Segments {
		lo, hi := s.Start.Z, s.End.Z
		if z < lo || z > hi {
			continue
		}
		if hi-lo < 1e-12 {
			return math.Max(s.Start.X, s.End.X), true
		}
		t := (z - lo) / (hi - lo)
		return s.Start.X + t*(s.End.X-s.Start.X), true
	}
	return 0, false
}

// ToPoints converts the profile to a Z-ordered point array. Linear segments
// contribute their endpoints; curved segments are subdivided so no interior
// sample is skipped by more than chordTol. The first and last points always
// match the first and last segment endpoints.
func (p *Profile) ToPoints(chordTol float64) []model.Point2D {
	if p.IsEmpty() {
		return nil
	}
	var pts []model.Point2D
	push := func(pt model.Point2D) {
		if n := len(pts); n > 0 {
			last := pts[n-1]
			if math.Abs(last.X-pt.X) < 1e-9 && math.Abs(last.Z-pt.Z) < 1e-9 {
				return
			}
		}
		pts = append(pts, pt)
	}
	for _, s := range p.Segments {
		push(s.Start)
		if !s.Linear {
			for _, ip := range s.interior {
				// keep only samples that deviate from the chord by more
				// than the requested tolerance
				if chordDeviation(s.Start, s.End, ip) > chordTol {
					push(ip)
				}
			}
		}
		push(s.End)
	}
	return pts
}

// RevolvedVolume returns the volume in mm³ of the solid of revolution
// described by the profile, integrated as a stack of cone frustums over
// consecutive profile points.
func (p *Profile) RevolvedVolume(chordTol float64) float64 {
	pts := p.ToPoints(chordTol)
	var v float64
	for i := 1; i < len(pts); i++ {
		r1, r2 := pts[i-1].X, pts[i].X
		h := pts[i].Z - pts[i-1].Z
		if h <= 0 {
			continue
		}
		v += math.Pi * h * (r1*r1 + r1*r2 + r2*r2) / 3.0
	}
	return v
}

// chordDeviation returns the distance from pt to the chord a→b.
func chordDeviation(a, b, pt model.Point2D) float64 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	l := math.Sqrt(dx*dx + dz*dz)
	if l < 1e-12 {
		return pt.DistanceTo(a)
	}
	// perpendicular distance via the 2D cross product
	return math.Abs(dx*(a.Z-pt.Z)-dz*(a.X-pt.X)) / l
}
