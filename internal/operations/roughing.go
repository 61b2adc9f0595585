package operations

import (
	"fmt"
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Roughing strips bulk stock between the raw diameter and the finishing
// boundary, leaving the stock allowance for a later finishing pass. Pass
// order (axial turning vs radial plunging) is chosen by the ratio of axial
// length to radial removal.
type Roughing struct {
	Tool   model.Tool
	Params model.RoughingParameters
}

func NewRoughing(tool model.Tool, params model.RoughingParameters) *Roughing {
	return &Roughing{Tool: tool, Params: params}
}

// NewExternalRoughing returns the external-roughing variant: the same pass
// planner with profile following and pass-direction reversal enabled.
func NewExternalRoughing(tool model.Tool, params model.RoughingParameters) *Roughing {
	params.FollowProfile = true
	params.ReverseDirection = true
	return &Roughing{Tool: tool, Params: params}
}

func (r *Roughing) Name() string              { return "Roughing" }
func (r *Roughing) Type() model.OperationType { return model.OpRoughing }

func (r *Roughing) Validate() bool {
	return r.Params.Validate() == ""
}

func (r *Roughing) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := r.Params.Validate(); reason != "" {
		return nil, notValidated(r.Name(), reason)
	}
	p := r.Params
	if p.FollowProfile && prof.IsEmpty() {
		return nil, &model.GeometryError{Stage: "profile", Reason: "profile following requested on an empty profile"}
	}

	tp := model.NewToolpath("Rough stock", r.Name(), r.Tool)

	axialLen := p.StartZ - p.EndZ
	radialRemoval := (p.StartDiameter - p.EndDiameter) / 2
	if axialLen >= radialRemoval {
		r.axialPasses(tp, prof)
	} else {
		r.radialPasses(tp)
	}
	return tp, nil
}

// targetDiameter is the finishing boundary plus stock on both sides.
func (r *Roughing) targetDiameter() float64 {
	return r.Params.EndDiameter + 2*r.Params.StockAllowance
}

// passDiameters returns the monotonically decreasing pass sequence, each
// pass offset inward by the depth of cut, with the final pass exactly at
// the target diameter.
func (r *Roughing) passDiameters() []float64 {
	p := r.Params
	target := r.targetDiameter()
	var diams []float64
	for d := p.StartDiameter - 2*p.DepthOfCut; d > target+1e-9; d -= 2 * p.DepthOfCut {
		diams = append(diams, d)
	}
	return append(diams, target)
}

// axialPasses turns each pass along Z at a fixed diameter.
func (r *Roughing) axialPasses(tp *model.Toolpath, prof *profile.Profile) {
	p := r.Params
	clearX := p.StartDiameter + 2*p.Clearance
	clearZ := p.StartZ + p.Clearance

	tp.Rapid(model.Point2D{X: clearX, Z: clearZ}, "clearance position")

	diams := r.passDiameters()
	for i, d := range diams {
		zStop := p.EndZ
		if p.FollowProfile {
			zStop = r.profileBound(prof, d)
		}

		reverse := p.ReverseDirection && i%2 == 1
		comment := fmt.Sprintf("rough pass %d/%d D%.2f", i+1, len(diams), d)
		if reverse {
			tp.Rapid(model.Point2D{X: clearX, Z: zStop}, "")
			tp.Rapid(model.Point2D{X: d, Z: zStop}, "")
			r.feedAxial(tp, d, zStop, p.StartZ, comment)
			tp.Rapid(model.Point2D{X: clearX, Z: p.StartZ}, "")
		} else {
			tp.Rapid(model.Point2D{X: d, Z: clearZ}, "")
			tp.Linear(model.Point2D{X: d, Z: p.StartZ}, r.Tool.FeedRate, "")
			r.feedAxial(tp, d, p.StartZ, zStop, comment)
			tp.Rapid(model.Point2D{X: clearX, Z: zStop}, "")
			tp.Rapid(model.Point2D{X: clearX, Z: clearZ}, "")
		}
	}

	tp.Rapid(model.Point2D{X: clearX, Z: clearZ}, "retract to clearance")
}

// feedAxial cuts along Z at diameter d, breaking the chip periodically when
// chip breaking is enabled.
func (r *Roughing) feedAxial(tp *model.Toolpath, d, fromZ, toZ float64, comment string) {
	p := r.Params
	if !p.ChipBreaking {
		tp.Linear(model.Point2D{X: d, Z: toZ}, r.Tool.FeedRate, comment)
		return
	}
	dir := -1.0
	if toZ > fromZ {
		dir = 1.0
	}
	remaining := math.Abs(toZ - fromZ)
	z := fromZ
	first := true
	for remaining > 1e-9 {
		chunk := math.Min(p.ChipBreakEvery, remaining)
		z += dir * chunk
		c := ""
		if first {
			c = comment
			first = false
		}
		tp.Linear(model.Point2D{X: d, Z: z}, r.Tool.FeedRate, c)
		remaining -= chunk
		if remaining > 1e-9 {
			tp.Rapid(model.Point2D{X: d + 2*p.ChipBreakRetract, Z: z}, "chip break")
			tp.Dwell(p.ChipBreakDwell, "")
			tp.Rapid(model.Point2D{X: d, Z: z}, "")
		}
	}
}

// profileBound returns the Z at which a pass at diameter d must stop so it
// never cuts below the finished profile plus stock allowance. Cutting runs
// from high Z toward low Z, so the bound is the largest Z whose profile
// diameter (plus stock on both sides) reaches d.
func (r *Roughing) profileBound(prof *profile.Profile, d float64) float64 {
	p := r.Params
	zStop := p.EndZ
	for _, pt := range prof.ToPoints(p.DepthOfCut / 4) {
		if pt.Z < p.EndZ || pt.Z > p.StartZ {
			continue
		}
		if 2*(pt.X+p.StockAllowance) > d+1e-9 && pt.Z > zStop {
			zStop = pt.Z
		}
	}
	return zStop
}

// radialPasses plunges across X at successive Z stations. Chosen when the
// removal is deeper than it is long.
func (r *Roughing) radialPasses(tp *model.Toolpath) {
	p := r.Params
	clearX := p.StartDiameter + 2*p.Clearance
	target := r.targetDiameter()

	tp.Rapid(model.Point2D{X: clearX, Z: p.StartZ + p.Clearance}, "clearance position")

	span := p.StartZ - p.EndZ
	numStations := int(math.Ceil(span / p.DepthOfCut))
	if numStations < 1 {
		numStations = 1
	}
	for i := 0; i <= numStations; i++ {
		z := p.StartZ - float64(i)*span/float64(numStations)
		tp.Rapid(model.Point2D{X: clearX, Z: z}, "")
		tp.Linear(model.Point2D{X: target, Z: z}, r.Tool.FeedRate,
			fmt.Sprintf("plunge %d/%d", i+1, numStations+1))
		tp.Rapid(model.Point2D{X: clearX, Z: z}, "")
	}

	tp.Rapid(model.Point2D{X: clearX, Z: p.StartZ + p.Clearance}, "retract to clearance")
}
