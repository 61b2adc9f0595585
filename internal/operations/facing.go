package operations

import (
	"fmt"
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Facing sweeps the tool radially across the end face of the stock,
// removing material in axial passes until the finished face position (plus
// stock allowance) is reached.
type Facing struct {
	Tool   model.Tool
	Params model.FacingParameters
}

func NewFacing(tool model.Tool, params model.FacingParameters) *Facing {
	return &Facing{Tool: tool, Params: params}
}

func (f *Facing) Name() string              { return "Facing" }
func (f *Facing) Type() model.OperationType { return model.OpFacing }

func (f *Facing) Validate() bool {
	return f.Params.Validate() == ""
}

// GenerateToolpath decomposes the face into axial passes bounded by the
// depth of cut. The toolpath always opens and closes at a rapid clearance
// position above the face.
func (f *Facing) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := f.Params.Validate(); reason != "" {
		return nil, notValidated(f.Name(), reason)
	}
	p := f.Params
	tp := model.NewToolpath("Face front", f.Name(), f.Tool)

	clearX := p.StartDiameter + 2*p.Clearance
	clearZ := p.StartZ + p.Clearance
	finalZ := p.EndZ + p.StockAllowance

	depth := p.DepthOfCut
	switch p.Strategy {
	case model.FacingAdaptiveRoughing:
		depth *= 1.25
	case model.FacingHighSpeed:
		depth *= 0.5
	}

	total := p.StartZ - finalZ
	numPasses := int(math.Ceil(total / depth))
	if numPasses < 1 {
		numPasses = 1
	}

	tp.Rapid(model.Point2D{X: clearX, Z: clearZ}, "clearance position")

	insideOut := p.Strategy == model.FacingInsideOut || p.Strategy == model.FacingClimb
	for pass := 1; pass <= numPasses; pass++ {
		z := p.StartZ - float64(pass)*depth
		if z < finalZ {
			z = finalZ
		}

		outward := insideOut
		if p.Strategy == model.FacingSpiral {
			// alternate sweep direction each pass, no repositioning rapid
			outward = pass%2 == 0
		}

		from, to := p.StartDiameter, p.EndDiameter
		if outward {
			from, to = p.EndDiameter, p.StartDiameter
		}

		tp.Rapid(model.Point2D{X: from, Z: z + p.Clearance}, "")
		tp.Linear(model.Point2D{X: from, Z: z}, f.Tool.FeedRate, fmt.Sprintf("face pass %d/%d", pass, numPasses))
		tp.Linear(model.Point2D{X: to, Z: z}, f.Tool.FeedRate, "")
		tp.Rapid(model.Point2D{X: to, Z: z + p.Clearance}, "")
	}

	tp.Rapid(model.Point2D{X: clearX, Z: clearZ}, "retract to clearance")
	return tp, nil
}
