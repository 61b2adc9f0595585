package operations

import (
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Finishing makes a single profile-following pass at the final,
// stock-allowance-free boundary, visiting every ordered profile point.
type Finishing struct {
	Tool   model.Tool
	Params model.FinishingParameters
}

func NewFinishing(tool model.Tool, params model.FinishingParameters) *Finishing {
	return &Finishing{Tool: tool, Params: params}
}

func (f *Finishing) Name() string              { return "Finishing" }
func (f *Finishing) Type() model.OperationType { return model.OpFinishing }

func (f *Finishing) Validate() bool {
	return f.Params.Validate() == ""
}

func (f *Finishing) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := f.Params.Validate(); reason != "" {
		return nil, notValidated(f.Name(), reason)
	}
	if prof.IsEmpty() {
		return nil, &model.GeometryError{Stage: "profile", Reason: "finishing requires a non-empty profile"}
	}
	p := f.Params
	tp := model.NewToolpath("Finish profile", f.Name(), f.Tool)

	pts := prof.ToPoints(p.ChordTol)
	// Cut from the free end toward the chuck: walk the ordered points in
	// descending Z.
	first := pts[len(pts)-1]
	last := pts[0]

	clearX := 2*prof.MaxRadius() + 2*p.Clearance
	tp.Rapid(model.Point2D{X: clearX, Z: first.Z + p.Clearance}, "clearance position")
	tp.Rapid(model.Point2D{X: 2 * first.X, Z: first.Z + p.LeadInLength}, "lead-in")
	tp.Linear(model.Point2D{X: 2 * first.X, Z: first.Z}, f.Tool.FeedRate, "finish pass")

	for i := len(pts) - 2; i >= 0; i-- {
		tp.Linear(model.Point2D{X: 2 * pts[i].X, Z: pts[i].Z}, f.Tool.FeedRate, "")
	}

	tp.Linear(model.Point2D{X: 2*last.X + 2*p.LeadOutLength, Z: last.Z}, f.Tool.FeedRate, "lead-out")
	tp.Rapid(model.Point2D{X: clearX, Z: first.Z + p.Clearance}, "retract to clearance")
	return tp, nil
}
