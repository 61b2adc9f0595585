package operations

import (
	"strings"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Contouring is a coordinator, not an independent cutter: it sequences
// facing, roughing, and finishing over one shared profile, each
// individually toggleable, and aggregates their statistics.
type Contouring struct {
	Tool   model.Tool
	Params model.ContouringParameters

	stats model.OperationStats
}

func NewContouring(tool model.Tool, params model.ContouringParameters) *Contouring {
	return &Contouring{Tool: tool, Params: params}
}

func (c *Contouring) Name() string              { return "Contouring" }
func (c *Contouring) Type() model.OperationType { return model.OpContouring }

func (c *Contouring) Validate() bool {
	return c.Params.Validate() == ""
}

// timeOverheadFactor pads the summed sub-operation times for tool changes
// and repositioning. Empirical value from the source machine configs.
const timeOverheadFactor = 1.1

// GetDefaultParameters returns contouring defaults tuned by material and
// part complexity ("simple", "medium", "complex").
func GetDefaultParameters(material, complexity string) model.ContouringParameters {
	mat := model.MaterialByName(material)
	p := model.ContouringParameters{
		EnableFacing:    true,
		EnableRoughing:  true,
		EnableFinishing: true,
		StockAllowance:  0.5,
		DepthOfCut:      2.0 * mat.MaxDepthFactor,
		Clearance:       2.0,
	}
	switch strings.ToLower(complexity) {
	case "complex":
		p.ProfileTolerance = 0.005
	case "simple":
		p.ProfileTolerance = 0.02
	default:
		p.ProfileTolerance = 0.01
	}
	return p
}

// GenerateToolpath plans the enabled sub-operations from the profile bounds
// and concatenates their movements into one toolpath. A failing
// sub-operation aborts only itself; its message is carried in the
// aggregated statistics via the pipeline.
func (c *Contouring) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := c.Params.Validate(); reason != "" {
		return nil, notValidated(c.Name(), reason)
	}
	if prof.IsEmpty() {
		return nil, &model.GeometryError{Stage: "profile", Reason: "contouring requires a non-empty profile"}
	}
	p := c.Params
	tp := model.NewToolpath("Contour part", c.Name(), c.Tool)

	maxD := 2 * prof.MaxRadius()
	minD := 2 * prof.MinRadius()
	stockD := maxD + 2*p.StockAllowance

	var subTime float64
	add := func(sub *model.Toolpath) {
		for _, m := range sub.Movements {
			m.Operation = c.Name()
			tp.Append(m)
		}
		subTime += sub.EstimateTime()
	}

	if p.EnableFacing {
		faceStock := p.StockAllowance
		if faceStock <= 0 {
			faceStock = 0.2
		}
		facing := NewFacing(c.Tool, model.FacingParameters{
			StartDiameter:  stockD,
			EndDiameter:    0,
			StartZ:         prof.MaxZ() + faceStock,
			EndZ:           prof.MaxZ(),
			DepthOfCut:     p.DepthOfCut / 2,
			StockAllowance: 0,
			Strategy:       model.FacingOutsideIn,
			Clearance:      p.Clearance,
		})
		sub, err := facing.GenerateToolpath(prof)
		if err != nil {
			return nil, &model.PipelineError{Operation: "Contouring/Facing", Err: err}
		}
		add(sub)
	}

	if p.EnableRoughing {
		roughing := NewRoughing(c.Tool, model.RoughingParameters{
			StartDiameter:  stockD,
			EndDiameter:    minD,
			StartZ:         prof.MaxZ(),
			EndZ:           prof.MinZ(),
			DepthOfCut:     p.DepthOfCut,
			StockAllowance: p.StockAllowance,
			Clearance:      p.Clearance,
			FollowProfile:  true,
		})
		sub, err := roughing.GenerateToolpath(prof)
		if err != nil {
			return nil, &model.PipelineError{Operation: "Contouring/Roughing", Err: err}
		}
		add(sub)
	}

	if p.EnableFinishing {
		finishing := NewFinishing(c.Tool, model.FinishingParameters{
			Clearance:     p.Clearance,
			LeadInLength:  2.0,
			LeadOutLength: 1.0,
			ChordTol:      p.ProfileTolerance,
		})
		sub, err := finishing.GenerateToolpath(prof)
		if err != nil {
			return nil, &model.PipelineError{Operation: "Contouring/Finishing", Err: err}
		}
		add(sub)
	}

	c.stats = model.OperationStats{
		Name:            tp.Name,
		Type:            c.Name(),
		MovementCount:   tp.MovementCount(),
		EstimatedTime:   subTime * timeOverheadFactor,
		MaterialRemoved: prof.RevolvedVolume(p.ProfileTolerance),
		CuttingLength:   tp.CuttingLength(),
	}
	return tp, nil
}

// Stats returns the statistics aggregated during the last generation:
// summed sub-operation times with the overhead factor applied, and the
// revolved-solid volume integrated over consecutive profile points.
func (c *Contouring) Stats() model.OperationStats {
	return c.stats
}
