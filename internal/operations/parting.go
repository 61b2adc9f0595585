package operations

import (
	"fmt"
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Parting cuts the finished part off the raw bar, from the outside diameter
// inward to the center hole diameter (zero for solid stock). When automatic
// positioning is enabled, candidate cut locations are detected from profile
// discontinuities and scored by an accessibility heuristic.
type Parting struct {
	Tool   model.Tool
	Params model.PartingParameters
}

func NewParting(tool model.Tool, params model.PartingParameters) *Parting {
	return &Parting{Tool: tool, Params: params}
}

func (p *Parting) Name() string              { return "Parting" }
func (p *Parting) Type() model.OperationType { return model.OpParting }

func (p *Parting) Validate() bool {
	return p.Params.Validate() == ""
}

// Scoring weights for automatic position selection. Empirically tuned in
// the source machine configs; configurable rather than re-derived.
var PositionScoreWeights = struct {
	RadiusJump float64 // weight of the discontinuity magnitude
	ChuckSide  float64 // weight of proximity to the chuck-side end
}{RadiusJump: 0.6, ChuckSide: 0.4}

// minRadiusJump is the smallest radius discontinuity considered a candidate
// parting location, in mm.
const minRadiusJump = 0.5

// Candidate is a scored potential parting location.
type Candidate struct {
	Z     float64
	Jump  float64 // radius discontinuity magnitude in mm
	Score float64
}

// FindCandidates detects parting locations from radius discontinuities in
// the profile and scores each one. Results are ordered best first.
func (p *Parting) FindCandidates(prof *profile.Profile) []Candidate {
	if prof.IsEmpty() {
		return nil
	}
	pts := prof.ToPoints(0.05)
	maxR := prof.MaxRadius()
	minZ, maxZ := prof.MinZ(), prof.MaxZ()
	span := maxZ - minZ
	if span <= 0 || maxR <= 0 {
		return nil
	}

	var cands []Candidate
	for i := 1; i < len(pts); i++ {
		jump := math.Abs(pts[i].X - pts[i-1].X)
		dz := pts[i].Z - pts[i-1].Z
		if jump < minRadiusJump || dz > jump {
			continue
		}
		z := (pts[i].Z + pts[i-1].Z) / 2
		score := PositionScoreWeights.RadiusJump*(jump/maxR) +
			PositionScoreWeights.ChuckSide*(1-(z-minZ)/span)
		cands = append(cands, Candidate{Z: z, Jump: jump, Score: score})
	}

	// Highest score first; stable for equal scores since detection runs in
	// ascending Z.
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && cands[j].Score > cands[j-1].Score; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
	return cands
}

// cutPosition resolves the parting Z, selecting the best-scored candidate
// in automatic mode. The second return is a low-accessibility warning,
// empty when placement is confident.
func (p *Parting) cutPosition(prof *profile.Profile) (float64, string, error) {
	if !p.Params.AutoPosition {
		return p.Params.PartingZ, "", nil
	}
	cands := p.FindCandidates(prof)
	if len(cands) == 0 {
		if prof.IsEmpty() {
			return 0, "", &model.GeometryError{Stage: "profile", Reason: "automatic parting position requires a profile"}
		}
		// fall back to the chuck-side end of the profile, one tool width in
		z := prof.MinZ() + p.Tool.Diameter
		return z, "no profile discontinuity found; parting at the chuck-side end", nil
	}
	best := cands[0]
	warn := ""
	if best.Score < 0.3 {
		warn = fmt.Sprintf("parting position accessibility score is low (%.2f)", best.Score)
	}
	return best.Z, warn, nil
}

func (p *Parting) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := p.Params.Validate(); reason != "" {
		return nil, notValidated(p.Name(), reason)
	}
	prm := p.Params
	zCut, warn, err := p.cutPosition(prof)
	if err != nil {
		return nil, err
	}

	tp := model.NewToolpath("Part off", p.Name(), p.Tool)
	clearX := prm.PartingDiameter + 2*prm.Clearance
	target := prm.CenterHoleDiameter

	tp.Rapid(model.Point2D{X: clearX, Z: zCut}, "clearance position")
	if warn != "" {
		// carried as a comment so the warning survives into the G-code
		tp.Movements[len(tp.Movements)-1].Comment = warn
	}

	switch prm.Strategy {
	case model.PartingStraight:
		tp.Linear(model.Point2D{X: target, Z: zCut}, p.Tool.FeedRate, "part off")

	case model.PartingStepped:
		p.steppedCut(tp, zCut, clearX, target, true)

	case model.PartingGroove:
		// pre-widen the slot so the blade does not bind, then cut through
		wide := zCut + p.Tool.Diameter*0.8
		tp.Rapid(model.Point2D{X: clearX, Z: wide}, "widen slot")
		tp.Linear(model.Point2D{X: prm.PartingDiameter / 2, Z: wide}, p.Tool.FeedRate, "")
		tp.Rapid(model.Point2D{X: clearX, Z: wide}, "")
		tp.Rapid(model.Point2D{X: clearX, Z: zCut}, "")
		tp.Linear(model.Point2D{X: target, Z: zCut}, p.Tool.FeedRate, "part off")

	case model.PartingUndercut:
		tp.Linear(model.Point2D{X: target, Z: zCut}, p.Tool.FeedRate, "part off")
		// relief move toward the part side
		tp.Linear(model.Point2D{X: target, Z: zCut + p.Tool.Diameter*0.3}, p.Tool.FeedRate, "undercut relief")

	case model.PartingTrepanning:
		p.steppedCut(tp, zCut, clearX, target, false)
	}

	tp.Rapid(model.Point2D{X: clearX, Z: zCut}, "retract to clearance")
	return tp, nil
}

// steppedCut pecks inward by the peck depth. withDwell adds the retract and
// dwell between pecks (Stepped); Trepanning uses the same decomposition
// without pausing.
func (p *Parting) steppedCut(tp *model.Toolpath, zCut, clearX, target float64, withDwell bool) {
	prm := p.Params
	d := prm.PartingDiameter
	peck := 0
	for d > target+1e-9 {
		d -= 2 * prm.PeckDepth
		if d < target {
			d = target
		}
		peck++
		tp.Linear(model.Point2D{X: d, Z: zCut}, p.Tool.FeedRate, fmt.Sprintf("peck %d", peck))
		if d > target+1e-9 && withDwell {
			tp.Rapid(model.Point2D{X: d + 2*prm.Retract, Z: zCut}, "")
			if prm.DwellSeconds > 0 {
				tp.Dwell(prm.DwellSeconds, "")
			}
			tp.Rapid(model.Point2D{X: d, Z: zCut}, "")
		}
	}
}
