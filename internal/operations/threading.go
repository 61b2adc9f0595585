package operations

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Threading cuts an external thread with successive linear Z passes at
// increasing radial depth. True helical interpolation is not attempted; the
// linear-pass approximation matches what single-point lathe threading does
// per spindle revolution anyway.
type Threading struct {
	Tool   model.Tool
	Params model.ThreadingParameters
}

func NewThreading(tool model.Tool, params model.ThreadingParameters) *Threading {
	return &Threading{Tool: tool, Params: params}
}

func (t *Threading) Name() string              { return "Threading" }
func (t *Threading) Type() model.OperationType { return model.OpThreading }

func (t *Threading) Validate() bool {
	if t.Params.Validate() != "" {
		return false
	}
	_, err := t.Geometry()
	return err == nil
}

// ISO metric external thread proportions, derived from the fundamental
// triangle height H = 0.866·P.
const (
	threadDepthFactor = 0.6134
	pitchDiamFactor   = 0.6495
)

// ThreadGeometry is the resolved thread form.
type ThreadGeometry struct {
	MajorDiameter float64
	Pitch         float64
	Depth         float64
	MinorDiameter float64
	PitchDiameter float64
}

var designationRe = regexp.MustCompile(`^M(\d+(?:\.\d+)?)[xX](\d+(?:\.\d+)?)$`)

// ParseDesignation resolves a standard metric thread designation such as
// "M20x1.5" into its major diameter and pitch.
func ParseDesignation(s string) (major, pitch float64, err error) {
	m := designationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, &model.ParameterError{Operation: "Threading", Parameter: "designation",
			Reason: fmt.Sprintf("%q is not a metric thread designation", s)}
	}
	major, _ = strconv.ParseFloat(m[1], 64)
	pitch, _ = strconv.ParseFloat(m[2], 64)
	if major <= 0 || pitch <= 0 || pitch >= major {
		return 0, 0, &model.ParameterError{Operation: "Threading", Parameter: "designation",
			Reason: fmt.Sprintf("%q has an implausible diameter/pitch combination", s)}
	}
	return major, pitch, nil
}

// Geometry resolves the thread form from the explicit parameters or the
// designation string.
func (t *Threading) Geometry() (ThreadGeometry, error) {
	p := t.Params
	major, pitch := p.MajorDiameter, p.Pitch
	if p.Designation != "" {
		var err error
		major, pitch, err = ParseDesignation(p.Designation)
		if err != nil {
			return ThreadGeometry{}, err
		}
	}
	depth := p.ThreadDepth
	if depth <= 0 {
		depth = threadDepthFactor * pitch
	}
	return ThreadGeometry{
		MajorDiameter: major,
		Pitch:         pitch,
		Depth:         depth,
		MinorDiameter: major - 2*depth,
		PitchDiameter: major - pitchDiamFactor*pitch,
	}, nil
}

// PassDepths returns the cumulative radial depth after each pass. Constant
// mode divides the depth evenly; degression follows the √(i/n) law so every
// pass removes a similar chip area while the per-pass increment shrinks.
func (t *Threading) PassDepths(geo ThreadGeometry) []float64 {
	n := t.Params.Passes
	if n <= 0 {
		n = int(math.Ceil(geo.Depth / 0.15))
		if n < 4 {
			n = 4
		}
	}
	depths := make([]float64, n)
	for i := 1; i <= n; i++ {
		if t.Params.Degression {
			depths[i-1] = geo.Depth * math.Sqrt(float64(i)/float64(n))
		} else {
			depths[i-1] = geo.Depth * float64(i) / float64(n)
		}
	}
	// the final pass always lands on the full depth exactly
	depths[n-1] = geo.Depth
	return depths
}

func (t *Threading) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := t.Params.Validate(); reason != "" {
		return nil, notValidated(t.Name(), reason)
	}
	geo, err := t.Geometry()
	if err != nil {
		return nil, err
	}
	p := t.Params

	name := p.Designation
	if name == "" {
		name = fmt.Sprintf("M%gx%g", geo.MajorDiameter, geo.Pitch)
	}
	tp := model.NewToolpath("Thread "+name, t.Name(), t.Tool)

	clearX := geo.MajorDiameter + 2*p.Clearance
	zStart := p.StartZ + p.LeadIn
	zEnd := p.StartZ - p.Length - p.LeadOut

	tp.Rapid(model.Point2D{X: clearX, Z: zStart}, "clearance position")

	depths := t.PassDepths(geo)
	for i, depth := range depths {
		d := geo.MajorDiameter - 2*depth
		tp.Rapid(model.Point2D{X: d, Z: zStart}, fmt.Sprintf("thread pass %d/%d", i+1, len(depths)))
		// the thread feed per revolution is the pitch
		tp.Linear(model.Point2D{X: d, Z: zEnd}, geo.Pitch, "")
		tp.Rapid(model.Point2D{X: clearX, Z: zEnd}, "")
		tp.Rapid(model.Point2D{X: clearX, Z: zStart}, "")
	}

	// spring pass at full depth cleans up tool deflection
	tp.Rapid(model.Point2D{X: geo.MinorDiameter, Z: zStart}, "spring pass")
	tp.Linear(model.Point2D{X: geo.MinorDiameter, Z: zEnd}, geo.Pitch, "")
	tp.Rapid(model.Point2D{X: clearX, Z: zEnd}, "")

	if p.ChamferPass {
		// 45° entry chamfer at the thread start, one pitch wide
		tp.Rapid(model.Point2D{X: clearX, Z: p.StartZ + geo.Pitch}, "chamfer pass")
		tp.Rapid(model.Point2D{X: geo.MajorDiameter, Z: p.StartZ + geo.Pitch}, "")
		tp.Linear(model.Point2D{X: geo.MajorDiameter - 2*geo.Pitch, Z: p.StartZ - geo.Pitch}, t.Tool.FeedRate, "")
		tp.Rapid(model.Point2D{X: clearX, Z: p.StartZ - geo.Pitch}, "")
	}

	tp.Rapid(model.Point2D{X: clearX, Z: zStart}, "retract to clearance")
	return tp, nil
}
