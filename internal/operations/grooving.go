package operations

import (
	"fmt"
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Grooving plunges a rectangular groove across its width with tool-width
// stepover, pecking each plunge to control chips, and optionally finishing
// the floor with a spring pass.
type Grooving struct {
	Tool   model.Tool
	Params model.GroovingParameters
}

func NewGrooving(tool model.Tool, params model.GroovingParameters) *Grooving {
	return &Grooving{Tool: tool, Params: params}
}

func (g *Grooving) Name() string              { return "Grooving" }
func (g *Grooving) Type() model.OperationType { return model.OpGrooving }

func (g *Grooving) Validate() bool {
	if g.Params.Validate() != "" {
		return false
	}
	// the insert must fit into the groove
	return g.Tool.Diameter > 0 && g.Tool.Diameter <= g.Params.Width
}

func (g *Grooving) GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error) {
	if reason := g.Params.Validate(); reason != "" {
		return nil, notValidated(g.Name(), reason)
	}
	if !g.Validate() {
		return nil, notValidated(g.Name(), fmt.Sprintf("tool width %.2f does not fit groove width %.2f", g.Tool.Diameter, g.Params.Width))
	}
	p := g.Params
	tp := model.NewToolpath("Cut groove", g.Name(), g.Tool)

	clearX := p.OuterDiameter + 2*p.Clearance
	floorX := p.OuterDiameter - 2*p.Depth
	toolW := g.Tool.Diameter
	zLeft := p.GrooveZ - p.Width/2 + toolW/2
	zRight := p.GrooveZ + p.Width/2 - toolW/2

	tp.Rapid(model.Point2D{X: clearX, Z: zRight}, "clearance position")

	// plunge stations across the width, first and last flush with the walls
	step := toolW * p.StepoverFactor
	n := int(math.Ceil((zRight - zLeft) / step))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		z := zRight - float64(i)*(zRight-zLeft)/float64(n)
		if zRight == zLeft {
			z = zLeft
		}
		tp.Rapid(model.Point2D{X: clearX, Z: z}, "")
		g.peckPlunge(tp, z, floorX, fmt.Sprintf("plunge %d/%d", i+1, n+1))
		tp.Rapid(model.Point2D{X: clearX, Z: z}, "")
	}

	if p.SpringPass {
		tp.Rapid(model.Point2D{X: clearX, Z: zRight}, "spring pass")
		tp.Linear(model.Point2D{X: floorX, Z: zRight}, g.Tool.FeedRate, "")
		tp.Linear(model.Point2D{X: floorX, Z: zLeft}, g.Tool.FeedRate, "")
		tp.Rapid(model.Point2D{X: clearX, Z: zLeft}, "")
	}

	tp.Rapid(model.Point2D{X: clearX, Z: zRight}, "retract to clearance")
	return tp, nil
}

// peckPlunge feeds to the groove floor in peck-depth increments with a
// short retract between pecks.
func (g *Grooving) peckPlunge(tp *model.Toolpath, z, floorX float64, comment string) {
	p := g.Params
	d := p.OuterDiameter
	first := true
	for d > floorX+1e-9 {
		d -= 2 * p.PeckDepth
		if d < floorX {
			d = floorX
		}
		c := ""
		if first {
			c = comment
			first = false
		}
		tp.Linear(model.Point2D{X: d, Z: z}, g.Tool.FeedRate, c)
		if d > floorX+1e-9 {
			tp.Rapid(model.Point2D{X: d + 1.0, Z: z}, "")
		}
	}
}
