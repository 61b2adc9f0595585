package operations

import (
	"math"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

func testGroovingTool() model.Tool {
	return model.Tool{
		Name:     "3mm grooving insert",
		Type:     model.ToolGrooving,
		Diameter: 3.0,
		FeedRate: 0.08,
	}
}

func testGroovingParams() model.GroovingParameters {
	return model.GroovingParameters{
		GrooveZ:        50,
		Width:          8,
		Depth:          3,
		OuterDiameter:  40,
		PeckDepth:      2.0,
		StepoverFactor: 0.75,
		Clearance:      2.0,
	}
}

func TestGroovingValidateToolFit(t *testing.T) {
	if !NewGrooving(testGroovingTool(), testGroovingParams()).Validate() {
		t.Fatal("valid configuration rejected")
	}

	wide := testGroovingTool()
	wide.Diameter = 10 // wider than the 8mm groove
	if NewGrooving(wide, testGroovingParams()).Validate() {
		t.Error("a tool wider than the groove must fail validation")
	}
	zero := testGroovingTool()
	zero.Diameter = 0
	if NewGrooving(zero, testGroovingParams()).Validate() {
		t.Error("a zero-width tool must fail validation")
	}
}

func TestGroovingReachesFloorAcrossWidth(t *testing.T) {
	p := testGroovingParams()
	op := NewGrooving(testGroovingTool(), p)
	tp, err := op.GenerateToolpath(&profile.Profile{})
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}

	floorX := p.OuterDiameter - 2*p.Depth
	zLeft := p.GrooveZ - p.Width/2 + 1.5
	zRight := p.GrooveZ + p.Width/2 - 1.5

	touchedLeft, touchedRight := false, false
	for _, m := range tp.Movements {
		if m.Type != model.MoveLinear {
			continue
		}
		if m.End.X < floorX-1e-9 {
			t.Fatalf("cut at X%.3f below the groove floor %.3f", m.End.X, floorX)
		}
		if m.End.X == floorX {
			if math.Abs(m.End.Z-zLeft) < 1e-9 {
				touchedLeft = true
			}
			if math.Abs(m.End.Z-zRight) < 1e-9 {
				touchedRight = true
			}
		}
	}
	if !touchedLeft || !touchedRight {
		t.Errorf("floor must be reached at both walls (left %v, right %v)", touchedLeft, touchedRight)
	}
}

func TestGroovingPecksRetract(t *testing.T) {
	op := NewGrooving(testGroovingTool(), testGroovingParams())
	tp, err := op.GenerateToolpath(&profile.Profile{})
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}
	retracts := 0
	for i := 1; i < len(tp.Movements); i++ {
		prev, m := tp.Movements[i-1], tp.Movements[i]
		if prev.Type == model.MoveLinear && m.Type == model.MoveRapid && m.End.X == prev.End.X+1.0 {
			retracts++
		}
	}
	if retracts == 0 {
		t.Error("pecking should retract between depth increments")
	}
}

func TestGroovingSpringPass(t *testing.T) {
	p := testGroovingParams()
	p.SpringPass = true
	op := NewGrooving(testGroovingTool(), p)
	tp, err := op.GenerateToolpath(&profile.Profile{})
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}

	floorX := p.OuterDiameter - 2*p.Depth
	alongFloor := false
	for _, m := range tp.Movements {
		if m.Type == model.MoveLinear && m.Start.X == floorX && m.End.X == floorX &&
			math.Abs(m.Start.Z-m.End.Z) > 1 {
			alongFloor = true
		}
	}
	if !alongFloor {
		t.Error("spring pass should traverse the groove floor")
	}
}
