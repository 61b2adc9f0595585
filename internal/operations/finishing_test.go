package operations

import (
	"math"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

func testFinishingParams() model.FinishingParameters {
	return model.FinishingParameters{
		Clearance:     2.0,
		LeadInLength:  2.0,
		LeadOutLength: 1.0,
		ChordTol:      0.01,
	}
}

func TestFinishingRequiresProfile(t *testing.T) {
	op := NewFinishing(testTool(), testFinishingParams())
	if _, err := op.GenerateToolpath(&profile.Profile{}); err == nil {
		t.Error("finishing without a profile must fail")
	}
	if _, err := op.GenerateToolpath(nil); err == nil {
		t.Error("finishing with a nil profile must fail")
	}
}

func TestFinishingFollowsProfileDescendingZ(t *testing.T) {
	prof := cylinderProfile(t, 15, 80)
	op := NewFinishing(testTool(), testFinishingParams())
	tp, err := op.GenerateToolpath(prof)
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}

	// cutting moves walk from the free end toward the chuck
	prevZ := math.Inf(1)
	cuts := 0
	for _, m := range tp.Movements {
		if m.Type != model.MoveLinear {
			continue
		}
		cuts++
		if m.End.Z > prevZ+1e-9 {
			t.Fatalf("cut to Z%.3f after Z%.3f, cutting must descend", m.End.Z, prevZ)
		}
		prevZ = m.End.Z
	}
	if cuts < 2 {
		t.Fatalf("cut count = %d, want a lead-in plus profile pass", cuts)
	}
}

func TestFinishingCutsAtProfileDiameter(t *testing.T) {
	prof := cylinderProfile(t, 15, 80)
	op := NewFinishing(testTool(), testFinishingParams())
	tp, err := op.GenerateToolpath(prof)
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}
	// movements along the barrel run at twice the profile radius
	onSurface := false
	for _, m := range tp.Movements {
		if m.Type == model.MoveLinear && math.Abs(m.End.X-30) < 0.3 {
			onSurface = true
		}
	}
	if !onSurface {
		t.Error("finish pass should run at the profile diameter (X as diameter)")
	}
}

func TestFinishingLeadOut(t *testing.T) {
	prof := cylinderProfile(t, 15, 80)
	p := testFinishingParams()
	op := NewFinishing(testTool(), p)
	tp, err := op.GenerateToolpath(prof)
	if err != nil {
		t.Fatalf("GenerateToolpath: %v", err)
	}

	var lastCut model.Movement
	for _, m := range tp.Movements {
		if m.Type == model.MoveLinear {
			lastCut = m
		}
	}
	if lastCut.End.X <= lastCut.Start.X {
		t.Error("the final cut should pull away from the surface as a lead-out")
	}
}
