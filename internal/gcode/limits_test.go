package gcode

import (
	"strings"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

func TestCheckMachineLimitsInsideEnvelope(t *testing.T) {
	tp := newTestToolpath()
	if warnings := CheckMachineLimits(tp, model.DefaultMachineLimits()); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestCheckMachineLimitsTravelBreaches(t *testing.T) {
	limits := model.DefaultMachineLimits()
	tp := model.NewToolpath("Out of travel", "Roughing", newTestTool())
	tp.Rapid(model.Point2D{X: 400, Z: 150}, "")

	warnings := CheckMachineLimits(tp, limits)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want X and Z breaches", warnings)
	}
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "X") || !strings.Contains(joined, "Z") {
		t.Errorf("warnings should name both axes: %v", warnings)
	}
}

func TestCheckMachineLimitsSpindle(t *testing.T) {
	tool := newTestTool()
	tool.SpindleSpeed = 4000
	tp := model.NewToolpath("Fast spindle", "Finishing", tool)
	tp.Rapid(model.Point2D{X: 10, Z: 10}, "")

	warnings := CheckMachineLimits(tp, model.DefaultMachineLimits())
	if len(warnings) != 1 || !strings.Contains(warnings[0], "spindle") {
		t.Errorf("warnings = %v, want one spindle warning", warnings)
	}
}

func TestCheckMachineLimitsEmptyToolpath(t *testing.T) {
	tp := model.NewToolpath("Empty", "Facing", newTestTool())
	if warnings := CheckMachineLimits(tp, model.DefaultMachineLimits()); warnings != nil {
		t.Errorf("empty toolpath should produce no warnings, got %v", warnings)
	}
}
