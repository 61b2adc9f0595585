package gcode

import (
	"fmt"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// CheckMachineLimits compares a toolpath's bounding box against the machine
// travel envelope. Breaches are returned as non-fatal warning strings; an
// empty slice means the whole toolpath fits.
func CheckMachineLimits(tp *model.Toolpath, limits model.MachineLimits) []string {
	min, max, ok := tp.Bounds()
	if !ok {
		return nil
	}
	var warnings []string
	if min.X < limits.MinX {
		warnings = append(warnings,
			fmt.Sprintf("X%.3f below machine minimum X%.3f", min.X, limits.MinX))
	}
	if max.X > limits.MaxX {
		warnings = append(warnings,
			fmt.Sprintf("X%.3f exceeds machine maximum X%.3f", max.X, limits.MaxX))
	}
	if min.Z < limits.MinZ {
		warnings = append(warnings,
			fmt.Sprintf("Z%.3f below machine minimum Z%.3f", min.Z, limits.MinZ))
	}
	if max.Z > limits.MaxZ {
		warnings = append(warnings,
			fmt.Sprintf("Z%.3f exceeds machine maximum Z%.3f", max.Z, limits.MaxZ))
	}
	if tp.Tool.SpindleSpeed > limits.MaxSpindleSpeed {
		warnings = append(warnings,
			fmt.Sprintf("spindle speed %.0f RPM exceeds machine maximum %.0f", tp.Tool.SpindleSpeed, limits.MaxSpindleSpeed))
	}
	return warnings
}
