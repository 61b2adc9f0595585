// Package export writes generation artifacts to exchange formats: the
// extracted profile as DXF, a job setup sheet as PDF, and the per-operation
// summary as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// WriteProfileDXF writes the extracted profile as a DXF drawing, one line
// entity per segment with Z on the drawing X axis and the radius on Y.
// Curved segments are written at their sampled resolution.
func WriteProfileDXF(path string, prof *profile.Profile) error {
	if prof.IsEmpty() {
		return fmt.Errorf("no profile to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("PROFILE", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	pts := prof.ToPoints(0.01)
	for i := 1; i < len(pts); i++ {
		if _, err := d.Line(pts[i-1].Z, pts[i-1].X, 0, pts[i].Z, pts[i].X, 0); err != nil {
			return fmt.Errorf("write segment %d: %w", i, err)
		}
	}

	// the turning axis as a reference line on its own layer
	if _, err := d.AddLayer("AXIS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add axis layer: %w", err)
	}
	if _, err := d.Line(prof.MinZ(), 0, 0, prof.MaxZ(), 0, 0); err != nil {
		return fmt.Errorf("write axis line: %w", err)
	}

	return d.SaveAs(path)
}
