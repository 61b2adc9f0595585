package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// WriteSummaryXLSX writes the per-operation statistics as a workbook: one
// row per operation plus a totals row.
func WriteSummaryXLSX(path string, result *model.GenerationResult) error {
	if result == nil || len(result.Operations) == 0 {
		return fmt.Errorf("no operations to export")
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	headers := []string{"Operation", "Name", "Status", "Movements", "Cut length (mm)", "Time (min)", "Removed (mm³)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, op := range result.Operations {
		status := "OK"
		if !op.Success {
			status = "FAILED: " + op.Error
		}
		values := []interface{}{
			op.Stats.Type,
			op.Stats.Name,
			status,
			op.Stats.MovementCount,
			op.Stats.CuttingLength,
			op.Stats.EstimatedTime,
			op.Stats.MaterialRemoved,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	totals := []interface{}{
		"Total", "", "",
		result.TotalMovements,
		"",
		result.TotalTime,
		result.TotalMaterialRemoved,
	}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
