package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

func buildTestResult() *model.GenerationResult {
	tool := model.Tool{Name: "test insert", Type: model.ToolTurning, Diameter: 12, FeedRate: 0.2, SpindleSpeed: 1200}
	tp := model.NewToolpath("Rough stock", "Roughing", tool)
	tp.Rapid(model.Point2D{X: 52, Z: 102}, "")
	tp.Linear(model.Point2D{X: 41, Z: 10}, 0.2, "")

	return &model.GenerationResult{
		Success:   true,
		Toolpaths: []*model.Toolpath{tp},
		Operations: []model.ProcessingResult{
			{
				Success:  true,
				Toolpath: tp,
				Stats: model.OperationStats{
					Name:            tp.Name,
					Type:            "Roughing",
					MovementCount:   tp.MovementCount(),
					EstimatedTime:   4.2,
					MaterialRemoved: 52000,
					CuttingLength:   92.6,
				},
			},
		},
		Warnings:             []string{"test warning"},
		TotalTime:            4.2,
		TotalMaterialRemoved: 52000,
		TotalMovements:       2,
	}
}

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	prof, err := profile.Extract(geom.Cylinder(20, 80), geom.ZAxis(), 0.05)
	require.NoError(t, err)
	return prof
}

func assertFileWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "output missing")
	require.NotZero(t, info.Size(), "output file is empty")
}

func TestWriteSetupSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.pdf")
	err := WriteSetupSheet(path, "test job", buildTestResult(), pipeline.DefaultSettings())
	require.NoError(t, err)
	assertFileWritten(t, path)
}

func TestWriteSummaryXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, WriteSummaryXLSX(path, buildTestResult()))
	assertFileWritten(t, path)
}

func TestWriteProfileDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.dxf")
	require.NoError(t, WriteProfileDXF(path, testProfile(t)))
	assertFileWritten(t, path)
}

func TestWriteProfileDXFEmptyProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	require.Error(t, WriteProfileDXF(path, &profile.Profile{}), "empty profile must be rejected")
}
