package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginLeft = 15.0
	marginTop  = 15.0
	qrSize     = 28.0
	rowHeight  = 7.0
)

// jobLabel is the data encoded into the setup sheet's QR code.
type jobLabel struct {
	Name      string  `json:"name"`
	Material  string  `json:"material"`
	StockDia  float64 `json:"stock_dia_mm"`
	StockLen  float64 `json:"stock_len_mm"`
	TotalTime float64 `json:"total_time_min"`
	Created   string  `json:"created"`
}

// WriteSetupSheet renders a one-page job setup sheet: job header, stock and
// material details, a per-operation parameter table, and a QR code
// encoding the job metadata for shop-floor scanning.
func WriteSetupSheet(path, jobName string, result *model.GenerationResult, settings pipeline.Settings) error {
	if result == nil || len(result.Operations) == 0 {
		return fmt.Errorf("no operations to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginTop)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-2*marginLeft-qrSize, 10, "Setup Sheet: "+jobName, "", 0, "L", false, 0, "")

	// QR job label, top right
	label := jobLabel{
		Name:      jobName,
		Material:  settings.Material,
		StockDia:  settings.StockDiameter,
		StockLen:  settings.StockLength,
		TotalTime: result.TotalTime,
		Created:   time.Now().Format("2006-01-02"),
	}
	if err := placeQR(pdf, label, pageWidth-marginLeft-qrSize, marginTop); err != nil {
		return err
	}

	// Stock and material block
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+12)
	stock := fmt.Sprintf("Material: %s | Stock: Ø%.1f x %.1f mm | Est. time: %.1f min | Removed: %.0f mm³",
		settings.Material, settings.StockDiameter, settings.StockLength,
		result.TotalTime, result.TotalMaterialRemoved)
	pdf.CellFormat(pageWidth-2*marginLeft-qrSize, 6, stock, "", 0, "L", false, 0, "")

	// Operation table
	y := marginTop + qrSize + 8
	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	headers := []struct {
		label string
		width float64
	}{
		{"Operation", 40},
		{"Moves", 22},
		{"Cut length (mm)", 32},
		{"Time (min)", 28},
		{"Removed (mm³)", 32},
		{"Status", 26},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, rowHeight, h.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 10)
	for _, op := range result.Operations {
		status := "OK"
		if !op.Success {
			status = "FAILED"
		}
		pdf.SetX(marginLeft)
		pdf.CellFormat(headers[0].width, rowHeight, op.Stats.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(headers[1].width, rowHeight, fmt.Sprintf("%d", op.Stats.MovementCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(headers[2].width, rowHeight, fmt.Sprintf("%.1f", op.Stats.CuttingLength), "1", 0, "R", false, 0, "")
		pdf.CellFormat(headers[3].width, rowHeight, fmt.Sprintf("%.2f", op.Stats.EstimatedTime), "1", 0, "R", false, 0, "")
		pdf.CellFormat(headers[4].width, rowHeight, fmt.Sprintf("%.0f", op.Stats.MaterialRemoved), "1", 0, "R", false, 0, "")
		pdf.CellFormat(headers[5].width, rowHeight, status, "1", 0, "C", false, 0, "")
		pdf.Ln(rowHeight)
	}

	// Warnings, if any
	if len(result.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetX(marginLeft)
		pdf.CellFormat(0, 6, "Warnings", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, w := range result.Warnings {
			pdf.SetX(marginLeft)
			pdf.CellFormat(0, 5, "- "+w, "", 1, "L", false, 0, "")
		}
	}

	return pdf.OutputFileAndClose(path)
}

// placeQR encodes the label as JSON into a QR code and places it on the page.
func placeQR(pdf *fpdf.Fpdf, label jobLabel, x, y float64) error {
	data, err := json.Marshal(label)
	if err != nil {
		return fmt.Errorf("failed to marshal job label: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	imgName := "qr_" + label.Name
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}
