package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// spriteColor represents an RGB outline color for a placed sprite.
type spriteColor struct {
	R, G, B int
}

// spriteColors cycles through distinguishable outline colors.
var spriteColors = []spriteColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 45.0 // QR code size in mm
)

// ExportPDF generates a PDF report of the packed sheets. Each sheet is
// rendered on its own page with the composited image and sprite outlines,
// followed by a summary page with overall statistics and a QR code carrying
// the summary as JSON.
func ExportPDF(path string, report Report) error {
	if len(report.Sheets) == 0 {
		return perrors.New(perrors.ErrCodeEmptyResult, "no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	// Render each sheet on its own page
	for i, sheet := range report.Sheets {
		pdf.AddPage()
		if err := renderSheetPage(pdf, report, sheet, i); err != nil {
			return err
		}
	}

	// Summary page
	pdf.AddPage()
	if err := renderSummaryPage(pdf, report); err != nil {
		return err
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write %s", path)
	}
	return nil
}

// renderSheetPage draws a single sheet on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, report Report, sheet model.SpriteSheet, index int) error {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d (%d x %d px)", index+1, sheet.Width, sheet.Height)
	if file := report.File(index); file != "" {
		title = fmt.Sprintf("Sheet %d: %s (%d x %d px)", index+1, file, sheet.Width, sheet.Height)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sprites: %d | Used area: %d px | Total area: %d px | Efficiency: %.1f%%",
		len(sheet.Anchors), sheet.UsedArea(), sheet.TotalArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if sheet.Width == 0 || sheet.Height == 0 {
		return nil
	}

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Calculate scale to fit the sheet within drawing area
	scale := math.Min(drawWidth/float64(sheet.Width), drawHeight/float64(sheet.Height))

	canvasW := float64(sheet.Width) * scale
	canvasH := float64(sheet.Height) * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Light background so transparent regions stay visible
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Composited sheet pixels
	var buf bytes.Buffer
	if err := EncodePNG(&buf, sheet); err == nil {
		imgName := fmt.Sprintf("sheet_%d", index)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imgName, opts, &buf)
		pdf.ImageOptions(imgName, offsetX, offsetY, canvasW, canvasH, false, opts, 0, "")
	} else if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		return err
	}

	// Sprite outlines. Aliases share a rectangle, so each is drawn once.
	drawn := make(map[[4]int]bool, len(sheet.Anchors))
	for i, a := range sheet.Anchors {
		key := [4]int{a.X, a.Y, a.Width, a.Height}
		if drawn[key] {
			continue
		}
		drawn[key] = true

		col := spriteColors[i%len(spriteColors)]
		pw := float64(a.Width) * scale
		ph := float64(a.Height) * scale
		px := offsetX + float64(a.X)*scale
		py := offsetY + float64(a.Y)*scale

		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "D")

		// Sprite label (only if rectangle is large enough)
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := report.SpriteName(a.ID)
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, sheet, offsetX, offsetY, canvasW, canvasH)

	// Sprite legend at bottom of page
	drawSpriteLegend(pdf, report, sheet, offsetY+canvasH+5)
	return nil
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.SpriteSheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the sheet)
	widthLabel := fmt.Sprintf("%d px", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the sheet, rotated)
	heightLabel := fmt.Sprintf("%d px", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawSpriteLegend renders a compact legend of placed sprites below the sheet.
func drawSpriteLegend(pdf *fpdf.Fpdf, report Report, sheet model.SpriteSheet, startY float64) {
	if len(sheet.Anchors) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sprites placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom

	for i, a := range sheet.Anchors {
		col := spriteColors[i%len(spriteColors)]
		label := fmt.Sprintf("%s (%dx%d)", report.SpriteName(a.ID), a.Width, a.Height)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > maxY {
			pdf.SetXY(marginLeft, maxY)
			pdf.CellFormat(60, 4, fmt.Sprintf("... and %d more", len(sheet.Anchors)-i), "", 0, "L", false, 0, "")
			return
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, report Report) error {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Sprite Sheet Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Sheets", fmt.Sprintf("%d", len(report.Sheets))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", model.TotalEfficiency(report.Sheets))},
		{"Total Sprites Placed", fmt.Sprintf("%d", countSprites(report))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-sheet breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 40, 25, 30}
	headers := []string{"Sheet", "File", "Dimensions", "Sprites", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows, cut short before the footer
	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range report.Sheets {
		if y > pageHeight-marginBottom-20 {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(100, 6, fmt.Sprintf("... %d more sheets", len(report.Sheets)-i), "", 0, "L", false, 0, "")
			y += 6
			break
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			report.File(i),
			fmt.Sprintf("%d x %d px", sheet.Width, sheet.Height),
			fmt.Sprintf("%d", len(sheet.Anchors)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Pack settings
	settingsX := marginLeft + 190
	sy := marginTop + 18
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(settingsX, sy)
	pdf.CellFormat(70, 7, "Pack Settings", "", 0, "L", false, 0, "")
	sy += 9

	settings := report.Settings
	settingsItems := []struct {
		label string
		value string
	}{
		{"Packer", string(settings.Algorithm)},
		{"Preferred Size", fmt.Sprintf("%d x %d px", settings.PreferredWidth, settings.PreferredHeight)},
		{"Trim", fmt.Sprintf("%t", settings.Trim)},
		{"Format", settings.Format},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(settingsX+5, sy)
		pdf.CellFormat(30, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		sy += 5
	}

	if err := drawSummaryQR(pdf, report, settingsX+5, sy+5); err != nil {
		return err
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SheetPack - Sprite Sheet Packer", "", 0, "C", false, 0, "")
	return nil
}

// drawSummaryQR places a QR code encoding the run summary as JSON.
func drawSummaryQR(pdf *fpdf.Fpdf, report Report, x, y float64) error {
	summary := Summarize(report)
	qrData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	// QR capacity is limited; fall back to totals only for big runs.
	if len(qrData) > 1500 {
		summary.Sheets = nil
		if qrData, err = json.Marshal(summary); err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("summary_qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("summary_qr", x, y, qrSize, qrSize, false, opts, 0, "")
	return nil
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
