package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
)

const (
	sheetsTab  = "Sheets"
	anchorsTab = "Anchors"
)

// ExportXLSX writes a workbook with one row per sheet on the "Sheets" tab and
// one row per placed sprite on the "Anchors" tab.
func ExportXLSX(path string, report Report) error {
	if len(report.Sheets) == 0 {
		return perrors.New(perrors.ErrCodeEmptyResult, "no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than leaving an empty "Sheet1" behind
	if err := f.SetSheetName(f.GetSheetName(0), sheetsTab); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(anchorsTab); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summary := Summarize(report)
	sheetRows := make([][]interface{}, 0, len(summary.Sheets))
	for i, s := range summary.Sheets {
		sheetRows = append(sheetRows, []interface{}{
			i + 1, s.File, s.Width, s.Height, s.Sprites, roundPercent(s.Efficiency),
		})
	}
	if err := writeTable(f, sheetsTab, headerStyle,
		[]interface{}{"Sheet", "File", "Width", "Height", "Sprites", "Efficiency %"}, sheetRows); err != nil {
		return err
	}

	infos := CollectSpriteInfos(report)
	anchorRows := make([][]interface{}, 0, len(infos))
	for _, info := range infos {
		anchorRows = append(anchorRows, []interface{}{
			info.Name, info.ID, info.SheetIndex, info.X, info.Y, info.Width, info.Height,
		})
	}
	if err := writeTable(f, anchorsTab, headerStyle,
		[]interface{}{"Name", "ID", "Sheet", "X", "Y", "Width", "Height"}, anchorRows); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetsTab, "B", "B", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(anchorsTab, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write %s", path)
	}
	return nil
}

// writeTable writes a bold header row followed by the data rows.
func writeTable(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// roundPercent keeps one decimal place for spreadsheet display.
func roundPercent(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
