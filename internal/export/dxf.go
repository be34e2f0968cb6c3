package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
)

// DXF layer names.
const (
	layerSheets  = "SHEETS"
	layerSprites = "SPRITES"
	layerLabels  = "LABELS"
)

// dxfSheetGap is the horizontal gap between sheet outlines in drawing units.
const dxfSheetGap = 32.0

// ExportDXF writes the sheet layouts as a DXF drawing, one pixel per drawing
// unit. Sheets are laid out left to right with their top edge on y = 0, and
// image y is flipped so the drawing reads the same way as the sheet images.
func ExportDXF(path string, report Report) error {
	if len(report.Sheets) == 0 {
		return perrors.New(perrors.ErrCodeEmptyResult, "no sheets to export")
	}

	d := dxf.NewDrawing()
	d.AddLayer(layerSheets, color.White, dxf.DefaultLineType, true)
	d.AddLayer(layerSprites, color.Green, dxf.DefaultLineType, true)
	d.AddLayer(layerLabels, color.Cyan, dxf.DefaultLineType, true)

	originX := 0.0
	for _, sheet := range report.Sheets {
		w := float64(sheet.Width)
		h := float64(sheet.Height)

		d.ChangeLayer(layerSheets)
		drawRect(d, originX, 0, w, h)

		drawn := make(map[[4]int]bool, len(sheet.Anchors))
		for _, a := range sheet.Anchors {
			key := [4]int{a.X, a.Y, a.Width, a.Height}
			if drawn[key] || a.Width == 0 || a.Height == 0 {
				continue
			}
			drawn[key] = true

			d.ChangeLayer(layerSprites)
			drawRect(d, originX+float64(a.X), float64(a.Y), float64(a.Width), float64(a.Height))

			textHeight := labelTextHeight(a.Width, a.Height)
			d.ChangeLayer(layerLabels)
			if _, err := d.Text(report.SpriteName(a.ID), originX+float64(a.X)+1, -float64(a.Y)-1-textHeight, 0, textHeight); err != nil {
				return perrors.Wrap(perrors.ErrCodeIO, err, "failed to add label for sprite %d", a.ID)
			}
		}

		originX += w + dxfSheetGap
	}

	if err := d.SaveAs(path); err != nil {
		return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write %s", path)
	}
	return nil
}

// drawRect outlines an image-space rectangle with its top-left at (x, y).
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	top := -y
	bottom := -(y + h)
	d.Line(x, top, 0, x+w, top, 0)
	d.Line(x+w, top, 0, x+w, bottom, 0)
	d.Line(x+w, bottom, 0, x, bottom, 0)
	d.Line(x, bottom, 0, x, top, 0)
}

// labelTextHeight scales label text with the sprite, within readable limits.
func labelTextHeight(w, h int) float64 {
	size := float64(min(w, h)) / 6
	switch {
	case size < 2:
		return 2
	case size > 12:
		return 12
	}
	return size
}
