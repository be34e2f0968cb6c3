// Package export writes packed sprite sheets and reports about them to disk:
// sheet images, PDF reports, spreadsheets and CAD layout drawings.
package export

import (
	"fmt"

	"github.com/piwi3910/SheetPack/internal/model"
)

// Report is everything the report exporters need about one pack run.
type Report struct {
	Sheets   []model.SpriteSheet
	Names    []string // Sprite names indexed by id; may be shorter than the id range
	Files    []string // Sheet image file names, parallel to Sheets
	Settings model.PackSettings
}

// SpriteInfo describes one placed sprite in report outputs.
type SpriteInfo struct {
	Name       string `json:"name"`
	ID         int    `json:"id"`
	SheetIndex int    `json:"sheet"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// SheetSummary is the per-sheet part of the build summary.
type SheetSummary struct {
	File       string  `json:"file,omitempty"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Sprites    int     `json:"sprites"`
	Efficiency float64 `json:"efficiency"`
}

// Summary is the compact description of a pack run embedded in reports.
type Summary struct {
	Algorithm  string         `json:"algorithm"`
	Trim       bool           `json:"trim"`
	Sprites    int            `json:"sprites"`
	Efficiency float64        `json:"efficiency"`
	Sheets     []SheetSummary `json:"sheets"`
}

// SpriteName returns the sprite's name, or "#id" when none is known.
func (r Report) SpriteName(id int) string {
	if id >= 0 && id < len(r.Names) && r.Names[id] != "" {
		return r.Names[id]
	}
	return fmt.Sprintf("#%d", id)
}

// File returns the image file name of sheet i, or an empty string.
func (r Report) File(i int) string {
	if i >= 0 && i < len(r.Files) {
		return r.Files[i]
	}
	return ""
}

// CollectSpriteInfos lists every anchor across all sheets in sheet order.
// Sheet indices are 1-based.
func CollectSpriteInfos(r Report) []SpriteInfo {
	var infos []SpriteInfo
	for sheetIdx, sheet := range r.Sheets {
		for _, a := range sheet.Anchors {
			infos = append(infos, SpriteInfo{
				Name:       r.SpriteName(a.ID),
				ID:         a.ID,
				SheetIndex: sheetIdx + 1,
				X:          a.X,
				Y:          a.Y,
				Width:      a.Width,
				Height:     a.Height,
			})
		}
	}
	return infos
}

// Summarize builds the run summary.
func Summarize(r Report) Summary {
	s := Summary{
		Algorithm:  string(r.Settings.Algorithm),
		Trim:       r.Settings.Trim,
		Efficiency: model.TotalEfficiency(r.Sheets),
		Sheets:     make([]SheetSummary, len(r.Sheets)),
	}
	for i, sheet := range r.Sheets {
		s.Sprites += len(sheet.Anchors)
		s.Sheets[i] = SheetSummary{
			File:       r.File(i),
			Width:      sheet.Width,
			Height:     sheet.Height,
			Sprites:    len(sheet.Anchors),
			Efficiency: sheet.Efficiency(),
		}
	}
	return s
}

// countSprites returns the total number of anchors across all sheets.
func countSprites(r Report) int {
	total := 0
	for _, s := range r.Sheets {
		total += len(s.Anchors)
	}
	return total
}
