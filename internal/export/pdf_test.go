package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetPack/internal/model"
)

// testSheet builds an RGBA sheet whose anchors are filled with opaque pixels.
func testSheet(width, height int, anchors ...model.SpriteAnchor) model.SpriteSheet {
	buf := make([]byte, width*height*4)
	for _, a := range anchors {
		for y := a.Y; y < a.Bottom(); y++ {
			for x := a.X; x < a.Right(); x++ {
				off := (y*width + x) * 4
				buf[off] = byte(a.ID * 40)
				buf[off+1] = 128
				buf[off+3] = 255
			}
		}
	}
	return model.SpriteSheet{Bytes: buf, Stride: 4, Width: width, Height: height, Anchors: anchors}
}

// buildTestReport creates a realistic two-sheet pack run for testing.
func buildTestReport() Report {
	return Report{
		Sheets: []model.SpriteSheet{
			testSheet(96, 64,
				model.SpriteAnchor{ID: 0, X: 0, Y: 0, Width: 64, Height: 64},
				model.SpriteAnchor{ID: 1, X: 64, Y: 0, Width: 32, Height: 32},
				model.SpriteAnchor{ID: 3, X: 64, Y: 32, Width: 32, Height: 16},
			),
			testSheet(48, 48,
				model.SpriteAnchor{ID: 2, X: 0, Y: 0, Width: 48, Height: 48},
			),
		},
		Names:    []string{"hero", "coin", "boss", "heart"},
		Files:    []string{"atlas-00.png", "atlas-01.png"},
		Settings: model.DefaultSettings(),
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_output.pdf")

	err := ExportPDF(path, buildTestReport())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// Two sheet pages with embedded images plus the summary should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, Report{Settings: model.DefaultSettings()})
	if err == nil {
		t.Fatal("expected error for empty report, got nil")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty report")
	}
}

func TestExportPDF_AliasedAnchors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.pdf")

	report := buildTestReport()
	// Sprite 4 is a duplicate of sprite 1 and shares its rectangle
	sheet := &report.Sheets[0]
	sheet.Anchors = append(sheet.Anchors, model.SpriteAnchor{ID: 4, X: 64, Y: 0, Width: 32, Height: 32})

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_GrayscaleAndUnrenderableStride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strides.pdf")

	anchors := []model.SpriteAnchor{{ID: 0, X: 0, Y: 0, Width: 8, Height: 8}}
	report := Report{
		Sheets: []model.SpriteSheet{
			{Bytes: make([]byte, 8*8), Stride: 1, Width: 8, Height: 8, Anchors: anchors},
			// Two bytes per pixel cannot be embedded; the page keeps its outlines
			{Bytes: make([]byte, 8*8*2), Stride: 2, Width: 8, Height: 8, Anchors: anchors},
		},
		Settings: model.DefaultSettings(),
	}

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_ZeroAreaSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blank.pdf")

	// A fully transparent sprite packs to a 0x0 sheet with a single anchor
	report := Report{
		Sheets:   []model.SpriteSheet{{Bytes: []byte{}, Stride: 4, Anchors: []model.SpriteAnchor{{ID: 0}}}},
		Settings: model.DefaultSettings(),
	}

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_ManySprites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_sprites.pdf")

	// More sprites than colors to test color cycling and legend wrapping
	anchors := make([]model.SpriteAnchor, 120)
	for i := range anchors {
		anchors[i] = model.SpriteAnchor{
			ID:     i,
			X:      (i % 12) * 10,
			Y:      (i / 12) * 10,
			Width:  10,
			Height: 10,
		}
	}
	names := make([]string, len(anchors))
	for i := range names {
		names[i] = fmt.Sprintf("frame_%03d", i)
	}

	report := Report{
		Sheets:   []model.SpriteSheet{testSheet(120, 100, anchors...)},
		Names:    names,
		Files:    []string{"frames.png"},
		Settings: model.DefaultSettings(),
	}

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_ManySheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_sheets.pdf")

	// Enough sheets to overflow the summary table
	report := Report{Settings: model.DefaultSettings()}
	for i := 0; i < 40; i++ {
		report.Sheets = append(report.Sheets, testSheet(4, 4, model.SpriteAnchor{ID: i, Width: 4, Height: 4}))
	}

	if err := ExportPDF(path, report); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_BadPath(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "missing", "out.pdf"), buildTestReport())
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
