package model

import (
	"testing"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
)

func TestParseAlgorithm(t *testing.T) {
	for _, name := range []string{"simple", "maxrects", " MaxRects "} {
		if _, err := ParseAlgorithm(name); err != nil {
			t.Errorf("ParseAlgorithm(%q) returned error: %v", name, err)
		}
	}
}

func TestParseAlgorithmUnknownIsConfigurationError(t *testing.T) {
	_, err := ParseAlgorithm("guillotine")
	if err == nil {
		t.Fatal("expected error for unknown packer")
	}
	if !perrors.Is(err, perrors.ErrCodeInvalidPacker) {
		t.Errorf("expected INVALID_PACKER, got %v", err)
	}
}

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.PreferredWidth != 4096 || s.PreferredHeight != 4096 {
		t.Errorf("expected 4096x4096 default, got %dx%d", s.PreferredWidth, s.PreferredHeight)
	}
	if s.Stride != 4 || s.AlphaChannel != 3 {
		t.Errorf("expected RGBA8 layout, got stride=%d alpha=%d", s.Stride, s.AlphaChannel)
	}
}

func TestValidateRejectsAlphaOutsideStride(t *testing.T) {
	s := DefaultSettings()
	s.AlphaChannel = 4
	if err := s.Validate(); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestValidateRejectsNonPositivePreferredSize(t *testing.T) {
	s := DefaultSettings()
	s.PreferredHeight = 0
	if err := s.Validate(); err == nil {
		t.Error("expected error for zero preferred height")
	}
}

func TestBoundingBox(t *testing.T) {
	w, h := BoundingBox([]SpriteAnchor{
		{ID: 0, X: 0, Y: 0, Width: 10, Height: 10},
		{ID: 1, X: 10, Y: 5, Width: 4, Height: 20},
	})
	if w != 14 || h != 25 {
		t.Errorf("expected 14x25, got %dx%d", w, h)
	}

	w, h = BoundingBox(nil)
	if w != 0 || h != 0 {
		t.Errorf("expected 0x0 for no anchors, got %dx%d", w, h)
	}
}

func TestAnchorOverlaps(t *testing.T) {
	a := SpriteAnchor{X: 0, Y: 0, Width: 10, Height: 10}
	touching := SpriteAnchor{X: 10, Y: 0, Width: 10, Height: 10}
	crossing := SpriteAnchor{X: 9, Y: 9, Width: 2, Height: 2}
	empty := SpriteAnchor{X: 5, Y: 5}

	if a.Overlaps(touching) {
		t.Error("touching anchors must not overlap")
	}
	if !a.Overlaps(crossing) || !crossing.Overlaps(a) {
		t.Error("crossing anchors must overlap both ways")
	}
	if a.Overlaps(empty) {
		t.Error("zero-area anchor must not overlap")
	}
}

func TestSheetEfficiencyCountsAliasesOnce(t *testing.T) {
	sheet := SpriteSheet{
		Width:  20,
		Height: 10,
		Anchors: []SpriteAnchor{
			{ID: 0, X: 0, Y: 0, Width: 10, Height: 10},
			{ID: 1, X: 0, Y: 0, Width: 10, Height: 10},
		},
	}
	if sheet.UsedArea() != 100 {
		t.Errorf("expected used area 100, got %d", sheet.UsedArea())
	}
	if sheet.Efficiency() != 50.0 {
		t.Errorf("expected 50%% efficiency, got %f", sheet.Efficiency())
	}
	if (SpriteSheet{}).Efficiency() != 0 {
		t.Error("empty sheet efficiency should be 0")
	}
}

func TestTotalEfficiency(t *testing.T) {
	sheets := []SpriteSheet{
		{Width: 10, Height: 10, Anchors: []SpriteAnchor{{Width: 10, Height: 10}}},
		{Width: 10, Height: 10, Anchors: nil},
	}
	if got := TotalEfficiency(sheets); got != 50.0 {
		t.Errorf("expected 50%%, got %f", got)
	}
	if TotalEfficiency(nil) != 0 {
		t.Error("expected 0 for no sheets")
	}
}
