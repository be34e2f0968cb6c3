// Package engine implements the sprite packing core: the packers that decide
// where each sprite goes, alpha trimming, deduplication, and the compositor
// that writes sheet pixels. It works on raw pixel buffers only and never
// touches the filesystem.
package engine

import (
	"github.com/piwi3910/SheetPack/internal/model"
)

// Packer places a set of sized sprites onto one or more sheets.
//
// Implementations return one PackerResult per sheet. Every sprite handed in
// must appear in exactly one result, and results report the tight bounding
// box of their anchors as their size.
type Packer interface {
	Pack(sprites []model.SpriteData) ([]model.PackerResult, error)
}

// NewPacker builds the packer selected in settings.
func NewPacker(settings model.PackSettings) (Packer, error) {
	algorithm, err := model.ParseAlgorithm(string(settings.Algorithm))
	if err != nil {
		return nil, err
	}
	if algorithm == model.AlgorithmSimple {
		return SimplePacker{}, nil
	}
	return MaxRectsPacker{Options: MaxRectsOptions{
		PreferredWidth:  settings.PreferredWidth,
		PreferredHeight: settings.PreferredHeight,
	}}, nil
}
