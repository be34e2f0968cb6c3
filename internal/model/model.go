package model

import (
	"fmt"
	"strings"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
)

// Algorithm represents the packer strategy to use.
type Algorithm string

const (
	AlgorithmSimple   Algorithm = "simple"   // Greedy corner-anchor heuristic, single sheet
	AlgorithmMaxRects Algorithm = "maxrects" // Maximal rectangles best-short-side-fit, multi-sheet
)

// Algorithms lists every supported packer in display order.
var Algorithms = []Algorithm{AlgorithmMaxRects, AlgorithmSimple}

// ParseAlgorithm resolves a packer name. Unknown names are a configuration error.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case AlgorithmSimple, AlgorithmMaxRects:
		return a, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidPacker, "unknown packer %q (available: %s)", name, algorithmNames())
}

func algorithmNames() string {
	names := make([]string, len(Algorithms))
	for i, a := range Algorithms {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// Default values shared by settings and the persisted config.
const (
	DefaultPreferredSize = 4096
	DefaultStride        = 4 // RGBA8
	DefaultAlphaChannel  = 3 // alpha byte offset within an RGBA8 pixel
	DefaultFormat        = "amethyst"
	DefaultEncoding      = "json"
	DefaultOutput        = "out"
)

// PackSettings holds packer and output configuration for one invocation.
type PackSettings struct {
	// Packer settings
	Algorithm       Algorithm `json:"algorithm" toml:"algorithm"`
	PreferredWidth  int       `json:"preferred_width" toml:"preferred_width"`   // MaxRects sheet width in px
	PreferredHeight int       `json:"preferred_height" toml:"preferred_height"` // MaxRects sheet height in px

	// Pixel layout
	Trim         bool    `json:"trim" toml:"trim"`                   // Crop fully transparent borders before packing
	Stride       int     `json:"stride" toml:"stride"`               // Bytes per pixel
	AlphaChannel int     `json:"alpha_channel" toml:"alpha_channel"` // Alpha byte offset within a pixel
	Scale        float64 `json:"scale" toml:"scale"`                 // Resample factor applied on import, 1 = none

	// Metadata output
	Format   string `json:"format" toml:"format"`     // Format encoder name
	Encoding string `json:"encoding" toml:"encoding"` // "json" or "toml"
	Pretty   bool   `json:"pretty" toml:"pretty"`     // Indent the metadata file
}

// Validate checks the settings that the engine cannot recover from.
func (s PackSettings) Validate() error {
	if _, err := ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if s.PreferredWidth <= 0 || s.PreferredHeight <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "preferred size must be positive, got %dx%d", s.PreferredWidth, s.PreferredHeight)
	}
	if s.Stride <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "stride must be positive, got %d", s.Stride)
	}
	if s.AlphaChannel < 0 || s.AlphaChannel >= s.Stride {
		return perrors.New(perrors.ErrCodeInvalidInput, "alpha channel %d outside pixel stride %d", s.AlphaChannel, s.Stride)
	}
	if s.Scale <= 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "scale must be positive, got %g", s.Scale)
	}
	return nil
}

// String summarises the settings for log lines.
func (s PackSettings) String() string {
	if s.Algorithm == AlgorithmSimple {
		return fmt.Sprintf("simple trim=%t", s.Trim)
	}
	return fmt.Sprintf("maxrects %dx%d trim=%t", s.PreferredWidth, s.PreferredHeight, s.Trim)
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Algorithm:       AlgorithmMaxRects,
		PreferredWidth:  DefaultPreferredSize,
		PreferredHeight: DefaultPreferredSize,
		Trim:            false,
		Stride:          DefaultStride,
		AlphaChannel:    DefaultAlphaChannel,
		Scale:           1.0,
		Format:          DefaultFormat,
		Encoding:        DefaultEncoding,
		Pretty:          false,
	}
}
