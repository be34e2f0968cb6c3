package format

import (
	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// SpritePosition is one sprite in an Amethyst sprite sheet definition.
// Offsets is the trimmed sprite's position in its source image.
type SpritePosition struct {
	X       float32     `json:"x" toml:"x"`
	Y       float32     `json:"y" toml:"y"`
	Width   float32     `json:"width" toml:"width"`
	Height  float32     `json:"height" toml:"height"`
	Offsets *[2]float32 `json:"offsets" toml:"offsets,omitempty"`
}

// SerializedSpriteSheet is the Amethyst sprite sheet definition.
type SerializedSpriteSheet struct {
	TextureWidth  float32          `json:"texture_width" toml:"texture_width"`
	TextureHeight float32          `json:"texture_height" toml:"texture_height"`
	Sprites       []SpritePosition `json:"sprites" toml:"sprites"`
}

// AmethystFormat lists sprite rectangles in anchor order.
type AmethystFormat struct{}

func (AmethystFormat) Name() string { return "amethyst" }

func (AmethystFormat) Encode(width, height int, anchors []model.SpriteAnchor, options Options) (any, error) {
	sprites := make([]SpritePosition, len(anchors))
	for i, a := range anchors {
		sprites[i] = SpritePosition{
			X:       float32(a.X),
			Y:       float32(a.Y),
			Width:   float32(a.Width),
			Height:  float32(a.Height),
			Offsets: offsetsFor(a.ID, options),
		}
	}
	return SerializedSpriteSheet{
		TextureWidth:  float32(width),
		TextureHeight: float32(height),
		Sprites:       sprites,
	}, nil
}

// NamedSpritePosition is SpritePosition with the sprite's name.
type NamedSpritePosition struct {
	Name    string      `json:"name" toml:"name"`
	X       float32     `json:"x" toml:"x"`
	Y       float32     `json:"y" toml:"y"`
	Width   float32     `json:"width" toml:"width"`
	Height  float32     `json:"height" toml:"height"`
	Offsets *[2]float32 `json:"offsets" toml:"offsets,omitempty"`
}

// SerializedNamedSpriteSheet is SerializedSpriteSheet with named sprites.
type SerializedNamedSpriteSheet struct {
	TextureWidth  float32               `json:"texture_width" toml:"texture_width"`
	TextureHeight float32               `json:"texture_height" toml:"texture_height"`
	Sprites       []NamedSpritePosition `json:"sprites" toml:"sprites"`
}

// AmethystNamedFormat requires Options.Names to hold a name for every
// sprite id on the sheet.
type AmethystNamedFormat struct{}

func (AmethystNamedFormat) Name() string { return "amethyst_named" }

func (AmethystNamedFormat) Encode(width, height int, anchors []model.SpriteAnchor, options Options) (any, error) {
	sprites := make([]NamedSpritePosition, len(anchors))
	for i, a := range anchors {
		if a.ID < 0 || a.ID >= len(options.Names) {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "no name for sprite %d (%d names given)", a.ID, len(options.Names))
		}
		sprites[i] = NamedSpritePosition{
			Name:    options.Names[a.ID],
			X:       float32(a.X),
			Y:       float32(a.Y),
			Width:   float32(a.Width),
			Height:  float32(a.Height),
			Offsets: offsetsFor(a.ID, options),
		}
	}
	return SerializedNamedSpriteSheet{
		TextureWidth:  float32(width),
		TextureHeight: float32(height),
		Sprites:       sprites,
	}, nil
}

func offsetsFor(id int, options Options) *[2]float32 {
	if id < 0 || id >= len(options.Offsets) {
		return nil
	}
	o := options.Offsets[id]
	return &[2]float32{float32(o.Left), float32(o.Top)}
}
