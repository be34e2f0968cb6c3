package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/SheetPack/internal/model"
)

func TestComposite_BlitsRowsAtAnchor(t *testing.T) {
	sprite := model.NewSprite(0, model.InputSprite{Bytes: []byte{1, 2, 3, 4}, Width: 2, Height: 2})
	placements := []Placement{{
		Sprite: sprite,
		Anchor: model.SpriteAnchor{ID: 0, X: 1, Y: 1, Width: 2, Height: 2},
	}}

	buf := Composite(3, 3, 1, placements)

	assert.Equal(t, []byte{
		0, 0, 0,
		0, 1, 2,
		0, 3, 4,
	}, buf)
}

func TestComposite_MultipleSpritesWithStride(t *testing.T) {
	red := model.NewSprite(0, model.InputSprite{Bytes: []byte{255, 0, 0, 255}, Width: 1, Height: 1})
	blue := model.NewSprite(1, model.InputSprite{Bytes: []byte{0, 0, 255, 255}, Width: 1, Height: 1})

	buf := Composite(2, 1, 4, []Placement{
		{Sprite: red, Anchor: model.SpriteAnchor{ID: 0, X: 0, Y: 0, Width: 1, Height: 1}},
		{Sprite: blue, Anchor: model.SpriteAnchor{ID: 1, X: 1, Y: 0, Width: 1, Height: 1}},
	})

	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, buf)
}

func TestComposite_ZeroSizedSpriteWritesNothing(t *testing.T) {
	empty := model.NewSprite(0, model.InputSprite{Bytes: []byte{}, Width: 0, Height: 0})

	buf := Composite(0, 0, 4, []Placement{{Sprite: empty}})
	assert.Empty(t, buf)
}
