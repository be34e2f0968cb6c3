package engine

import (
	"github.com/piwi3910/SheetPack/internal/model"
)

// Placement pairs a sprite with the anchor it was packed at.
type Placement struct {
	Sprite model.Sprite
	Anchor model.SpriteAnchor
}

// Composite allocates a zeroed width*height*stride buffer and copies each
// sprite into it row by row. Callers guarantee every anchor lies inside the
// sheet.
func Composite(width, height, stride int, placements []Placement) []byte {
	buf := make([]byte, width*height*stride)
	for _, p := range placements {
		blit(buf, width, stride, p)
	}
	return buf
}

func blit(dst []byte, sheetWidth, stride int, p Placement) {
	rowLen := p.Sprite.Data.Width * stride
	if rowLen == 0 {
		return
	}
	for row := 0; row < p.Sprite.Data.Height; row++ {
		src := p.Sprite.Bytes[row*rowLen : (row+1)*rowLen]
		off := ((p.Anchor.Y+row)*sheetWidth + p.Anchor.X) * stride
		copy(dst[off:off+rowLen], src)
	}
}
