package model

// InputSprite is a caller-supplied raw pixel buffer. The number of bytes per
// pixel (stride) is supplied separately to every operation that reads Bytes.
type InputSprite struct {
	Bytes  []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SpriteData is the lightweight handle the packers work with. ID is the
// sprite's position in the input ordering and is the join key throughout
// the pipeline.
type SpriteData struct {
	ID     int `json:"id"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width * Height.
func (d SpriteData) Area() int {
	return d.Width * d.Height
}

// Sprite owns the pixel bytes of one input together with its handle.
type Sprite struct {
	Bytes []byte
	Data  SpriteData
}

// NewSprite wraps the input at position id.
func NewSprite(id int, in InputSprite) Sprite {
	return Sprite{
		Bytes: in.Bytes,
		Data:  SpriteData{ID: id, Width: in.Width, Height: in.Height},
	}
}

// SpriteAnchor is the placement of one sprite within its sheet.
type SpriteAnchor struct {
	ID     int `json:"id"`
	X      int `json:"x"`      // Position from left edge (px)
	Y      int `json:"y"`      // Position from top edge (px)
	Width  int `json:"width"`  // Final (possibly trimmed) width
	Height int `json:"height"` // Final (possibly trimmed) height
}

// Right returns the exclusive right edge.
func (a SpriteAnchor) Right() int { return a.X + a.Width }

// Bottom returns the exclusive bottom edge.
func (a SpriteAnchor) Bottom() int { return a.Y + a.Height }

// Overlaps reports whether two anchors share any pixel. Touching edges and
// zero-area anchors never overlap.
func (a SpriteAnchor) Overlaps(b SpriteAnchor) bool {
	if a.Width == 0 || a.Height == 0 || b.Width == 0 || b.Height == 0 {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// PackerResult is one packed sheet before its pixels are materialised.
type PackerResult struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Anchors []SpriteAnchor `json:"anchors"`
}

// BoundingBox returns the far corner over all anchors, i.e. the tight sheet
// size for the given placements.
func BoundingBox(anchors []SpriteAnchor) (int, int) {
	var w, h int
	for _, a := range anchors {
		w = max(w, a.Right())
		h = max(h, a.Bottom())
	}
	return w, h
}

// SpriteSheet is a packed sheet with its pixel bytes.
type SpriteSheet struct {
	Bytes   []byte         `json:"-"`
	Stride  int            `json:"stride"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Anchors []SpriteAnchor `json:"anchors"`
}

// UsedArea returns the total area covered by anchors. Aliased anchors share
// a rectangle with their representative and are counted once.
func (s SpriteSheet) UsedArea() int {
	type key struct{ x, y, w, h int }
	seen := make(map[key]bool, len(s.Anchors))
	total := 0
	for _, a := range s.Anchors {
		k := key{a.X, a.Y, a.Width, a.Height}
		if seen[k] {
			continue
		}
		seen[k] = true
		total += a.Width * a.Height
	}
	return total
}

// TotalArea returns the sheet area.
func (s SpriteSheet) TotalArea() int {
	return s.Width * s.Height
}

// Efficiency returns the usage percentage.
func (s SpriteSheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(s.UsedArea()) / float64(ta) * 100.0
}

// TotalEfficiency returns overall usage percentage across sheets.
func TotalEfficiency(sheets []SpriteSheet) float64 {
	var used, total int
	for _, s := range sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// TrimOffset records where a trimmed sprite sat inside its source image.
type TrimOffset struct {
	Left         int `json:"left"`
	Top          int `json:"top"`
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
}
