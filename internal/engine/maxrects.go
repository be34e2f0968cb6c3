package engine

import (
	"math"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// MaxRectsOptions configures the preferred sheet size. Zero values fall back
// to model.DefaultPreferredSize.
type MaxRectsOptions struct {
	PreferredWidth  int
	PreferredHeight int
}

// DefaultMaxRectsOptions returns 4096x4096.
func DefaultMaxRectsOptions() MaxRectsOptions {
	return MaxRectsOptions{
		PreferredWidth:  model.DefaultPreferredSize,
		PreferredHeight: model.DefaultPreferredSize,
	}
}

func (o MaxRectsOptions) withDefaults() MaxRectsOptions {
	if o.PreferredWidth <= 0 {
		o.PreferredWidth = model.DefaultPreferredSize
	}
	if o.PreferredHeight <= 0 {
		o.PreferredHeight = model.DefaultPreferredSize
	}
	return o
}

// MaxRectsPacker implements the maximal rectangles algorithm with the
// best-short-side-fit heuristic. Sprites that do not fit one sheet overflow
// into further sheets; sprites larger than a sheet get a sheet of their own.
type MaxRectsPacker struct {
	Options MaxRectsOptions
}

// Pack places every sprite. Normal sheets come first, followed by one sheet
// per oversized sprite in input order.
func (p MaxRectsPacker) Pack(sprites []model.SpriteData) ([]model.PackerResult, error) {
	opts := p.Options.withDefaults()

	// Filter out oversized sprites first
	var oversized []*maxRectsBin
	packable := make([]model.SpriteData, 0, len(sprites))
	for _, s := range sprites {
		if s.Width > opts.PreferredWidth || s.Height > opts.PreferredHeight {
			oversized = append(oversized, newOversizedBin(s))
			continue
		}
		packable = append(packable, s)
	}

	// Every packable sprite fits an empty bin, so each round places at least
	// one sprite and the loop terminates.
	var bins []*maxRectsBin
	for len(packable) > 0 {
		bin := newMaxRectsBin(opts.PreferredWidth, opts.PreferredHeight)
		rest := bin.insertSprites(packable)
		if len(rest) == len(packable) {
			return nil, perrors.New(perrors.ErrCodeGeometry,
				"no free rectangle in an empty %dx%d bin for sprite %d (%dx%d)",
				opts.PreferredWidth, opts.PreferredHeight, rest[0].ID, rest[0].Width, rest[0].Height)
		}
		bins = append(bins, bin)
		packable = rest
	}
	bins = append(bins, oversized...)

	results := make([]model.PackerResult, 0, len(bins))
	for _, bin := range bins {
		results = append(results, bin.toResult())
	}
	return results, nil
}

// usedRect is a placed sprite inside a bin.
type usedRect struct {
	rect Rect
	id   int
}

// maxRectsBin is one sheet under construction. The free list may contain
// mutually overlapping rectangles; only fully contained ones are pruned.
type maxRectsBin struct {
	width     int
	height    int
	used      []usedRect
	free      []Rect
	oversized bool
}

func newMaxRectsBin(width, height int) *maxRectsBin {
	return &maxRectsBin{
		width:  width,
		height: height,
		free:   []Rect{XYWH(0, 0, width, height)},
	}
}

// newOversizedBin wraps a single sprite that is larger than the preferred
// sheet. It has no free space.
func newOversizedBin(s model.SpriteData) *maxRectsBin {
	return &maxRectsBin{
		width:     s.Width,
		height:    s.Height,
		used:      []usedRect{{rect: XYWH(0, 0, s.Width, s.Height), id: s.ID}},
		oversized: true,
	}
}

// toResult converts the placements into anchors and sizes the sheet to their
// bounding box.
func (b *maxRectsBin) toResult() model.PackerResult {
	anchors := make([]model.SpriteAnchor, 0, len(b.used))
	for _, u := range b.used {
		anchors = append(anchors, model.SpriteAnchor{
			ID:     u.id,
			X:      u.rect.MinX,
			Y:      u.rect.MinY,
			Width:  u.rect.Width(),
			Height: u.rect.Height(),
		})
	}
	w, h := model.BoundingBox(anchors)
	return model.PackerResult{Width: w, Height: h, Anchors: anchors}
}

// rectScore is the leftover space of a candidate placement; lower is better.
type rectScore struct {
	placement Rect
	primary   int
	secondary int
}

// insertSprites places as many sprites as fit, one per scoring round, and
// returns the ones that did not fit in input order.
func (b *maxRectsBin) insertSprites(sprites []model.SpriteData) []model.SpriteData {
	remaining := make([]model.SpriteData, len(sprites))
	copy(remaining, sprites)

	for len(remaining) > 0 {
		bestIdx := -1
		var best rectScore

		for i, s := range remaining {
			score, ok := b.scoreRect(s.Width, s.Height)
			if !ok {
				continue
			}
			if bestIdx < 0 || score.primary < best.primary ||
				(score.primary == best.primary && score.secondary < best.secondary) {
				bestIdx = i
				best = score
			}
		}

		if bestIdx < 0 {
			break
		}

		b.placeRect(best.placement, remaining[bestIdx].ID)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return remaining
}

// scoreRect finds the free rectangle with the best short side fit for a
// sprite of the given size. Ties on the short side go to the smaller long side,
// then to the earlier free rectangle.
func (b *maxRectsBin) scoreRect(width, height int) (rectScore, bool) {
	bestShort := math.MaxInt
	bestLong := math.MaxInt
	var placement Rect
	found := false

	for _, r := range b.free {
		if width > r.Width() || height > r.Height() {
			continue
		}
		leftoverHoriz := r.Width() - width
		leftoverVert := r.Height() - height
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)

		if shortSideFit < bestShort || (shortSideFit == bestShort && longSideFit < bestLong) {
			bestShort = shortSideFit
			bestLong = longSideFit
			placement = XYWH(r.MinX, r.MinY, width, height)
			found = true
		}
	}

	if !found {
		return rectScore{}, false
	}
	return rectScore{placement: placement, primary: bestShort, secondary: bestLong}, true
}

// placeRect records a placement, splits every free rectangle it intersects
// and prunes the free list.
func (b *maxRectsBin) placeRect(placed Rect, id int) {
	// Split results are appended past toProcess and are not revisited.
	toProcess := len(b.free)
	for i := 0; i < toProcess; {
		if b.free[i].NoIntersection(placed) {
			i++
			continue
		}
		split := b.free[i]
		b.free = append(b.free[:i], b.free[i+1:]...)
		toProcess--
		b.splitFreeRect(split, placed)
	}

	b.free = pruneRedundant(b.free)
	b.used = append(b.used, usedRect{rect: placed, id: id})
}

// splitFreeRect appends up to four maximal residual rectangles of split that
// lie above, below, left and right of placed, each clipped to split.
func (b *maxRectsBin) splitFreeRect(split, placed Rect) {
	if placed.MinX < split.MaxX && placed.MaxX > split.MinX {
		// Above the placed rect
		if placed.MinY > split.MinY && placed.MinY < split.MaxY {
			b.free = append(b.free, Rect{MinX: split.MinX, MinY: split.MinY, MaxX: split.MaxX, MaxY: placed.MinY})
		}
		// Below the placed rect
		if placed.MaxY < split.MaxY {
			b.free = append(b.free, Rect{MinX: split.MinX, MinY: placed.MaxY, MaxX: split.MaxX, MaxY: split.MaxY})
		}
	}

	if placed.MinY < split.MaxY && placed.MaxY > split.MinY {
		// Left of the placed rect
		if placed.MinX > split.MinX && placed.MinX < split.MaxX {
			b.free = append(b.free, Rect{MinX: split.MinX, MinY: split.MinY, MaxX: placed.MinX, MaxY: split.MaxY})
		}
		// Right of the placed rect
		if placed.MaxX < split.MaxX {
			b.free = append(b.free, Rect{MinX: placed.MaxX, MinY: split.MinY, MaxX: split.MaxX, MaxY: split.MaxY})
		}
	}
}

// pruneRedundant removes every rect fully contained in another. A rect
// contained by a later one is dropped and the same index is re-checked;
// otherwise every later rect it contains is dropped. Removal swaps the last
// element into the hole, so the surviving order matches the reference packer.
func pruneRedundant(rects []Rect) []Rect {
	for i := 0; i < len(rects); {
		next := rects[i]

		contained := false
		for _, other := range rects[i+1:] {
			if other.Contains(next) {
				contained = true
				break
			}
		}
		if contained {
			last := len(rects) - 1
			rects[i] = rects[last]
			rects = rects[:last]
			continue
		}

		for j := len(rects) - 1; j > i; j-- {
			if next.Contains(rects[j]) {
				last := len(rects) - 1
				rects[j] = rects[last]
				rects = rects[:last]
			}
		}
		i++
	}
	return rects
}
