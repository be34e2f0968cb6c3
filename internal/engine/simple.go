package engine

import (
	"sort"

	"github.com/piwi3910/SheetPack/internal/model"
)

// SimplePacker is a greedy corner-anchor heuristic. It puts every sprite on a
// single sheet, trying the free anchor closest to the origin first.
type SimplePacker struct{}

type point struct{ x, y int }

// Pack always returns exactly one result, even for empty input.
func (SimplePacker) Pack(sprites []model.SpriteData) ([]model.PackerResult, error) {
	if len(sprites) == 0 {
		return []model.PackerResult{{Anchors: []model.SpriteAnchor{}}}, nil
	}

	sorted := make([]model.SpriteData, len(sprites))
	copy(sorted, sprites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	free := []point{{0, 0}}
	anchors := make([]model.SpriteAnchor, 0, len(sorted))

	for _, s := range sorted {
		pos := takeAnchor(&free, anchors, s)
		anchors = append(anchors, model.SpriteAnchor{ID: s.ID, X: pos.x, Y: pos.y, Width: s.Width, Height: s.Height})

		right := point{pos.x + s.Width, pos.y}
		bottom := point{pos.x, pos.y + s.Height}

		// An existing anchor inside the new sprite's column or row span is
		// absorbed into the matching new anchor, which takes the tighter
		// coordinate.
		kept := free[:0]
		for _, a := range free {
			switch {
			case a.x >= pos.x && a.x <= right.x:
				right.y = min(right.y, a.y)
			case a.y >= pos.y && a.y <= bottom.y:
				bottom.x = min(bottom.x, a.x)
			default:
				kept = append(kept, a)
			}
		}
		free = kept

		free = appendUnique(free, right)
		free = appendUnique(free, bottom)
		sort.SliceStable(free, func(i, j int) bool {
			return cornerDistance(free[i]) < cornerDistance(free[j])
		})
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].ID < anchors[j].ID })
	w, h := model.BoundingBox(anchors)
	return []model.PackerResult{{Width: w, Height: h, Anchors: anchors}}, nil
}

// takeAnchor removes and returns the first free anchor at which the sprite
// does not overlap anything already placed. If no anchor qualifies the sprite
// goes to the right of everything placed so far.
func takeAnchor(free *[]point, placed []model.SpriteAnchor, s model.SpriteData) point {
	for i, p := range *free {
		candidate := model.SpriteAnchor{X: p.x, Y: p.y, Width: s.Width, Height: s.Height}
		if !overlapsAny(candidate, placed) {
			*free = append((*free)[:i], (*free)[i+1:]...)
			return p
		}
	}
	w, _ := model.BoundingBox(placed)
	return point{w, 0}
}

func overlapsAny(a model.SpriteAnchor, placed []model.SpriteAnchor) bool {
	for _, p := range placed {
		if a.Overlaps(p) {
			return true
		}
	}
	return false
}

func appendUnique(free []point, p point) []point {
	for _, a := range free {
		if a == p {
			return free
		}
	}
	return append(free, p)
}

// cornerDistance is x⁴+y⁴, computed in float64 so large sheets cannot
// overflow.
func cornerDistance(p point) float64 {
	x, y := float64(p.x), float64(p.y)
	return x*x*x*x + y*y*y*y
}
