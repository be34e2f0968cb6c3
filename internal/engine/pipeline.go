package engine

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

// Pack deduplicates the inputs, places the distinct sprites with packer and
// composites one SpriteSheet per packer result. Every input id receives
// exactly one anchor across the returned sheets. Anchors within a sheet are
// sorted by id; results without anchors are dropped.
//
// Either the whole set of sheets is returned or an error; there is no partial
// output.
func Pack(inputs []model.InputSprite, stride int, packer Packer) ([]model.SpriteSheet, error) {
	if packer == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidPacker, "no packer given")
	}
	if stride <= 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "stride must be positive, got %d", stride)
	}

	sprites := make([]model.Sprite, len(inputs))
	for i, in := range inputs {
		if err := validateInput(i, in, stride); err != nil {
			return nil, err
		}
		sprites[i] = model.NewSprite(i, in)
	}

	dedup := Deduplicate(sprites)
	results, err := packer.Pack(dedup.Representatives)
	if err != nil {
		return nil, err
	}
	if err := checkResults(results, dedup.Representatives); err != nil {
		return nil, err
	}

	results = nonEmpty(results)
	sheets := make([]model.SpriteSheet, len(results))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, res := range results {
		g.Go(func() error {
			placements := make([]Placement, len(res.Anchors))
			for j, a := range res.Anchors {
				placements[j] = Placement{Sprite: sprites[a.ID], Anchor: a}
			}
			anchors := dedup.Expand(res.Anchors)
			sort.Slice(anchors, func(a, b int) bool { return anchors[a].ID < anchors[b].ID })

			sheets[i] = model.SpriteSheet{
				Bytes:   Composite(res.Width, res.Height, stride, placements),
				Stride:  stride,
				Width:   res.Width,
				Height:  res.Height,
				Anchors: anchors,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

func nonEmpty(results []model.PackerResult) []model.PackerResult {
	out := results[:0:0]
	for _, r := range results {
		if len(r.Anchors) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// checkResults verifies that the packer placed every sprite exactly once at
// its own size, inside a sheet sized to the bounding box of its anchors.
func checkResults(results []model.PackerResult, sprites []model.SpriteData) error {
	byID := make(map[int]model.SpriteData, len(sprites))
	for _, s := range sprites {
		byID[s.ID] = s
	}

	placed := make(map[int]bool, len(sprites))
	for i, res := range results {
		for _, a := range res.Anchors {
			s, ok := byID[a.ID]
			if !ok {
				return perrors.New(perrors.ErrCodeGeometry, "sheet %d: anchor for unknown sprite %d", i, a.ID)
			}
			if placed[a.ID] {
				return perrors.New(perrors.ErrCodeGeometry, "sheet %d: sprite %d placed twice", i, a.ID)
			}
			placed[a.ID] = true
			if a.Width != s.Width || a.Height != s.Height {
				return perrors.New(perrors.ErrCodeGeometry, "sheet %d: sprite %d is %dx%d but anchored as %dx%d",
					i, a.ID, s.Width, s.Height, a.Width, a.Height)
			}
			if a.X < 0 || a.Y < 0 || a.Right() > res.Width || a.Bottom() > res.Height {
				return perrors.New(perrors.ErrCodeGeometry, "sheet %d: sprite %d at (%d,%d) exceeds %dx%d",
					i, a.ID, a.X, a.Y, res.Width, res.Height)
			}
		}
		if w, h := model.BoundingBox(res.Anchors); w != res.Width || h != res.Height {
			return perrors.New(perrors.ErrCodeGeometry, "sheet %d: reported %dx%d, anchors span %dx%d",
				i, res.Width, res.Height, w, h)
		}
	}
	if len(placed) != len(sprites) {
		return perrors.New(perrors.ErrCodeGeometry, "%d of %d sprites were not placed", len(sprites)-len(placed), len(sprites))
	}
	return nil
}

// Format turns a packed sheet's geometry into a serialisable structure.
// O is the format's own options type.
type Format[O any] interface {
	Encode(width, height int, anchors []model.SpriteAnchor, options O) (any, error)
}

// Encode hands a sheet to a Format.
func Encode[O any](sheet model.SpriteSheet, format Format[O], options O) (any, error) {
	return format.Encode(sheet.Width, sheet.Height, sheet.Anchors, options)
}
