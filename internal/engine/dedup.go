package engine

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"github.com/piwi3910/SheetPack/internal/model"
)

// Dedup is the result of content deduplication.
type Dedup struct {
	// Representatives holds the first sprite seen with each distinct content,
	// in input order, with its original id.
	Representatives []model.SpriteData

	// Aliases maps a representative id to every id sharing its content,
	// itself first, in input order.
	Aliases map[int][]int
}

// Deduplicate groups pixel-identical sprites. Two sprites are identical when
// their bytes and dimensions match.
func Deduplicate(sprites []model.Sprite) Dedup {
	d := Dedup{
		Representatives: make([]model.SpriteData, 0, len(sprites)),
		Aliases:         make(map[int][]int, len(sprites)),
	}

	// Fingerprint collisions are resolved by comparing bytes against every
	// representative in the bucket.
	buckets := make(map[uint64][]int, len(sprites))
	for _, s := range sprites {
		fp := xxhash.Sum64(s.Bytes)
		rep := -1
		for _, id := range buckets[fp] {
			candidate := sprites[id]
			if candidate.Data.Width == s.Data.Width && candidate.Data.Height == s.Data.Height &&
				bytes.Equal(candidate.Bytes, s.Bytes) {
				rep = id
				break
			}
		}
		if rep < 0 {
			buckets[fp] = append(buckets[fp], s.Data.ID)
			d.Representatives = append(d.Representatives, s.Data)
			d.Aliases[s.Data.ID] = []int{s.Data.ID}
			continue
		}
		d.Aliases[rep] = append(d.Aliases[rep], s.Data.ID)
	}
	return d
}

// Expand returns one anchor per alias of every anchor's sprite, sharing its
// position and size.
func (d Dedup) Expand(anchors []model.SpriteAnchor) []model.SpriteAnchor {
	out := make([]model.SpriteAnchor, 0, len(anchors))
	for _, a := range anchors {
		ids, ok := d.Aliases[a.ID]
		if !ok {
			out = append(out, a)
			continue
		}
		for _, id := range ids {
			alias := a
			alias.ID = id
			out = append(out, alias)
		}
	}
	return out
}
