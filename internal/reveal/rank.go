package reveal

import (
	"slices"

	"github.com/metcalfc/bcc/internal/book"
)

// Rank returns the ids of the entities in meta that are unlocked at position,
// in display order. Entities present in the chunk at position come first;
// within each group the most frequently seen come first. Equal counts keep
// the order of meta.
func Rank[E book.Entity](meta book.OrderedMap[E], chunks []book.Chunk, field Field, position int) []string {
	type ranked struct {
		id      string
		present bool
		count   int
	}

	var rs []ranked
	for _, id := range meta.Keys() {
		e, _ := meta.Get(id)
		if !IsUnlocked(chunks, e.IntroChunk(), position) {
			continue
		}
		rs = append(rs, ranked{
			id:      id,
			present: Present(chunks, field, id, position),
			count:   CountAppearances(chunks, field, id, position),
		})
	}

	slices.SortStableFunc(rs, func(a, b ranked) int {
		if a.present != b.present {
			if a.present {
				return -1
			}
			return 1
		}
		return b.count - a.count
	})

	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.id
	}
	return ids
}
