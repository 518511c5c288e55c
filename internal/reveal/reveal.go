// Package reveal answers what a reader is allowed to see at a reading
// position: which characters and locations are unlocked, which of their
// descriptions is current and how often they have appeared so far.
//
// A position is an index into a book's chunks and is inclusive: at position p
// the reader has finished chunks 0..p. Every function here is a pure function
// of its arguments and never modifies its inputs.
package reveal

import (
	"slices"

	"github.com/metcalfc/bcc/internal/book"
)

// NotFound is returned by IndexOf for an id that names no chunk.
const NotFound = -1

// Field selects which per-chunk list an entity is looked up in.
type Field int

const (
	Characters Field = iota
	Locations
)

// String returns the JSON name of the field.
func (f Field) String() string {
	if f == Locations {
		return "locs"
	}
	return "chars"
}

// In returns the ids listed under f in chunk c.
func (f Field) In(c book.Chunk) []string {
	if f == Locations {
		return c.Locs
	}
	return c.Chars
}

// IndexOf returns the position of the chunk with the given id, or NotFound.
func IndexOf(chunks []book.Chunk, id string) int {
	for i, c := range chunks {
		if c.ID == id {
			return i
		}
	}
	return NotFound
}

// IsUnlocked reports whether something introduced at introID is visible at
// position. An intro that names no chunk is never unlocked.
func IsUnlocked(chunks []book.Chunk, introID string, position int) bool {
	i := IndexOf(chunks, introID)
	return i != NotFound && i <= position
}

// ResolveDescription returns the description that is current at position:
// the one whose From chunk is the latest not after position. When two
// descriptions start at the same chunk the later one in the list wins. If
// none has started yet, the first description is used; an empty list gives "".
func ResolveDescription(descs []book.Description, chunks []book.Chunk, position int) string {
	if len(descs) == 0 {
		return ""
	}
	best, bestAt := 0, NotFound
	for i, d := range descs {
		at := IndexOf(chunks, d.From)
		if at == NotFound || at > position {
			continue
		}
		if at >= bestAt {
			best, bestAt = i, at
		}
	}
	return descs[best].Desc
}

// CountAppearances counts the chunks up to and including position whose
// field lists id.
func CountAppearances(chunks []book.Chunk, field Field, id string, position int) int {
	n := 0
	for i := 0; i <= position && i < len(chunks); i++ {
		if slices.Contains(field.In(chunks[i]), id) {
			n++
		}
	}
	return n
}

// Appearances returns the positions, up to and including position, of the
// chunks whose field lists id.
func Appearances(chunks []book.Chunk, field Field, id string, position int) []int {
	var out []int
	for i := 0; i <= position && i < len(chunks); i++ {
		if slices.Contains(field.In(chunks[i]), id) {
			out = append(out, i)
		}
	}
	return out
}

// LastSeen returns the latest chunk, up to and including position, whose
// field lists id. ok is false if id has not appeared yet.
func LastSeen(chunks []book.Chunk, field Field, id string, position int) (c book.Chunk, ok bool) {
	last := min(position, len(chunks)-1)
	for i := last; i >= 0; i-- {
		if slices.Contains(field.In(chunks[i]), id) {
			return chunks[i], true
		}
	}
	return book.Chunk{}, false
}

// Present reports whether id is listed under field in the chunk at position.
// Nothing is present at a position outside the book.
func Present(chunks []book.Chunk, field Field, id string, position int) bool {
	if position < 0 || position >= len(chunks) {
		return false
	}
	return slices.Contains(field.In(chunks[position]), id)
}
