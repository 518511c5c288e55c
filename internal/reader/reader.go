// Package reader holds a reading session over a book and extracts chapter
// text from source files (EPUB, Markdown, plain text).
package reader

import (
	"github.com/metcalfc/bcc/internal/book"
	"github.com/metcalfc/bcc/internal/reveal"
	"github.com/metcalfc/bcc/internal/state"
)

// Session is the reader's place in one book. The position is the only state;
// it changes only through the navigation methods below.
type Session struct {
	Book     *book.Book
	Position int

	// PartStarts holds the index of the first chunk of every part.
	PartStarts []int
}

// NewSession starts a session at the beginning of b.
func NewSession(b *book.Book) *Session {
	return &Session{
		Book:       b,
		Position:   0,
		PartStarts: FindPartStarts(b.Chunks),
	}
}

// FindPartStarts returns indices of chunks that start a new part.
func FindPartStarts(chunks []book.Chunk) []int {
	var starts []int
	for i, c := range chunks {
		if i == 0 || c.Part != chunks[i-1].Part {
			starts = append(starts, i)
		}
	}
	return starts
}

// Len returns the number of chunks in the book.
func (s *Session) Len() int { return len(s.Book.Chunks) }

// clamp keeps a position inside the book.
func (s *Session) clamp(i int) int {
	if i >= s.Len() {
		i = s.Len() - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Advance marks the next chunk as read. Returns false at the end.
func (s *Session) Advance() bool {
	if s.Position < s.Len()-1 {
		s.Position++
		return true
	}
	return false
}

// Back un-reads the current chunk. Returns false at the start.
func (s *Session) Back() bool {
	if s.Position > 0 {
		s.Position--
		return true
	}
	return false
}

// JumpTo moves to chunk i. Only chunks up to one past the current position
// can be chosen; later ones are still locked.
func (s *Session) JumpTo(i int) bool {
	if i < 0 || i >= s.Len() || i > s.Position+1 {
		return false
	}
	s.Position = i
	return true
}

// Restore moves to a saved position, re-resolving it by chunk id so edits to
// the chunk list do not shift the reader. Unlike JumpTo it may move forward
// any distance.
func (s *Session) Restore(st state.ReadingState) {
	if i := reveal.IndexOf(s.Book.Chunks, st.Chunk); i != reveal.NotFound {
		s.Position = i
		return
	}
	s.Position = s.clamp(st.Position)
}

// Save returns the state to persist for the current position.
func (s *Session) Save() state.ReadingState {
	return state.ReadingState{
		Chunk:    s.CurrentChunk().ID,
		Position: s.Position,
	}
}

// PrevPart moves to the start of the current part, or to the start of the
// previous one when already there.
func (s *Session) PrevPart() {
	for i := len(s.PartStarts) - 1; i >= 0; i-- {
		if s.PartStarts[i] < s.Position {
			s.Position = s.PartStarts[i]
			return
		}
	}
	s.Position = 0
}

// Restart goes back to the first chunk.
func (s *Session) Restart() { s.Position = 0 }

// CurrentChunk returns the chunk at the current position.
func (s *Session) CurrentChunk() book.Chunk {
	if s.Position >= 0 && s.Position < s.Len() {
		return s.Book.Chunks[s.Position]
	}
	return book.Chunk{}
}

// CurrentSection returns the label of the part being read.
func (s *Session) CurrentSection() string {
	return s.Book.Section(s.CurrentChunk().Part)
}

// Progress returns the number of chunks read and the total.
func (s *Session) Progress() (read, total int) {
	return s.Position + 1, s.Len()
}

// Percent returns the book's own percent-complete value for the position.
func (s *Session) Percent() float64 {
	return s.CurrentChunk().Pct
}

// AtEnd returns true if the last chunk has been read.
func (s *Session) AtEnd() bool {
	return s.Position >= s.Len()-1
}

// Snapshot returns what the reader may see at the current position.
func (s *Session) Snapshot() reveal.Snapshot {
	return reveal.TakeSnapshot(s.Book, s.Position)
}
