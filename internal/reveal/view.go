package reveal

import "github.com/metcalfc/bcc/internal/book"

// SceneState is how far a scene is from the reading position.
type SceneState string

const (
	SceneRead    SceneState = "read"
	SceneCurrent SceneState = "current"
	SceneNext    SceneState = "next"
	SceneFuture  SceneState = "future"
)

// Scene is one chunk as shown in the "find your place" list. Future scenes
// carry no summary.
type Scene struct {
	Index int        `json:"index"`
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Micro string     `json:"micro,omitempty"`
	State SceneState `json:"state"`

	// Section is set on the first scene of each part.
	Section       string `json:"section,omitempty"`
	SectionLocked bool   `json:"sectionLocked,omitempty"`
}

// Selectable reports whether the reader may move the position to this scene.
func (s Scene) Selectable() bool { return s.State != SceneFuture }

// Card is an unlocked character or location as shown in its panel.
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Badge       string `json:"badge,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Count       int    `json:"count"`
	InScene     bool   `json:"inScene"`
	Description string `json:"description,omitempty"`
	LastSeen    string `json:"lastSeen,omitempty"`
}

// RecapEntry is one read chunk in the story-so-far timeline.
type RecapEntry struct {
	Title   string `json:"title"`
	Micro   string `json:"micro"`
	Section string `json:"section,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// Progress summarizes how far the reader is.
type Progress struct {
	Position int     `json:"position"`
	Read     int     `json:"read"`
	Total    int     `json:"total"`
	Pct      float64 `json:"pct"`
}

// Snapshot is everything a reader may see at one position.
type Snapshot struct {
	Progress   Progress     `json:"progress"`
	Scenes     []Scene      `json:"scenes"`
	Characters []Card       `json:"characters"`
	Locations  []Card       `json:"locations"`
	Recap      []RecapEntry `json:"recap"`
}

// TakeSnapshot builds the full view of b at position.
func TakeSnapshot(b *book.Book, position int) Snapshot {
	return Snapshot{
		Progress:   ProgressAt(b.Chunks, position),
		Scenes:     Scenes(b, position),
		Characters: CharacterCards(b, position),
		Locations:  LocationCards(b, position),
		Recap:      Recap(b, position),
	}
}

// ProgressAt reports the reading progress at position.
func ProgressAt(chunks []book.Chunk, position int) Progress {
	p := Progress{Position: position, Total: len(chunks)}
	if position >= 0 && position < len(chunks) {
		p.Read = position + 1
		p.Pct = chunks[position].Pct
	}
	return p
}

// Scenes lists every chunk of b with its state relative to position.
func Scenes(b *book.Book, position int) []Scene {
	scenes := make([]Scene, len(b.Chunks))
	for i, c := range b.Chunks {
		s := Scene{Index: i, ID: c.ID, Title: c.Title}
		switch {
		case i == position:
			s.State = SceneCurrent
		case i < position:
			s.State = SceneRead
		case i == position+1:
			s.State = SceneNext
		default:
			s.State = SceneFuture
		}
		if s.State != SceneFuture {
			s.Micro = c.Micro
		}
		if i == 0 || c.Part != b.Chunks[i-1].Part {
			s.Section = b.Section(c.Part)
			s.SectionLocked = s.State == SceneFuture
		}
		scenes[i] = s
	}
	return scenes
}

// CharacterCards returns the cards of the characters unlocked at position,
// in ranked order.
func CharacterCards(b *book.Book, position int) []Card {
	return cards(b.Characters, b.Chunks, Characters, position, func(c *Card, m book.CharMeta) {
		c.Badge = m.Badge
		c.Color = m.Color
	})
}

// LocationCards returns the cards of the locations unlocked at position,
// in ranked order.
func LocationCards(b *book.Book, position int) []Card {
	return cards(b.Locations, b.Chunks, Locations, position, func(c *Card, m book.LocMeta) {
		c.Icon = m.Icon
	})
}

func cards[E book.Entity](cat book.Catalog[E], chunks []book.Chunk, field Field, position int, decorate func(*Card, E)) []Card {
	ids := Rank(cat.Meta, chunks, field, position)
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		e, _ := cat.Meta.Get(id)
		c := Card{
			ID:          id,
			Name:        e.DisplayName(),
			Category:    e.Category(),
			Count:       CountAppearances(chunks, field, id, position),
			InScene:     Present(chunks, field, id, position),
			Description: ResolveDescription(cat.Descriptions[id], chunks, position),
		}
		if last, ok := LastSeen(chunks, field, id, position); ok {
			c.LastSeen = last.Title
		}
		decorate(&c, e)
		out = append(out, c)
	}
	return out
}

// Recap returns the read chunks up to and including position.
func Recap(b *book.Book, position int) []RecapEntry {
	last := min(position, len(b.Chunks)-1)
	out := []RecapEntry{}
	for i := 0; i <= last; i++ {
		c := b.Chunks[i]
		e := RecapEntry{Title: c.Title, Micro: c.Micro, Current: i == position}
		if i == 0 || c.Part != b.Chunks[i-1].Part {
			e.Section = b.Section(c.Part)
		}
		out = append(out, e)
	}
	return out
}
