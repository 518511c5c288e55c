// Package book defines the book data a companion is built from and loads it
// from a directory of static JSON documents.
package book

import (
	"encoding/json"
)

// Chunk is one narrative unit. Chunks are kept in reading order; the slice
// index is the chunk's sequence index.
type Chunk struct {
	ID    string   `json:"id"`
	Stave Label    `json:"stave,omitzero"`
	Part  int      `json:"part"`
	Title string   `json:"title"`
	Micro string   `json:"micro"`
	Chars []string `json:"chars"`
	Locs  []string `json:"locs"`
	Pct   float64  `json:"pct"`
}

// Label is a chapter label that books write either as a number or a string.
// Number records which form the document used so it is written back the same
// way.
type Label struct {
	Text   string
	Number bool
}

func (l Label) String() string { return l.Text }

// UnmarshalJSON accepts both 3 and "III".
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label{Text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Label{Text: n.String(), Number: true}
	return nil
}

// MarshalJSON writes numeric labels back as numbers. Anything that is not a
// valid JSON number is written as a string.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.Number && json.Valid([]byte(l.Text)) {
		return []byte(l.Text), nil
	}
	return json.Marshal(l.Text)
}

// Entity is what characters and locations have in common: a chunk they are
// introduced at and something to show for them.
type Entity interface {
	IntroChunk() string
	DisplayName() string
	Category() string
}

// CharMeta describes a character.
type CharMeta struct {
	Name  string `json:"name"`
	Short string `json:"short"`
	Role  string `json:"role"`
	Intro string `json:"intro"`
	Color string `json:"color"`
	Badge string `json:"badge,omitempty"` // "spirit", "vision", ...
}

// IntroChunk returns the id of the chunk the character first appears in.
func (c CharMeta) IntroChunk() string { return c.Intro }

// Category returns the character's role.
func (c CharMeta) Category() string { return c.Role }

// DisplayName prefers the short name used on cards.
func (c CharMeta) DisplayName() string {
	if c.Short != "" {
		return c.Short
	}
	return c.Name
}

// LocMeta describes a location.
type LocMeta struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Intro string `json:"intro"`
	Type  string `json:"type"`
}

// IntroChunk returns the id of the chunk the location is first visited in.
func (l LocMeta) IntroChunk() string { return l.Intro }

// DisplayName returns the location's name.
func (l LocMeta) DisplayName() string { return l.Name }

// Category returns the kind of place, such as "House" or "Street".
func (l LocMeta) Category() string { return l.Type }

// Description is one version of an entity's description, current from the
// chunk named by From onwards.
type Description struct {
	From string `json:"from"`
	Desc string `json:"desc"`
}

// Catalog holds the metadata and description history of one kind of entity.
type Catalog[M Entity] struct {
	Meta         OrderedMap[M]            `json:"meta"`
	Descriptions map[string][]Description `json:"descriptions"`
}

// Theme holds the display colors of a book.
type Theme struct {
	HeaderBg          string `json:"headerBg"`
	HeaderGradientEnd string `json:"headerGradientEnd"`
	Accent            string `json:"accent"`
	AccentLight       string `json:"accentLight"`
	Text              string `json:"text"`
	TextSecondary     string `json:"textSecondary"`
	CardBg            string `json:"cardBg"`
	CardBorder        string `json:"cardBorder"`
	Background        string `json:"background"`
	TabInactive       string `json:"tabInactive"`
}

// Meta is the summary of a book, as stored in meta.json.
type Meta struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Sections []string `json:"sections"`
	Theme    Theme    `json:"theme"`
}

// Book is everything the companion knows about one book.
type Book struct {
	Meta
	Chunks     []Chunk           `json:"chunks"`
	Characters Catalog[CharMeta] `json:"characters"`
	Locations  Catalog[LocMeta]  `json:"locations"`
}

// Section returns the label of a part, or "" when the book has none for it.
func (m *Meta) Section(part int) string {
	if part < 0 || part >= len(m.Sections) {
		return ""
	}
	return m.Sections[part]
}
