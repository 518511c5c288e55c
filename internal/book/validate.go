package book

import (
	"fmt"
	"maps"
	"slices"
)

// Validate checks the cross references of a book and returns one message per
// problem found. A nil result means the data is consistent.
func Validate(b *Book) []string {
	var issues []string
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	chunkIDs := make(map[string]bool, len(b.Chunks))
	for _, c := range b.Chunks {
		if chunkIDs[c.ID] {
			add("duplicate chunk id %q", c.ID)
		}
		chunkIDs[c.ID] = true
	}

	for _, c := range b.Chunks {
		for _, id := range c.Chars {
			if !b.Characters.Meta.Has(id) {
				add("chunk %s: character %q not in character meta", c.ID, id)
			}
		}
		for _, id := range c.Locs {
			if !b.Locations.Meta.Has(id) {
				add("chunk %s: location %q not in location meta", c.ID, id)
			}
		}
	}

	issues = append(issues, checkCatalog("character", b.Characters, chunkIDs)...)
	issues = append(issues, checkCatalog("location", b.Locations, chunkIDs)...)

	parts := make(map[int]bool)
	for _, c := range b.Chunks {
		parts[c.Part] = true
	}
	if len(b.Sections) < len(parts) {
		add("section labels array has %d entries but chunks use %d distinct part values", len(b.Sections), len(parts))
	}

	prev := -1.0
	for _, c := range b.Chunks {
		if c.Pct < prev {
			add("chunk %s: percentage %g is less than previous %g", c.ID, c.Pct, prev)
		}
		prev = c.Pct
	}

	return issues
}

func checkCatalog[M Entity](kind string, cat Catalog[M], chunkIDs map[string]bool) []string {
	var issues []string

	for _, id := range cat.Meta.Keys() {
		m, _ := cat.Meta.Get(id)
		if !chunkIDs[m.IntroChunk()] {
			issues = append(issues, fmt.Sprintf("%s %q: intro %q is not a valid chunk id", kind, id, m.IntroChunk()))
		}
		if len(cat.Descriptions[id]) == 0 {
			issues = append(issues, fmt.Sprintf("%s %q has no descriptions", kind, id))
		}
	}

	// Description maps have no defined order; walk them through the meta keys
	// first so output is stable, then report the orphans.
	seen := make(map[string]bool)
	for _, id := range cat.Meta.Keys() {
		seen[id] = true
		issues = append(issues, checkDescriptions(kind, id, cat.Descriptions[id], chunkIDs)...)
	}
	for _, id := range sortedKeys(cat.Descriptions) {
		if seen[id] {
			continue
		}
		issues = append(issues, fmt.Sprintf("%s description for %q not in %s meta", kind, id, kind))
		issues = append(issues, checkDescriptions(kind, id, cat.Descriptions[id], chunkIDs)...)
	}

	return issues
}

func checkDescriptions(kind, id string, descs []Description, chunkIDs map[string]bool) []string {
	var issues []string
	for _, d := range descs {
		if !chunkIDs[d.From] {
			issues = append(issues, fmt.Sprintf("%s %q description: from %q is not a valid chunk id", kind, id, d.From))
		}
	}
	return issues
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
