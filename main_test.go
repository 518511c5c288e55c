//go:build !gui

package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/metcalfc/bcc/internal/book"
	"github.com/metcalfc/bcc/internal/reveal"
	"github.com/metcalfc/bcc/internal/state"
)

func newTestModel(t *testing.T) (model, *state.StateStore) {
	t.Helper()
	b, err := book.NewLibrary("internal/book/testdata").Load(context.Background(), "a-christmas-carol")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	store, err := state.Open(t.TempDir())
	if err != nil {
		t.Fatalf("state.Open: %v", err)
	}
	return newModel(newCompanion(b, "a-christmas-carol", store, false)), store
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft     = tea.KeyMsg{Type: tea.KeyLeft}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
)

func TestModelNavigation(t *testing.T) {
	tests := []struct {
		name         string
		keys         []tea.KeyMsg
		wantPosition int
		wantCursor   int
	}{
		{"advance", []tea.KeyMsg{keyRight, keyRight}, 2, 2},
		{"advance with n", []tea.KeyMsg{runes("n")}, 1, 1},
		{"back", []tea.KeyMsg{keyRight, keyRight, keyLeft}, 1, 1},
		{"back at start", []tea.KeyMsg{keyLeft}, 0, 0},
		{"cursor stops at next scene", []tea.KeyMsg{keyDown, keyDown, keyDown}, 0, 1},
		{"select next scene", []tea.KeyMsg{keyDown, keyEnter}, 1, 1},
		{"select read scene", []tea.KeyMsg{keyRight, keyRight, keyRight, keyUp, keyUp, keyEnter}, 1, 1},
		{"cursor moves without jumping", []tea.KeyMsg{keyRight, keyRight, keyUp}, 2, 1},
		{"section start", []tea.KeyMsg{keyRight, keyRight, keyRight, runes("[")}, 2, 2},
		{"restart", []tea.KeyMsg{keyRight, keyRight, runes("r")}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = press(t, m, tt.keys...)

			if m.Position != tt.wantPosition {
				t.Errorf("Position = %d, want %d", m.Position, tt.wantPosition)
			}
			if m.cursor != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.wantCursor)
			}
		})
	}
}

func TestModelSavesPosition(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, keyRight, keyRight)
	st, ok := store.Get("a-christmas-carol")
	if !ok || st.Chunk != "s2-past" || st.Position != 2 {
		t.Fatalf("saved state = %+v, %v", st, ok)
	}

	m, _ = press(t, m, runes("r"))
	if _, ok := store.Get("a-christmas-carol"); ok {
		t.Error("restart should clear the saved position")
	}

	m, cmd := press(t, m, keyRight, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit")
	}
	if st, _ := store.Get("a-christmas-carol"); st.Chunk != "s1-marley" {
		t.Errorf("quit saved %+v", st)
	}
}

func TestModelTabs(t *testing.T) {
	m, _ := newTestModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want tab
	}{
		{keyTab, tabCharacters},
		{keyTab, tabLocations},
		{keyTab, tabRecap},
		{keyTab, tabPosition},
		{keyShiftTab, tabRecap},
		{runes("2"), tabCharacters},
		{runes("1"), tabPosition},
	}
	for _, tt := range tests {
		m, _ = press(t, m, tt.key)
		if m.tab != tt.want {
			t.Errorf("after %q tab = %v, want %v", tt.key.String(), m.tab, tt.want)
		}
	}

	// Up and down scroll other panels rather than moving the scene cursor.
	m, _ = press(t, m, runes("2"), keyDown)
	if m.cursor != 0 {
		t.Errorf("cursor moved on the characters panel: %d", m.cursor)
	}
}

func TestModelWindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if m.viewport.Width != 120 || m.viewport.Height >= 40 {
		t.Errorf("viewport = %dx%d", m.viewport.Width, m.viewport.Height)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keyRight)

	view := m.View()
	for _, want := range []string{"A Christmas Carol", "Charles Dickens", "Stave One", "Scene 2/8", "Marley's Ghost"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Tiny Tim's toast") {
		t.Error("view shows the summary of a future scene")
	}

	m.quitting = true
	if m.View() != "" {
		t.Error("quitting mid-book should clear the screen")
	}
}

func TestRenderScenes(t *testing.T) {
	st := newStyles(book.Theme{})
	scenes := []reveal.Scene{
		{Index: 0, Title: "One", Micro: "first", State: reveal.SceneRead, Section: "Part I"},
		{Index: 1, Title: "Two", Micro: "second", State: reveal.SceneCurrent},
		{Index: 2, Title: "Three", Micro: "third", State: reveal.SceneNext, Section: "Part II"},
		{Index: 3, Title: "Four", State: reveal.SceneFuture, Section: "Part III", SectionLocked: true},
	}

	out, line := renderScenes(scenes, 2, st, 80)
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[line], "> ") || !strings.Contains(lines[line], "Three") {
		t.Errorf("cursor line %d = %q", line, lines[line])
	}
	if !strings.Contains(out, "🔒 Part III") {
		t.Error("locked section not marked")
	}
	// Read scenes only show their summary under the cursor.
	if strings.Contains(out, "first") {
		t.Error("read scene summary shown away from the cursor")
	}
	for _, want := range []string{"second", "third", "(you are here)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderCards(t *testing.T) {
	st := newStyles(book.Theme{})

	if got := renderCards(nil, st, 80, "No characters yet."); !strings.Contains(got, "No characters yet.") {
		t.Errorf("empty cards = %q", got)
	}

	cards := []reveal.Card{
		{ID: "scrooge", Name: "Scrooge", Category: "Miser", Count: 3, InScene: true, Description: "Colder than ever.", LastSeen: "Marley's Ghost"},
		{ID: "fred", Name: "Fred", Count: 1, LastSeen: "The Counting-House", Badge: "nephew"},
	}
	out := renderCards(cards, st, 80, "")
	for _, want := range []string{"Scrooge", "· Miser", "×3", "● in scene", "Colder than ever.", "[nephew]", "Last seen: The Counting-House"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "Last seen: Marley's Ghost") {
		t.Error("last seen shown for a character in the current scene")
	}
}

func TestRenderRecap(t *testing.T) {
	st := newStyles(book.Theme{})

	if got := renderRecap(reveal.Recap(&book.Book{}, -1), st, 80); !strings.Contains(got, "Nothing read yet.") {
		t.Errorf("empty recap = %q", got)
	}

	out := renderRecap([]reveal.RecapEntry{
		{Title: "One", Micro: "It begins.", Section: "Part I"},
		{Title: "Two", Micro: "It goes on.", Current: true},
	}, st, 80)
	for _, want := range []string{"Part I", "• One", "It begins.", "▶ Two"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func BenchmarkRefresh(b *testing.B) {
	bk, err := book.NewLibrary("internal/book/testdata").Load(context.Background(), "a-christmas-carol")
	if err != nil {
		b.Fatalf("Load: %v", err)
	}
	m := newModel(newCompanion(bk, "a-christmas-carol", nil, true))
	m.Position = 5
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.tab = tab(i % int(numTabs))
		m.refresh()
	}
}
