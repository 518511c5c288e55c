package reveal

import (
	"testing"

	"github.com/metcalfc/bcc/internal/book"
)

// threeChunks is the A/B scene from the companion's docs: A is introduced in
// c0, B in c1, and B is the only one on stage in c2.
func threeChunks() []book.Chunk {
	return []book.Chunk{
		{ID: "c0", Title: "Zero", Chars: []string{"A"}, Locs: []string{"L1"}},
		{ID: "c1", Title: "One", Chars: []string{"A", "B"}, Locs: []string{"L1", "L2"}},
		{ID: "c2", Title: "Two", Chars: []string{"B"}, Locs: []string{"L2"}},
	}
}

func metaAB() book.OrderedMap[book.CharMeta] {
	var m book.OrderedMap[book.CharMeta]
	m.Set("A", book.CharMeta{Name: "A", Intro: "c0"})
	m.Set("B", book.CharMeta{Name: "B", Intro: "c1"})
	return m
}

func TestIndexOf(t *testing.T) {
	chunks := threeChunks()
	tests := []struct {
		id   string
		want int
	}{
		{"c0", 0},
		{"c1", 1},
		{"c2", 2},
		{"missing", NotFound},
		{"", NotFound},
	}
	for _, tt := range tests {
		if got := IndexOf(chunks, tt.id); got != tt.want {
			t.Errorf("IndexOf(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
	if got := IndexOf(nil, "c0"); got != NotFound {
		t.Errorf("IndexOf(nil) = %d, want NotFound", got)
	}
}

func TestIsUnlocked(t *testing.T) {
	chunks := threeChunks()
	tests := []struct {
		name     string
		intro    string
		position int
		want     bool
	}{
		{"intro at position", "c1", 1, true},
		{"intro before position", "c0", 2, true},
		{"intro after position", "c2", 1, false},
		{"first chunk at start", "c0", 0, true},
		{"unknown intro at start", "nope", 0, false},
		{"unknown intro at end", "nope", 2, false},
		{"negative position", "c0", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnlocked(chunks, tt.intro, tt.position); got != tt.want {
				t.Errorf("IsUnlocked(%q, %d) = %v, want %v", tt.intro, tt.position, got, tt.want)
			}
		})
	}
}

func TestUnlockingIsMonotonic(t *testing.T) {
	chunks := threeChunks()
	intros := []string{"c0", "c1", "c2", "missing"}
	for _, intro := range intros {
		for p1 := 0; p1 < len(chunks); p1++ {
			for p2 := p1 + 1; p2 < len(chunks); p2++ {
				if IsUnlocked(chunks, intro, p1) && !IsUnlocked(chunks, intro, p2) {
					t.Errorf("intro %q unlocked at %d but locked at %d", intro, p1, p2)
				}
			}
		}
	}
}

func TestResolveDescription(t *testing.T) {
	chunks := threeChunks()
	descs := []book.Description{
		{From: "c0", Desc: "d0"},
		{From: "c1", Desc: "d1"},
	}

	tests := []struct {
		name     string
		descs    []book.Description
		position int
		want     string
	}{
		{"first at start", descs, 0, "d0"},
		{"second once reached", descs, 1, "d1"},
		{"beyond the book", descs, 5, "d1"},
		{"empty list", nil, 1, ""},
		{
			"default to first when none started",
			[]book.Description{{From: "c1", Desc: "early"}, {From: "c2", Desc: "late"}},
			0, "early",
		},
		{
			"later wins on same chunk",
			[]book.Description{{From: "c1", Desc: "first"}, {From: "c1", Desc: "override"}},
			1, "override",
		},
		{
			"greatest chunk wins regardless of list order",
			[]book.Description{{From: "c1", Desc: "newer"}, {From: "c0", Desc: "older"}},
			2, "newer",
		},
		{
			"unresolvable from never selected",
			[]book.Description{{From: "c0", Desc: "real"}, {From: "bogus", Desc: "broken"}},
			2, "real",
		},
		{
			"all unresolvable falls back to first",
			[]book.Description{{From: "x", Desc: "x"}, {From: "y", Desc: "y"}},
			2, "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDescription(tt.descs, chunks, tt.position); got != tt.want {
				t.Errorf("ResolveDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountAppearances(t *testing.T) {
	chunks := threeChunks()
	tests := []struct {
		field    Field
		id       string
		position int
		want     int
	}{
		{Characters, "A", 0, 1},
		{Characters, "A", 1, 2},
		{Characters, "A", 2, 2},
		{Characters, "B", 0, 0},
		{Characters, "B", 2, 2},
		{Locations, "L2", 2, 2},
		{Locations, "A", 2, 0},
		{Characters, "A", 99, 2},
		{Characters, "A", -1, 0},
	}
	for _, tt := range tests {
		if got := CountAppearances(chunks, tt.field, tt.id, tt.position); got != tt.want {
			t.Errorf("CountAppearances(%s, %q, %d) = %d, want %d", tt.field, tt.id, tt.position, got, tt.want)
		}
	}
}

func TestCountAppearancesNonDecreasing(t *testing.T) {
	chunks := threeChunks()
	last := len(chunks) - 1
	for _, id := range []string{"A", "B", "C"} {
		prev := 0
		total := CountAppearances(chunks, Characters, id, last)
		for p := 0; p <= last; p++ {
			n := CountAppearances(chunks, Characters, id, p)
			if n < prev {
				t.Errorf("%s: count decreased from %d to %d at %d", id, prev, n, p)
			}
			if n > total {
				t.Errorf("%s: count %d at %d exceeds final %d", id, n, p, total)
			}
			prev = n
		}
	}
}

func TestAppearancesAndLastSeen(t *testing.T) {
	chunks := threeChunks()

	got := Appearances(chunks, Characters, "A", 2)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Appearances(A) = %v, want [0 1]", got)
	}

	c, ok := LastSeen(chunks, Characters, "A", 2)
	if !ok || c.ID != "c1" {
		t.Errorf("LastSeen(A, 2) = %q, %v; want c1", c.ID, ok)
	}

	c, ok = LastSeen(chunks, Characters, "B", 99)
	if !ok || c.ID != "c2" {
		t.Errorf("LastSeen(B, 99) = %q, %v; want c2", c.ID, ok)
	}

	if _, ok := LastSeen(chunks, Characters, "B", 0); ok {
		t.Error("B should not have been seen at position 0")
	}
	if _, ok := LastSeen(chunks, Characters, "A", -1); ok {
		t.Error("nothing is seen before the book starts")
	}
}

func TestRankScenario(t *testing.T) {
	chunks := threeChunks()
	meta := metaAB()

	got := Rank(meta, chunks, Characters, 0)
	if len(got) != 1 || got[0] != "A" {
		t.Errorf("Rank at 0 = %v, want [A]", got)
	}

	// Both are on stage at 1, A has been seen more.
	got = Rank(meta, chunks, Characters, 1)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Rank at 1 = %v, want [A B]", got)
	}

	// Only B is on stage at 2, so B leads despite equal counts.
	got = Rank(meta, chunks, Characters, 2)
	if len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("Rank at 2 = %v, want [B A]", got)
	}
}

func TestRankInSceneBeatsCount(t *testing.T) {
	chunks := []book.Chunk{
		{ID: "c0", Chars: []string{"A"}},
		{ID: "c1", Chars: []string{"A"}},
		{ID: "c2", Chars: []string{"A"}},
		{ID: "c3", Chars: []string{"B"}},
	}
	var meta book.OrderedMap[book.CharMeta]
	meta.Set("A", book.CharMeta{Intro: "c0"})
	meta.Set("B", book.CharMeta{Intro: "c3"})

	got := Rank(meta, chunks, Characters, 3)
	if len(got) != 2 || got[0] != "B" {
		t.Errorf("Rank = %v, want B first", got)
	}
}

func TestRankStableOnTies(t *testing.T) {
	chunks := []book.Chunk{
		{ID: "c0", Chars: []string{"X", "Y", "Z", "W"}},
		{ID: "c1", Chars: []string{}},
	}
	var meta book.OrderedMap[book.CharMeta]
	for _, id := range []string{"Z", "X", "W", "Y"} {
		meta.Set(id, book.CharMeta{Intro: "c0"})
	}

	want := []string{"Z", "X", "W", "Y"}
	for i := 0; i < 20; i++ {
		got := Rank(meta, chunks, Characters, 1)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("Rank = %v, want %v", got, want)
			}
		}
	}
}

func TestRankNeverShowsLocked(t *testing.T) {
	chunks := threeChunks()
	var meta book.OrderedMap[book.CharMeta]
	meta.Set("A", book.CharMeta{Intro: "c0"})
	meta.Set("B", book.CharMeta{Intro: "c2"})
	meta.Set("Ghost", book.CharMeta{Intro: "not-a-chunk"})

	for p := 0; p < len(chunks); p++ {
		for _, id := range Rank(meta, chunks, Characters, p) {
			e, _ := meta.Get(id)
			if !IsUnlocked(chunks, e.Intro, p) {
				t.Errorf("locked %s ranked at %d", id, p)
			}
			if id == "Ghost" {
				t.Errorf("entity with unknown intro ranked at %d", p)
			}
		}
	}
}

func TestRankPartition(t *testing.T) {
	chunks := threeChunks()
	var meta book.OrderedMap[book.LocMeta]
	meta.Set("L1", book.LocMeta{Name: "L1", Intro: "c0"})
	meta.Set("L2", book.LocMeta{Name: "L2", Intro: "c1"})

	for p := 0; p < len(chunks); p++ {
		ranked := Rank(meta, chunks, Locations, p)
		seenAbsent := false
		for _, id := range ranked {
			present := Present(chunks, Locations, id, p)
			if present && seenAbsent {
				t.Errorf("position %d: present %s ranked after an absent entity: %v", p, id, ranked)
			}
			if !present {
				seenAbsent = true
			}
		}
	}
}

func TestRankOutOfRange(t *testing.T) {
	chunks := threeChunks()
	meta := metaAB()

	if got := Rank(meta, chunks, Characters, -1); len(got) != 0 {
		t.Errorf("Rank at -1 = %v, want empty", got)
	}
	// Past the end nobody is on stage; A and B tie on count and keep meta order.
	got := Rank(meta, chunks, Characters, 10)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Rank at 10 = %v, want [A B]", got)
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	chunks := threeChunks()
	meta := metaAB()
	descs := []book.Description{{From: "c0", Desc: "d0"}, {From: "c1", Desc: "d1"}}

	for p := 0; p < len(chunks); p++ {
		r1 := Rank(meta, chunks, Characters, p)
		r2 := Rank(meta, chunks, Characters, p)
		if len(r1) != len(r2) {
			t.Fatalf("Rank not idempotent at %d", p)
		}
		for i := range r1 {
			if r1[i] != r2[i] {
				t.Errorf("Rank not idempotent at %d: %v vs %v", p, r1, r2)
			}
		}
		if ResolveDescription(descs, chunks, p) != ResolveDescription(descs, chunks, p) {
			t.Errorf("ResolveDescription not idempotent at %d", p)
		}
	}

	if chunks[1].Chars[0] != "A" || chunks[1].Chars[1] != "B" {
		t.Error("inputs were modified")
	}
}

func TestFieldString(t *testing.T) {
	if Characters.String() != "chars" || Locations.String() != "locs" {
		t.Errorf("Field names = %s, %s", Characters, Locations)
	}
}

func BenchmarkRank(b *testing.B) {
	var chunks []book.Chunk
	var meta book.OrderedMap[book.CharMeta]
	for i := 0; i < 200; i++ {
		id := "c" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		chunks = append(chunks, book.Chunk{ID: id, Chars: []string{"p" + string(rune('a'+i%20))}})
		if i%10 == 0 {
			meta.Set("p"+string(rune('a'+i/10)), book.CharMeta{Intro: id})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rank(meta, chunks, Characters, len(chunks)-1)
	}
}
