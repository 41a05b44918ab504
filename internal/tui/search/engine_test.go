package search

import (
	"testing"
)

func TestNewEngine(t *testing.T) {
	e := NewEngine()
	if e.Query() != "" {
		t.Errorf("new engine should have empty query, got %q", e.Query())
	}
	if e.MatchCount() != 0 {
		t.Errorf("new engine should have 0 matches, got %d", e.MatchCount())
	}
	if e.CurrentIndex() != -1 {
		t.Errorf("cursor should be unset, got %d", e.CurrentIndex())
	}
	if e.Current() != nil {
		t.Error("Current should be nil with no matches")
	}
}

func TestSearch_Smartcase(t *testing.T) {
	tests := []struct {
		query   string
		line    string
		matches bool
	}{
		{"error", "Error", true},  // lowercase query: insensitive
		{"Error", "error", false}, // uppercase query: exact case required
		{"Error", "Error", true},
		{"err", "stderr output", true},
		{"ERR", "stderr output", false},
	}
	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.line, func(t *testing.T) {
			e := NewEngine()
			e.Search(tt.query, []string{tt.line})
			if e.HasMatches() != tt.matches {
				t.Errorf("match(%q, %q): expected %v, got %v",
					tt.query, tt.line, tt.matches, e.HasMatches())
			}
		})
	}
}

func TestSearch_SensitivityInference(t *testing.T) {
	e := NewEngine()

	e.Search("hello", nil)
	if e.sensitive {
		t.Error("all-lowercase query should be insensitive")
	}

	e.Search("Hello", nil)
	if !e.sensitive {
		t.Error("query with uppercase should be sensitive")
	}
}

func TestSearch_CaseSensitiveScenario(t *testing.T) {
	e := NewEngine()
	results := e.Search("ERR", []string{"foo ERR bar", "foo err bar"})

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(results))
	}
	if results[0].Line != 0 {
		t.Errorf("match should be on line 0, got %d", results[0].Line)
	}
	if results[0].Start != 4 || results[0].End != 7 {
		t.Errorf("expected offsets [4,7), got [%d,%d)", results[0].Start, results[0].End)
	}
}

func TestSearch_ResultsSortedByLineThenOffset(t *testing.T) {
	e := NewEngine()
	results := e.Search("foo", []string{"foo bar foo", "nothing", "x foo"})

	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Start <= prev.Start) {
			t.Errorf("results out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
	if results[0].Line != 0 || results[0].Start != 0 {
		t.Errorf("first match: got %+v", results[0])
	}
	if results[1].Line != 0 || results[1].Start != 8 {
		t.Errorf("second match: got %+v", results[1])
	}
	if results[2].Line != 2 || results[2].Start != 2 {
		t.Errorf("third match: got %+v", results[2])
	}
}

func TestSearch_MultipleMatchesDoNotOverlap(t *testing.T) {
	e := NewEngine()
	results := e.Search("aa", []string{"aaaa"})

	if len(results) != 2 {
		t.Fatalf("expected 2 non-overlapping matches, got %d", len(results))
	}
	if results[0].Start != 0 || results[1].Start != 2 {
		t.Errorf("expected starts 0 and 2, got %d and %d", results[0].Start, results[1].Start)
	}
}

func TestSearch_EmptyQueryClears(t *testing.T) {
	e := NewEngine()
	e.Search("foo", []string{"foo"})
	if !e.HasMatches() {
		t.Fatal("setup: expected a match")
	}

	e.Search("", []string{"foo"})
	if e.HasMatches() {
		t.Error("empty query should produce no matches")
	}
	if e.CurrentIndex() != -1 {
		t.Errorf("cursor should be unset, got %d", e.CurrentIndex())
	}
}

func TestSearch_LiteralNotRegex(t *testing.T) {
	e := NewEngine()
	results := e.Search("a.c", []string{"abc", "a.c"})

	if len(results) != 1 {
		t.Fatalf("dot must not act as a wildcard: expected 1 match, got %d", len(results))
	}
	if results[0].Line != 1 {
		t.Errorf("expected match on line 1, got %d", results[0].Line)
	}
}

func TestNext_CyclesAndWraps(t *testing.T) {
	e := NewEngine()
	e.Search("foo", []string{"foo", "bar", "foo"})

	if e.CurrentIndex() != 0 {
		t.Fatalf("search should land on first match, got %d", e.CurrentIndex())
	}

	m := e.Next()
	if m == nil || m.Line != 2 {
		t.Fatalf("expected next match on line 2, got %+v", m)
	}
	m = e.Next()
	if m == nil || m.Line != 0 {
		t.Fatalf("expected wrap to line 0, got %+v", m)
	}
}

func TestPrevious_CyclesAndWraps(t *testing.T) {
	e := NewEngine()
	e.Search("foo", []string{"foo", "bar", "foo"})

	m := e.Previous()
	if m == nil || m.Line != 2 {
		t.Fatalf("expected wrap to last match, got %+v", m)
	}
	m = e.Previous()
	if m == nil || m.Line != 0 {
		t.Fatalf("expected previous match on line 0, got %+v", m)
	}
}

func TestNextPrevious_NoOpOnEmptyMatchList(t *testing.T) {
	e := NewEngine()
	e.Search("missing", []string{"nothing here"})

	if e.Next() != nil {
		t.Error("Next on empty match list should return nil")
	}
	if e.Previous() != nil {
		t.Error("Previous on empty match list should return nil")
	}
	if e.CurrentIndex() != -1 {
		t.Errorf("cursor should stay unset, got %d", e.CurrentIndex())
	}
}

func TestMatchesOnLine(t *testing.T) {
	e := NewEngine()
	e.Search("o", []string{"foo", "bar", "oo"})

	if got := len(e.MatchesOnLine(0)); got != 2 {
		t.Errorf("line 0: expected 2 matches, got %d", got)
	}
	if got := len(e.MatchesOnLine(1)); got != 0 {
		t.Errorf("line 1: expected 0 matches, got %d", got)
	}
	if got := len(e.MatchesOnLine(2)); got != 2 {
		t.Errorf("line 2: expected 2 matches, got %d", got)
	}
}

func TestClear(t *testing.T) {
	e := NewEngine()
	e.Search("foo", []string{"foo"})
	e.Clear()

	if e.Query() != "" || e.HasMatches() || e.CurrentIndex() != -1 {
		t.Errorf("clear should reset everything: query=%q matches=%d cursor=%d",
			e.Query(), e.MatchCount(), e.CurrentIndex())
	}
}

func TestSearch_RecomputeAfterBufferGrowth(t *testing.T) {
	e := NewEngine()
	lines := []string{"foo one"}
	e.Search("foo", lines)
	if e.MatchCount() != 1 {
		t.Fatalf("expected 1 match, got %d", e.MatchCount())
	}

	lines = append(lines, "foo two")
	e.Search(e.Query(), lines)
	if e.MatchCount() != 2 {
		t.Errorf("recompute should pick up new line, got %d matches", e.MatchCount())
	}
}
