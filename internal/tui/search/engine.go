// Package search provides smartcase substring search over a tab's output
// buffer, with wrapping navigation through the ordered match list.
package search

import (
	"regexp"
	"unicode"
)

// Result is a single match position: 0-indexed line in the buffer and the
// byte offsets of the matched text within that line's plain form.
type Result struct {
	Line  int
	Start int
	End   int
}

// Engine finds and tracks matches for the current query. Matches are
// ordered by (line ascending, byte offset ascending); Next and Previous
// cycle through that order and wrap at both ends.
type Engine struct {
	query     string
	sensitive bool
	matches   []Result
	current   int // index into matches, -1 when unset
}

// NewEngine returns an engine with no active query.
func NewEngine() *Engine {
	return &Engine{current: -1}
}

// Search recomputes the match list for query against lines, which must be
// the buffer's plain (escape-stripped) text, oldest first. Case
// sensitivity is inferred from the query: any uppercase letter makes the
// search case-sensitive, otherwise it is case-insensitive (smartcase).
// Matching is plain substring; repeated matches on a line do not overlap.
// The cursor moves to the first match, or to unset when there are none.
func (e *Engine) Search(query string, lines []string) []Result {
	e.query = query
	e.matches = nil
	e.current = -1
	e.sensitive = hasUpper(query)

	if query == "" {
		return nil
	}

	// QuoteMeta keeps this a literal substring search; the regexp engine
	// just supplies correct byte offsets under case folding.
	pattern := regexp.QuoteMeta(query)
	if !e.sensitive {
		pattern = "(?i)" + pattern
	}
	re := regexp.MustCompile(pattern)

	for lineNum, line := range lines {
		for _, idx := range re.FindAllStringIndex(line, -1) {
			e.matches = append(e.matches, Result{
				Line:  lineNum,
				Start: idx[0],
				End:   idx[1],
			})
		}
	}

	if len(e.matches) > 0 {
		e.current = 0
	}
	return e.matches
}

// Next advances the cursor to the next match and returns it, wrapping
// after the last match. Returns nil without moving when there are no
// matches.
func (e *Engine) Next() *Result {
	if len(e.matches) == 0 {
		return nil
	}
	e.current = (e.current + 1) % len(e.matches)
	return &e.matches[e.current]
}

// Previous moves the cursor to the previous match and returns it,
// wrapping before the first match. Returns nil without moving when there
// are no matches.
func (e *Engine) Previous() *Result {
	if len(e.matches) == 0 {
		return nil
	}
	if e.current <= 0 {
		e.current = len(e.matches) - 1
	} else {
		e.current--
	}
	return &e.matches[e.current]
}

// Current returns the match under the cursor, or nil when the cursor is
// unset.
func (e *Engine) Current() *Result {
	if e.current < 0 || e.current >= len(e.matches) {
		return nil
	}
	return &e.matches[e.current]
}

// CurrentIndex returns the cursor position, -1 when unset.
func (e *Engine) CurrentIndex() int {
	if len(e.matches) == 0 {
		return -1
	}
	return e.current
}

// Query returns the query the current match list was computed for.
func (e *Engine) Query() string {
	return e.query
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	return len(e.matches)
}

// HasMatches reports whether the match list is non-empty.
func (e *Engine) HasMatches() bool {
	return len(e.matches) > 0
}

// MatchesOnLine returns the matches for one line, in offset order. The
// renderer uses this to highlight without rescanning text.
func (e *Engine) MatchesOnLine(line int) []Result {
	var out []Result
	for _, m := range e.matches {
		if m.Line == line {
			out = append(out, m)
		}
		if m.Line > line {
			break
		}
	}
	return out
}

// Clear resets the query, match list, and cursor.
func (e *Engine) Clear() {
	e.query = ""
	e.sensitive = false
	e.matches = nil
	e.current = -1
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
