// Package buffer provides the bounded per-command output buffer. Each
// command's output is decoded once on ingestion and stored as immutable
// lines; when the buffer is full the oldest line is evicted FIFO so memory
// stays bounded no matter how much a command prints.
package buffer

import (
	"strings"

	"github.com/skanehira/parallels/internal/ansi"
)

// DefaultCapacity is the per-tab line limit used when no buffer size is
// configured.
const DefaultCapacity = 10000

// Kind identifies which stream a line came from.
type Kind int

const (
	Stdout Kind = iota
	Stderr
)

// String returns the display prefix for the stream kind.
func (k Kind) String() string {
	if k == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Line is one decoded output line. Spans hold the styled runs for
// rendering; Plain is the escape-stripped text that search matches
// against. A Line is immutable once created.
type Line struct {
	Kind  Kind
	Spans []ansi.Span
	Plain string
}

// NewLine decodes raw into a Line. This is the single decode point: the
// rendering path never re-parses escape sequences.
func NewLine(kind Kind, raw string) Line {
	spans := ansi.Decode(raw)
	var plain strings.Builder
	for _, s := range spans {
		plain.WriteString(s.Text)
	}
	return Line{Kind: kind, Spans: spans, Plain: plain.String()}
}

// Buffer is a fixed-capacity FIFO ring of lines. It has a single writer
// (the update loop) and its readers are only ever invoked from that same
// loop, so it needs no locking.
type Buffer struct {
	lines []Line
	start int
	count int
}

// New returns a buffer holding at most capacity lines. A capacity of zero
// or less falls back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{lines: make([]Line, capacity)}
}

// Append adds a line, evicting the oldest one first if the buffer is full.
// Eviction and insertion happen as one step: no observer can see the
// buffer over capacity or missing both lines.
func (b *Buffer) Append(line Line) {
	if b.count < len(b.lines) {
		b.lines[(b.start+b.count)%len(b.lines)] = line
		b.count++
		return
	}
	b.lines[b.start] = line
	b.start = (b.start + 1) % len(b.lines)
}

// Len returns the number of lines currently stored.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.lines)
}

// Get returns the line at index i, oldest first. The second result is
// false when i is out of range.
func (b *Buffer) Get(i int) (Line, bool) {
	if i < 0 || i >= b.count {
		return Line{}, false
	}
	return b.lines[(b.start+i)%len(b.lines)], true
}

// Range returns up to count lines starting at index start, visiting them
// oldest first. Out-of-range requests return a partial or empty slice,
// never an error.
func (b *Buffer) Range(start, count int) []Line {
	if start < 0 || start >= b.count || count <= 0 {
		return nil
	}
	if start+count > b.count {
		count = b.count - start
	}
	out := make([]Line, count)
	for i := 0; i < count; i++ {
		out[i] = b.lines[(b.start+start+i)%len(b.lines)]
	}
	return out
}

// Each visits every line oldest first, stopping early if fn returns false.
func (b *Buffer) Each(fn func(i int, line Line) bool) {
	for i := 0; i < b.count; i++ {
		if !fn(i, b.lines[(b.start+i)%len(b.lines)]) {
			return
		}
	}
}

// PlainLines returns the stripped text of every line, oldest first. This
// is the corpus the search engine runs over.
func (b *Buffer) PlainLines() []string {
	out := make([]string, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.lines[(b.start+i)%len(b.lines)].Plain
	}
	return out
}

// Clear discards all lines, keeping the allocated storage.
func (b *Buffer) Clear() {
	b.start = 0
	b.count = 0
}
