package buffer

import (
	"fmt"
	"testing"
)

func line(s string) Line {
	return NewLine(Stdout, s)
}

func TestBuffer_AppendAddsLine(t *testing.T) {
	b := New(100)
	b.Append(line("hello"))

	if b.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", b.Len())
	}
	got, ok := b.Get(0)
	if !ok || got.Plain != "hello" {
		t.Errorf("expected %q, got %q (ok=%v)", "hello", got.Plain, ok)
	}
}

func TestBuffer_EvictsOldestAtCapacity(t *testing.T) {
	b := New(3)
	for i := 1; i <= 4; i++ {
		b.Append(line(fmt.Sprintf("line%d", i)))
	}

	if b.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.Len())
	}
	want := []string{"line2", "line3", "line4"}
	for i, w := range want {
		got, _ := b.Get(i)
		if got.Plain != w {
			t.Errorf("index %d: expected %q, got %q", i, w, got.Plain)
		}
	}
}

func TestBuffer_LengthIsMinOfAppendedAndCapacity(t *testing.T) {
	const capacity = 50
	b := New(capacity)

	for n := 1; n <= 120; n++ {
		b.Append(line(fmt.Sprintf("line%d", n)))
		want := n
		if want > capacity {
			want = capacity
		}
		if b.Len() != want {
			t.Fatalf("after %d appends: expected len %d, got %d", n, want, b.Len())
		}
	}

	// content equals the last C lines in original relative order
	for i := 0; i < capacity; i++ {
		got, _ := b.Get(i)
		want := fmt.Sprintf("line%d", 120-capacity+1+i)
		if got.Plain != want {
			t.Errorf("index %d: expected %q, got %q", i, want, got.Plain)
		}
	}
}

func TestBuffer_RangeReturnsRequestedWindow(t *testing.T) {
	b := New(100)
	for i := 0; i < 10; i++ {
		b.Append(line(fmt.Sprintf("line%d", i)))
	}

	lines := b.Range(3, 4)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, l := range lines {
		want := fmt.Sprintf("line%d", i+3)
		if l.Plain != want {
			t.Errorf("index %d: expected %q, got %q", i, want, l.Plain)
		}
	}
}

func TestBuffer_RangePartialWhenCountExceedsContent(t *testing.T) {
	b := New(100)
	for i := 0; i < 5; i++ {
		b.Append(line(fmt.Sprintf("line%d", i)))
	}

	lines := b.Range(3, 10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Plain != "line3" || lines[1].Plain != "line4" {
		t.Errorf("got %q, %q", lines[0].Plain, lines[1].Plain)
	}
}

func TestBuffer_RangeEmptyWhenStartOutOfBounds(t *testing.T) {
	b := New(100)
	b.Append(line("only"))

	if lines := b.Range(10, 5); len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func TestBuffer_RangeAfterEviction(t *testing.T) {
	b := New(4)
	for i := 0; i < 9; i++ {
		b.Append(line(fmt.Sprintf("line%d", i)))
	}

	lines := b.Range(0, 4)
	want := []string{"line5", "line6", "line7", "line8"}
	for i, w := range want {
		if lines[i].Plain != w {
			t.Errorf("index %d: expected %q, got %q", i, w, lines[i].Plain)
		}
	}
}

func TestBuffer_ZeroCapacityUsesDefault(t *testing.T) {
	b := New(0)
	if b.Cap() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, b.Cap())
	}
}

func TestBuffer_EachStopsEarly(t *testing.T) {
	b := New(10)
	for i := 0; i < 5; i++ {
		b.Append(line(fmt.Sprintf("line%d", i)))
	}

	visited := 0
	b.Each(func(i int, _ Line) bool {
		visited++
		return i < 2
	})
	if visited != 3 {
		t.Errorf("expected 3 visits, got %d", visited)
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := New(10)
	b.Append(line("a"))
	b.Append(line("b"))
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got %d lines", b.Len())
	}
	if b.Cap() != 10 {
		t.Errorf("clear should keep capacity, got %d", b.Cap())
	}
}

func TestNewLine_StripsEscapesForPlain(t *testing.T) {
	l := NewLine(Stderr, "\x1b[31merror:\x1b[0m boom")

	if l.Plain != "error: boom" {
		t.Errorf("plain: expected %q, got %q", "error: boom", l.Plain)
	}
	if l.Kind != Stderr {
		t.Errorf("kind: expected Stderr, got %v", l.Kind)
	}
	if len(l.Spans) != 2 {
		t.Errorf("expected 2 spans, got %d", len(l.Spans))
	}
}

func TestKind_String(t *testing.T) {
	if Stdout.String() != "stdout" || Stderr.String() != "stderr" {
		t.Errorf("got %q, %q", Stdout.String(), Stderr.String())
	}
}
