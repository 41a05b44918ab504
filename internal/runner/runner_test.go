package runner

import (
	"testing"
	"time"

	"github.com/skanehira/parallels/internal/buffer"
	"github.com/skanehira/parallels/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	l, err := logging.New("", logging.LevelDebug)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// collect drains events for the given tab count until every tab has
// reported a terminal event or the deadline passes.
func collect(t *testing.T, r *Runner, tabs int, deadline time.Duration) (lines map[int][]buffer.Line, exits map[int]ExitEvent, failures map[int]StartFailedEvent) {
	t.Helper()
	lines = make(map[int][]buffer.Line)
	exits = make(map[int]ExitEvent)
	failures = make(map[int]StartFailedEvent)

	timeout := time.After(deadline)
	for len(exits)+len(failures) < tabs {
		select {
		case ev := <-r.Events():
			switch ev := ev.(type) {
			case OutputEvent:
				if _, done := exits[ev.Tab]; done {
					t.Errorf("tab %d: output event after exit event", ev.Tab)
				}
				lines[ev.Tab] = append(lines[ev.Tab], ev.Line)
			case ExitEvent:
				if _, dup := exits[ev.Tab]; dup {
					t.Errorf("tab %d: duplicate exit event", ev.Tab)
				}
				exits[ev.Tab] = ev
			case StartFailedEvent:
				failures[ev.Tab] = ev
			}
		case <-timeout:
			t.Fatalf("timed out: %d/%d tabs terminal", len(exits)+len(failures), tabs)
		}
	}
	return lines, exits, failures
}

func TestRunner_EchoCommandsRunIndependently(t *testing.T) {
	r := New([]string{"echo A", "echo B"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	lines, exits, failures := collect(t, r, 2, 5*time.Second)

	if len(failures) != 0 {
		t.Fatalf("unexpected start failures: %v", failures)
	}
	for tabID, want := range map[int]string{0: "A", 1: "B"} {
		got := lines[tabID]
		if len(got) != 1 {
			t.Fatalf("tab %d: expected 1 line, got %d", tabID, len(got))
		}
		if got[0].Plain != want {
			t.Errorf("tab %d: expected %q, got %q", tabID, want, got[0].Plain)
		}
		if exits[tabID].Code != 0 {
			t.Errorf("tab %d: expected exit 0, got %d", tabID, exits[tabID].Code)
		}
	}
}

func TestRunner_NonzeroExitCode(t *testing.T) {
	r := New([]string{"exit 3"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	_, exits, _ := collect(t, r, 1, 5*time.Second)

	if exits[0].Code != 3 {
		t.Errorf("expected exit code 3, got %d", exits[0].Code)
	}
	if exits[0].Err != nil {
		t.Errorf("nonzero exit is not an error: %v", exits[0].Err)
	}
}

func TestRunner_StderrTagged(t *testing.T) {
	r := New([]string{"echo oops 1>&2"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	lines, _, _ := collect(t, r, 1, 5*time.Second)

	if len(lines[0]) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines[0]))
	}
	if lines[0][0].Kind != buffer.Stderr {
		t.Errorf("expected stderr kind, got %v", lines[0][0].Kind)
	}
	if lines[0][0].Plain != "oops" {
		t.Errorf("expected %q, got %q", "oops", lines[0][0].Plain)
	}
}

func TestRunner_TrailingPartialLineFlushed(t *testing.T) {
	r := New([]string{"printf no-newline"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	lines, _, _ := collect(t, r, 1, 5*time.Second)

	if len(lines[0]) != 1 || lines[0][0].Plain != "no-newline" {
		t.Errorf("partial trailing line should be flushed, got %v", lines[0])
	}
}

func TestRunner_OutputOrderPreservedPerStream(t *testing.T) {
	r := New([]string{"printf 'one\\ntwo\\nthree\\n'"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	lines, _, _ := collect(t, r, 1, 5*time.Second)

	want := []string{"one", "two", "three"}
	if len(lines[0]) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines[0]))
	}
	for i, w := range want {
		if lines[0][i].Plain != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[0][i].Plain)
		}
	}
}

func TestRunner_SlowCommandDoesNotDelayOthers(t *testing.T) {
	r := New([]string{"sleep 30", "echo quick"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-r.Events():
			if out, ok := ev.(OutputEvent); ok && out.Tab == 1 {
				if out.Line.Plain != "quick" {
					t.Errorf("expected %q, got %q", "quick", out.Line.Plain)
				}
				return
			}
		case <-deadline:
			t.Fatal("output from fast command blocked behind slow one")
		}
	}
}

func TestRunner_StopTerminatesProcessesPromptly(t *testing.T) {
	r := New([]string{"sleep 60"}, testLogger(t))
	r.Start()

	start := time.Now()
	r.Stop(3 * time.Second)
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Errorf("stop took too long: %v", elapsed)
	}
}

func TestRunner_EventsChannelClosesAfterStop(t *testing.T) {
	r := New([]string{"sleep 60"}, testLogger(t))
	r.Start()

	// Even a tight timeout must not leave a blocked Events receiver
	// stranded: the channel closes once the supervisors finish draining.
	r.Stop(time.Millisecond)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-r.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed after Stop")
		}
	}
}

func TestRunner_Restart(t *testing.T) {
	r := New([]string{"echo again"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	_, exits, _ := collect(t, r, 1, 5*time.Second)
	if exits[0].Code != 0 {
		t.Fatalf("first run: expected exit 0, got %d", exits[0].Code)
	}

	r.Restart(0)
	lines, exits, _ := collect(t, r, 1, 5*time.Second)
	if len(lines[0]) != 1 || lines[0][0].Plain != "again" {
		t.Errorf("restart should rerun the command, got %v", lines[0])
	}
	if exits[0].Code != 0 {
		t.Errorf("restart: expected exit 0, got %d", exits[0].Code)
	}
}

func TestRunner_RestartOutOfRangeIgnored(t *testing.T) {
	r := New([]string{"echo x"}, testLogger(t))
	r.Start()
	defer r.Stop(2 * time.Second)

	r.Restart(5)
	r.Restart(-1)
	collect(t, r, 1, 5*time.Second)
}
