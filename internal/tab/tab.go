// Package tab holds the per-command view state: the output buffer, scroll
// position, auto-scroll flag, and run status. One tab exists per command
// for the whole session; all mutation happens on the update loop.
package tab

import (
	"github.com/skanehira/parallels/internal/buffer"
	"github.com/skanehira/parallels/internal/util"
)

// maxDisplayNameLen caps the command text shown in the tab bar.
const maxDisplayNameLen = 20

// StatusKind enumerates the lifecycle states of a command.
type StatusKind int

const (
	Running StatusKind = iota
	Finished
	Failed
)

// Status records how a command is doing. ExitCode is meaningful only for
// Finished; Reason only for Failed.
type Status struct {
	Kind     StatusKind
	ExitCode int
	Reason   string
}

// Tab is the per-command aggregate: command text, output buffer, and view
// state. Tabs are created at startup and never destroyed.
type Tab struct {
	command      string
	buf          *buffer.Buffer
	status       Status
	scrollY      int
	scrollX      int
	autoScroll   bool
	visibleLines int
}

// New creates a running tab for command with the given buffer capacity.
func New(command string, capacity int) *Tab {
	return &Tab{
		command:    command,
		buf:        buffer.New(capacity),
		autoScroll: true,
	}
}

// Command returns the command text as given on the command line.
func (t *Tab) Command() string {
	return t.command
}

// DisplayName returns the command truncated for the tab bar.
func (t *Tab) DisplayName() string {
	return util.TruncateString(t.command, maxDisplayNameLen)
}

// Buffer returns the tab's output buffer.
func (t *Tab) Buffer() *buffer.Buffer {
	return t.buf
}

// Status returns the current run status.
func (t *Tab) Status() Status {
	return t.status
}

// Finish marks the command as exited with code. Ignored unless the tab is
// still running: status never moves backward.
func (t *Tab) Finish(code int) {
	if t.status.Kind != Running {
		return
	}
	t.status = Status{Kind: Finished, ExitCode: code}
}

// Fail marks the command as failed with a reason. Ignored unless the tab
// is still running.
func (t *Tab) Fail(reason string) {
	if t.status.Kind != Running {
		return
	}
	t.status = Status{Kind: Failed, Reason: reason}
}

// Push appends a decoded line to the buffer. With auto-scroll enabled the
// view re-anchors to the newest line; otherwise the offset stays where
// the user left it.
func (t *Tab) Push(line buffer.Line) {
	t.buf.Append(line)
	if t.autoScroll {
		t.ScrollToBottom()
	}
}

// SetVisibleLines tells the tab how many buffer lines fit in its view.
// Scroll limits and half-page distances derive from this.
func (t *Tab) SetVisibleLines(n int) {
	if n < 0 {
		n = 0
	}
	t.visibleLines = n
}

// VisibleLines returns the current view height in lines.
func (t *Tab) VisibleLines() int {
	return t.visibleLines
}

// ScrollY returns the vertical offset: the buffer index of the first
// visible line.
func (t *Tab) ScrollY() int {
	return t.scrollY
}

// ScrollX returns the horizontal offset in columns.
func (t *Tab) ScrollX() int {
	return t.scrollX
}

// ScrollDown moves the view down one line, stopping at the bottom.
func (t *Tab) ScrollDown() {
	if t.scrollY < t.maxScrollY() {
		t.scrollY++
	}
}

// ScrollUp moves the view up one line, stopping at the top.
func (t *Tab) ScrollUp() {
	if t.scrollY > 0 {
		t.scrollY--
	}
}

// ScrollHalfPageDown moves down by half the view height.
func (t *Tab) ScrollHalfPageDown() {
	t.scrollY = min(t.scrollY+t.visibleLines/2, t.maxScrollY())
}

// ScrollHalfPageUp moves up by half the view height.
func (t *Tab) ScrollHalfPageUp() {
	t.scrollY = max(t.scrollY-t.visibleLines/2, 0)
}

// ScrollToTop jumps to the oldest buffered line.
func (t *Tab) ScrollToTop() {
	t.scrollY = 0
}

// ScrollToBottom jumps so the newest line is visible.
func (t *Tab) ScrollToBottom() {
	t.scrollY = t.maxScrollY()
}

// ScrollToLine positions the view at the given buffer line, clamped to
// the valid range.
func (t *Tab) ScrollToLine(line int) {
	t.scrollY = min(max(line, 0), t.maxScrollY())
}

// ScrollLeft moves the view one column left, stopping at column zero.
func (t *Tab) ScrollLeft() {
	if t.scrollX > 0 {
		t.scrollX--
	}
}

// ScrollRight moves the view one column right. There is no right-hand
// limit: lines can be arbitrarily long.
func (t *Tab) ScrollRight() {
	t.scrollX++
}

// ScrollToLeftmost resets the horizontal offset.
func (t *Tab) ScrollToLeftmost() {
	t.scrollX = 0
}

// AutoScroll reports whether the view follows new output.
func (t *Tab) AutoScroll() bool {
	return t.autoScroll
}

// ToggleAutoScroll flips the auto-scroll flag. The offset itself does not
// move; the flag only affects the next append.
func (t *Tab) ToggleAutoScroll() {
	t.autoScroll = !t.autoScroll
}

// SetAutoScroll sets the auto-scroll flag without moving the offset.
func (t *Tab) SetAutoScroll(enabled bool) {
	t.autoScroll = enabled
}

// Reset returns the tab to its initial state: empty buffer, running
// status, top-left scroll, auto-scroll on. Used when a command is re-run.
func (t *Tab) Reset() {
	t.buf.Clear()
	t.status = Status{}
	t.scrollY = 0
	t.scrollX = 0
	t.autoScroll = true
}

func (t *Tab) maxScrollY() int {
	return max(t.buf.Len()-t.visibleLines, 0)
}
