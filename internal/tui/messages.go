package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skanehira/parallels/internal/runner"
)

// tickMsg drives the periodic render refresh.
type tickMsg time.Time

// runnerEventMsg wraps a single event from the command runner.
type runnerEventMsg struct {
	event runner.Event
}

// eventsClosedMsg signals that the runner's event channel has been closed.
type eventsClosedMsg struct{}

// Commands

// tick returns a command that sends a tickMsg after the render interval.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent returns a command that blocks until the next runner event
// arrives. The update loop re-issues it after handling each event, so at
// most one receive is pending at a time.
func waitForEvent(events <-chan runner.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return runnerEventMsg{event: ev}
	}
}
