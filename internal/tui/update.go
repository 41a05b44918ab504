package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skanehira/parallels/internal/runner"
	"github.com/skanehira/parallels/internal/tab"
	"github.com/skanehira/parallels/internal/tui/keymap"
)

// Layout constants
const (
	// Rows consumed by UI chrome: tab bar, output border top and
	// bottom, status bar, help bar.
	chromeHeight = 5

	// Columns consumed by the output area border.
	chromeWidth = 2
)

// Update is the single place where application state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		visible := msg.Height - chromeHeight
		if visible < 1 {
			visible = 1
		}
		m.tabs.Each(func(i int, t *tab.Tab) {
			t.SetVisibleLines(visible)
		})
		return m, nil

	case tickMsg:
		return m, tick(m.cfg.RenderInterval())

	case runnerEventMsg:
		m.handleRunnerEvent(msg.event)
		if m.runner == nil {
			return m, nil
		}
		return m, waitForEvent(m.runner.Events())

	case eventsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleRunnerEvent applies a runner event to the owning tab. All
// mutation happens here, on the update goroutine.
func (m *Model) handleRunnerEvent(ev runner.Event) {
	t := m.tabs.Get(ev.TabIndex())
	if t == nil {
		return
	}

	switch ev := ev.(type) {
	case runner.OutputEvent:
		t.Push(ev.Line)
		// Keep matches current while a query is active on the
		// visible tab.
		if ev.Tab == m.tabs.ActiveIndex() && m.searcher.Query() != "" {
			m.recomputeSearch(m.searcher.Query())
		}
	case runner.ExitEvent:
		if ev.Err != nil {
			t.Fail(ev.Err.Error())
		} else {
			t.Finish(ev.Code)
		}
	case runner.StartFailedEvent:
		t.Fail(ev.Reason)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, bound := m.keys.GetBinding(msg, m.mode)

	if m.mode == keymap.ModeSearch {
		if !bound {
			// Everything unbound is text editing; the input
			// component handles Emacs-style bindings itself.
			var inputCmd tea.Cmd
			m.searchInput, inputCmd = m.searchInput.Update(msg)
			m.recomputeSearch(m.searchInput.Value())
			return m, inputCmd
		}
		return m.handleSearchCommand(cmd)
	}

	if !bound {
		return m, nil
	}
	return m.handleNormalCommand(cmd, msg)
}

func (m Model) handleNormalCommand(cmd keymap.Command, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.tabs.Active()

	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case keymap.CmdNextTab:
		m.tabs.Next()
		m.recomputeSearch(m.committedQuery)
	case keymap.CmdPrevTab:
		m.tabs.Prev()
		m.recomputeSearch(m.committedQuery)
	case keymap.CmdJumpToTab:
		if len(msg.Runes) > 0 {
			m.tabs.SetActive(int(msg.Runes[0] - '1'))
			m.recomputeSearch(m.committedQuery)
		}

	case keymap.CmdScrollDown:
		active.ScrollDown()
	case keymap.CmdScrollUp:
		active.ScrollUp()
	case keymap.CmdScrollHalfPageDn:
		active.ScrollHalfPageDown()
	case keymap.CmdScrollHalfPageUp:
		active.ScrollHalfPageUp()
	case keymap.CmdScrollToTop:
		active.ScrollToTop()
	case keymap.CmdScrollToBottom:
		active.ScrollToBottom()
	case keymap.CmdScrollLeft:
		active.ScrollLeft()
	case keymap.CmdScrollRight:
		active.ScrollRight()
	case keymap.CmdScrollToLeftmost:
		active.ScrollToLeftmost()

	case keymap.CmdToggleAutoScroll:
		active.ToggleAutoScroll()

	case keymap.CmdEnterSearchMode:
		m.mode = keymap.ModeSearch
		active.SetAutoScroll(false)
		m.searchInput.SetValue(m.committedQuery)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		m.recomputeSearch(m.searchInput.Value())

	case keymap.CmdNextMatch:
		if res := m.searcher.Next(); res != nil {
			active.ScrollToLine(res.Line)
		}
	case keymap.CmdPrevMatch:
		if res := m.searcher.Previous(); res != nil {
			active.ScrollToLine(res.Line)
		}

	case keymap.CmdRestartCommand:
		m.restartActive()
	}

	return m, nil
}

func (m Model) handleSearchCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case keymap.CmdCancelSearch:
		// Discard only the in-progress input: the last confirmed
		// query and its matches come back, they are not cleared.
		// Cancelling a refinement therefore never loses the result
		// set already being navigated with n/N.
		m.mode = keymap.ModeNormal
		m.searchInput.Blur()
		m.recomputeSearch(m.committedQuery)

	case keymap.CmdExecuteSearch:
		m.committedQuery = m.searchInput.Value()
		m.mode = keymap.ModeNormal
		m.searchInput.Blur()
		if res := m.searcher.Current(); res != nil {
			m.tabs.Active().ScrollToLine(res.Line)
		}
	}

	return m, nil
}

// restartActive clears the active tab and re-runs its command. Ignored
// while the previous process is still running: a second spawn would
// interleave two processes' output in one buffer and let the old exit
// overwrite the new run's status.
func (m *Model) restartActive() {
	active := m.tabs.Active()
	if active == nil || active.Status().Kind == tab.Running {
		return
	}
	active.Reset()
	m.recomputeSearch(m.committedQuery)
	if m.runner != nil {
		m.runner.Restart(m.tabs.ActiveIndex())
	}
}
