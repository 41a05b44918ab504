package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skanehira/parallels/internal/ansi"
	"github.com/skanehira/parallels/internal/buffer"
	"github.com/skanehira/parallels/internal/tab"
	"github.com/skanehira/parallels/internal/tui/keymap"
	"github.com/skanehira/parallels/internal/tui/search"
	"github.com/skanehira/parallels/internal/tui/styles"
	"github.com/skanehira/parallels/internal/util"
)

// Status glyphs shown next to each tab name.
const (
	glyphRunning  = "●"
	glyphFinished = "✓"
	glyphFailed   = "✗"
)

// View renders the whole screen: tab bar, output area, status bar, help.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderOutput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderTabBar() string {
	var parts []string
	m.tabs.Each(func(i int, t *tab.Tab) {
		label := fmt.Sprintf("%d:%s %s", i+1, t.DisplayName(), statusGlyph(t.Status()))

		style := styles.TabInactive
		switch {
		case i == m.tabs.ActiveIndex():
			style = styles.TabActive
		case t.Status().Kind == tab.Failed:
			style = styles.TabFailed
		}
		parts = append(parts, style.Render(label))
	})
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return util.TruncateANSI(bar, m.width)
}

func statusGlyph(s tab.Status) string {
	switch s.Kind {
	case tab.Finished:
		return glyphFinished
	case tab.Failed:
		return glyphFailed
	default:
		return glyphRunning
	}
}

func (m Model) renderOutput() string {
	active := m.tabs.Active()
	contentWidth := m.width - chromeWidth
	contentHeight := m.height - chromeHeight
	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	rows := make([]string, 0, contentHeight)
	if active != nil {
		start := active.ScrollY()
		for i, line := range active.Buffer().Range(start, contentHeight) {
			rows = append(rows, m.renderLine(start+i, line, active.ScrollX(), contentWidth))
		}
	}
	for len(rows) < contentHeight {
		rows = append(rows, "")
	}

	return styles.OutputArea.
		Width(contentWidth).
		Height(contentHeight).
		Render(strings.Join(rows, "\n"))
}

// renderLine renders one buffer line with its decoded styles, applying
// the horizontal scroll offset, the width limit, and search match
// highlighting. Offsets and widths are in runes.
func (m Model) renderLine(lineIdx int, line buffer.Line, offsetX, maxWidth int) string {
	matches := m.searcher.MatchesOnLine(lineIdx)
	current := m.searcher.Current()

	var b strings.Builder
	var run strings.Builder
	var runStyle lipgloss.Style
	haveRun := false

	flush := func() {
		if haveRun {
			b.WriteString(runStyle.Render(run.String()))
			run.Reset()
			haveRun = false
		}
	}

	skipped, written := 0, 0
	byteOff := 0
	for _, span := range line.Spans {
		base := renderStyle(span.Style, line.Kind)
		for _, r := range span.Text {
			size := len(string(r))
			if skipped < offsetX {
				skipped++
				byteOff += size
				continue
			}
			if written >= maxWidth {
				flush()
				return b.String()
			}

			st := base
			if inMatch(current, lineIdx, byteOff) {
				st = styles.CurrentMatchHighlight
			} else if inAnyMatch(matches, byteOff) {
				st = styles.MatchHighlight
			}

			if !haveRun || !sameStyle(st, runStyle) {
				flush()
				runStyle = st
				haveRun = true
			}
			run.WriteRune(r)
			written++
			byteOff += size
		}
	}
	flush()
	return b.String()
}

// renderStyle converts decoded line attributes to a lipgloss style.
// Unstyled stderr text gets the error tint so interleaved streams stay
// distinguishable.
func renderStyle(s ansi.Style, kind buffer.Kind) lipgloss.Style {
	if s.IsZero() {
		if kind == buffer.Stderr {
			return styles.StderrText
		}
		return lipgloss.NewStyle()
	}

	st := lipgloss.NewStyle().
		Bold(s.Bold).
		Faint(s.Faint).
		Italic(s.Italic).
		Underline(s.Underline)
	if s.FG != "" {
		st = st.Foreground(lipgloss.Color(s.FG))
	} else if kind == buffer.Stderr {
		st = st.Foreground(styles.ErrorColor)
	}
	if s.BG != "" {
		st = st.Background(lipgloss.Color(s.BG))
	}
	return st
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.Render("x") == b.Render("x")
}

func inMatch(r *search.Result, line, byteOff int) bool {
	return r != nil && r.Line == line && byteOff >= r.Start && byteOff < r.End
}

func inAnyMatch(matches []search.Result, byteOff int) bool {
	for _, r := range matches {
		if byteOff >= r.Start && byteOff < r.End {
			return true
		}
	}
	return false
}

func (m Model) renderStatusBar() string {
	if m.mode == keymap.ModeSearch {
		prompt := styles.SearchPrompt.Render(m.searchInput.View())
		return util.TruncateANSI(styles.StatusBar.Width(m.width).Render(prompt), m.width)
	}

	active := m.tabs.Active()

	var parts []string
	parts = append(parts, styles.StatusBarMode.Render("NORMAL"))
	if active != nil {
		parts = append(parts, statusText(active.Status()))
		parts = append(parts, fmt.Sprintf("L%d/%d", active.ScrollY()+1, active.Buffer().Len()))
		if active.AutoScroll() {
			parts = append(parts, styles.Secondary.Render("follow"))
		}
	}
	if m.searcher.Query() != "" {
		counter := "0/0"
		if m.searcher.HasMatches() {
			counter = fmt.Sprintf("%d/%d", m.searcher.CurrentIndex()+1, m.searcher.MatchCount())
		}
		parts = append(parts, fmt.Sprintf("/%s %s", m.searcher.Query(), counter))
	}

	bar := styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
	return util.TruncateANSI(bar, m.width)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		helpHint("tab", "switch"),
		helpHint("j/k", "scroll"),
		helpHint("h/l", "pan"),
		helpHint("/", "search"),
		helpHint("n/N", "match"),
		helpHint("f", "follow"),
		helpHint("r", "restart"),
		helpHint("q", "quit"),
	}
	return util.TruncateANSI(styles.HelpBar.Render(strings.Join(hints, "  ")), m.width)
}

func helpHint(key, action string) string {
	return styles.HelpKey.Render(key) + " " + action
}

func statusText(s tab.Status) string {
	switch s.Kind {
	case tab.Finished:
		if s.ExitCode == 0 {
			return styles.Secondary.Render("exit 0")
		}
		return styles.Warning.Render(fmt.Sprintf("exit %d", s.ExitCode))
	case tab.Failed:
		return styles.Error.Render("failed: " + s.Reason)
	default:
		return styles.Secondary.Render("running")
	}
}
