package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skanehira/parallels/internal/config"
	"github.com/skanehira/parallels/internal/logging"
	"github.com/skanehira/parallels/internal/runner"
	"github.com/skanehira/parallels/internal/tab"
	"github.com/skanehira/parallels/internal/tui/keymap"
	"github.com/skanehira/parallels/internal/tui/search"
)

// Model holds the TUI application state
type Model struct {
	// Core components
	cfg    *config.Config
	tabs   *tab.Manager
	runner *runner.Runner
	log    *logging.Logger

	// Input handling
	keys *keymap.Keymap
	mode keymap.Mode

	// Search state. committedQuery is the last confirmed query; the
	// engine may hold an in-progress query while typing, and Esc rolls
	// it back to committedQuery.
	searcher       *search.Engine
	committedQuery string
	searchInput    textinput.Model

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates a new TUI model for the given commands.
func NewModel(commands []string, cfg *config.Config, r *runner.Runner, log *logging.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 256

	return Model{
		cfg:         cfg,
		tabs:        tab.NewManager(commands, cfg.BufferSize),
		runner:      r,
		log:         log,
		keys:        keymap.DefaultKeymap(),
		mode:        keymap.ModeNormal,
		searcher:    search.NewEngine(),
		searchInput: ti,
	}
}

// Tabs exposes the tab manager, used by the view and tests.
func (m Model) Tabs() *tab.Manager {
	return m.tabs
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode {
	return m.mode
}

// Searcher exposes the search engine state.
func (m Model) Searcher() *search.Engine {
	return m.searcher
}

// Init starts the render timer and the runner event pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.cfg.RenderInterval())}
	if m.runner != nil {
		cmds = append(cmds, waitForEvent(m.runner.Events()))
	}
	return tea.Batch(cmds...)
}

// activeSearchLines returns the active tab's plain text lines for
// search recomputation.
func (m Model) activeSearchLines() []string {
	t := m.tabs.Active()
	if t == nil {
		return nil
	}
	return t.Buffer().PlainLines()
}

// recomputeSearch re-runs the current query against the active tab.
// A cleared query clears the match state instead.
func (m *Model) recomputeSearch(query string) {
	if query == "" {
		m.searcher.Clear()
		return
	}
	m.searcher.Search(query, m.activeSearchLines())
}
