package tab

// Manager is the ordered, fixed collection of tabs plus the active-tab
// pointer. Tab order matches the command-line argument order and never
// changes during a run.
type Manager struct {
	tabs   []*Tab
	active int
}

// NewManager creates one tab per command, all sharing the same buffer
// capacity. The first tab starts active.
func NewManager(commands []string, capacity int) *Manager {
	tabs := make([]*Tab, 0, len(commands))
	for _, cmd := range commands {
		tabs = append(tabs, New(cmd, capacity))
	}
	return &Manager{tabs: tabs}
}

// Len returns the tab count.
func (m *Manager) Len() int {
	return len(m.tabs)
}

// ActiveIndex returns the index of the active tab.
func (m *Manager) ActiveIndex() int {
	return m.active
}

// Active returns the active tab.
func (m *Manager) Active() *Tab {
	return m.tabs[m.active]
}

// Get returns the tab at index i, or nil when out of range.
func (m *Manager) Get(i int) *Tab {
	if i < 0 || i >= len(m.tabs) {
		return nil
	}
	return m.tabs[i]
}

// Next moves the active pointer forward, wrapping from the last tab to
// the first.
func (m *Manager) Next() {
	if len(m.tabs) > 0 {
		m.active = (m.active + 1) % len(m.tabs)
	}
}

// Prev moves the active pointer backward, wrapping from the first tab to
// the last.
func (m *Manager) Prev() {
	if len(m.tabs) > 0 {
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
	}
}

// SetActive jumps directly to tab i. Out-of-range indexes are ignored.
func (m *Manager) SetActive(i int) {
	if i >= 0 && i < len(m.tabs) {
		m.active = i
	}
}

// Each visits every tab in order.
func (m *Manager) Each(fn func(i int, t *Tab)) {
	for i, t := range m.tabs {
		fn(i, t)
	}
}
