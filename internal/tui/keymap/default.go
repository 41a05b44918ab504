package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeSearch: defaultSearchBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Tab navigation
			{KeyType: tea.KeyTab, Command: CmdNextTab, Description: "Next tab"},
			{KeyType: tea.KeyCtrlL, Command: CmdNextTab, Description: "Next tab"},
			{KeyType: tea.KeyShiftTab, Command: CmdPrevTab, Description: "Previous tab"},
			{KeyType: tea.KeyCtrlH, Command: CmdPrevTab, Description: "Previous tab"},
			{KeyType: tea.KeyRunes, Rune: '1', Command: CmdJumpToTab, Description: "Jump to tab 1"},
			{KeyType: tea.KeyRunes, Rune: '2', Command: CmdJumpToTab, Description: "Jump to tab 2"},
			{KeyType: tea.KeyRunes, Rune: '3', Command: CmdJumpToTab, Description: "Jump to tab 3"},
			{KeyType: tea.KeyRunes, Rune: '4', Command: CmdJumpToTab, Description: "Jump to tab 4"},
			{KeyType: tea.KeyRunes, Rune: '5', Command: CmdJumpToTab, Description: "Jump to tab 5"},
			{KeyType: tea.KeyRunes, Rune: '6', Command: CmdJumpToTab, Description: "Jump to tab 6"},
			{KeyType: tea.KeyRunes, Rune: '7', Command: CmdJumpToTab, Description: "Jump to tab 7"},
			{KeyType: tea.KeyRunes, Rune: '8', Command: CmdJumpToTab, Description: "Jump to tab 8"},
			{KeyType: tea.KeyRunes, Rune: '9', Command: CmdJumpToTab, Description: "Jump to tab 9"},

			// Vertical scroll
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdScrollDown, Description: "Scroll down"},
			{KeyType: tea.KeyDown, Command: CmdScrollDown, Description: "Scroll down"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdScrollUp, Description: "Scroll up"},
			{KeyType: tea.KeyUp, Command: CmdScrollUp, Description: "Scroll up"},
			{KeyType: tea.KeyCtrlU, Command: CmdScrollHalfPageUp, Description: "Scroll half page up"},
			{KeyType: tea.KeyCtrlD, Command: CmdScrollHalfPageDn, Description: "Scroll half page down"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdScrollToTop, Description: "Go to top"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdScrollToBottom, Description: "Go to bottom"},

			// Horizontal scroll
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdScrollLeft, Description: "Scroll left"},
			{KeyType: tea.KeyLeft, Command: CmdScrollLeft, Description: "Scroll left"},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdScrollRight, Description: "Scroll right"},
			{KeyType: tea.KeyRight, Command: CmdScrollRight, Description: "Scroll right"},
			{KeyType: tea.KeyRunes, Rune: '0', Command: CmdScrollToLeftmost, Description: "Scroll to line start"},

			// Follow mode
			{KeyType: tea.KeyRunes, Rune: 'f', Command: CmdToggleAutoScroll, Description: "Toggle auto-scroll"},

			// Search
			{KeyType: tea.KeyRunes, Rune: '/', Command: CmdEnterSearchMode, Description: "Search"},
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdNextMatch, Description: "Next match"},
			{KeyType: tea.KeyRunes, Rune: 'N', Command: CmdPrevMatch, Description: "Previous match"},

			// Command control
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdRestartCommand, Description: "Restart command"},

			// Exit
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit"},
		},
	}
}

func defaultSearchBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeSearch,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEsc, Command: CmdCancelSearch, Description: "Cancel search"},
			{KeyType: tea.KeyEnter, Command: CmdExecuteSearch, Description: "Confirm search"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit"},
		},
	}
}
