// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declarative and mode-aware so the update loop can dispatch
// on named commands instead of raw key matches.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal Mode = "normal" // Default viewing mode
	ModeSearch Mode = "search" // Typing search pattern (after /)
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	// Tab navigation
	CmdNextTab   Command = "next_tab"
	CmdPrevTab   Command = "prev_tab"
	CmdJumpToTab Command = "jump_to_tab" // 1-9 keys

	// Output navigation
	CmdScrollDown       Command = "scroll_down"
	CmdScrollUp         Command = "scroll_up"
	CmdScrollHalfPageUp Command = "scroll_half_page_up"
	CmdScrollHalfPageDn Command = "scroll_half_page_down"
	CmdScrollToTop      Command = "scroll_to_top"
	CmdScrollToBottom   Command = "scroll_to_bottom"
	CmdScrollLeft       Command = "scroll_left"
	CmdScrollRight      Command = "scroll_right"
	CmdScrollToLeftmost Command = "scroll_to_leftmost"

	// Follow mode
	CmdToggleAutoScroll Command = "toggle_auto_scroll"

	// Search
	CmdEnterSearchMode Command = "enter_search_mode"
	CmdNextMatch       Command = "next_match"
	CmdPrevMatch       Command = "prev_match"

	// Command control
	CmdRestartCommand Command = "restart_command"

	// Exit
	CmdQuit Command = "quit"
)

// Search mode commands. Text editing keys are not bound here; they are
// forwarded to the text input component.
const (
	CmdExecuteSearch Command = "execute_search"
	CmdCancelSearch  Command = "cancel_search"
)

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the primary key for this binding.
	// For rune keys, use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys.
	Rune rune

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return "space"
	}
	return string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}
