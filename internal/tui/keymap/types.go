// Package keymap provides the terminal host's own key bindings: quitting,
// help, refresh and scrolling. Keys that reach the grid cells are not bound
// here.
package keymap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the host.
// Different modes have different key bindings active.
type Mode string

const (
	ModeGrid Mode = "grid" // Keys go to the focused cell unless bound here
	ModeHelp Mode = "help" // Help overlay is showing
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Grid mode commands
const (
	CmdQuit         Command = "quit"
	CmdToggleHelp   Command = "toggle_help"
	CmdRefreshCells Command = "refresh_cells"
	CmdFlashFocused Command = "flash_focused"
	CmdClearRange   Command = "clear_range"
	CmdPageUp       Command = "page_up"
	CmdPageDown     Command = "page_down"
)

// Help mode commands
const (
	CmdCloseHelp Command = "close_help"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// Key is the primary key for this binding.
	// For special keys, use tea.KeyType constants (e.g., tea.KeyEnter).
	// For rune keys, use tea.KeyRunes and set Rune field.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	// Check modifiers
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	// For special keys (not runes), match the key type directly
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	// For rune keys, check the rune value
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// If Rune is 0, this is a catch-all binding for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	// Handle special display cases
	switch kb.Rune {
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
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
	// Name identifies this keymap (e.g., "default", "vim", "emacs").
	Name string

	// Description provides a human-readable description.
	Description string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
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

// GetBindingsForCommand returns all bindings that trigger a specific command.
// Useful for displaying "Press X or Y to do Z" in help.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns all unique categories in a mode's bindings.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var categories []string

	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// GetBindingsByCategory returns bindings grouped by category for a mode.
func (km *Keymap) GetBindingsByCategory(mode Mode) map[string][]KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	result := make(map[string][]KeyBinding)
	for _, binding := range mb.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], binding)
	}
	return result
}

// Rebind replaces every binding of command in mode with the key described
// by spec. The description and category of the first replaced binding are
// kept. It is an error to rebind a command the mode does not have.
func (km *Keymap) Rebind(mode Mode, command Command, spec string) error {
	mb, ok := km.Modes[mode]
	if !ok {
		return fmt.Errorf("unknown mode: %s", mode)
	}
	keyType, r, mods, err := ParseKeySpec(spec)
	if err != nil {
		return err
	}

	var kept []KeyBinding
	var replaced *KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command != command {
			kept = append(kept, binding)
			continue
		}
		if replaced == nil {
			b := binding
			replaced = &b
		}
	}
	if replaced == nil {
		return fmt.Errorf("unknown command for %s mode: %s", mode, command)
	}

	replaced.KeyType = keyType
	replaced.Rune = r
	replaced.Modifiers = mods
	// New bindings go first so they win over any binding sharing the key.
	mb.Bindings = append([]KeyBinding{*replaced}, kept...)
	return nil
}

// ParseKeySpec parses a key specification string into KeyType, Rune, and Modifiers.
// Examples: "ctrl+r", "shift+tab", "j", "enter", "alt+left"
func ParseKeySpec(spec string) (keyType tea.KeyType, r rune, mods Modifier, err error) {
	// This is a simplified parser - a full implementation would handle
	// all possible key combinations

	// Check for modifiers
	remaining := spec
	for {
		switch {
		case len(remaining) > 5 && remaining[:5] == "ctrl+":
			mods |= ModCtrl
			remaining = remaining[5:]
		case len(remaining) > 4 && remaining[:4] == "alt+":
			mods |= ModAlt
			remaining = remaining[4:]
		case len(remaining) > 6 && remaining[:6] == "shift+":
			mods |= ModShift
			remaining = remaining[6:]
		default:
			goto parseKey
		}
	}

parseKey:
	// Handle special keys
	switch remaining {
	case "enter":
		return tea.KeyEnter, 0, mods, nil
	case "tab":
		if mods&ModShift != 0 {
			return tea.KeyShiftTab, 0, mods &^ ModShift, nil
		}
		return tea.KeyTab, 0, mods, nil
	case "esc", "escape":
		return tea.KeyEsc, 0, mods, nil
	case "space":
		return tea.KeySpace, 0, mods, nil
	case "backspace":
		return tea.KeyBackspace, 0, mods, nil
	case "delete":
		return tea.KeyDelete, 0, mods, nil
	case "up":
		return tea.KeyUp, 0, mods, nil
	case "down":
		return tea.KeyDown, 0, mods, nil
	case "left":
		return tea.KeyLeft, 0, mods, nil
	case "right":
		return tea.KeyRight, 0, mods, nil
	case "home":
		return tea.KeyHome, 0, mods, nil
	case "end":
		return tea.KeyEnd, 0, mods, nil
	case "pgup", "pageup":
		return tea.KeyPgUp, 0, mods, nil
	case "pgdown", "pagedown":
		return tea.KeyPgDown, 0, mods, nil
	case "insert":
		return tea.KeyInsert, 0, mods, nil
	}

	// Handle ctrl+letter combinations
	if mods&ModCtrl != 0 && len(remaining) == 1 {
		ch := remaining[0]
		if ch >= 'a' && ch <= 'z' {
			// Map to tea.KeyCtrlA through tea.KeyCtrlZ
			ctrlKey := tea.KeyCtrlA + tea.KeyType(ch-'a')
			return ctrlKey, 0, mods &^ ModCtrl, nil // Remove ctrl from mods since it's in the key type
		}
	}

	// Handle function keys
	if len(remaining) >= 2 && remaining[0] == 'f' {
		var fNum int
		if _, err := fmt.Sscanf(remaining, "f%d", &fNum); err == nil && fNum >= 1 && fNum <= 20 {
			// Function keys are defined as separate constants, use a map
			fKeys := map[int]tea.KeyType{
				1: tea.KeyF1, 2: tea.KeyF2, 3: tea.KeyF3, 4: tea.KeyF4, 5: tea.KeyF5,
				6: tea.KeyF6, 7: tea.KeyF7, 8: tea.KeyF8, 9: tea.KeyF9, 10: tea.KeyF10,
				11: tea.KeyF11, 12: tea.KeyF12, 13: tea.KeyF13, 14: tea.KeyF14, 15: tea.KeyF15,
				16: tea.KeyF16, 17: tea.KeyF17, 18: tea.KeyF18, 19: tea.KeyF19, 20: tea.KeyF20,
			}
			if keyType, ok := fKeys[fNum]; ok {
				return keyType, 0, mods, nil
			}
		}
	}

	// Single character - it's a rune
	if len(remaining) == 1 {
		return tea.KeyRunes, rune(remaining[0]), mods, nil
	}

	return 0, 0, 0, fmt.Errorf("unrecognized key spec: %s", spec)
}
