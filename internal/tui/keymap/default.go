package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default host key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default cellgrid key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeGrid: defaultGridBindings(),
			ModeHelp: defaultHelpBindings(),
		},
	}
}

func defaultGridBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeGrid,
		Bindings: []KeyBinding{
			// Scrolling
			{KeyType: tea.KeyPgUp, Command: CmdPageUp, Description: "Scroll page up", Category: "Scrolling"},
			{KeyType: tea.KeyPgDown, Command: CmdPageDown, Description: "Scroll page down", Category: "Scrolling"},

			// Cells
			{KeyType: tea.KeyCtrlR, Command: CmdRefreshCells, Description: "Refresh all cells", Category: "Cells"},
			{KeyType: tea.KeyCtrlF, Command: CmdFlashFocused, Description: "Flash focused cell", Category: "Cells"},
			{KeyType: tea.KeyCtrlL, Command: CmdClearRange, Description: "Clear range selection", Category: "Cells"},

			// Application
			{KeyType: tea.KeyF1, Command: CmdToggleHelp, Description: "Toggle help", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyCtrlQ, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEsc, Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyF1, Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}
