package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FromKeyMsg converts a bubbletea key message into a KeyEvent. The second
// return value is false for keys cells do not care about.
func FromKeyMsg(msg tea.KeyMsg) (KeyEvent, bool) {
	ev := KeyEvent{Alt: msg.Alt}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return KeyEvent{}, false
		}
		ev.Key = KeyRune
		ev.Rune = msg.Runes[0]
	case tea.KeySpace:
		ev.Key = KeyRune
		ev.Rune = ' '
	case tea.KeyEnter:
		ev.Key = KeyEnter
	case tea.KeyEsc:
		ev.Key = KeyEscape
	case tea.KeyTab:
		ev.Key = KeyTab
	case tea.KeyShiftTab:
		ev.Key = KeyTab
		ev.Shift = true
	case tea.KeyBackspace:
		ev.Key = KeyBackspace
	case tea.KeyDelete:
		ev.Key = KeyDelete
	case tea.KeyF2:
		ev.Key = KeyF2
	case tea.KeyUp:
		ev.Key = KeyUp
	case tea.KeyDown:
		ev.Key = KeyDown
	case tea.KeyLeft:
		ev.Key = KeyLeft
	case tea.KeyRight:
		ev.Key = KeyRight
	case tea.KeyShiftUp:
		ev.Key, ev.Shift = KeyUp, true
	case tea.KeyShiftDown:
		ev.Key, ev.Shift = KeyDown, true
	case tea.KeyShiftLeft:
		ev.Key, ev.Shift = KeyLeft, true
	case tea.KeyShiftRight:
		ev.Key, ev.Shift = KeyRight, true
	case tea.KeyHome:
		ev.Key = KeyHome
	case tea.KeyEnd:
		ev.Key = KeyEnd
	default:
		return KeyEvent{}, false
	}
	return ev, true
}

// ToKeyMsg converts a KeyEvent back into a bubbletea key message so that
// bubbles components can consume it.
func ToKeyMsg(ev KeyEvent) tea.KeyMsg {
	switch ev.Key {
	case KeyRune:
		if ev.Rune == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: ev.Alt}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: ev.Alt}
	case KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case KeyEscape:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case KeyTab:
		if ev.Shift {
			return tea.KeyMsg{Type: tea.KeyShiftTab}
		}
		return tea.KeyMsg{Type: tea.KeyTab}
	case KeyBackspace:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case KeyDelete:
		return tea.KeyMsg{Type: tea.KeyDelete}
	case KeyF2:
		return tea.KeyMsg{Type: tea.KeyF2}
	case KeyUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	case KeyDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	case KeyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case KeyRight:
		return tea.KeyMsg{Type: tea.KeyRight}
	case KeyHome:
		return tea.KeyMsg{Type: tea.KeyHome}
	case KeyEnd:
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{}
	}
}
