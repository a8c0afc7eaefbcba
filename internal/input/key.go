// Package input defines the keyboard and mouse event model consumed by grid
// cells, along with adapters from bubbletea messages.
package input

import (
	"strings"
)

// Key identifies a keyboard key. Character keys use KeyRune with the
// character carried in KeyEvent.Rune.
type Key uint8

const (
	// KeyNone represents no key. Edits started without a triggering key
	// (double click, single-click edit, tab continuation) use it.
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyF2
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Esc"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyF2:
		return "F2"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// IsArrow reports whether the key is one of the four navigation arrows.
func (k Key) IsArrow() bool {
	return k == KeyUp || k == KeyDown || k == KeyLeft || k == KeyRight
}

// printableCharacters is the set of characters that start an edit when typed
// on a cell that is not editing.
const printableCharacters = `qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM1234567890!"£$%^&*()_+-=[];'#,./\|<>?:@~{}`

// KeyEvent is a single key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// NewKey creates an event for a special key.
func NewKey(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

// NewRune creates an event for a character key.
func NewRune(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// IsSpace reports whether the event is the space bar.
func (e KeyEvent) IsSpace() bool {
	return e.Key == KeyRune && e.Rune == ' '
}

// IsPrintable reports whether the event carries a character from the
// edit-starting printable set.
func (e KeyEvent) IsPrintable() bool {
	if e.Key != KeyRune || e.Rune == 0 || e.Ctrl || e.Meta {
		return false
	}
	return strings.ContainsRune(printableCharacters, e.Rune)
}

// String returns a readable form such as "a", "Shift+Tab" or "Enter".
func (e KeyEvent) String() string {
	var parts []string
	if e.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if e.Alt {
		parts = append(parts, "Alt")
	}
	if e.Meta {
		parts = append(parts, "Meta")
	}
	if e.Shift && e.Key != KeyRune {
		parts = append(parts, "Shift")
	}
	switch {
	case e.IsSpace():
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "+")
}
