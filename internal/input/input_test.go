package input

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyEvent_IsPrintable(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want bool
	}{
		{"letter", NewRune('a'), true},
		{"upper letter", NewRune('Q'), true},
		{"digit", NewRune('7'), true},
		{"pound sign", NewRune('£'), true},
		{"space is not printable", NewRune(' '), false},
		{"ctrl letter", KeyEvent{Key: KeyRune, Rune: 'a', Ctrl: true}, false},
		{"enter", NewKey(KeyEnter), false},
		{"accented letter", NewRune('é'), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.IsPrintable(); got != tt.want {
				t.Errorf("IsPrintable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyEvent_String(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{NewRune('a'), "a"},
		{NewRune(' '), "Space"},
		{KeyEvent{Key: KeyTab, Shift: true}, "Shift+Tab"},
		{KeyEvent{Key: KeyRune, Rune: 'c', Ctrl: true}, "Ctrl+c"},
		{NewKey(KeyF2), "F2"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want KeyEvent
		ok   bool
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, NewRune('x'), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, NewRune(' '), true},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, KeyEvent{Key: KeyTab, Shift: true}, true},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, NewKey(KeyEscape), true},
		{"f2", tea.KeyMsg{Type: tea.KeyF2}, NewKey(KeyF2), true},
		{"empty runes", tea.KeyMsg{Type: tea.KeyRunes}, KeyEvent{}, false},
		{"unsupported", tea.KeyMsg{Type: tea.KeyF9}, KeyEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromKeyMsg(tt.msg)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("FromKeyMsg() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToKeyMsg_RoundTripsSpecialKeys(t *testing.T) {
	for _, k := range []Key{KeyEnter, KeyEscape, KeyTab, KeyBackspace, KeyDelete, KeyF2, KeyUp, KeyDown, KeyLeft, KeyRight} {
		got, ok := FromKeyMsg(ToKeyMsg(NewKey(k)))
		if !ok || got.Key != k {
			t.Errorf("round trip of %s gave %+v (ok=%v)", k, got, ok)
		}
	}
}

func TestClickTracker(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker := NewClickTracker(300 * time.Millisecond)

	if got := tracker.Record(4, 2, base); got != 1 {
		t.Fatalf("first click count = %d, want 1", got)
	}
	if got := tracker.Record(4, 2, base.Add(100*time.Millisecond)); got != 2 {
		t.Fatalf("second click count = %d, want 2", got)
	}
	if got := tracker.Record(4, 2, base.Add(200*time.Millisecond)); got != 1 {
		t.Errorf("third click should start a new sequence, got %d", got)
	}

	t.Run("moved position starts a new sequence", func(t *testing.T) {
		tracker.Reset()
		tracker.Record(1, 1, base)
		if got := tracker.Record(2, 1, base.Add(50*time.Millisecond)); got != 1 {
			t.Errorf("count = %d, want 1", got)
		}
	})

	t.Run("slow second click starts a new sequence", func(t *testing.T) {
		tracker.Reset()
		tracker.Record(1, 1, base)
		if got := tracker.Record(1, 1, base.Add(time.Second)); got != 1 {
			t.Errorf("count = %d, want 1", got)
		}
	})
}
