package cell

import (
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/input"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		key     input.Key
		editing bool
		want    Action
	}{
		{input.KeyEnter, false, ActionStartEdit},
		{input.KeyEnter, true, ActionStopEdit},
		{input.KeyF2, false, ActionStartEdit},
		{input.KeyF2, true, ActionNone},
		{input.KeyBackspace, false, ActionStartEdit},
		{input.KeyDelete, false, ActionStartEdit},
		{input.KeyDelete, true, ActionNone},
		{input.KeyEscape, false, ActionNone},
		{input.KeyEscape, true, ActionCancelEdit},
		{input.KeyTab, false, ActionTab},
		{input.KeyTab, true, ActionTab},
		{input.KeyUp, false, ActionNavigate},
		{input.KeyLeft, true, ActionNavigate},
		{input.KeyHome, false, ActionNone},
		{input.KeyRune, false, ActionNone},
	}
	for _, tt := range tests {
		name := tt.key.String()
		if tt.editing {
			name += "/editing"
		}
		t.Run(name, func(t *testing.T) {
			if got := Route(input.NewKey(tt.key), tt.editing); got != tt.want {
				t.Errorf("Route(%v, %v) = %v, want %v", tt.key, tt.editing, got, tt.want)
			}
		})
	}
}

func TestRoutePress(t *testing.T) {
	ctrlA := input.NewRune('a')
	ctrlA.Ctrl = true

	tests := []struct {
		name    string
		key     input.KeyEvent
		editing bool
		want    Action
	}{
		{"space", input.NewRune(' '), false, ActionToggleSelect},
		{"letter", input.NewRune('a'), false, ActionStartEdit},
		{"digit", input.NewRune('7'), false, ActionStartEdit},
		{"letter while editing", input.NewRune('a'), true, ActionNone},
		{"space while editing", input.NewRune(' '), true, ActionNone},
		{"ctrl letter", ctrlA, false, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoutePress(tt.key, tt.editing); got != tt.want {
				t.Errorf("RoutePress(%v, %v) = %v, want %v", tt.key, tt.editing, got, tt.want)
			}
		})
	}
}
