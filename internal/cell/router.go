package cell

import "github.com/Iron-Ham/cellgrid/internal/input"

// Action is what a key means to a cell.
type Action uint8

// Actions.
const (
	ActionNone Action = iota
	ActionStartEdit
	ActionStopEdit
	ActionCancelEdit
	ActionTab
	ActionNavigate
	ActionToggleSelect
)

func (a Action) String() string {
	switch a {
	case ActionStartEdit:
		return "start_edit"
	case ActionStopEdit:
		return "stop_edit"
	case ActionCancelEdit:
		return "cancel_edit"
	case ActionTab:
		return "tab"
	case ActionNavigate:
		return "navigate"
	case ActionToggleSelect:
		return "toggle_select"
	default:
		return "none"
	}
}

// Route maps a keydown to an action.
func Route(key input.KeyEvent, editing bool) Action {
	switch key.Key {
	case input.KeyEnter:
		if editing {
			return ActionStopEdit
		}
		return ActionStartEdit
	case input.KeyF2, input.KeyBackspace, input.KeyDelete:
		if editing {
			return ActionNone
		}
		return ActionStartEdit
	case input.KeyEscape:
		if editing {
			return ActionCancelEdit
		}
		return ActionNone
	case input.KeyTab:
		return ActionTab
	case input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight:
		return ActionNavigate
	default:
		return ActionNone
	}
}

// RoutePress maps a keypress to an action. While editing, characters
// belong to the editor.
func RoutePress(key input.KeyEvent, editing bool) Action {
	switch {
	case editing:
		return ActionNone
	case key.IsSpace():
		return ActionToggleSelect
	case key.IsPrintable():
		return ActionStartEdit
	default:
		return ActionNone
	}
}
