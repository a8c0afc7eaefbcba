package input

import "time"

// MouseKind is the semantic kind of a mouse event delivered to a cell.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseClick
	MouseDoubleClick
	MouseContextMenu
)

// String returns the event name used when dispatching to cells.
func (k MouseKind) String() string {
	switch k {
	case MouseDown:
		return "mousedown"
	case MouseClick:
		return "click"
	case MouseDoubleClick:
		return "dblclick"
	case MouseContextMenu:
		return "contextmenu"
	default:
		return "unknown"
	}
}

// MouseEvent is a mouse interaction at a terminal position.
type MouseEvent struct {
	Kind  MouseKind
	X, Y  int
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// ClickTracker turns a stream of presses into single/double click counts.
type ClickTracker struct {
	maxInterval time.Duration

	lastX, lastY int
	lastTime     time.Time
	lastCount    int
}

// NewClickTracker creates a tracker that counts presses within maxInterval
// at the same position as one sequence.
func NewClickTracker(maxInterval time.Duration) *ClickTracker {
	return &ClickTracker{maxInterval: maxInterval}
}

// Record registers a press and returns the click count (1 or 2). The count
// wraps back to 1 after a double click.
func (t *ClickTracker) Record(x, y int, at time.Time) int {
	if at.IsZero() {
		at = time.Now()
	}

	if t.partOfSequence(x, y, at) && t.lastCount < 2 {
		t.lastCount++
	} else {
		t.lastCount = 1
	}

	t.lastX, t.lastY = x, y
	t.lastTime = at
	return t.lastCount
}

func (t *ClickTracker) partOfSequence(x, y int, at time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	elapsed := at.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxInterval {
		return false
	}
	return x == t.lastX && y == t.lastY
}

// Reset forgets the current click sequence.
func (t *ClickTracker) Reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
}
