// Package interaction turns pointer and key input into sphere rotation, hover and detail-view changes.
package interaction

import "github.com/Carmen-Shannon/imgsphere/common"

// PointerKind distinguishes the device that produced a pointer event.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// String returns the device name.
func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "unknown"
	}
}

// State is the gesture state of the controller.
type State int

const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// NoIndex marks the absence of a hovered, pressed or opened item.
const NoIndex = -1

// HitTester returns the topmost item under a point, in the same space as pointer events.
type HitTester func(x, y float64) (index int, ok bool)

// DetailLayout returns the open detail card and its close control.
type DetailLayout func() (card, close common.Rect, ok bool)

// Controller is the gesture state machine of one sphere.
//
// Idle -> Dragging on pointer down. Every move while dragging feeds the motion controller.
// Dragging -> Idle on pointer up or leave. A gesture whose pointer never strayed further than the
// click threshold from where it went down is a click and opens the item pressed at pointer down.
type Controller interface {
	// PointerDown starts a gesture, or resolves a click against the open detail view.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position
	PointerDown(kind PointerKind, x, y float64)

	// PointerMove feeds a drag delta, or updates hover for a mouse that is not dragging.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position
	PointerMove(kind PointerKind, x, y float64)

	// PointerUp ends a gesture and opens the detail view if the gesture was a click.
	//
	// Parameters:
	//   - kind: the pointer device
	//   - x, y: pointer position
	PointerUp(kind PointerKind, x, y float64)

	// PointerLeave ends any gesture without treating it as a click and clears hover.
	PointerLeave()

	// KeyDown handles keyboard input. Escape closes the detail view.
	//
	// Parameters:
	//   - key: a common.Key* code
	//
	// Returns:
	//   - bool: true if the key was consumed
	KeyDown(key int) bool

	// State returns the gesture state.
	//
	// Returns:
	//   - State: Idle or Dragging
	State() State

	// Hovered returns the item under the mouse, or NoIndex.
	//
	// Returns:
	//   - int: hovered item index
	Hovered() int

	// Detail returns the item shown in the detail view.
	//
	// Returns:
	//   - int: the open item index, or NoIndex
	//   - bool: true while the detail view is open
	Detail() (int, bool)

	// Open shows the detail view for an item. Any drag in progress is ended.
	//
	// Parameters:
	//   - index: the item to show
	Open(index int)

	// Close hides the detail view. It is a no-op when nothing is open.
	Close()

	// Reset returns to Idle with nothing hovered or open, without firing callbacks.
	Reset()
}
