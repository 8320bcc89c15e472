package contour

import (
	"honnef.co/go/curve"
)

// MinDragDistance is how far, in screen units, the mouse must travel
// with the button held down before the gesture counts as a drag.
const MinDragDistance = 2.0

// Modifiers is the set of modifier keys held during an input event.
type Modifiers struct {
	Shift bool
	Alt   bool
	Meta  bool
}

// A MouseEvent is a single press, release, or movement of the mouse,
// in screen coordinates.
type MouseEvent struct {
	Pos   curve.Point
	Mods  Modifiers
	Count int
}

// A Drag is an in-progress drag gesture.
type Drag struct {
	// Start is the event that began the drag.
	Start MouseEvent
	// Prev is the previous event in the drag.
	Prev MouseEvent
	// Current is the current event in the drag.
	Current MouseEvent
}

// A MouseDelegate reacts to the gestures recognized by [Mouse].
// Implementations only act on the methods they care about and leave
// the rest empty.
type MouseDelegate interface {
	// LeftDown is called when the mouse button is pressed.
	LeftDown(s *EditSession, ev MouseEvent)
	// LeftUp is called when the mouse button is released.
	LeftUp(s *EditSession, ev MouseEvent)
	// LeftClick is called when the mouse button is released without a
	// drag having begun.
	LeftClick(s *EditSession, ev MouseEvent)
	// LeftDragBegan is called when the mouse has moved at least
	// [MinDragDistance] with the button pressed.
	LeftDragBegan(s *EditSession, drag Drag)
	// LeftDragChanged is called when the mouse moves after a drag has
	// begun.
	LeftDragChanged(s *EditSession, drag Drag)
	// LeftDragEnded is called when the mouse button is released after
	// a drag has begun.
	LeftDragEnded(s *EditSession, drag Drag)
	// Cancel is called when an in-progress gesture is abandoned, for
	// example because the active tool changed.
	Cancel(s *EditSession)
}

type mouseState uint8

const (
	// No mouse button is pressed.
	mouseUp mouseState = iota
	// The mouse button has been pressed.
	mouseDown
	// The mouse has moved past the drag threshold with the button
	// pressed.
	mouseDrag
)

// Mouse turns raw mouse events into gestures.
//
// Handling the permutations of mouse events is repetitive and error
// prone, so it happens in one place: a state machine that persists
// between events. Each raw event is passed to one of [Mouse.MouseDown],
// [Mouse.MouseMoved] and [Mouse.MouseUp] along with a delegate, and
// state changes are forwarded to the corresponding delegate methods.
//
// The zero value is ready to use.
type Mouse struct {
	state mouseState
	// The event that began the current press or drag.
	start MouseEvent
	// The most recent event. While the button is pressed but the drag
	// threshold hasn't been passed, this remains the press event.
	last MouseEvent
}

// Pos returns the current mouse position.
func (m *Mouse) Pos() curve.Point { return m.last.Pos }

// MouseDown feeds a button press into the state machine.
func (m *Mouse) MouseDown(s *EditSession, ev MouseEvent, delegate MouseDelegate) {
	switch m.state {
	case mouseUp:
		delegate.LeftDown(s, ev)
		m.state = mouseDown
		m.start = ev
		m.last = ev
	case mouseDown:
		// A second press without an intervening release; ignore it.
	case mouseDrag:
		logger().Warn("mouse press during drag; are mouse up events getting lost?")
		m.last = ev
	}
}

// MouseMoved feeds a movement into the state machine.
func (m *Mouse) MouseMoved(s *EditSession, ev MouseEvent, delegate MouseDelegate) {
	switch m.state {
	case mouseUp:
		m.last = ev
	case mouseDown:
		if m.start.Pos.Distance(ev.Pos) > MinDragDistance {
			delegate.LeftDragBegan(s, Drag{Start: m.start, Prev: m.start, Current: ev})
			m.state = mouseDrag
			m.last = ev
		}
	case mouseDrag:
		delegate.LeftDragChanged(s, Drag{Start: m.start, Prev: m.last, Current: ev})
		m.last = ev
	}
}

// MouseUp feeds a button release into the state machine.
func (m *Mouse) MouseUp(s *EditSession, ev MouseEvent, delegate MouseDelegate) {
	switch m.state {
	case mouseUp:
		m.last = ev
	case mouseDown:
		delegate.LeftClick(s, ev)
		delegate.LeftUp(s, ev)
		m.state = mouseUp
		m.last = ev
	case mouseDrag:
		delegate.LeftDragEnded(s, Drag{Start: m.start, Prev: m.last, Current: ev})
		delegate.LeftUp(s, ev)
		m.state = mouseUp
		m.last = ev
	}
}

// Cancel abandons any gesture in progress.
func (m *Mouse) Cancel(s *EditSession, delegate MouseDelegate) {
	delegate.Cancel(s)
	m.state = mouseUp
}
