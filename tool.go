package contour

import (
	"math"

	"honnef.co/go/curve"
)

// EditType describes the kind of modification a tool made to the
// session, for the purposes of undo grouping. Some modifications
// coalesce: when dragging a point, the edits made by the individual
// mouse events combine into a single undo group covering the whole
// drag.
type EditType uint8

const (
	// NormalEdit is any change that always gets its own undo group.
	NormalEdit EditType = iota
	NudgeLeftEdit
	NudgeRightEdit
	NudgeUpEdit
	NudgeDownEdit
	// DragEdit is an edit made while a drag is in progress.
	DragEdit
	// DragUpEdit is an edit that finishes a drag. It combines with the
	// drag's undo group, but not with anything after it.
	DragUpEdit
)

func (e EditType) String() string {
	switch e {
	case NormalEdit:
		return "normal"
	case NudgeLeftEdit:
		return "nudge-left"
	case NudgeRightEdit:
		return "nudge-right"
	case NudgeUpEdit:
		return "nudge-up"
	case NudgeDownEdit:
		return "nudge-down"
	case DragEdit:
		return "drag"
	case DragUpEdit:
		return "drag-up"
	default:
		return "invalid"
	}
}

// NeedsNewUndoGroup reports whether an edit of kind next, arriving
// after an edit of kind e, begins a new undo group rather than
// amending the current one. Repeated nudges in one direction share a
// group, as do all the edits of a single drag, including the one that
// releases it.
func (e EditType) NeedsNewUndoGroup(next EditType) bool {
	switch e {
	case NudgeLeftEdit, NudgeRightEdit, NudgeUpEdit, NudgeDownEdit:
		return e != next
	case DragEdit:
		return next != DragEdit && next != DragUpEdit
	default:
		return true
	}
}

// Key identifies a key that tools react to.
type Key uint8

const (
	KeyBackspace Key = iota + 1
	KeyTab
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyShift
)

// A KeyEvent is a single press or release of a key.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// A Tool turns input events into edits of an [EditSession]. Mouse
// gestures arrive through the embedded [MouseDelegate] methods, routed
// by a [Mouse]; key events arrive directly. Tools report the kind of
// edit they made so that the caller can group undo state.
type Tool interface {
	MouseDelegate

	// Name returns the name identifying the tool.
	Name() string

	// KeyDown handles a key press, reporting the edit it made, if
	// any.
	KeyDown(s *EditSession, k KeyEvent) (EditType, bool)
	// KeyUp handles a key release, reporting the edit it made, if
	// any.
	KeyUp(s *EditSession, k KeyEvent) (EditType, bool)

	// TakeEdit returns and clears the edit recorded by the most
	// recent mouse gesture. The [MouseDelegate] methods have no
	// return values, so edits made in them are reported out of band:
	// callers feed an event to [Mouse] and then collect the result.
	TakeEdit() (EditType, bool)
}

// axisLockedPoint locks the smaller axis of the offset from prev to pt
// back to prev's value, turning pt into a horizontal or vertical
// offset from prev. Tools use it for shift-constrained input.
func axisLockedPoint(pt, prev curve.Point) curve.Point {
	dx := pt.X - prev.X
	dy := pt.Y - prev.Y
	if math.Abs(dx) > math.Abs(dy) {
		return curve.Pt(pt.X, prev.Y)
	}
	return curve.Pt(prev.X, pt.Y)
}
