package contour

import (
	"slices"

	"honnef.co/go/curve"
)

// Select is the arrow tool: it selects points by clicking or rubber
// banding, moves them by dragging, and nudges them with the arrow
// keys.
type Select struct {
	drag dragState
	// the selection as it was when a rubber band drag began
	previous Selection
	// the rubber band rectangle, in screen space
	rect curve.Rect
	// the design-space delta applied so far by a move drag
	delta DVec2

	pending EditType
	hasEdit bool
}

// The states possible while handling a mouse drag.
type dragState uint8

const (
	dragNone dragState = iota
	// A drag that is a rubber band selection.
	dragSelect
	// A drag that is moving the selected points.
	dragMove
	// A drag that is moving an off-curve point.
	dragMoveHandle
	// An earlier gesture consumed the mouse down, so the drag is not
	// recognized.
	dragSuppress
)

// Name returns the tool's name.
func (Select) Name() string { return "Select" }

func (sl *Select) setEdit(e EditType) {
	sl.pending = e
	sl.hasEdit = true
}

// TakeEdit returns and clears the edit recorded by the most recent
// gesture.
func (sl *Select) TakeEdit() (EditType, bool) {
	e, ok := sl.pending, sl.hasEdit
	sl.pending, sl.hasEdit = NormalEdit, false
	return e, ok
}

// KeyDown nudges the selection with the arrow keys, deletes it on
// backspace, and walks it along the path with tab.
func (sl *Select) KeyDown(s *EditSession, k KeyEvent) (EditType, bool) {
	switch k.Key {
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown:
		sl.nudge(s, k)
	case KeyBackspace:
		s.DeleteSelection()
		sl.setEdit(NormalEdit)
	case KeyTab:
		if k.Mods.Shift {
			s.SelectPrev()
		} else {
			s.SelectNext()
		}
	default:
		return NormalEdit, false
	}
	return sl.TakeEdit()
}

// KeyUp implements [Tool].
func (sl *Select) KeyUp(s *EditSession, k KeyEvent) (EditType, bool) {
	return NormalEdit, false
}

func (sl *Select) nudge(s *EditSession, k KeyEvent) {
	var nudge curve.Vec2
	var editType EditType
	switch k.Key {
	case KeyArrowLeft:
		nudge = curve.Vec(-1, 0)
		editType = NudgeLeftEdit
	case KeyArrowRight:
		nudge = curve.Vec(1, 0)
		editType = NudgeRightEdit
	case KeyArrowUp:
		nudge = curve.Vec(0, 1)
		editType = NudgeUpEdit
	case KeyArrowDown:
		nudge = curve.Vec(0, -1)
		editType = NudgeDownEdit
	default:
		panic("nudge called with a non-arrow key")
	}

	if k.Mods.Meta {
		nudge = nudge.Mul(100)
	} else if k.Mods.Shift {
		nudge = nudge.Mul(10)
	}

	s.NudgeSelection(DVec2FromRaw(nudge))

	// only single-unit nudges combine in undo
	if nudge.Hypot() > 1 {
		sl.setEdit(NormalEdit)
	} else {
		sl.setEdit(editType)
	}
}

// Cancel implements [MouseDelegate].
func (sl *Select) Cancel(s *EditSession) {
	if sl.drag == dragSelect {
		s.Selection = sl.previous
	}
	sl.drag = dragNone
}

// LeftDown adjusts the selection for the point or segment under the
// cursor. Double clicks toggle the kind of the clicked point or guide,
// or select the clicked path.
func (sl *Select) LeftDown(s *EditSession, ev MouseEvent) {
	if sl.drag != dragNone {
		panic("select: mouse down during an unfinished gesture")
	}
	switch ev.Count {
	case 1:
		if id, ok := s.HitTestAll(ev.Pos, 0); ok {
			if !ev.Mods.Shift {
				// Clicking an unselected point selects it; clicking a
				// selected one keeps the selection intact for a drag.
				if !s.Selection.Contains(id) {
					s.Selection.SelectOne(id)
				}
			} else if !s.Selection.Remove(id) {
				s.Selection.Insert(id)
			}
		} else if seg, _, ok := s.HitTestSegments(ev.Pos, 0); ok {
			ids := seg.IDs()
			allSelected := !slices.ContainsFunc(ids, func(id EntityID) bool {
				return !s.Selection.Contains(id)
			})
			appendMode := ev.Mods.Shift
			sl.drag = dragSuppress

			if ev.Mods.Alt && seg.IsLine() {
				if path, ok := s.PathForPoint(seg.StartID()); ok {
					path.UpgradeLineSeg(seg, false)
					sl.setEdit(NormalEdit)
				}
				return
			}
			switch {
			case !appendMode && !allSelected:
				s.Selection.Clear()
				for _, id := range ids {
					s.Selection.Insert(id)
				}
			case !appendMode && allSelected:
				// A drag may move the segment, but only if it was
				// already selected.
				sl.drag = dragNone
			case appendMode && allSelected:
				for _, id := range ids {
					s.Selection.Remove(id)
				}
			default:
				for _, id := range ids {
					s.Selection.Insert(id)
				}
			}
		} else if !ev.Mods.Shift {
			s.Selection.Clear()
		}
	case 2:
		if id, ok := s.HitTestAll(ev.Pos, 0); ok {
			if _, isPoint := s.PathPointForID(id); isPoint {
				s.TogglePointKind(id)
				sl.setEdit(NormalEdit)
				return
			}
			if id.IsGuide() {
				s.ToggleGuide(id, ev.Pos)
				sl.setEdit(NormalEdit)
				return
			}
		}
		idx := slices.IndexFunc(s.Paths, func(path *Path) bool {
			return path.ScreenDist(s.ViewPort, ev.Pos) < MinClickDistance
		})
		if idx != -1 {
			s.SelectPath(s.Paths[idx].ID(), ev.Mods.Shift)
		}
	}
}

// LeftUp implements [MouseDelegate].
func (sl *Select) LeftUp(s *EditSession, ev MouseEvent) {
	sl.drag = dragNone
}

// LeftClick implements [MouseDelegate].
func (sl *Select) LeftClick(s *EditSession, ev MouseEvent) {}

// LeftDragBegan decides what kind of drag this is: moving a handle,
// moving the selection, or rubber band selection.
func (sl *Select) LeftDragBegan(s *EditSession, drag Drag) {
	if sl.drag == dragSuppress {
		return
	}
	if id, ok := s.HitTestAll(drag.Start.Pos, 0); ok {
		if pt, isPoint := s.PathPointForID(id); isPoint {
			if s.Selection.Len() == 1 && !pt.IsOnCurve() {
				sl.drag = dragMoveHandle
			} else {
				sl.drag = dragMove
				sl.delta = DVec2{}
			}
			return
		}
	}
	if _, _, ok := s.HitTestSegments(drag.Start.Pos, 0); ok {
		sl.drag = dragMove
		sl.delta = DVec2{}
		return
	}
	sl.drag = dragSelect
	sl.previous = s.Selection.Clone()
	sl.rect = curve.NewRectFromPoints(drag.Start.Pos, drag.Current.Pos)
}

// LeftDragChanged updates the rubber band or applies the drag's
// movement.
func (sl *Select) LeftDragChanged(s *EditSession, drag Drag) {
	switch sl.drag {
	case dragSelect:
		sl.rect = curve.NewRectFromPoints(drag.Current.Pos, drag.Start.Pos)
		inRect := s.PointsInRect(sl.rect)
		if drag.Current.Mods.Shift {
			s.Selection = sl.previous.SymmetricDifference(inRect)
		} else {
			s.Selection = sl.previous.Union(inRect)
		}
	case dragMove:
		// Positions only update when they change in design space, so
		// track the total design-space delta across the drag.
		newDelta := dragDelta(drag, s.ViewPort)
		if drag.Current.Mods.Shift {
			newDelta = newDelta.AxisLocked()
		}
		diff := newDelta.Sub(sl.delta)
		if diff.Hypot() > 0 {
			s.NudgeSelection(diff)
			sl.delta = newDelta
		}
	case dragMoveHandle:
		s.UpdateHandle(drag.Current.Pos, drag.Current.Mods.Shift)
	case dragSuppress:
	case dragNone:
		panic("select: drag changed without a drag in progress")
	}

	if sl.drag == dragMove {
		sl.setEdit(DragEdit)
	}
}

// LeftDragEnded implements [MouseDelegate].
func (sl *Select) LeftDragEnded(s *EditSession, drag Drag) {
	if sl.drag == dragMove {
		sl.setEdit(DragUpEdit)
	}
}

// dragDelta is the design-space displacement from the drag's start to
// its current position.
func dragDelta(drag Drag, v ViewPort) DVec2 {
	start := v.FromScreen(drag.Start.Pos)
	current := v.FromScreen(drag.Current.Pos)
	return current.Sub(start)
}

// SelectionRect returns the rubber band rectangle while one is being
// dragged.
func (sl *Select) SelectionRect() (curve.Rect, bool) {
	return sl.rect, sl.drag == dragSelect
}
