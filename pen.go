package contour

// Pen is the tool that draws paths. Clicking appends corner points,
// clicking the start point of the active path closes it, dragging
// pulls out handles, and clicking on a segment splits it.
type Pen struct {
	state penState
	// the point added by the gesture in progress
	point   EntityID
	pending EditType
	hasEdit bool
}

type penState uint8

const (
	penReady penState = iota
	// The mouse is down and has added a new point.
	penAddPoint
	// The mouse is dragging a handle after adding a new point.
	penDragHandle
)

// Name returns the tool's name.
func (Pen) Name() string { return "Pen" }

func (p *Pen) setEdit(e EditType) {
	p.pending = e
	p.hasEdit = true
}

// TakeEdit returns and clears the edit recorded by the most recent
// gesture.
func (p *Pen) TakeEdit() (EditType, bool) {
	e, ok := p.pending, p.hasEdit
	p.pending, p.hasEdit = NormalEdit, false
	return e, ok
}

// KeyDown deletes the selection on backspace.
func (p *Pen) KeyDown(s *EditSession, k KeyEvent) (EditType, bool) {
	if k.Key == KeyBackspace {
		s.DeleteSelection()
		return NormalEdit, true
	}
	return NormalEdit, false
}

// KeyUp implements [Tool].
func (p *Pen) KeyUp(s *EditSession, k KeyEvent) (EditType, bool) {
	return NormalEdit, false
}

// Cancel implements [MouseDelegate].
func (p *Pen) Cancel(s *EditSession) {
	if p.state == penDragHandle {
		p.setEdit(DragUpEdit)
	}
	p.state = penReady
}

// LeftDown adds a point to the active path, starts a new path, closes
// the active path, or splits a segment, depending on what's under the
// cursor.
func (p *Pen) LeftDown(s *EditSession, ev MouseEvent) {
	if p.state != penReady {
		panic("pen: mouse down during an unfinished gesture")
	}
	switch ev.Count {
	case 1:
		if hit, ok := s.HitTestFiltered(ev.Pos, 0, nil); ok {
			if path, ok := s.ActivePath(); ok && !path.Closed() && path.StartPoint().ID == hit {
				sel := path.Close()
				s.Selection.SelectOne(sel)
				p.state = penAddPoint
				p.point = sel
				p.setEdit(NormalEdit)
				return
			}
		}

		if seg, t, ok := s.HitTestSegments(ev.Pos, 0); ok {
			if path, ok := s.PathForPoint(seg.StartID()); ok {
				path.SplitSegmentAtPoint(seg, t)
				p.setEdit(NormalEdit)
			}
			return
		}

		dpt := s.ViewPort.FromScreen(ev.Pos)
		var newPoint EntityID
		if active, ok := s.ActivePath(); ok && !active.Closed() {
			if ev.Mods.Shift {
				dpt = dpt.AxisLockedTo(active.EndPoint().Point)
			}
			newPoint = active.LineTo(dpt, ev.Mods.Alt)
		} else {
			path := NewPath(s.ids, dpt)
			newPoint = path.StartPoint().ID
			s.AddPath(path)
		}

		s.Selection.SelectOne(newPoint)
		p.state = penAddPoint
		p.point = newPoint
		p.setEdit(NormalEdit)
	case 2:
		s.Selection.Clear()
	}
}

// LeftUp commits the gesture, discarding the trailing handle unless
// the path wants to keep drawing a curve.
func (p *Pen) LeftUp(s *EditSession, ev MouseEvent) {
	if path, ok := s.ActivePath(); ok {
		if path.Closed() || path.Len() > 1 && !path.LastSegmentIsCurve() {
			path.ClearTrailing()
		}
	}
	p.state = penReady
}

// LeftClick implements [MouseDelegate].
func (p *Pen) LeftClick(s *EditSession, ev MouseEvent) {}

// LeftDragBegan upgrades the just-added point's segment to a curve and
// starts dragging out its handles.
func (p *Pen) LeftDragBegan(s *EditSession, drag Drag) {
	if p.state != penAddPoint {
		return
	}
	path, ok := s.PathForPoint(p.point)
	if !ok {
		return
	}
	if seg, ok := path.SegmentForEnd(p.point); ok && seg.IsLine() {
		if !seg.End().IsSmooth() {
			path.TogglePointKind(p.point)
		}
		path.UpgradeLineSeg(seg, true)
	}
	path.UpdateTrailing(p.point, dragHandlePos(drag, s.ViewPort))
	p.state = penDragHandle
	p.setEdit(DragEdit)
}

// LeftDragChanged drags the new point's handles.
func (p *Pen) LeftDragChanged(s *EditSession, drag Drag) {
	if p.state != penDragHandle {
		return
	}
	if path, ok := s.PathForPoint(p.point); ok {
		path.UpdateTrailing(p.point, dragHandlePos(drag, s.ViewPort))
		p.setEdit(DragEdit)
	}
}

// LeftDragEnded implements [MouseDelegate].
func (p *Pen) LeftDragEnded(s *EditSession, drag Drag) {
	p.setEdit(DragUpEdit)
}

// dragHandlePos is the drag's current position in design space, axis
// locked to the drag's origin while shift is held.
func dragHandlePos(drag Drag, v ViewPort) DPoint {
	start := v.FromScreen(drag.Start.Pos)
	current := v.FromScreen(drag.Current.Pos)
	if drag.Current.Mods.Shift {
		return current.AxisLockedTo(start)
	}
	return current
}
