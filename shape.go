package contour

import (
	"math"
	"slices"

	"honnef.co/go/curve"
)

type shapeState uint8

const (
	shapeReady shapeState = iota
	// The mouse is down but hasn't moved far enough to drag.
	shapeDown
	shapeBegun
	shapeFinished
)

// squareLocked snaps the dragged corner so the shape becomes a square,
// keeping the drag's horizontal extent and vertical direction.
func squareLocked(start, current DPoint) DPoint {
	v := current.Sub(start)
	size := math.Abs(v.X)
	if v.Y < 0 {
		size = -size
	}
	return start.Translate(DVec2{v.X, size})
}

// Rectangle is the tool that draws axis-aligned rectangular paths:
// dragging spans the rectangle between the two corners, with shift
// locking it to a square.
type Rectangle struct {
	gesture        shapeState
	start, current DPoint
	shiftLocked    bool
}

// Name returns the tool's name.
func (Rectangle) Name() string { return "Rectangle" }

// Corners returns the rectangle's opposite corners, with any shift
// lock applied, if a drag is live.
func (r *Rectangle) Corners() (DPoint, DPoint, bool) {
	if r.gesture != shapeBegun {
		return DPoint{}, DPoint{}, false
	}
	current := r.current
	if r.shiftLocked {
		current = squareLocked(r.start, current)
	}
	return r.start, current, true
}

// KeyDown updates the shift square lock.
func (r *Rectangle) KeyDown(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		r.shiftLocked = true
	}
	return NormalEdit, false
}

// KeyUp updates the shift square lock.
func (r *Rectangle) KeyUp(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		r.shiftLocked = false
	}
	return NormalEdit, false
}

// TakeEdit returns the edit produced by the last finished gesture, if
// any, and resets the tool.
func (r *Rectangle) TakeEdit() (EditType, bool) {
	if r.gesture == shapeFinished {
		r.gesture = shapeReady
		return NormalEdit, true
	}
	return NormalEdit, false
}

// Cancel implements [MouseDelegate].
func (r *Rectangle) Cancel(s *EditSession) {
	r.gesture = shapeReady
}

// LeftDown implements [MouseDelegate].
func (r *Rectangle) LeftDown(s *EditSession, ev MouseEvent) {
	if ev.Count == 1 {
		r.gesture = shapeDown
		r.start = s.ViewPort.FromScreen(ev.Pos)
		r.shiftLocked = ev.Mods.Shift
	}
}

// LeftUp adds the dragged rectangle to the session.
func (r *Rectangle) LeftUp(s *EditSession, ev MouseEvent) {
	if p1, p3, ok := r.Corners(); ok {
		s.AddPath(rectPath(s.ids, p1, p3))
		r.gesture = shapeFinished
		return
	}
	r.gesture = shapeReady
}

// LeftClick implements [MouseDelegate].
func (r *Rectangle) LeftClick(s *EditSession, ev MouseEvent) {}

// LeftDragBegan implements [MouseDelegate].
func (r *Rectangle) LeftDragBegan(s *EditSession, drag Drag) {
	if r.gesture == shapeDown {
		r.gesture = shapeBegun
		r.current = s.ViewPort.FromScreen(drag.Current.Pos)
	}
}

// LeftDragChanged implements [MouseDelegate].
func (r *Rectangle) LeftDragChanged(s *EditSession, drag Drag) {
	if r.gesture == shapeBegun {
		r.current = s.ViewPort.FromScreen(drag.Current.Pos)
	}
}

// LeftDragEnded implements [MouseDelegate].
func (r *Rectangle) LeftDragEnded(s *EditSession, drag Drag) {}

// rectPath builds the closed rectangle spanned by two opposite
// corners. The drag's start corner is the logical first point, which a
// closed path stores last.
func rectPath(ids *IDSource, p1, p3 DPoint) *Path {
	id := ids.Next()
	p2 := DPoint{p3.X, p1.Y}
	p4 := DPoint{p1.X, p3.Y}
	points := []PathPoint{
		OnCurvePoint(ids, id, p2),
		OnCurvePoint(ids, id, p3),
		OnCurvePoint(ids, id, p4),
		OnCurvePoint(ids, id, p1),
	}
	return FromRawParts(ids, id, points, nil, true)
}

// Ellipse is the tool that draws elliptical paths: dragging spans the
// ellipse's bounding rectangle, with shift locking it to a circle.
type Ellipse struct {
	gesture        shapeState
	start, current DPoint
	shiftLocked    bool
}

// Name returns the tool's name.
func (Ellipse) Name() string { return "Ellipse" }

// Corners returns the bounding rectangle's opposite corners, with any
// shift lock applied, if a drag is live.
func (e *Ellipse) Corners() (DPoint, DPoint, bool) {
	if e.gesture != shapeBegun {
		return DPoint{}, DPoint{}, false
	}
	current := e.current
	if e.shiftLocked {
		current = squareLocked(e.start, current)
	}
	return e.start, current, true
}

// KeyDown updates the shift circle lock.
func (e *Ellipse) KeyDown(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		e.shiftLocked = true
	}
	return NormalEdit, false
}

// KeyUp updates the shift circle lock.
func (e *Ellipse) KeyUp(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		e.shiftLocked = false
	}
	return NormalEdit, false
}

// TakeEdit returns the edit produced by the last finished gesture, if
// any, and resets the tool.
func (e *Ellipse) TakeEdit() (EditType, bool) {
	if e.gesture == shapeFinished {
		e.gesture = shapeReady
		return NormalEdit, true
	}
	return NormalEdit, false
}

// Cancel implements [MouseDelegate].
func (e *Ellipse) Cancel(s *EditSession) {
	e.gesture = shapeReady
}

// LeftDown implements [MouseDelegate].
func (e *Ellipse) LeftDown(s *EditSession, ev MouseEvent) {}

// LeftUp implements [MouseDelegate].
func (e *Ellipse) LeftUp(s *EditSession, ev MouseEvent) {}

// LeftClick implements [MouseDelegate].
func (e *Ellipse) LeftClick(s *EditSession, ev MouseEvent) {}

// LeftDragBegan implements [MouseDelegate].
func (e *Ellipse) LeftDragBegan(s *EditSession, drag Drag) {
	e.gesture = shapeBegun
	e.start = s.ViewPort.FromScreen(drag.Start.Pos)
	e.current = s.ViewPort.FromScreen(drag.Current.Pos)
	e.shiftLocked = drag.Current.Mods.Shift
}

// LeftDragChanged implements [MouseDelegate].
func (e *Ellipse) LeftDragChanged(s *EditSession, drag Drag) {
	if e.gesture == shapeBegun {
		e.current = s.ViewPort.FromScreen(drag.Current.Pos)
	}
}

// LeftDragEnded adds the dragged ellipse to the session.
func (e *Ellipse) LeftDragEnded(s *EditSession, drag Drag) {
	p1, p3, ok := e.Corners()
	if !ok {
		e.gesture = shapeReady
		return
	}
	if path, ok := ellipsePath(s.ids, p1, p3); ok {
		s.AddPath(path)
	}
	e.gesture = shapeFinished
}

// ellipsePath builds a closed cubic path tracing the ellipse inscribed
// in the rectangle spanned by two opposite corners.
func ellipsePath(ids *IDSource, p1, p3 DPoint) (*Path, bool) {
	rect := curve.NewRectFromPoints(p1.Raw(), p3.Raw())
	ellipse := curve.NewEllipseFromRect(rect)
	els := slices.Collect(ellipse.PathElements(1.0))
	els = append(els, curve.ClosePath())
	path, err := FromBezPath(ids, els)
	if err != nil {
		logger().Warn("discarding unusable ellipse", "rect", rect, "err", err)
		return nil, false
	}
	return path, true
}
