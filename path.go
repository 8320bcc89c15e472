package contour

import (
	"fmt"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// LineTo appends a line segment ending in a new anchor and returns the
// anchor's id. The path must be open. This is what a pen click does.
func (p *Path) LineTo(pt DPoint, smooth bool) EntityID {
	id := p.PushOnCurve(pt)
	if smooth {
		p.points[len(p.points)-1].Kind = OnCurveSmoothKind
	}
	return id
}

// SplitSegmentAtPoint subdivides one of the path's segments at
// parameter t, inserting the points of the two halves in its place.
// The joint of a subdivided cubic is marked smooth; the joint of a
// subdivided line is a corner.
func (p *Path) SplitSegmentAtPoint(seg Segment, t float64) {
	var existing, insert int
	switch seg.Kind {
	case LineKind:
		existing, insert = 0, 1
	case CubicKind:
		existing, insert = 2, 5
	default:
		panic(fmt.Sprintf("invalid Segment kind %v", seg.Kind))
	}

	preSeg := seg.Subsegment(p.ids, 0, t)
	if preSeg.Kind == CubicKind {
		preSeg.P3.Kind = OnCurveSmoothKind
	}
	postSeg := seg.Subsegment(p.ids, t, 1)

	startIdx, ok := p.idxForPoint(seg.StartID())
	if !ok {
		panic(fmt.Sprintf("segment start %v is not in path %v", seg.StartID(), p.id))
	}
	insertIdx := p.nextIdx(startIdx)

	var pts []PathPoint
	for pt := range preSeg.Points() {
		pts = append(pts, pt)
	}
	pts = pts[1:]
	skippedFirst := false
	for pt := range postSeg.Points() {
		if !skippedFirst {
			skippedFirst = true
			continue
		}
		pts = append(pts, pt)
	}
	pts = pts[:insert]
	for i := range pts {
		pts[i].Reparent(p.id)
	}

	p.points = slices.Replace(p.points, insertIdx, insertIdx+existing, pts...)
	p.markStale()
}

// UpgradeLineSeg converts a line segment into the equivalent cubic by
// inserting handles at one and two thirds of the way along it. When
// useTrailing is set and a trailing handle exists, it supplies the
// first handle's position instead; this is how the pen turns a just
// drawn line into a curve mid-drag.
func (p *Path) UpgradeLineSeg(seg Segment, useTrailing bool) {
	c, ok := p.CursorAt(seg.StartID())
	if !ok {
		return
	}
	p0 := *c.Point()
	next := c.Next()
	if next == nil {
		return
	}
	p3 := *next

	p1 := p0.Point.Lerp(p3.Point, 1.0/3.0)
	if useTrailing {
		if t, ok := p.TakeTrailing(); ok {
			p1 = t
		}
	}
	p2 := p0.Point.Lerp(p3.Point, 2.0/3.0)

	insertIdx := p.nextIdx(c.Index())
	handles := []PathPoint{
		OffCurvePoint(p.ids, p.id, p1),
		OffCurvePoint(p.ids, p.id, p2),
	}
	p.points = slices.Insert(p.points, insertIdx, handles...)
	p.markStale()
}

// UpdateTrailing records a new trailing handle position and, when the
// point before id is an off-curve handle, mirrors the trailing
// position onto it through the anchor.
func (p *Path) UpdateTrailing(id EntityID, handle DPoint) {
	p.SetTrailing(handle)
	if len(p.points) <= 1 {
		return
	}
	c, ok := p.CursorAt(id)
	if !ok {
		return
	}
	prev := c.Prev()
	if prev == nil || !prev.IsOffCurve() {
		panic(fmt.Sprintf("UpdateTrailing: point before %v is not a handle", id))
	}
	onCurve := c.Point().Point
	prev.Point = onCurve.Translate(handle.Sub(onCurve).Negate())
}

// LastSegmentIsCurve reports whether the final drawn segment of the
// path is a cubic.
func (p *Path) LastSegmentIsCurve() bool {
	n := len(p.points)
	return n > 2 && !p.points[n-2].IsOnCurve()
}

// ShouldDrawTrailing reports whether an editor should render the
// trailing handle: always for a path with a single point, otherwise
// only while the path ends in a curve.
func (p *Path) ShouldDrawTrailing() bool {
	return len(p.points) == 1 || p.LastSegmentIsCurve()
}

// AlignPoint sets one axis of the point with the given id, for
// aligning several points along an edge.
func (p *Path) AlignPoint(id EntityID, val float64, setX bool) {
	idx, ok := p.idxForPoint(id)
	if !ok {
		return
	}
	if setX {
		p.points[idx].Point.X = val
	} else {
		p.points[idx].Point.Y = val
	}
}

// TogglePointKind flips the kind of the point with the given id:
// smooth anchors become corners and auto handles become manual, and
// vice versa.
func (p *Path) TogglePointKind(id EntityID) {
	if idx, ok := p.idxForPoint(id); ok {
		p.points[idx].Toggle()
	}
}

// ToggleOnCurvePointKind toggles an anchor between smooth and corner.
// Unlike [Path.TogglePointKind] it refuses to mark an anchor smooth
// when no handle touches it.
func (p *Path) ToggleOnCurvePointKind(id EntityID) {
	c, ok := p.CursorAt(id)
	if !ok {
		return
	}
	var hasCtrl bool
	if prev := c.Prev(); prev != nil {
		hasCtrl = prev.IsOffCurve()
	} else if next := c.Next(); next != nil {
		hasCtrl = next.IsOffCurve()
	}
	pt := c.Point()
	if pt.IsSmooth() || pt.IsOnCurve() && hasCtrl {
		pt.Toggle()
	}
}

// NudgePoints translates the named points, carrying adjacent handles
// along as described by [Path.TransformPoints].
func (p *Path) NudgePoints(ids []EntityID, v DVec2) {
	p.TransformPoints(ids, curve.Translate(v.Raw()), DPoint{})
}

// NudgeAllPoints translates every point in the path.
func (p *Path) NudgeAllPoints(v DVec2) {
	p.TransformAll(curve.Translate(v.Raw()), DPoint{})
}

// ScalePoints scales the named points about a fixed anchor. The scale
// is a ratio per axis.
func (p *Path) ScalePoints(ids []EntityID, scale curve.Vec2, anchor DPoint) {
	p.TransformPoints(ids, curve.Scale(scale.X, scale.Y), anchor)
}

// markTangentHandles marks anchors that sit between two handles as
// smooth when the handles are within about a degree of collinear.
func markTangentHandles(points []PathPoint) {
	n := len(points)
	for idx := range points {
		pt := points[idx]
		if !pt.IsOnCurve() {
			continue
		}
		prev := points[(idx+n-1)%n]
		next := points[(idx+1)%n]
		if prev.IsOnCurve() || next.IsOnCurve() {
			continue
		}
		prevAngle := prev.Point.Raw().Sub(pt.Point.Raw()).Angle()
		nextAngle := pt.Point.Raw().Sub(next.Point.Raw()).Angle()
		if math.Abs(prevAngle-nextAngle) <= 0.018 {
			points[idx].Kind = OnCurveSmoothKind
		}
	}
}

// AppendToBezier appends the path's geometry to a raw Bézier path.
func (p *Path) AppendToBezier(bez *curve.BezPath) {
	bez.MoveTo(p.StartPoint().Point.Raw())
	for seg := range p.Segments() {
		switch seg.Kind {
		case LineKind:
			bez.LineTo(seg.P1.Point.Raw())
		case CubicKind:
			bez.CubicTo(seg.P1.Point.Raw(), seg.P2.Point.Raw(), seg.P3.Point.Raw())
		}
	}
	if p.closed {
		bez.ClosePath()
	}
}

// Bezier returns the path's geometry as a raw Bézier path.
func (p *Path) Bezier() curve.BezPath {
	var bez curve.BezPath
	p.AppendToBezier(&bez)
	return bez
}

// ScreenDist returns the distance from a screen point to the nearest
// position on the path, in screen units.
func (p *Path) ScreenDist(v ViewPort, pt curve.Point) float64 {
	screenBez := p.Bezier().Transform(v.Affine())
	best := math.MaxFloat64
	for seg := range screenBez.Segments() {
		distSq, _ := seg.Nearest(pt, 0.1)
		best = math.Min(best, distSq)
	}
	return math.Sqrt(best)
}

// FromBezPath builds a path from raw Bézier elements. Only the first
// subpath is considered. The path must begin with a MoveTo and must
// not contain quadratic segments.
func FromBezPath(ids *IDSource, els []curve.PathElement) (*Path, error) {
	if len(els) == 0 || els[0].Kind != curve.MoveToKind {
		return nil, ErrMissingMoveTo
	}
	pathID := ids.Next()
	points := []PathPoint{OnCurvePoint(ids, pathID, DPointFromRaw(els[0].P0))}
	explicitClose := false

loop:
	for _, el := range els[1:] {
		switch el.Kind {
		case curve.MoveToKind:
			// a second subpath starts; ignore it
			break loop
		case curve.LineToKind:
			points = append(points, OnCurvePoint(ids, pathID, DPointFromRaw(el.P0)))
		case curve.CubicToKind:
			points = append(points,
				OffCurvePoint(ids, pathID, DPointFromRaw(el.P0)),
				OffCurvePoint(ids, pathID, DPointFromRaw(el.P1)),
				OnCurvePoint(ids, pathID, DPointFromRaw(el.P2)),
			)
		case curve.QuadToKind:
			return nil, ErrUnsupportedSegment
		case curve.ClosePathKind:
			explicitClose = true
			break loop
		}
	}

	closed := explicitClose
	if len(points) > 1 && points[0].Point == points[len(points)-1].Point {
		points = points[:len(points)-1]
		closed = true
	}

	markTangentHandles(points)

	if closed {
		rotateLeft(points, 1)
	}
	return FromRawParts(ids, pathID, points, nil, closed), nil
}
