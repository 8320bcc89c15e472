package contour

import (
	"fmt"
	"iter"

	"honnef.co/go/curve"
)

// SegmentKind distinguishes the two kinds of drawable segment.
type SegmentKind int

const (
	LineKind SegmentKind = iota + 1
	CubicKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "Line"
	case CubicKind:
		return "Cubic"
	default:
		return "InvalidSegmentKind"
	}
}

// A Segment is one drawable piece of a contour, bounded by two anchors.
// For a line only P0 and P1 are used. For a cubic, P0 and P3 are the
// anchors and P1 and P2 the handles.
type Segment struct {
	Kind           SegmentKind
	P0, P1, P2, P3 PathPoint
}

// LineSeg returns the line segment from p0 to p1.
func LineSeg(p0, p1 PathPoint) Segment {
	return Segment{Kind: LineKind, P0: p0, P1: p1}
}

// CubicSeg returns the cubic segment from p0 to p3 with handles p1
// and p2.
func CubicSeg(p0, p1, p2, p3 PathPoint) Segment {
	return Segment{Kind: CubicKind, P0: p0, P1: p1, P2: p2, P3: p3}
}

// Start returns the segment's first anchor.
func (s Segment) Start() PathPoint {
	return s.P0
}

// End returns the segment's last anchor.
func (s Segment) End() PathPoint {
	if s.Kind == LineKind {
		return s.P1
	}
	return s.P3
}

func (s Segment) StartID() EntityID { return s.Start().ID }
func (s Segment) EndID() EntityID   { return s.End().ID }

// IsLine reports whether the segment is a line.
func (s Segment) IsLine() bool {
	return s.Kind == LineKind
}

// Points returns the segment's points in order, anchors and handles.
func (s Segment) Points() iter.Seq[PathPoint] {
	return func(yield func(PathPoint) bool) {
		switch s.Kind {
		case LineKind:
			_ = yield(s.P0) && yield(s.P1)
		case CubicKind:
			_ = yield(s.P0) && yield(s.P1) && yield(s.P2) && yield(s.P3)
		}
	}
}

// IDs returns the ids of the segment's points in order.
func (s Segment) IDs() []EntityID {
	switch s.Kind {
	case LineKind:
		return []EntityID{s.P0.ID, s.P1.ID}
	case CubicKind:
		return []EntityID{s.P0.ID, s.P1.ID, s.P2.ID, s.P3.ID}
	default:
		panic(fmt.Sprintf("invalid Segment kind %v", s.Kind))
	}
}

// Seg converts the segment to its raw geometry.
func (s Segment) Seg() curve.PathSegment {
	switch s.Kind {
	case LineKind:
		return curve.Line{P0: s.P0.Point.Raw(), P1: s.P1.Point.Raw()}.Seg()
	case CubicKind:
		return curve.CubicBez{
			P0: s.P0.Point.Raw(),
			P1: s.P1.Point.Raw(),
			P2: s.P2.Point.Raw(),
			P3: s.P3.Point.Raw(),
		}.Seg()
	default:
		panic(fmt.Sprintf("invalid Segment kind %v", s.Kind))
	}
}

// Subsegment returns the part of the segment between the parameters
// start and end. The new points are fresh entities belonging to the
// same path as the receiver's points.
func (s Segment) Subsegment(ids *IDSource, start, end float64) Segment {
	sub := s.Seg().Subsegment(start, end)
	pathID := s.StartID().ParentID()
	switch sub.Kind {
	case curve.LineKind:
		return LineSeg(
			OnCurvePoint(ids, pathID, DPointFromRaw(sub.P0)),
			OnCurvePoint(ids, pathID, DPointFromRaw(sub.P1)),
		)
	case curve.CubicKind:
		return CubicSeg(
			OnCurvePoint(ids, pathID, DPointFromRaw(sub.P0)),
			OffCurvePoint(ids, pathID, DPointFromRaw(sub.P1)),
			OffCurvePoint(ids, pathID, DPointFromRaw(sub.P2)),
			OnCurvePoint(ids, pathID, DPointFromRaw(sub.P3)),
		)
	default:
		panic("quads are not supported")
	}
}

// Eval returns the position on the segment for a parameter, generally
// in [0, 1].
func (s Segment) Eval(t float64) curve.Point {
	return s.Seg().Eval(t)
}

// Nearest returns the squared distance from pt to the segment and the
// parameter of the nearest position, like [curve.PathSegment.Nearest].
func (s Segment) Nearest(pt DPoint, accuracy float64) (distSq, t float64) {
	return s.Seg().Nearest(pt.Raw(), accuracy)
}

// NearestPoint returns the position on the segment nearest to pt. The
// result is a raw point because it rarely falls on the design grid.
func (s Segment) NearestPoint(pt DPoint) curve.Point {
	_, t := s.Nearest(pt, curve.DefaultAccuracy)
	return s.Eval(t)
}

// IntersectLine returns the intersections of the segment with a line.
func (s Segment) IntersectLine(line curve.Line) []curve.LineIntersection {
	hits, n := s.Seg().IntersectLine(line)
	return hits[:n]
}

func (s Segment) String() string {
	switch s.Kind {
	case LineKind:
		return fmt.Sprintf("Line(%v, %v)", s.P0, s.P1)
	case CubicKind:
		return fmt.Sprintf("Cubic(%v, %v, %v, %v)", s.P0, s.P1, s.P2, s.P3)
	default:
		return "InvalidSegment"
	}
}
