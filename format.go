package contour

import (
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

// Errors reported when constructing paths from external data.
var (
	// ErrEmptyContour is returned for a contour with no points.
	ErrEmptyContour = errors.New("contour: empty point list")
	// ErrMissingMoveTo is returned for outline data that doesn't begin
	// with a move.
	ErrMissingMoveTo = errors.New("contour: expected initial moveto")
	// ErrUnsupportedSegment is returned for outline data containing
	// quadratic segments, which paths don't represent.
	ErrUnsupportedSegment = errors.New("contour: unsupported segment type")
)

// RecordKind is the on-disk type of a contour point.
type RecordKind uint8

const (
	// MoveRecord begins an open contour.
	MoveRecord RecordKind = iota + 1
	// LineRecord is an on-curve point ending a line.
	LineRecord
	// CurveRecord is an on-curve point ending a cubic.
	CurveRecord
	// OffCurveRecord is a cubic control point.
	OffCurveRecord
	// QCurveRecord is an on-curve point ending a quadratic. Contours
	// holding one are rejected.
	QCurveRecord
)

func (k RecordKind) String() string {
	switch k {
	case MoveRecord:
		return "move"
	case LineRecord:
		return "line"
	case CurveRecord:
		return "curve"
	case OffCurveRecord:
		return "offcurve"
	case QCurveRecord:
		return "qcurve"
	default:
		return "invalid"
	}
}

// A PointRecord is one point of a contour in interchange form, the
// shape contours take in font source files. A contour is a flat list
// of records; a leading [MoveRecord] marks the contour as open, and
// its absence marks it as closed and cyclic, with no distinguished
// start.
type PointRecord struct {
	X, Y   float64
	Kind   RecordKind
	Smooth bool
}

// FromRecords builds a path from a contour in interchange form.
// Coordinates are rounded to the design grid. It returns
// [ErrEmptyContour] for an empty record list and
// [ErrUnsupportedSegment] for contours with quadratic segments.
func FromRecords(ids *IDSource, records []PointRecord) (*Path, error) {
	if len(records) == 0 {
		return nil, ErrEmptyContour
	}
	closed := records[0].Kind != MoveRecord

	id := ids.Next()
	points := make([]PathPoint, 0, len(records))
	for _, rec := range records {
		pt := DPointFromRaw(curve.Pt(rec.X, rec.Y))
		switch rec.Kind {
		case MoveRecord, LineRecord, CurveRecord:
			if rec.Smooth {
				points = append(points, SmoothPoint(ids, id, pt))
			} else {
				points = append(points, OnCurvePoint(ids, id, pt))
			}
		case OffCurveRecord:
			points = append(points, OffCurvePoint(ids, id, pt))
		case QCurveRecord:
			return nil, ErrUnsupportedSegment
		default:
			return nil, fmt.Errorf("contour: invalid record kind %d", rec.Kind)
		}
	}

	// The stored sequence of a closed path ends on its logical first
	// point, while records start with it.
	if closed {
		rotateLeft(points, 1)
	}
	return FromRawParts(ids, id, points, nil, closed), nil
}

// Records converts the path to interchange form, re-inferring each
// point's record kind from its neighbors.
func (p *Path) Records() []PointRecord {
	// Deleting a path's last point leaves it empty.
	if len(p.points) == 0 {
		return nil
	}
	records := make([]PointRecord, 0, len(p.points))
	prevOffCurve := !p.points[len(p.points)-1].IsOnCurve()
	for _, pt := range p.points {
		rec := PointRecord{X: pt.Point.X, Y: pt.Point.Y}
		switch {
		case pt.IsOnCurve() && len(records) == 0 && !p.closed:
			rec.Kind = MoveRecord
			rec.Smooth = pt.IsSmooth()
		case !pt.IsOnCurve():
			rec.Kind = OffCurveRecord
		case prevOffCurve:
			rec.Kind = CurveRecord
			rec.Smooth = pt.IsSmooth()
		default:
			rec.Kind = LineRecord
			rec.Smooth = pt.IsSmooth()
		}
		records = append(records, rec)
		prevOffCurve = !pt.IsOnCurve()
	}
	if p.closed {
		rotateRight(records, 1)
	}
	return records
}
