package contour

import (
	"fmt"

	"honnef.co/go/curve"
)

// PointKind describes the role of a point within a contour.
type PointKind int

const (
	// OnCurveKind is a corner anchor. Its adjacent handles move
	// independently.
	OnCurveKind PointKind = iota + 1
	// OnCurveSmoothKind is a smooth anchor. Moving one adjacent handle
	// rotates the opposite handle to keep the pair collinear.
	OnCurveSmoothKind
	// OffCurveKind is a manually placed control handle.
	OffCurveKind
	// OffCurveAutoKind is a control handle positioned by the editor
	// rather than the user.
	OffCurveAutoKind
)

// IsOnCurve reports whether the kind is one of the two anchor kinds.
func (k PointKind) IsOnCurve() bool {
	return k == OnCurveKind || k == OnCurveSmoothKind
}

// IsOffCurve reports whether the kind is one of the two handle kinds.
func (k PointKind) IsOffCurve() bool {
	return k == OffCurveKind || k == OffCurveAutoKind
}

// Toggle flips smooth anchors to corners and auto handles to manual
// ones, and vice versa.
func (k PointKind) Toggle() PointKind {
	switch k {
	case OnCurveKind:
		return OnCurveSmoothKind
	case OnCurveSmoothKind:
		return OnCurveKind
	case OffCurveKind:
		return OffCurveAutoKind
	case OffCurveAutoKind:
		return OffCurveKind
	default:
		return k
	}
}

func (k PointKind) String() string {
	switch k {
	case OnCurveKind:
		return "OnCurve"
	case OnCurveSmoothKind:
		return "OnCurveSmooth"
	case OffCurveKind:
		return "OffCurve"
	case OffCurveAutoKind:
		return "OffCurveAuto"
	default:
		return "InvalidPointKind"
	}
}

// A PathPoint is one point in a contour. Anchors sit on the outline;
// handles shape the cubic segments between them.
type PathPoint struct {
	ID    EntityID
	Point DPoint
	Kind  PointKind
}

// OnCurvePoint returns a new corner anchor belonging to path.
func OnCurvePoint(ids *IDSource, path EntityID, p DPoint) PathPoint {
	return PathPoint{ID: ids.NextChild(path), Point: p, Kind: OnCurveKind}
}

// SmoothPoint returns a new smooth anchor belonging to path.
func SmoothPoint(ids *IDSource, path EntityID, p DPoint) PathPoint {
	return PathPoint{ID: ids.NextChild(path), Point: p, Kind: OnCurveSmoothKind}
}

// OffCurvePoint returns a new manual handle belonging to path.
func OffCurvePoint(ids *IDSource, path EntityID, p DPoint) PathPoint {
	return PathPoint{ID: ids.NextChild(path), Point: p, Kind: OffCurveKind}
}

// AutoPoint returns a new auto handle belonging to path.
func AutoPoint(ids *IDSource, path EntityID, p DPoint) PathPoint {
	return PathPoint{ID: ids.NextChild(path), Point: p, Kind: OffCurveAutoKind}
}

func (p PathPoint) IsOnCurve() bool  { return p.Kind.IsOnCurve() }
func (p PathPoint) IsOffCurve() bool { return p.Kind.IsOffCurve() }
func (p PathPoint) IsSmooth() bool   { return p.Kind == OnCurveSmoothKind }
func (p PathPoint) IsAuto() bool     { return p.Kind == OffCurveAutoKind }

// Toggle flips the point between smooth and corner, or between auto
// and manual.
func (p *PathPoint) Toggle() {
	p.Kind = p.Kind.Toggle()
}

// Reparent moves the point to a new parent path, keeping its local id.
func (p *PathPoint) Reparent(parent EntityID) {
	p.ID.Parent = parent.Local
}

// Transform applies a transform to the point's position, rounding back
// to the design grid. The anchor is treated as the origin while the
// transform is applied, which is how scaling about a fixed point works.
func (p *PathPoint) Transform(aff curve.Affine, anchor DVec2) {
	current := p.Point.Raw().Translate(anchor.Raw().Negate())
	next := current.Transform(aff).Translate(anchor.Raw())
	p.Point = DPointFromRaw(next)
}

// ToScreen converts the point's position to screen space.
func (p PathPoint) ToScreen(v ViewPort) curve.Point {
	return v.ToScreen(p.Point)
}

// ScreenDist returns the distance in screen space between the point
// and pt, a screen-space position.
func (p PathPoint) ScreenDist(v ViewPort, pt curve.Point) float64 {
	return p.ToScreen(v).Distance(pt)
}

func (p PathPoint) String() string {
	return fmt.Sprintf("%v: %v %v", p.ID, p.Point, p.Kind)
}
