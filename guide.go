package contour

import (
	"fmt"

	"honnef.co/go/curve"
)

// GuideKind describes the orientation of a guide.
type GuideKind uint8

const (
	HorizGuide GuideKind = iota + 1
	VerticalGuide
	AngleGuide
)

func (k GuideKind) String() string {
	switch k {
	case HorizGuide:
		return "horiz"
	case VerticalGuide:
		return "vertical"
	case AngleGuide:
		return "angle"
	default:
		return fmt.Sprintf("GuideKind(%d)", k)
	}
}

// A Guide is a guideline: an infinite horizontal or vertical line
// through P1, or an angled line through P1 and P2. Guides live in the
// reserved guide id namespace, outside any path.
type Guide struct {
	ID   EntityID
	Kind GuideKind
	P1   DPoint
	// P2 is only meaningful for angle guides.
	P2 DPoint
}

// NewHorizGuide returns a horizontal guide through p1.
func NewHorizGuide(ids *IDSource, p1 DPoint) Guide {
	return Guide{ID: ids.NextGuide(), Kind: HorizGuide, P1: p1}
}

// NewVerticalGuide returns a vertical guide through p1.
func NewVerticalGuide(ids *IDSource, p1 DPoint) Guide {
	return Guide{ID: ids.NextGuide(), Kind: VerticalGuide, P1: p1}
}

// NewAngleGuide returns a guide along the line through p1 and p2.
func NewAngleGuide(ids *IDSource, p1, p2 DPoint) Guide {
	return Guide{ID: ids.NextGuide(), Kind: AngleGuide, P1: p1, P2: p2}
}

// ToggleVerticalHoriz flips a horizontal guide to a vertical one and
// vice versa, moving it to pass through newPoint. Angle guides are
// unaffected.
func (g *Guide) ToggleVerticalHoriz(newPoint DPoint) {
	switch g.Kind {
	case HorizGuide:
		g.Kind = VerticalGuide
		g.P1 = newPoint
	case VerticalGuide:
		g.Kind = HorizGuide
		g.P1 = newPoint
	}
}

// ScreenDist returns the distance from a screen point to the guide, in
// screen units.
func (g Guide) ScreenDist(v ViewPort, pt curve.Point) float64 {
	return g.NearestScreenPoint(v, pt).Distance(pt)
}

// NearestScreenPoint returns the point on the guide nearest to a
// screen point, in screen space.
func (g Guide) NearestScreenPoint(v ViewPort, pt curve.Point) curve.Point {
	switch g.Kind {
	case HorizGuide:
		y := v.ToScreen(g.P1).Y
		return curve.Pt(pt.X, y)
	case VerticalGuide:
		x := v.ToScreen(g.P1).X
		return curve.Pt(x, pt.Y)
	case AngleGuide:
		// TODO: treat the guide as a true infinite line instead of
		// clamping it to an arbitrary length
		p1 := v.ToScreen(g.P1)
		p2 := v.ToScreen(g.P2)
		vec := p2.Sub(p1).Normalize()
		line := curve.Line{
			P0: p2.Translate(vec.Mul(-5000)),
			P1: p2.Translate(vec.Mul(5000)),
		}
		_, t := line.Nearest(pt, 0.1)
		return line.Eval(t)
	default:
		panic(fmt.Sprintf("invalid GuideKind %v", g.Kind))
	}
}

// Nudge translates the guide. Horizontal and vertical guides only move
// along their own axis.
func (g *Guide) Nudge(v DVec2) {
	switch g.Kind {
	case HorizGuide:
		g.P1.Y += v.Y
	case VerticalGuide:
		g.P1.X += v.X
	case AngleGuide:
		g.P1 = g.P1.Translate(v)
		g.P2 = g.P2.Translate(v)
	}
}
