package contour

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// A DPoint is a point in design space, the font's own y-up coordinate
// system. Its coordinates are always finite integers; constructors
// enforce this, so two points that render the same compare the same.
type DPoint struct {
	X, Y float64
}

// A DVec2 is a displacement in design space, with the same integrality
// rule as [DPoint].
type DVec2 struct {
	X, Y float64
}

func isIntegral(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

// DPt returns the design-space point (x, y). It panics if either
// coordinate is not a finite integer; use [DPointFromRaw] to round
// the result of continuous math.
func DPt(x, y float64) DPoint {
	if !isIntegral(x) || !isIntegral(y) {
		panic(fmt.Sprintf("invalid design point (%v, %v)", x, y))
	}
	return DPoint{x, y}
}

// DVec returns the design-space vector (x, y), panicking like [DPt].
func DVec(x, y float64) DVec2 {
	if !isIntegral(x) || !isIntegral(y) {
		panic(fmt.Sprintf("invalid design vector (%v, %v)", x, y))
	}
	return DVec2{x, y}
}

// DPointFromRaw rounds a point to the design grid. Use it to convert
// back after doing vector math on raw points.
func DPointFromRaw(pt curve.Point) DPoint {
	return DPt(math.Round(pt.X), math.Round(pt.Y))
}

// DVec2FromRaw rounds a vector to the design grid.
func DVec2FromRaw(v curve.Vec2) DVec2 {
	return DVec(math.Round(v.X), math.Round(v.Y))
}

// Raw converts the point to a [curve.Point] on the same coordinates,
// without mapping to screen space.
func (p DPoint) Raw() curve.Point {
	return curve.Pt(p.X, p.Y)
}

// Raw converts the vector to a [curve.Vec2].
func (v DVec2) Raw() curve.Vec2 {
	return curve.Vec(v.X, v.Y)
}

// Vec2 converts the point to the vector from the origin.
func (p DPoint) Vec2() DVec2 {
	return DVec2{p.X, p.Y}
}

// Translate returns the point moved by v.
func (p DPoint) Translate(v DVec2) DPoint {
	return DPoint{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from other to p.
func (p DPoint) Sub(other DPoint) DVec2 {
	return DVec2{p.X - other.X, p.Y - other.Y}
}

// Lerp linearly interpolates between two design points, rounding the
// result to the design grid.
func (p DPoint) Lerp(other DPoint, t float64) DPoint {
	return DPointFromRaw(p.Raw().Lerp(other.Raw(), t))
}

// AxisLockedTo locks whichever of p's axes differs least from other to
// other's value, so that p ends up horizontally or vertically aligned
// with other, whichever it is closer to.
func (p DPoint) AxisLockedTo(other DPoint) DPoint {
	d := other.Sub(p)
	if math.Abs(d.X) > math.Abs(d.Y) {
		return DPoint{p.X, other.Y}
	}
	return DPoint{other.X, p.Y}
}

// Add returns the sum of two vectors.
func (v DVec2) Add(o DVec2) DVec2 {
	return DVec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v DVec2) Sub(o DVec2) DVec2 {
	return DVec2{v.X - o.X, v.Y - o.Y}
}

// Negate returns the vector pointing the opposite way.
func (v DVec2) Negate() DVec2 {
	return DVec2{-v.X, -v.Y}
}

// Hypot returns the vector's length.
func (v DVec2) Hypot() float64 {
	return v.Raw().Hypot()
}

// AxisLocked snaps the vector to its dominant axis.
func (v DVec2) AxisLocked() DVec2 {
	if math.Abs(v.X) > math.Abs(v.Y) {
		return DVec2{v.X, 0}
	}
	return DVec2{0, v.Y}
}

func (p DPoint) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (v DVec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
