package contour

import (
	"honnef.co/go/curve"
)

// A ViewPort maps between design space and screen space. Screen space
// has its origin at the top left of the window and, when FlipY is set,
// grows downward while design space grows upward.
type ViewPort struct {
	// Offset is the position of the design-space origin on screen, in
	// pre-zoom units.
	Offset curve.Vec2
	Zoom   float64
	FlipY  bool
}

// DefaultViewPort shows design space at scale 1 with the conventional
// flipped y axis.
var DefaultViewPort = ViewPort{Zoom: 1, FlipY: true}

// Affine returns the design-to-screen transform.
func (v ViewPort) Affine() curve.Affine {
	yScale := v.Zoom
	if v.FlipY {
		yScale = -v.Zoom
	}
	offset := v.Offset.Mul(v.Zoom)
	return curve.NewAffine([6]float64{v.Zoom, 0, 0, yScale, offset.X, offset.Y})
}

// InverseAffine returns the screen-to-design transform.
func (v ViewPort) InverseAffine() curve.Affine {
	return v.Affine().Invert()
}

// FromScreen converts a screen point to the nearest design point.
func (v ViewPort) FromScreen(pt curve.Point) DPoint {
	return DPointFromRaw(pt.Transform(v.InverseAffine()))
}

// ToScreen converts a design point to screen space.
func (v ViewPort) ToScreen(p DPoint) curve.Point {
	return p.Raw().Transform(v.Affine())
}

// RectToScreen converts a design-space rectangle to screen space.
// Rectangles are handled separately because an affine map does not
// preserve which corner is the origin.
func (v ViewPort) RectToScreen(r curve.Rect) curve.Rect {
	p0 := v.ToScreen(DPointFromRaw(curve.Pt(r.X0, r.Y0)))
	p1 := v.ToScreen(DPointFromRaw(curve.Pt(r.X1, r.Y1)))
	return curve.NewRectFromPoints(p0, p1)
}
