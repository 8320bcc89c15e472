package contour

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/curve"
)

// GlyphContours loads a glyph's outline from a font and returns one
// path per contour, ready for editing. Pass the font's units per em as
// the ppem to get unscaled design units. Fonts with quadratic outlines
// are not supported; loading a glyph from one returns an error
// wrapping [ErrUnsupportedSegment].
func GlyphContours(ids *IDSource, f *sfnt.Font, glyph sfnt.GlyphIndex, ppem fixed.Int26_6) ([]*Path, error) {
	var buf sfnt.Buffer
	segs, err := f.LoadGlyph(&buf, glyph, ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("contour: loading glyph %d: %w", glyph, err)
	}

	// LoadGlyph yields y-down coordinates; design space is y-up.
	pt := func(p fixed.Point26_6) curve.Point {
		return curve.Pt(float64(p.X)/64, -float64(p.Y)/64)
	}

	var paths []*Path
	var els []curve.PathElement
	flush := func() error {
		if len(els) == 0 {
			return nil
		}
		// Glyph contours are implicitly closed.
		els = append(els, curve.ClosePath())
		path, err := FromBezPath(ids, els)
		if err != nil {
			return err
		}
		paths = append(paths, path)
		els = els[:0]
		return nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if err := flush(); err != nil {
				return nil, err
			}
			els = append(els, curve.MoveTo(pt(seg.Args[0])))
		case sfnt.SegmentOpLineTo:
			els = append(els, curve.LineTo(pt(seg.Args[0])))
		case sfnt.SegmentOpQuadTo:
			return nil, fmt.Errorf("contour: glyph %d: %w", glyph, ErrUnsupportedSegment)
		case sfnt.SegmentOpCubeTo:
			els = append(els, curve.CubicTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])))
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return paths, nil
}
