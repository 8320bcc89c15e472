package contour

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/curve"
)

func segFixtures(ids *IDSource) (line, cubic Segment) {
	parent := ids.Next()
	line = LineSeg(
		OnCurvePoint(ids, parent, DPt(0, 0)),
		OnCurvePoint(ids, parent, DPt(10, 0)),
	)
	cubic = CubicSeg(
		OnCurvePoint(ids, parent, DPt(0, 0)),
		OffCurvePoint(ids, parent, DPt(0, 10)),
		OffCurvePoint(ids, parent, DPt(10, 10)),
		OnCurvePoint(ids, parent, DPt(10, 0)),
	)
	return line, cubic
}

func TestSegmentEnds(t *testing.T) {
	var ids IDSource
	line, cubic := segFixtures(&ids)

	diff(t, line.P0, line.Start())
	diff(t, line.P1, line.End())
	diff(t, cubic.P0, cubic.Start())
	diff(t, cubic.P3, cubic.End())

	if !line.IsLine() || cubic.IsLine() {
		t.Error("IsLine misreports segment kinds")
	}
}

func TestSegmentIDs(t *testing.T) {
	var ids IDSource
	line, cubic := segFixtures(&ids)

	diff(t, []EntityID{line.P0.ID, line.P1.ID}, line.IDs())
	diff(t, []EntityID{cubic.P0.ID, cubic.P1.ID, cubic.P2.ID, cubic.P3.ID}, cubic.IDs())

	mustPanic(t, "IDs", func() { Segment{}.IDs() })
	mustPanic(t, "Seg", func() { Segment{}.Seg() })
}

func TestSegmentEval(t *testing.T) {
	var ids IDSource
	line, cubic := segFixtures(&ids)

	diff(t, curve.Pt(5, 0), line.Eval(0.5))
	// The symmetric cubic peaks halfway across.
	diff(t, curve.Pt(5, 7.5), cubic.Eval(0.5))
}

func TestSegmentNearest(t *testing.T) {
	var ids IDSource
	line, _ := segFixtures(&ids)

	distSq, tParam := line.Nearest(DPt(5, 3), curve.DefaultAccuracy)
	diff(t, 9.0, distSq, cmpopts.EquateApprox(0, 1e-9))
	diff(t, 0.5, tParam, cmpopts.EquateApprox(0, 1e-9))

	diff(t, curve.Pt(5, 0), line.NearestPoint(DPt(5, 3)), cmpopts.EquateApprox(0, 1e-9))
}

func TestSegmentSubsegment(t *testing.T) {
	var ids IDSource
	line, cubic := segFixtures(&ids)
	parent := line.P0.ID.ParentID()

	sub := line.Subsegment(&ids, 0.2, 0.6)
	diff(t, LineKind, sub.Kind)
	diff(t, DPt(2, 0), sub.P0.Point)
	diff(t, DPt(6, 0), sub.P1.Point)

	half := cubic.Subsegment(&ids, 0, 0.5)
	diff(t, CubicKind, half.Kind)
	diff(t, DPt(0, 0), half.P0.Point)
	diff(t, DPt(0, 5), half.P1.Point)
	diff(t, DPt(3, 8), half.P2.Point)
	diff(t, DPt(5, 8), half.P3.Point)

	// Subsegments are made of fresh points in the same path.
	for _, pt := range []PathPoint{sub.P0, sub.P1, half.P0, half.P3} {
		if !pt.ID.IsChildOf(parent) {
			t.Errorf("point %v does not belong to %v", pt.ID, parent)
		}
		if pt.ID == line.P0.ID || pt.ID == cubic.P0.ID {
			t.Errorf("point %v reuses a source id", pt.ID)
		}
	}
}

func TestSegmentIntersectLine(t *testing.T) {
	var ids IDSource
	line, cubic := segFixtures(&ids)

	hits := line.IntersectLine(curve.Line{P0: curve.Pt(5, -5), P1: curve.Pt(5, 5)})
	if len(hits) != 1 {
		t.Fatalf("got %d intersections, want 1", len(hits))
	}
	diff(t, 0.5, hits[0].SegmentT, cmpopts.EquateApprox(0, 1e-9))
	diff(t, 0.5, hits[0].LineT, cmpopts.EquateApprox(0, 1e-9))

	// A horizontal line through the cubic's bulge crosses it twice.
	hits = cubic.IntersectLine(curve.Line{P0: curve.Pt(-5, 5), P1: curve.Pt(15, 5)})
	if len(hits) != 2 {
		t.Fatalf("got %d intersections, want 2", len(hits))
	}

	if got := line.IntersectLine(curve.Line{P0: curve.Pt(0, 5), P1: curve.Pt(10, 5)}); len(got) != 0 {
		t.Errorf("got %d intersections, want none", len(got))
	}
}
