package contour

import (
	"slices"
	"testing"

	"honnef.co/go/curve"
)

func TestSplitLineSegment(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	p.PushOnCurve(DPt(10, 0))

	seg := slices.Collect(p.Segments())[0]
	p.SplitSegmentAtPoint(seg, 0.4)

	diff(t, []DPoint{{0, 0}, {4, 0}, {10, 0}}, logicalPositions(p))
	// The joint of a subdivided line is a corner, not a smooth point.
	diff(t, []PointKind{OnCurveKind, OnCurveKind, OnCurveKind}, logicalKinds(p))
	checkInvariants(t, p)
}

func TestSplitCubicSegment(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 15, OffCurveRecord, false},
		{10, 15, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
	})

	seg := slices.Collect(p.Segments())[0]
	p.SplitSegmentAtPoint(seg, 0.5)

	diff(t, []DPoint{
		{0, 0}, {0, 8}, {3, 11}, {5, 11}, {8, 11}, {10, 8}, {10, 0},
	}, logicalPositions(p))
	diff(t, []PointKind{
		OnCurveKind, OffCurveKind, OffCurveKind,
		OnCurveSmoothKind,
		OffCurveKind, OffCurveKind, OnCurveKind,
	}, logicalKinds(p))
	checkInvariants(t, p)
}

func TestSplitClosedWrapSegment(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{10, 10, LineRecord, false},
		{0, 0, LineRecord, false},
		{20, 0, LineRecord, false},
	})

	// The wrapping segment runs from (20, 0) back to (10, 10).
	segs := slices.Collect(p.Segments())
	wrap := segs[len(segs)-1]
	diff(t, DPt(20, 0), wrap.P0.Point)
	p.SplitSegmentAtPoint(wrap, 0.5)

	diff(t, []DPoint{{10, 10}, {0, 0}, {20, 0}, {15, 5}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestUpgradeLineSeg(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	p.PushOnCurve(DPt(10, 0))

	seg := slices.Collect(p.Segments())[0]
	p.UpgradeLineSeg(seg, false)

	diff(t, []DPoint{{0, 0}, {3, 0}, {7, 0}, {10, 0}}, logicalPositions(p))
	diff(t, []PointKind{OnCurveKind, OffCurveKind, OffCurveKind, OnCurveKind}, logicalKinds(p))
	checkInvariants(t, p)
}

func TestUpgradeLineSegTrailing(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	p.PushOnCurve(DPt(10, 0))
	p.SetTrailing(DPt(2, 5))

	seg := slices.Collect(p.Segments())[0]
	p.UpgradeLineSeg(seg, true)

	// The trailing handle supplies the outgoing control point and is
	// consumed by the upgrade.
	diff(t, []DPoint{{0, 0}, {2, 5}, {7, 0}, {10, 0}}, logicalPositions(p))
	if _, ok := p.Trailing(); ok {
		t.Error("upgrade did not consume the trailing point")
	}
}

func TestUpdateTrailingMirrorsHandle(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	end := p.PushOnCurve(DPt(10, 0))
	seg := slices.Collect(p.Segments())[0]
	p.UpgradeLineSeg(seg, false)

	p.UpdateTrailing(end, DPt(13, 4))

	tr, ok := p.Trailing()
	if !ok {
		t.Fatal("no trailing point set")
	}
	diff(t, DPt(13, 4), tr)
	// The handle before the anchor mirrors the trailing position.
	prev, _ := p.PrevPoint(end)
	diff(t, DPt(7, -4), prev.Point)
}

// tangentFixture builds an open path with a smooth anchor at (10, 0)
// whose incoming handle sits at (6, -3) and outgoing handle at (14, 3).
func tangentFixture(t *testing.T, ids *IDSource) (p *Path, h2, anchor, h1 EntityID) {
	t.Helper()
	p = mustFromRecords(t, ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{1, 2, OffCurveRecord, false},
		{6, -3, OffCurveRecord, false},
		{10, 0, CurveRecord, true},
		{14, 3, OffCurveRecord, false},
		{19, 2, OffCurveRecord, false},
		{20, 0, CurveRecord, false},
	})
	pts := p.Points()
	return p, pts[2].ID, pts[3].ID, pts[4].ID
}

func TestUpdateHandleMirror(t *testing.T) {
	var ids IDSource
	p, h2, anchor, h1 := tangentFixture(t, &ids)

	anchorPt, _ := p.PointForID(anchor)
	before, _ := p.PointForID(h2)
	wantLen := before.Point.Sub(anchorPt.Point).Hypot()

	p.UpdateHandle(h1, DPt(13, 4), false)

	got, _ := p.PointForID(h1)
	diff(t, DPt(13, 4), got.Point)

	// The partner handle is re-angled onto the opposite ray but keeps
	// its distance from the anchor.
	partner, _ := p.PointForID(h2)
	diff(t, DPt(7, -4), partner.Point)
	diff(t, wantLen, partner.Point.Sub(anchorPt.Point).Hypot())
	checkInvariants(t, p)
}

func TestUpdateHandleDegenerate(t *testing.T) {
	var ids IDSource
	p, h2, _, h1 := tangentFixture(t, &ids)

	// Dropping the handle onto its anchor produces a zero-length
	// direction; the partner stays put.
	p.UpdateHandle(h1, DPt(10, 0), false)

	partner, _ := p.PointForID(h2)
	diff(t, DPt(6, -3), partner.Point)
}

func TestUpdateHandleAxisLock(t *testing.T) {
	var ids IDSource
	p, h2, _, h1 := tangentFixture(t, &ids)

	p.UpdateHandle(h1, DPt(12, 9), true)

	got, _ := p.PointForID(h1)
	diff(t, DPt(10, 9), got.Point)
	partner, _ := p.PointForID(h2)
	diff(t, DPt(10, -5), partner.Point)
}

func TestUpdateHandleCornerAnchor(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{1, 2, OffCurveRecord, false},
		{6, -3, OffCurveRecord, false},
		{10, 0, CurveRecord, false}, // corner, not smooth
		{14, 3, OffCurveRecord, false},
		{19, 2, OffCurveRecord, false},
		{20, 0, CurveRecord, false},
	})
	h2 := p.Points()[2].ID
	h1 := p.Points()[4].ID

	// A corner anchor does not propagate handle movement.
	p.UpdateHandle(h1, DPt(13, 4), false)
	partner, _ := p.PointForID(h2)
	diff(t, DPt(6, -3), partner.Point)
}

func TestNudgeAnchorCarriesHandles(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 5, OffCurveRecord, false},
		{10, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
		{20, 0, LineRecord, false},
	})
	anchor := p.Points()[3].ID

	p.NudgePoints([]EntityID{anchor}, DVec(5, 0))

	// The adjacent handle travels with its anchor; the on-curve
	// neighbor does not.
	diff(t, []DPoint{{0, 0}, {0, 5}, {15, 5}, {15, 0}, {20, 0}}, logicalPositions(p))
}

func TestNudgeHandleAdjustsPartner(t *testing.T) {
	var ids IDSource
	p, h2, _, h1 := tangentFixture(t, &ids)

	// (14, 3) + (2, 5) puts the moved handle at (16, 8); the direction
	// from the anchor is (6, 8), length 10, so the partner ends up at
	// (10, 0) - (3, 4) = (7, -4).
	p.NudgePoints([]EntityID{h1}, DVec(2, 5))

	got, _ := p.PointForID(h1)
	diff(t, DPt(16, 8), got.Point)
	partner, _ := p.PointForID(h2)
	diff(t, DPt(7, -4), partner.Point)
}

func TestNudgeAllPoints(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	p.PushOnCurve(DPt(10, 0))
	p.SetTrailing(DPt(5, 5))

	p.NudgeAllPoints(DVec(1, -2))

	diff(t, []DPoint{{1, -2}, {11, -2}}, logicalPositions(p))
	tr, _ := p.Trailing()
	diff(t, DPt(6, 3), tr)
}

func TestScalePoints(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	b := p.PushOnCurve(DPt(10, 0))
	c := p.PushOnCurve(DPt(10, 10))

	p.ScalePoints([]EntityID{b, c}, curve.Vec(2, 2), DPt(10, 0))

	// Scaling about (10, 0) leaves b in place and doubles c's offset.
	diff(t, []DPoint{{0, 0}, {10, 0}, {10, 20}}, logicalPositions(p))
}

func TestDeleteOffCurveRemovesPair(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 5, OffCurveRecord, false},
		{10, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
	})
	first := p.StartPoint().ID
	handle := p.Points()[1].ID

	hint, ok := p.DeletePoints([]EntityID{handle})
	if !ok {
		t.Fatal("delete failed")
	}
	// Both handles of the cubic go; the anchors join with a line.
	diff(t, []DPoint{{0, 0}, {10, 0}}, logicalPositions(p))
	diff(t, first, hint)
	checkInvariants(t, p)
}

func TestDeleteAnchorFlankedByHandles(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, CurveRecord, false},
		{2, 8, OffCurveRecord, false},
		{8, 8, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
		{12, -2, OffCurveRecord, false},
		{18, -2, OffCurveRecord, false},
		{20, 0, CurveRecord, false},
		{10, -20, LineRecord, false},
	})
	anchor := p.Points()[slices.IndexFunc(p.Points(), func(pt PathPoint) bool {
		return pt.Point == DPt(10, 0)
	})].ID

	_, ok := p.DeletePoints([]EntityID{anchor})
	if !ok {
		t.Fatal("delete failed")
	}
	// The anchor goes together with both flanking handles; the two
	// cubics merge into one.
	diff(t, []DPoint{{0, 0}, {2, 8}, {18, -2}, {20, 0}, {10, -20}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestDeleteAnchorBesideLine(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	b := p.PushOnCurve(DPt(10, 0))
	p.PushOnCurve(DPt(20, 0))

	_, ok := p.DeletePoints([]EntityID{b})
	if !ok {
		t.Fatal("delete failed")
	}
	diff(t, []DPoint{{0, 0}, {20, 0}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestDeleteCurveEndOfOpenPath(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{5, 0, LineRecord, false},
		{6, 5, OffCurveRecord, false},
		{9, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
	})
	end := p.EndPoint().ID

	_, ok := p.DeletePoints([]EntityID{end})
	if !ok {
		t.Fatal("delete failed")
	}
	// The dangling pair of control points leading into the deleted
	// anchor goes with it.
	diff(t, []DPoint{{0, 0}, {5, 0}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestDeleteCurveStartOfOpenPath(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{1, 5, OffCurveRecord, false},
		{4, 5, OffCurveRecord, false},
		{5, 0, CurveRecord, false},
		{10, 0, LineRecord, false},
	})
	start := p.StartPoint().ID

	_, ok := p.DeletePoints([]EntityID{start})
	if !ok {
		t.Fatal("delete failed")
	}
	diff(t, []DPoint{{5, 0}, {10, 0}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestDeleteSingleCurveAnchor(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 5, OffCurveRecord, false},
		{10, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
	})
	end := p.EndPoint().ID

	_, ok := p.DeletePoints([]EntityID{end})
	if !ok {
		t.Fatal("delete failed")
	}
	diff(t, []DPoint{{0, 0}}, logicalPositions(p))
	checkInvariants(t, p)
}

func TestDeleteOpensClosedPath(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{10, 10, LineRecord, false},
		{0, 0, LineRecord, false},
		{20, 0, LineRecord, false},
	})
	corner := p.Points()[0].ID // (0, 0), stored first

	hint, ok := p.DeletePoints([]EntityID{corner})
	if !ok {
		t.Fatal("delete failed")
	}
	// Fewer than three anchors can't form a closed contour.
	if p.Closed() {
		t.Error("path should have been opened")
	}
	diff(t, []DPoint{{10, 10}, {20, 0}}, logicalPositions(p))
	diff(t, DPt(10, 10), mustPoint(t, p, hint).Point)
	checkInvariants(t, p)
}

func TestDeleteDemotesSmoothAnchor(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 5, OffCurveRecord, false},
		{10, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, true},
		{20, 0, LineRecord, false},
	})
	handle := p.Points()[1].ID

	_, ok := p.DeletePoints([]EntityID{handle})
	if !ok {
		t.Fatal("delete failed")
	}
	// The anchor lost its handles, so smoothness means nothing and is
	// dropped.
	diff(t, []PointKind{OnCurveKind, OnCurveKind, OnCurveKind}, logicalKinds(p))
}

func TestDeleteLastPoint(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))

	_, ok := p.DeletePoints([]EntityID{p.StartPoint().ID})
	if ok {
		t.Error("no selection hint can exist for an emptied path")
	}
	diff(t, 0, p.Len())
}

func TestDeleteRollsBackInvalidResult(t *testing.T) {
	var ids IDSource
	id := ids.Next()
	on := func(x, y float64) PathPoint { return OnCurvePoint(&ids, id, DPt(x, y)) }
	off := func(x, y float64) PathPoint { return OffCurvePoint(&ids, id, DPt(x, y)) }

	// No well-formed path ends on a lone off-curve point, so removing
	// the middle anchor cannot produce a usable result and the delete
	// has to be undone wholesale.
	pts := []PathPoint{on(0, 0), on(10, 0), off(20, 0)}
	p := &Path{id: id, points: slices.Clone(pts), ids: &ids, indexStale: true}

	hint, ok := p.DeletePoints([]EntityID{pts[1].ID})
	if ok {
		t.Fatal("delete of anchor before a dangling handle succeeded")
	}
	diff(t, EntityID{}, hint)
	diff(t, pts, p.Points())
}

func TestDeleteMultipleNoHint(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, LineRecord, false},
		{10, 0, LineRecord, false},
		{10, 10, LineRecord, false},
		{0, 10, LineRecord, false},
	})
	a := p.Points()[0].ID
	b := p.Points()[1].ID

	if _, ok := p.DeletePoints([]EntityID{a, b}); ok {
		t.Error("multi-point deletes produce no selection hint")
	}
	checkInvariants(t, p)
}

func TestToggleOnCurvePointKind(t *testing.T) {
	var ids IDSource
	p := mustFromRecords(t, &ids, []PointRecord{
		{0, 0, MoveRecord, false},
		{0, 5, OffCurveRecord, false},
		{10, 5, OffCurveRecord, false},
		{10, 0, CurveRecord, false},
		{20, 0, LineRecord, false},
	})
	curveEnd := p.Points()[3].ID
	lineEnd := p.Points()[4].ID

	p.ToggleOnCurvePointKind(curveEnd)
	diff(t, OnCurveSmoothKind, mustPoint(t, p, curveEnd).Kind)
	p.ToggleOnCurvePointKind(curveEnd)
	diff(t, OnCurveKind, mustPoint(t, p, curveEnd).Kind)

	// An anchor with no adjacent handle can't be made smooth.
	p.ToggleOnCurvePointKind(lineEnd)
	diff(t, OnCurveKind, mustPoint(t, p, lineEnd).Kind)
}

func TestLineToSmooth(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	id := p.LineTo(DPt(10, 0), true)
	diff(t, OnCurveSmoothKind, mustPoint(t, p, id).Kind)
}

func TestShouldDrawTrailing(t *testing.T) {
	var ids IDSource
	p := NewPath(&ids, DPt(0, 0))
	if !p.ShouldDrawTrailing() {
		t.Error("a single-point path draws its trailing handle")
	}
	p.PushOnCurve(DPt(10, 0))
	if p.ShouldDrawTrailing() {
		t.Error("a path ending in a line does not draw a trailing handle")
	}
	seg := slices.Collect(p.Segments())[0]
	p.UpgradeLineSeg(seg, false)
	if !p.ShouldDrawTrailing() {
		t.Error("a path ending in a curve draws its trailing handle")
	}
}

func mustPoint(t *testing.T, p *Path, id EntityID) PathPoint {
	t.Helper()
	pt, ok := p.PointForID(id)
	if !ok {
		t.Fatalf("no point %v in path %v", id, p.ID())
	}
	return pt
}
