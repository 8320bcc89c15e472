package contour

import (
	"cmp"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// MaxSliceRecursion bounds how many times slicing may recurse while
// partitioning a single path. Near-tangent cuts can produce clusters
// of close intersections; once the limit is reached the remaining cut
// is reduced to a single split so that slicing always terminates.
const MaxSliceRecursion = 16

// Knife is the tool that cuts paths along a dragged line. While the
// drag is live it tracks where the cut line crosses the session's
// paths; on release it slices every crossed path in two.
type Knife struct {
	gesture knifeState
	// the drag endpoints live in design space but may be fractional
	start   curve.Point
	current curve.Point

	shiftLocked bool

	// intersections holds the spots where the cut line crosses a path,
	// for display while the drag is live. The slice is reused between
	// updates.
	intersections []DPoint
}

type knifeState uint8

const (
	knifeReady knifeState = iota
	knifeBegun
	knifeFinished
)

// Name returns the tool's name.
func (Knife) Name() string { return "Knife" }

// CutLine returns the current cut line in design space, with any shift
// axis lock applied, if a drag is live.
func (k *Knife) CutLine() (curve.Line, bool) {
	p0, p1, ok := k.currentPoints()
	return curve.Line{P0: p0, P1: p1}, ok
}

// Intersections returns the points where the live cut line crosses the
// session's paths. The slice is only valid until the next mouse or key
// event.
func (k *Knife) Intersections() []DPoint { return k.intersections }

func (k *Knife) currentPoints() (curve.Point, curve.Point, bool) {
	if k.gesture != knifeBegun {
		return curve.Point{}, curve.Point{}, false
	}
	current := k.current
	if k.shiftLocked {
		d := current.Sub(k.start)
		if math.Abs(d.X) > math.Abs(d.Y) {
			current.Y = k.start.Y
		} else {
			current.X = k.start.X
		}
	}
	return k.start, current, true
}

func (k *Knife) updateIntersections(s *EditSession) {
	line, ok := k.CutLine()
	if !ok {
		return
	}
	k.intersections = k.intersections[:0]
	for _, path := range s.Paths {
		for seg := range path.Segments() {
			for _, hit := range seg.IntersectLine(line) {
				k.intersections = append(k.intersections, DPointFromRaw(line.Eval(hit.LineT)))
			}
		}
	}
}

// KeyDown updates the shift axis lock.
func (k *Knife) KeyDown(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		k.shiftLocked = true
		k.updateIntersections(s)
	}
	return NormalEdit, false
}

// KeyUp updates the shift axis lock.
func (k *Knife) KeyUp(s *EditSession, key KeyEvent) (EditType, bool) {
	if key.Key == KeyShift {
		k.shiftLocked = false
		k.updateIntersections(s)
	}
	return NormalEdit, false
}

// TakeEdit returns the edit produced by the last finished gesture, if
// any, and resets the tool.
func (k *Knife) TakeEdit() (EditType, bool) {
	if k.gesture == knifeFinished {
		k.gesture = knifeReady
		return NormalEdit, true
	}
	return NormalEdit, false
}

// Cancel implements [MouseDelegate].
func (k *Knife) Cancel(s *EditSession) {
	k.gesture = knifeReady
}

// LeftDown implements [MouseDelegate].
func (k *Knife) LeftDown(s *EditSession, ev MouseEvent) {
	if ev.Count == 1 {
		pt := ev.Pos.Transform(s.ViewPort.InverseAffine())
		k.gesture = knifeBegun
		k.start = pt
		k.current = pt
		k.shiftLocked = ev.Mods.Shift
	}
}

// LeftUp implements [MouseDelegate].
func (k *Knife) LeftUp(s *EditSession, ev MouseEvent) {}

// LeftClick implements [MouseDelegate].
func (k *Knife) LeftClick(s *EditSession, ev MouseEvent) {}

// LeftDragBegan implements [MouseDelegate].
func (k *Knife) LeftDragBegan(s *EditSession, drag Drag) {}

// LeftDragChanged implements [MouseDelegate].
func (k *Knife) LeftDragChanged(s *EditSession, drag Drag) {
	if k.gesture == knifeBegun {
		k.current = drag.Current.Pos.Transform(s.ViewPort.InverseAffine())
		k.updateIntersections(s)
	}
}

// LeftDragEnded slices the session's paths along the cut line.
func (k *Knife) LeftDragEnded(s *EditSession, drag Drag) {
	if k.gesture == knifeBegun {
		now := drag.Current.Pos.Transform(s.ViewPort.InverseAffine())
		if now != k.current {
			k.current = now
			k.updateIntersections(s)
		}
	}

	if line, ok := k.CutLine(); ok && len(k.intersections) > 0 {
		s.Paths = SlicePaths(s.ids, s.Paths, line)
	}

	k.gesture = knifeFinished
}

// A sliceHit is one crossing of the cut line with a path segment.
type sliceHit struct {
	intersection curve.LineIntersection
	point        curve.Point
	seg          Segment
}

func newSliceHit(line curve.Line, intersection curve.LineIntersection, seg Segment) sliceHit {
	return sliceHit{
		intersection: intersection,
		point:        line.Eval(intersection.LineT),
		seg:          seg,
	}
}

func (h sliceHit) segT() float64 { return h.intersection.SegmentT }

// SlicePaths cuts every path that the line crosses, returning the new
// set of paths. Paths the line misses are carried over unchanged. A
// path crossed an even number of times is divided into multiple paths;
// a path crossed once merely gains a point at the crossing.
//
// The slicing works through the line's crossings two at a time, in the
// order they occur along the line: the first pair divides the path in
// two, and the remainder of the line is recursively applied to both
// halves.
func SlicePaths(ids *IDSource, paths []*Path, line curve.Line) []*Path {
	out := make([]*Path, 0, len(paths))
	for _, path := range paths {
		// the impl is recursive, and an unsliced path's clone is what
		// ends up in the output
		out = slicePath(ids, path.Clone(), line, out, 0)
	}
	return out
}

func slicePath(ids *IDSource, path *Path, line curve.Line, acc []*Path, depth int) []*Path {
	var hits []sliceHit
	for seg := range path.Segments() {
		for _, isect := range seg.IntersectLine(line) {
			hits = append(hits, newSliceHit(line, isect, seg))
		}
	}

	if len(hits) <= 1 || depth == MaxSliceRecursion {
		if len(hits) > 0 {
			path.SplitSegmentAtPoint(hits[0].seg, hits[0].segT())
		}
		if depth == MaxSliceRecursion {
			logger().Info("slice hit recursion limit", "path", path.ID())
		}
		return append(acc, path)
	}

	// work through the crossings in the order of the cut
	slices.SortFunc(hits, func(a, b sliceHit) int {
		return cmp.Compare(a.intersection.LineT, b.intersection.LineT)
	})
	start, end := hits[0], hits[1]
	logger().Debug("slicing path",
		"path", path.ID(), "hits", len(hits),
		"start", start.point, "end", end.point)

	// Where on the line to resume afterwards: just past the second
	// crossing, nudged by a design-space unit of t so we don't
	// immediately re-cut a segment we just created.
	sliceEp := 1.0 / line.Arclen(curve.DefaultAccuracy)
	nextLineStartT := end.intersection.LineT + sliceEp

	start, end = orderHits(path, start, end)
	one, two := splitPathAtIntersections(ids, path, start, end)

	line = line.Subsegment(nextLineStartT, 1.0)
	acc = slicePath(ids, one, line, acc, depth+1)
	acc = slicePath(ids, two, line, acc, depth+1)
	return acc
}

// orderHits orders the two cut points by their position along the
// path, so that callers iterating the path's segments encounter start
// first.
func orderHits(path *Path, start, end sliceHit) (sliceHit, sliceHit) {
	for seg := range path.Segments() {
		switch seg.StartID() {
		case start.seg.StartID():
			// when both cuts land in one segment, order them by t on
			// that segment
			if seg.StartID() == end.seg.StartID() && end.segT() < start.segT() {
				return end, start
			}
			return start, end
		case end.seg.StartID():
			return end, start
		}
	}
	return start, end
}

// splitPathAtIntersections divides a path in two at a pair of cut
// points. The first result keeps the path's original start point and
// id, and stays open if the path was open; the second is the piece
// that is sliced off, and is always closed.
func splitPathAtIntersections(ids *IDSource, src *Path, start, end sliceHit) (*Path, *Path) {
	oneID := src.ID()
	twoID := ids.Next()
	var onePoints, twoPoints []PathPoint
	segs := slices.Collect(src.Segments())
	twoDone := false

	i := 0
	// everything up to and including the first cut
	for ; i < len(segs); i++ {
		seg := segs[i]
		if seg.StartID() != start.seg.StartID() {
			onePoints = appendSegPoints(onePoints, seg)
			continue
		}
		cutT := start.segT()
		onePoints = appendSegPoints(onePoints, seg.Subsegment(ids, 0, cutT))
		if seg.StartID() == end.seg.StartID() {
			// both cuts land in this segment
			onePoints = appendSegPoints(onePoints, seg.Subsegment(ids, end.segT(), 1))
			twoPoints = appendSegPoints(twoPoints, seg.Subsegment(ids, cutT, end.segT()))
			twoDone = true
		} else {
			twoPoints = appendSegPoints(twoPoints, seg.Subsegment(ids, cutT, 1))
		}
		i++
		break
	}

	// everything between the cuts; skipped when both cuts landed in
	// one segment, in which case all remaining segments belong to the
	// continuation
	if !twoDone {
		for ; i < len(segs); i++ {
			seg := segs[i]
			if seg.StartID() == end.seg.StartID() {
				onePoints = appendSegPoints(onePoints, seg.Subsegment(ids, end.segT(), 1))
				twoPoints = appendSegPoints(twoPoints, seg.Subsegment(ids, 0, end.segT()))
				i++
				break
			}
			twoPoints = appendSegPoints(twoPoints, seg)
		}
	}

	// everything after the second cut
	for ; i < len(segs); i++ {
		onePoints = appendSegPoints(onePoints, segs[i])
	}

	if !src.Closed() {
		// an open path has no wrapping segment to cut through twice;
		// close the sliced-off piece back to where the cut began
		twoPoints = append(twoPoints, OnCurvePoint(ids, twoID, DPointFromRaw(start.point)))
	}

	if len(onePoints) > 0 && onePoints[0].Point == onePoints[len(onePoints)-1].Point {
		onePoints = onePoints[:len(onePoints)-1]
	}

	one := finalizeSlice(ids, onePoints, oneID, src.Closed())
	two := finalizeSlice(ids, twoPoints, twoID, true)
	return one, two
}

// finalizeSlice marks tangent handles, fixes up parent ids, and
// assembles the sliced points into a path.
func finalizeSlice(ids *IDSource, points []PathPoint, parent EntityID, closed bool) *Path {
	markTangentHandles(points)
	for i := range points {
		points[i].Reparent(parent)
	}
	if closed {
		rotateLeft(points, 1)
	}
	return FromRawParts(ids, parent, points, nil, closed)
}

// appendSegPoints appends seg's points to dest, dropping the leading
// point when dest already ends at the same position.
func appendSegPoints(dest []PathPoint, seg Segment) []PathPoint {
	skipFirst := len(dest) > 0 && dest[len(dest)-1].Point == seg.Start().Point
	for pt := range seg.Points() {
		if skipFirst {
			skipFirst = false
			continue
		}
		dest = append(dest, pt)
	}
	return dest
}
