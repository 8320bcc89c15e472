package contour

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"honnef.co/go/curve"
)

// A Path is a single open or closed contour: a list of [PathPoint]s
// plus the bookkeeping an editor needs to mutate it safely.
//
// Points are kept in storage order. For an open path that is also the
// drawing order. A closed path is stored rotated one place to the
// left, so the logical first point lives at the end of the slice and
// the slice always ends on an on-curve point; this lets the segment
// iterator treat the wrapping segment like any other.
//
// The zero value is not usable; construct paths with [NewPath],
// [FromRawParts], [FromRecords], or [FromBezPath].
type Path struct {
	id       EntityID
	points   []PathPoint
	closed   bool
	trailing *DPoint
	ids      *IDSource

	// index maps point ids to slice positions. It is rebuilt lazily:
	// structural mutations mark it stale and the next lookup rebuilds
	// it. Structural decisions walk the slice directly and never
	// consult the index.
	index      map[EntityID]int
	indexStale bool
}

// NewPath returns a new open path containing a single on-curve point.
func NewPath(ids *IDSource, start DPoint) *Path {
	id := ids.Next()
	pt := OnCurvePoint(ids, id, start)
	return &Path{
		id:         id,
		points:     []PathPoint{pt},
		ids:        ids,
		indexStale: true,
	}
}

// FromRawParts assembles a path from parts that are already consistent:
// the points must be non-empty, must all be children of id, and an open
// path must begin with an on-curve point. It panics otherwise. If a
// closed path does not end on-curve it is rotated into the canonical
// representation.
func FromRawParts(ids *IDSource, id EntityID, points []PathPoint, trailing *DPoint, closed bool) *Path {
	if len(points) == 0 {
		panic("path may not be empty")
	}
	for _, pt := range points {
		if !pt.ID.IsChildOf(id) {
			panic(fmt.Sprintf("point %v does not belong to path %v", pt, id))
		}
	}
	if !closed && !points[0].IsOnCurve() {
		panic(fmt.Sprintf("open path starts with an off-curve point: %v", points[0]))
	}
	if closed && !points[len(points)-1].IsOnCurve() {
		firstOn := slices.IndexFunc(points, func(pt PathPoint) bool { return pt.IsOnCurve() })
		if firstOn == -1 {
			panic("closed path has no on-curve point")
		}
		rotateLeft(points, firstOn+1)
	}
	return &Path{
		id:         id,
		points:     points,
		trailing:   trailing,
		closed:     closed,
		ids:        ids,
		indexStale: true,
	}
}

// ID returns the path's id. Every point in the path is a child of it.
func (p *Path) ID() EntityID { return p.id }

// Len returns the number of points, on- and off-curve.
func (p *Path) Len() int { return len(p.points) }

// Closed reports whether the path is closed.
func (p *Path) Closed() bool { return p.closed }

// Points returns the path's points in storage order. The slice is the
// path's own storage; treat it as read-only and do not hold on to it
// across mutations.
func (p *Path) Points() []PathPoint { return p.points }

// Contains reports whether id belongs to this path. It also reports
// true for points that were deleted from the path, which in practice
// does not matter to its callers.
func (p *Path) Contains(id EntityID) bool {
	return id.IsChildOf(p.id)
}

// Trailing returns the trailing handle position, if one is set. The
// trailing handle is the off-curve point that would be mirrored into
// the next segment while drawing with the pen.
func (p *Path) Trailing() (DPoint, bool) {
	if p.trailing == nil {
		return DPoint{}, false
	}
	return *p.trailing, true
}

// SetTrailing sets the trailing handle position.
func (p *Path) SetTrailing(pt DPoint) {
	p.trailing = &pt
}

// TakeTrailing returns the trailing handle position and clears it.
func (p *Path) TakeTrailing() (DPoint, bool) {
	pt, ok := p.Trailing()
	p.trailing = nil
	return pt, ok
}

// ClearTrailing removes the trailing handle.
func (p *Path) ClearTrailing() {
	p.trailing = nil
}

// Clone returns a deep copy of the path sharing the same id source.
func (p *Path) Clone() *Path {
	q := *p
	q.points = slices.Clone(p.points)
	if p.trailing != nil {
		t := *p.trailing
		q.trailing = &t
	}
	q.index = nil
	q.indexStale = true
	return &q
}

func (p *Path) markStale() {
	p.indexStale = true
}

func (p *Path) idxForPoint(id EntityID) (int, bool) {
	if p.indexStale {
		p.index = make(map[EntityID]int, len(p.points))
		for i, pt := range p.points {
			p.index[pt.ID] = i
		}
		p.indexStale = false
	}
	idx, ok := p.index[id]
	return idx, ok
}

// firstIdx returns the storage index of the logical first point.
func (p *Path) firstIdx() int {
	if p.closed {
		return len(p.points) - 1
	}
	return 0
}

func (p *Path) prevIdx(idx int) int {
	if idx == 0 {
		return len(p.points) - 1
	}
	return idx - 1
}

func (p *Path) nextIdx(idx int) int {
	return (idx + 1) % len(p.points)
}

// StartPoint returns the logical first point of the path.
func (p *Path) StartPoint() PathPoint {
	return p.points[p.firstIdx()]
}

// EndPoint returns the last point of an open path. For a closed path it
// returns the last point before the wrap back to the start.
func (p *Path) EndPoint() PathPoint {
	idx := len(p.points) - 1
	if p.closed && len(p.points) > 1 {
		idx = len(p.points) - 2
	}
	return p.points[idx]
}

// PointForID returns the point with the given id.
func (p *Path) PointForID(id EntityID) (PathPoint, bool) {
	idx, ok := p.idxForPoint(id)
	if !ok {
		return PathPoint{}, false
	}
	return p.points[idx], true
}

// PrevPoint returns the point before id, wrapping around the ends.
func (p *Path) PrevPoint(id EntityID) (PathPoint, bool) {
	idx, ok := p.idxForPoint(id)
	if !ok {
		return PathPoint{}, false
	}
	return p.points[p.prevIdx(idx)], true
}

// NextPoint returns the point after id, wrapping around the ends.
func (p *Path) NextPoint(id EntityID) (PathPoint, bool) {
	idx, ok := p.idxForPoint(id)
	if !ok {
		return PathPoint{}, false
	}
	return p.points[p.nextIdx(idx)], true
}

// PointsInOrder iterates the points in logical path order: for a closed
// path the stored last point comes first.
func (p *Path) PointsInOrder() iter.Seq[PathPoint] {
	return func(yield func(PathPoint) bool) {
		remaining := p.points
		if p.closed {
			if !yield(p.points[len(p.points)-1]) {
				return
			}
			remaining = p.points[:len(p.points)-1]
		}
		for _, pt := range remaining {
			if !yield(pt) {
				return
			}
		}
	}
}

// Segments iterates the drawable segments of the path. For a closed
// path this includes the segment that wraps from the stored points back
// to the logical start.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if len(p.points) == 0 {
			return
		}
		prev := p.StartPoint()
		idx := 1
		if p.closed {
			idx = 0
		}
		for idx < len(p.points) {
			var seg Segment
			if !p.points[idx].IsOnCurve() {
				p1 := p.points[idx]
				p2 := p.points[idx+1]
				p3 := p.points[idx+2]
				if !p3.IsOnCurve() {
					panic(fmt.Sprintf("malformed path at index %d: %v", idx, p.points))
				}
				seg = CubicSeg(prev, p1, p2, p3)
				prev = p3
				idx += 3
			} else {
				seg = LineSeg(prev, p.points[idx])
				prev = p.points[idx]
				idx++
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// SegmentForEnd returns the segment that ends at the point with the
// given id.
func (p *Path) SegmentForEnd(id EntityID) (Segment, bool) {
	for seg := range p.Segments() {
		if seg.EndID() == id {
			return seg, true
		}
	}
	return Segment{}, false
}

// Cursor returns a cursor positioned at the logical first point.
func (p *Path) Cursor() Cursor {
	return Cursor{path: p, idx: p.firstIdx()}
}

// CursorAt returns a cursor positioned at the point with the given id.
func (p *Path) CursorAt(id EntityID) (Cursor, bool) {
	idx, ok := p.idxForPoint(id)
	if !ok {
		return Cursor{}, false
	}
	return Cursor{path: p, idx: idx}, true
}

// PushOnCurve appends a new corner anchor to the path, which must be
// open, and returns its id.
func (p *Path) PushOnCurve(pt DPoint) EntityID {
	if p.closed {
		panic("cannot append to a closed path")
	}
	point := OnCurvePoint(p.ids, p.id, pt)
	p.points = append(p.points, point)
	p.markStale()
	return point.ID
}

// Close closes the path and returns the id of the logical first point.
// The path must be open.
func (p *Path) Close() EntityID {
	if p.closed {
		panic("path is already closed")
	}
	rotateLeft(p.points, 1)
	p.closed = true
	p.markStale()
	return p.points[len(p.points)-1].ID
}

// Reverse flips the path's direction. The logical first point stays
// first.
func (p *Path) Reverse() {
	last := len(p.points)
	if p.closed {
		last--
	}
	slices.Reverse(p.points[:last])
	p.markStale()
}

// TransformAll applies a transform to every point, including the
// trailing handle.
func (p *Path) TransformAll(aff curve.Affine, anchor DPoint) {
	anchorVec := anchor.Vec2()
	for i := range p.points {
		p.transformPoint(i, aff, anchorVec)
	}
	if p.trailing != nil {
		*p.trailing = DPointFromRaw(p.trailing.Raw().Transform(aff))
	}
}

// TransformPoints applies a transform to the named points, extending
// the set with the off-curve neighbors of any named on-curve point so
// that handles travel with their anchors. When a handle moves but its
// tangent partner does not, the partner is re-angled to stay collinear.
// It returns the set of transformed storage indices.
func (p *Path) TransformPoints(ids []EntityID, aff curve.Affine, anchor DPoint) map[int]bool {
	toXform := p.pointsForPoints(ids)
	anchorVec := anchor.Vec2()
	for idx := range toXform {
		p.transformPoint(idx, aff, anchorVec)
		if !p.points[idx].IsOnCurve() {
			if onCurve, partner, ok := p.tangentNeighbor(idx); ok && partner != -1 {
				if !toXform[partner] {
					p.adjustHandleAngle(idx, onCurve, partner)
				}
			}
		}
	}
	return toXform
}

func (p *Path) transformPoint(idx int, aff curve.Affine, anchor DVec2) {
	pt := p.points[idx].Point.Raw().Translate(anchor.Raw().Negate())
	pt = pt.Transform(aff).Translate(anchor.Raw())
	p.points[idx].Point = DPointFromRaw(pt)
}

// pointsForPoints maps a list of point ids to storage indices,
// including the off-curve neighbors of any on-curve point in the list.
func (p *Path) pointsForPoints(ids []EntityID) map[int]bool {
	toXform := make(map[int]bool)
	for _, id := range ids {
		idx, ok := p.idxForPoint(id)
		if !ok {
			continue
		}
		toXform[idx] = true
		if p.points[idx].IsOnCurve() {
			prev := p.prevIdx(idx)
			next := p.nextIdx(idx)
			if !p.points[prev].IsOnCurve() {
				toXform[prev] = true
			}
			if !p.points[next].IsOnCurve() {
				toXform[next] = true
			}
		}
	}
	return toXform
}

// UpdateHandle moves the handle with the given id to dpt. If the handle
// belongs to a smooth anchor with a partner handle on the other side,
// the partner is re-angled to stay collinear. If locked, the handle is
// first snapped to the axis it shares with its anchor.
func (p *Path) UpdateHandle(id EntityID, dpt DPoint, locked bool) {
	bcp1, ok := p.idxForPoint(id)
	if !ok {
		return
	}
	onCurve, bcp2, ok := p.tangentNeighbor(bcp1)
	if !ok {
		return
	}
	if locked {
		dpt = dpt.AxisLockedTo(p.points[onCurve].Point)
	}
	p.points[bcp1].Point = dpt
	if bcp2 != -1 {
		p.adjustHandleAngle(bcp1, onCurve, bcp2)
	}
}

// adjustHandleAngle repositions the handle at bcp2 in response to the
// handle at bcp1 having moved: it keeps bcp2's distance from the shared
// anchor but flips it onto the line through bcp1 and the anchor.
func (p *Path) adjustHandleAngle(bcp1, onCurve, bcp2 int) {
	raw := p.points[bcp1].Point.Sub(p.points[onCurve].Point).Raw()
	if raw.Hypot() == 0 {
		return
	}
	norm := raw.Normalize().Mul(-1)
	handleLen := p.points[bcp2].Point.Sub(p.points[onCurve].Point).Hypot()
	offset := DVec2FromRaw(norm.Mul(handleLen))
	p.points[bcp2].Point = p.points[onCurve].Point.Translate(offset)
}

// tangentNeighbor locates the anchor adjacent to the handle at idx. It
// returns the anchor's index and, if the anchor is smooth with a handle
// on its other side, the partner handle's index, or -1 when there is no
// partner. ok is false if neither neighbor of idx is an anchor.
func (p *Path) tangentNeighbor(idx int) (onCurve, partner int, ok bool) {
	if p.points[idx].IsOnCurve() {
		panic(fmt.Sprintf("tangentNeighbor wants an off-curve point, got %v", p.points[idx]))
	}
	prev := p.prevIdx(idx)
	next := p.nextIdx(idx)
	if p.points[prev].IsOnCurve() {
		prev2 := p.prevIdx(prev)
		if p.points[prev].IsSmooth() && !p.points[prev2].IsOnCurve() {
			return prev, prev2, true
		}
		return prev, -1, true
	}
	if p.points[next].IsOnCurve() {
		next2 := p.nextIdx(next)
		if p.points[next].IsSmooth() && !p.points[next2].IsOnCurve() {
			return next, next2, true
		}
		return next, -1, true
	}
	return 0, 0, false
}

// DeletePoints removes the named points along with any points that
// cannot legally remain without them: a deleted handle takes its
// partner, and a deleted anchor takes handles that would dangle.
//
// If the result would be malformed the whole mutation is rolled back.
// On success, if exactly one point was requested, DeletePoints returns
// the id of a surviving point suitable as the next selection: the
// nearest survivor preceding the deleted run, or the path's first
// remaining point.
func (p *Path) DeletePoints(ids []EntityID) (EntityID, bool) {
	if len(ids) == 0 || len(p.points) == 0 {
		return EntityID{}, false
	}
	snapshot := slices.Clone(p.points)
	wasClosed := p.closed
	var wasTrailing *DPoint
	if p.trailing != nil {
		t := *p.trailing
		wasTrailing = &t
	}

	for _, id := range ids {
		p.deletePoint(id)
	}

	if err := p.validate(); err != nil {
		logger().Warn("rolling back delete that violated path invariants",
			"path", p.id, "err", err)
		p.points = snapshot
		p.closed = wasClosed
		p.trailing = wasTrailing
		p.markStale()
		return EntityID{}, false
	}

	if len(ids) != 1 || len(p.points) == 0 {
		return EntityID{}, false
	}
	return p.selectionHint(ids[0], snapshot, wasClosed), true
}

// selectionHint picks the point that should be selected after deleted
// was removed: the nearest survivor before it in the pre-delete order,
// or the first remaining point.
func (p *Path) selectionHint(deleted EntityID, snapshot []PathPoint, wasClosed bool) EntityID {
	start := slices.IndexFunc(snapshot, func(pt PathPoint) bool { return pt.ID == deleted })
	if start != -1 {
		n := len(snapshot)
		for step := 1; step < n; step++ {
			i := start - step
			if i < 0 {
				if !wasClosed {
					break
				}
				i += n
			}
			if _, ok := p.PointForID(snapshot[i].ID); ok {
				return snapshot[i].ID
			}
		}
	}
	return p.StartPoint().ID
}

// deletePoint removes one point and cascades to its dependents.
func (p *Path) deletePoint(id EntityID) {
	idx := slices.IndexFunc(p.points, func(pt PathPoint) bool { return pt.ID == id })
	if idx == -1 {
		return
	}
	prevIdx := p.prevIdx(idx)
	nextIdx := p.nextIdx(idx)
	last := len(p.points) - 1

	switch {
	case p.points[idx].IsOffCurve():
		// delete both of the off-curve points of this segment
		var otherID EntityID
		if p.points[prevIdx].IsOffCurve() {
			otherID = p.points[prevIdx].ID
		} else {
			if !p.points[nextIdx].IsOffCurve() {
				panic(fmt.Sprintf("off-curve point %v has no off-curve partner", p.points[idx]))
			}
			otherID = p.points[nextIdx].ID
		}
		p.retainPoints(func(pt PathPoint) bool {
			return pt.ID != id && pt.ID != otherID
		})
	case len(p.points) == 1:
		p.points = p.points[:0]
		p.markStale()
	case len(p.points) == 4:
		// deleting an anchor from a single curve segment leaves only
		// the remaining anchors
		p.retainPoints(func(pt PathPoint) bool {
			return pt.IsOnCurve() && pt.ID != id
		})
	case !p.closed && idx == last && p.points[prevIdx].IsOffCurve():
		// the anchor terminates an open path with a curve; take the
		// dangling pair of handles with it
		toDel := [3]EntityID{id, p.points[prevIdx].ID, p.points[p.prevIdx(prevIdx)].ID}
		p.retainPoints(func(pt PathPoint) bool {
			return !slices.Contains(toDel[:], pt.ID)
		})
	case !p.closed && idx == 0 && p.points[1].IsOffCurve():
		// mirror case at the start of an open path
		toDel := [3]EntityID{id, p.points[1].ID, p.points[2].ID}
		p.retainPoints(func(pt PathPoint) bool {
			return !slices.Contains(toDel[:], pt.ID)
		})
	case p.points[prevIdx].IsOnCurve():
		// a line segment ends here; remove the point alone
		p.removePointAt(idx)
	case p.points[nextIdx].IsOnCurve():
		// the neighbor is a corner; leave the handles and let the
		// neighbor become a curve point
		p.removePointAt(idx)
	default:
		// flanked by handles on both sides: the whole curve segment
		// goes
		toDel := [3]EntityID{p.points[prevIdx].ID, p.points[nextIdx].ID, id}
		p.retainPoints(func(pt PathPoint) bool {
			return !slices.Contains(toDel[:], pt.ID)
		})
		if len(p.points) == 3 {
			p.retainPoints(PathPoint.IsOnCurve)
		}
	}

	// demote smooth anchors that no longer touch a handle
	for i := range p.points {
		prev := p.prevIdx(i)
		next := p.nextIdx(i)
		if p.points[i].IsSmooth() && p.points[prev].IsOnCurve() && p.points[next].IsOnCurve() {
			p.points[i].Toggle()
		}
	}

	p.normalizeAfterDelete()
}

func (p *Path) removePointAt(idx int) {
	p.points = slices.Delete(p.points, idx, idx+1)
	p.markStale()
}

func (p *Path) retainPoints(keep func(PathPoint) bool) {
	p.points = slices.DeleteFunc(p.points, func(pt PathPoint) bool { return !keep(pt) })
	p.markStale()
}

// normalizeAfterDelete restores the canonical representation after a
// cascade: a closed path is rotated until it ends on an anchor again,
// and a closed path left with fewer than three anchors is opened up.
func (p *Path) normalizeAfterDelete() {
	if len(p.points) == 0 || !p.closed {
		return
	}
	if !p.points[len(p.points)-1].IsOnCurve() {
		firstOn := slices.IndexFunc(p.points, PathPoint.IsOnCurve)
		if firstOn == -1 {
			return
		}
		rotateLeft(p.points, firstOn+1)
		p.markStale()
	}
	onCurve := 0
	for _, pt := range p.points {
		if pt.IsOnCurve() {
			onCurve++
		}
	}
	if onCurve < 3 {
		p.closed = false
		// the stored last point is the logical first; put it back in
		// front and drop any handles left dangling at the new end
		rotateRight(p.points, 1)
		for len(p.points) > 0 && p.points[len(p.points)-1].IsOffCurve() {
			p.points = p.points[:len(p.points)-1]
		}
		p.markStale()
	}
}

var (
	errOpenEndsOffCurve = errors.New("open path must start and end with on-curve points")
	errClosedEndsOff    = errors.New("closed path must end with an on-curve point")
	errHandleRun        = errors.New("more than two consecutive off-curve points")
	errForeignPoint     = errors.New("point does not belong to this path")
)

// validate checks the path's structural invariants. An empty path is
// allowed here: deletes may empty a path, and the session culls it.
func (p *Path) validate() error {
	if len(p.points) == 0 {
		return nil
	}
	if !p.closed && (!p.points[0].IsOnCurve() || !p.points[len(p.points)-1].IsOnCurve()) {
		return errOpenEndsOffCurve
	}
	if p.closed && !p.points[len(p.points)-1].IsOnCurve() {
		return errClosedEndsOff
	}
	run := 0
	check := len(p.points)
	if p.closed {
		// wrapping runs matter too; extending the walk by two
		// positions catches them
		check += 2
	}
	for i := 0; i < check; i++ {
		if p.points[i%len(p.points)].IsOffCurve() {
			run++
			if run > 2 {
				return errHandleRun
			}
		} else {
			run = 0
		}
	}
	for _, pt := range p.points {
		if !pt.ID.IsChildOf(p.id) {
			return fmt.Errorf("%w: %v in %v", errForeignPoint, pt.ID, p.id)
		}
	}
	return nil
}

// A Cursor is a view into a path positioned at one point, with
// wrapping next and prev access on closed paths. A cursor is
// invalidated by structural mutations of its path.
type Cursor struct {
	path *Path
	idx  int
}

// Index returns the storage index of the cursor's point.
func (c *Cursor) Index() int { return c.idx }

// Point returns the point under the cursor. The pointer aliases the
// path's storage; position and kind edits through it are visible to
// the path.
func (c *Cursor) Point() *PathPoint {
	return &c.path.points[c.idx]
}

// Next returns the point after the cursor, or nil at the end of an
// open path.
func (c *Cursor) Next() *PathPoint {
	idx, ok := c.peekNextIdx()
	if !ok {
		return nil
	}
	return &c.path.points[idx]
}

// Prev returns the point before the cursor, or nil at the start of an
// open path.
func (c *Cursor) Prev() *PathPoint {
	idx, ok := c.peekPrevIdx()
	if !ok {
		return nil
	}
	return &c.path.points[idx]
}

// MoveNext advances the cursor, reporting whether it moved.
func (c *Cursor) MoveNext() bool {
	idx, ok := c.peekNextIdx()
	if ok {
		c.idx = idx
	}
	return ok
}

// MovePrev moves the cursor backwards, reporting whether it moved.
func (c *Cursor) MovePrev() bool {
	idx, ok := c.peekPrevIdx()
	if ok {
		c.idx = idx
	}
	return ok
}

// MoveToStart positions the cursor at the logical first point.
func (c *Cursor) MoveToStart() {
	c.idx = c.path.firstIdx()
}

// MoveToEnd positions the cursor at the last stored point.
func (c *Cursor) MoveToEnd() {
	c.idx = len(c.path.points) - 1
}

func (c *Cursor) peekNextIdx() (int, bool) {
	if c.path.closed {
		return (c.idx + 1) % len(c.path.points), true
	}
	if c.idx < len(c.path.points)-1 {
		return c.idx + 1, true
	}
	return 0, false
}

func (c *Cursor) peekPrevIdx() (int, bool) {
	if c.path.closed {
		return (len(c.path.points) + c.idx - 1) % len(c.path.points), true
	}
	if c.idx > 0 {
		return c.idx - 1, true
	}
	return 0, false
}

// rotateLeft rotates s in place so that s[n] becomes the first element.
func rotateLeft[T any](s []T, n int) {
	if len(s) == 0 {
		return
	}
	n %= len(s)
	if n < 0 {
		n += len(s)
	}
	slices.Reverse(s[:n])
	slices.Reverse(s[n:])
	slices.Reverse(s)
}

// rotateRight rotates s in place so that every element moves n
// positions toward the end.
func rotateRight[T any](s []T, n int) {
	if len(s) == 0 {
		return
	}
	rotateLeft(s, len(s)-n%len(s))
}
