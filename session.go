package contour

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// MinClickDistance is how far away, in screen units, a click may land
// from an item and still count as hitting it.
const MinClickDistance = 10.0

// SegmentClickDistance is the hit radius for clicks on segments, which
// is tighter than the one for points.
const SegmentClickDistance = 6.0

// OnCurvePenalty is added to an anchor's hit-test score so that ties
// between an anchor and an overlapping handle break in favor of the
// handle.
const OnCurvePenalty = MinClickDistance / 2

// An EditSession is the editing state of one glyph: its paths, guides,
// the current selection, and the viewport. All mutation of paths
// during editing goes through the session, which keeps the selection
// in step.
//
// A session and everything in it is confined to a single goroutine.
type EditSession struct {
	Paths     []*Path
	Selection Selection
	Guides    []Guide
	ViewPort  ViewPort

	ids *IDSource
}

// NewEditSession returns a session editing the given paths. The paths
// must have been built with the same id source.
func NewEditSession(ids *IDSource, paths ...*Path) *EditSession {
	return &EditSession{
		Paths:    paths,
		ViewPort: DefaultViewPort,
		ids:      ids,
	}
}

// IDSource returns the id source used for everything in this session.
func (s *EditSession) IDSource() *IDSource { return s.ids }

// Bezier returns the raw geometry of all the session's paths.
func (s *EditSession) Bezier() curve.BezPath {
	var bez curve.BezPath
	for _, path := range s.Paths {
		path.AppendToBezier(&bez)
	}
	return bez
}

// Points iterates the points of all paths, in storage order.
func (s *EditSession) Points() iter.Seq[PathPoint] {
	return func(yield func(PathPoint) bool) {
		for _, path := range s.Paths {
			for _, pt := range path.Points() {
				if !yield(pt) {
					return
				}
			}
		}
	}
}

// HitTestAll finds the entity nearest to a screen point: first points,
// then guides. A non-positive maxDist means [MinClickDistance].
func (s *EditSession) HitTestAll(pt curve.Point, maxDist float64) (EntityID, bool) {
	if id, ok := s.HitTestFiltered(pt, maxDist, nil); ok {
		return id, true
	}
	if maxDist <= 0 {
		maxDist = MinClickDistance
	}
	best := maxDist
	var bestID EntityID
	found := false
	for _, g := range s.Guides {
		if dist := g.ScreenDist(s.ViewPort, pt); dist < best {
			best = dist
			bestID = g.ID
			found = true
		}
	}
	return bestID, found
}

// HitTestFiltered finds the point nearest to a screen point, among the
// points accepted by the filter; a nil filter accepts all points. The
// nearest point is chosen by score, which is the screen distance plus
// [OnCurvePenalty] for anchors, so that an anchor never shadows a
// handle sitting on top of it. A non-positive maxDist means
// [MinClickDistance].
func (s *EditSession) HitTestFiltered(pt curve.Point, maxDist float64, filter func(PathPoint) bool) (EntityID, bool) {
	if maxDist <= 0 {
		maxDist = MinClickDistance
	}
	bestScore := math.MaxFloat64
	var bestID EntityID
	found := false
	for p := range s.Points() {
		if filter != nil && !filter(p) {
			continue
		}
		dist := p.ScreenDist(s.ViewPort, pt)
		score := dist
		if p.IsOnCurve() {
			score += OnCurvePenalty
		}
		if dist < maxDist && score < bestScore {
			bestScore = score
			bestID = p.ID
			found = true
		}
	}
	return bestID, found
}

// HitTestSegments finds the segment nearest to a screen point and the
// curve parameter of the nearest position on it. The search runs in
// design space and the resulting distance is compared against maxDist
// in screen units. A non-positive maxDist means [MinClickDistance].
func (s *EditSession) HitTestSegments(pt curve.Point, maxDist float64) (Segment, float64, bool) {
	if maxDist <= 0 {
		maxDist = MinClickDistance
	}
	dpt := s.ViewPort.FromScreen(pt)
	var bestSeg Segment
	var bestT float64
	bestDistSq := math.MaxFloat64
	found := false
	for _, path := range s.Paths {
		for seg := range path.Segments() {
			if distSq, t := seg.Nearest(dpt, curve.DefaultAccuracy); distSq < bestDistSq {
				bestSeg, bestT, bestDistSq = seg, t, distSq
				found = true
			}
		}
	}
	if found && bestDistSq*s.ViewPort.Zoom*s.ViewPort.Zoom < maxDist*maxDist {
		return bestSeg, bestT, true
	}
	return Segment{}, 0, false
}

// PointsInRect returns a selection of all points whose screen position
// lies inside a screen-space rectangle.
func (s *EditSession) PointsInRect(r curve.Rect) Selection {
	var sel Selection
	for pt := range s.Points() {
		if r.Contains(pt.ToScreen(s.ViewPort)) {
			sel.Insert(pt.ID)
		}
	}
	return sel
}

// ActivePath returns the path being drawn. A path counts as being
// drawn when exactly one point, belonging to it, is selected.
func (s *EditSession) ActivePath() (*Path, bool) {
	if s.Selection.Len() != 1 {
		return nil, false
	}
	return s.PathForPoint(s.Selection.IDs()[0])
}

// PathForPoint returns the path that owns the point with the given id.
func (s *EditSession) PathForPoint(id EntityID) (*Path, bool) {
	for _, path := range s.Paths {
		if path.Contains(id) {
			return path, true
		}
	}
	return nil, false
}

// PathPointForID returns the point with the given id.
func (s *EditSession) PathPointForID(id EntityID) (PathPoint, bool) {
	path, ok := s.PathForPoint(id)
	if !ok {
		return PathPoint{}, false
	}
	return path.PointForID(id)
}

// AddPath adds a freshly drawn path to the session and selects its
// first point.
func (s *EditSession) AddPath(path *Path) {
	s.Paths = append(s.Paths, path)
	s.Selection.SelectOne(path.StartPoint().ID)
}

// TogglePointKind flips the kind of the point with the given id.
func (s *EditSession) TogglePointKind(id EntityID) {
	if path, ok := s.PathForPoint(id); ok {
		path.TogglePointKind(id)
	}
}

// ToggleGuide flips a horizontal guide to vertical or vice versa,
// moving it to the given screen position.
func (s *EditSession) ToggleGuide(id EntityID, pos curve.Point) {
	dpos := s.ViewPort.FromScreen(pos)
	for i := range s.Guides {
		if s.Guides[i].ID == id {
			s.Guides[i].ToggleVerticalHoriz(dpos)
		}
	}
}

// UpdateHandle moves the selected handle to a new screen position,
// with optional axis locking against its anchor. It is a no-op unless
// exactly one point is selected.
func (s *EditSession) UpdateHandle(pos curve.Point, locked bool) {
	if s.Selection.Len() != 1 {
		return
	}
	id := s.Selection.IDs()[0]
	if path, ok := s.PathForPoint(id); ok {
		path.UpdateHandle(id, s.ViewPort.FromScreen(pos), locked)
	}
}

// DeleteSelection deletes the selected points, with each path's delete
// cascade, and removes selected guides. Paths left without points are
// removed. When the deletion touched a single path, a nearby surviving
// point of that path becomes the new selection.
func (s *EditSession) DeleteSelection() {
	toDelete := s.Selection.Clone()
	s.Selection.Clear()
	setSel := toDelete.ParentCount() == 1

	for group := range toDelete.GroupedByParent() {
		if path, ok := s.PathForPoint(group[0]); ok {
			if newSel, ok := path.DeletePoints(group); ok && setSel {
				s.Selection.SelectOne(newSel)
			}
		} else if group[0].IsGuide() {
			s.Guides = slices.DeleteFunc(s.Guides, func(g Guide) bool {
				return slices.Contains(group, g.ID)
			})
		}
	}
	s.Paths = slices.DeleteFunc(s.Paths, func(p *Path) bool {
		if p.Len() == 0 {
			logger().Debug("removing emptied path", "path", p.ID())
			return true
		}
		return false
	})
}

// SelectAll selects every point of every path.
func (s *EditSession) SelectAll() {
	var ids []EntityID
	for pt := range s.Points() {
		ids = append(ids, pt.ID)
	}
	s.Selection = NewSelection(ids...)
}

// SelectNext moves a single-point selection to the next point on its
// path.
func (s *EditSession) SelectNext() {
	if s.Selection.Len() != 1 {
		return
	}
	id := s.Selection.IDs()[0]
	if path, ok := s.PathForPoint(id); ok {
		if next, ok := path.NextPoint(id); ok {
			id = next.ID
		}
	}
	s.Selection.SelectOne(id)
}

// SelectPrev moves a single-point selection to the previous point on
// its path.
func (s *EditSession) SelectPrev() {
	if s.Selection.Len() != 1 {
		return
	}
	id := s.Selection.IDs()[0]
	if path, ok := s.PathForPoint(id); ok {
		if prev, ok := path.PrevPoint(id); ok {
			id = prev.ID
		}
	}
	s.Selection.SelectOne(id)
}

// SelectPath adds all points of the path with the given id to the
// selection. With toggle set, points that were already selected are
// deselected instead. It reports whether the path exists.
func (s *EditSession) SelectPath(id EntityID, toggle bool) bool {
	idx := slices.IndexFunc(s.Paths, func(p *Path) bool { return p.ID() == id })
	if idx == -1 {
		return false
	}
	for _, pt := range s.Paths[idx].Points() {
		if !s.Selection.Insert(pt.ID) && toggle {
			s.Selection.Remove(pt.ID)
		}
	}
	return true
}

// NudgeSelection translates the selected points and guides.
func (s *EditSession) NudgeSelection(nudge DVec2) {
	if s.Selection.Len() == 0 {
		return
	}
	for group := range s.Selection.GroupedByParent() {
		if path, ok := s.PathForPoint(group[0]); ok {
			path.NudgePoints(group, nudge)
		} else if group[0].IsGuide() {
			for _, id := range group {
				for i := range s.Guides {
					if s.Guides[i].ID == id {
						s.Guides[i].Nudge(nudge)
					}
				}
			}
		}
	}
}

// NudgeAll translates every point of every path.
func (s *EditSession) NudgeAll(nudge DVec2) {
	for _, path := range s.Paths {
		path.NudgeAllPoints(nudge)
	}
}

// ScaleSelection scales the selected points about a fixed anchor.
func (s *EditSession) ScaleSelection(scale curve.Vec2, anchor DPoint) {
	if scale.IsInf() || scale.IsNaN() {
		panic(fmt.Sprintf("invalid scale %v", scale))
	}
	if s.Selection.Len() == 0 {
		return
	}
	for group := range s.Selection.GroupedByParent() {
		if path, ok := s.PathForPoint(group[0]); ok {
			path.ScalePoints(group, scale, anchor)
		}
	}
}

// SelectionBounds returns the design-space bounding box of the
// selected points. It returns the zero Rect if nothing is selected.
func (s *EditSession) SelectionBounds() curve.Rect {
	var bbox curve.Rect
	first := true
	for id := range s.Selection.All() {
		pt, ok := s.PathPointForID(id)
		if !ok {
			continue
		}
		raw := pt.Point.Raw()
		if first {
			bbox = curve.Rect{X0: raw.X, Y0: raw.Y, X1: raw.X, Y1: raw.Y}
			first = false
		} else {
			bbox = bbox.UnionPoint(raw)
		}
	}
	return bbox
}

// AlignSelection aligns the selected points along their bounding box's
// short axis: a selection that is taller than wide is aligned to a
// common x, otherwise to a common y.
func (s *EditSession) AlignSelection() {
	bbox := s.SelectionBounds()
	if bbox.Area() == 0 {
		return
	}
	var val float64
	setX := bbox.Width() < bbox.Height()
	if setX {
		val = math.Round(0.5 * (bbox.X0 + bbox.X1))
	} else {
		val = math.Round(0.5 * (bbox.Y0 + bbox.Y1))
	}
	for _, id := range s.Selection.IDs() {
		if path, ok := s.PathForPoint(id); ok {
			path.AlignPoint(id, val, setX)
		}
	}
}

// ReverseContours reverses the direction of every path with a selected
// point, or of all paths when the selection is empty.
func (s *EditSession) ReverseContours() {
	var toReverse []*Path
	for _, id := range s.Selection.IDs() {
		if path, ok := s.PathForPoint(id); ok && !slices.Contains(toReverse, path) {
			toReverse = append(toReverse, path)
		}
	}
	if len(toReverse) == 0 {
		toReverse = s.Paths
	}
	for _, path := range toReverse {
		path.Reverse()
	}
}

// AddGuide adds a guide and selects it. With one point selected, the
// guide is horizontal through that point; with two points selected, it
// runs through both; otherwise it is horizontal through the given
// screen position.
func (s *EditSession) AddGuide(pos curve.Point) {
	var guide Guide
	made := false
	switch ids := s.Selection.IDs(); s.Selection.Len() {
	case 1:
		if !ids[0].IsGuide() {
			if pt, ok := s.PathPointForID(ids[0]); ok {
				guide = NewHorizGuide(s.ids, pt.Point)
				made = true
			}
		}
	case 2:
		if !ids[0].IsGuide() && !ids[1].IsGuide() {
			pt1, ok1 := s.PathPointForID(ids[0])
			pt2, ok2 := s.PathPointForID(ids[1])
			if ok1 && ok2 {
				guide = NewAngleGuide(s.ids, pt1.Point, pt2.Point)
				made = true
			}
		}
	}
	if !made {
		guide = NewHorizGuide(s.ids, s.ViewPort.FromScreen(pos))
	}
	s.Selection.SelectOne(guide.ID)
	s.Guides = append(s.Guides, guide)
}
