package contour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// click presses and releases the mouse at a design-space position.
func click(s *EditSession, m *Mouse, tool Tool, pt DPoint, mods Modifiers) {
	ev := MouseEvent{Pos: s.ViewPort.ToScreen(pt), Mods: mods, Count: 1}
	m.MouseDown(s, ev, tool)
	m.MouseUp(s, ev, tool)
}

func TestPenDrawsPath(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	require.Len(t, s.Paths, 1)
	edit, ok := pen.TakeEdit()
	require.True(t, ok)
	assert.Equal(t, NormalEdit, edit)

	click(s, &m, pen, DPt(100, 0), Modifiers{})
	click(s, &m, pen, DPt(50, 100), Modifiers{})

	path := s.Paths[0]
	assert.False(t, path.Closed())
	assert.Equal(t, []DPoint{{0, 0}, {100, 0}, {50, 100}}, logicalPositions(path))
	// Each click leaves the new point selected, keeping the path active.
	assert.Equal(t, []EntityID{path.EndPoint().ID}, s.Selection.IDs())
}

func TestPenClosesOnStartClick(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	click(s, &m, pen, DPt(100, 0), Modifiers{})
	click(s, &m, pen, DPt(50, 100), Modifiers{})
	click(s, &m, pen, DPt(0, 0), Modifiers{})

	path := s.Paths[0]
	require.True(t, path.Closed())
	assert.Equal(t, []DPoint{{0, 0}, {100, 0}, {50, 100}}, logicalPositions(path))
	// The start point, now logically first, becomes the selection.
	assert.Equal(t, []EntityID{path.StartPoint().ID}, s.Selection.IDs())
	checkInvariants(t, path)
}

func TestPenShiftAxisLock(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	click(s, &m, pen, DPt(10, 3), Modifiers{Shift: true})

	assert.Equal(t, []DPoint{{0, 0}, {10, 0}}, logicalPositions(s.Paths[0]))
}

func TestPenDragPullsOutHandles(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	down := MouseEvent{Pos: s.ViewPort.ToScreen(DPt(10, 0)), Count: 1}
	m.MouseDown(s, down, pen)
	m.MouseMoved(s, MouseEvent{Pos: s.ViewPort.ToScreen(DPt(13, 4))}, pen)
	m.MouseUp(s, MouseEvent{Pos: s.ViewPort.ToScreen(DPt(13, 4)), Count: 1}, pen)

	path := s.Paths[0]
	// The drag upgrades the just-drawn line to a cubic: the outgoing
	// handle follows the cursor mirrored through the anchor, the
	// incoming one keeps its default position.
	assert.Equal(t, []DPoint{{0, 0}, {3, 0}, {7, -4}, {10, 0}}, logicalPositions(path))
	assert.Equal(t, OnCurveSmoothKind, path.EndPoint().Kind)

	trailing, ok := path.Trailing()
	require.True(t, ok)
	assert.Equal(t, DPt(13, 4), trailing)
	assert.True(t, path.ShouldDrawTrailing())

	edit, ok := pen.TakeEdit()
	require.True(t, ok)
	assert.Equal(t, DragUpEdit, edit)
	checkInvariants(t, path)
}

func TestPenClickAfterCurveKeepsNoTrailing(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	click(s, &m, pen, DPt(10, 0), Modifiers{})

	// A plain click on a line ending discards the trailing handle.
	_, ok := s.Paths[0].Trailing()
	assert.False(t, ok)
	assert.False(t, s.Paths[0].ShouldDrawTrailing())
}

func TestPenSplitsSegment(t *testing.T) {
	var ids IDSource
	path := mustFromRecords(t, &ids, []PointRecord{
		{1000, 1000, LineRecord, false},
		{0, 0, LineRecord, false},
		{2000, 0, LineRecord, false},
	})
	s := NewEditSession(&ids, path)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(500, 500), Modifiers{})

	assert.Equal(t, 4, path.Len())
	assert.Equal(t, []DPoint{{1000, 1000}, {500, 500}, {0, 0}, {2000, 0}}, logicalPositions(path))
	edit, ok := pen.TakeEdit()
	require.True(t, ok)
	assert.Equal(t, NormalEdit, edit)
	checkInvariants(t, path)
}

func TestPenDoubleClickClearsSelection(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids)
	pen := &Pen{}
	var m Mouse

	click(s, &m, pen, DPt(0, 0), Modifiers{})
	require.Equal(t, 1, s.Selection.Len())

	ev := MouseEvent{Pos: s.ViewPort.ToScreen(DPt(50, 50)), Count: 2}
	m.MouseDown(s, ev, pen)
	m.MouseUp(s, ev, pen)

	assert.Zero(t, s.Selection.Len())
	// With nothing selected there is no active path to keep drawing.
	click(s, &m, pen, DPt(100, 100), Modifiers{})
	assert.Len(t, s.Paths, 2)
}

func TestPenBackspaceDeletesSelection(t *testing.T) {
	var ids IDSource
	s := NewEditSession(&ids, closedTriangle(t, &ids))
	pen := &Pen{}
	s.Selection.SelectOne(s.Paths[0].Points()[0].ID)

	edit, ok := pen.KeyDown(s, KeyEvent{Key: KeyBackspace})
	require.True(t, ok)
	assert.Equal(t, NormalEdit, edit)
	assert.Equal(t, 2, s.Paths[0].Len())

	_, ok = pen.KeyDown(s, KeyEvent{Key: KeyTab})
	assert.False(t, ok)
}
