// Package contour implements the editing model for cubic Bézier
// contours, the kind found in font glyphs: a point-list data structure
// with stable identities, the mutations an interactive outline editor
// needs, and the tools that drive them.
//
// # Coordinate spaces
//
// All geometry lives in design space, the font's own coordinate system:
// y grows upward and coordinates are always whole numbers. [DPoint] and
// [DVec2] enforce this. A [ViewPort] maps design space to screen space,
// which is zoomed, y-down, and continuous. Input arrives in screen
// space and is converted at the boundary.
//
// # Paths and points
//
// A [Path] is a single open or closed contour made of [PathPoint]s.
// On-curve points are anchors and may be corners or smooth; off-curve
// points are the control handles of cubic segments. Every point carries
// an [EntityID] that survives any mutation of the path, so selections
// remain valid while the geometry changes underneath them.
//
// Closed paths are stored rotated one place to the left: the first
// logical point is kept at the end of the storage slice, which lets a
// closed path start mid-segment without special cases. [Path.Points]
// exposes storage order, [Path.PointsInOrder] logical order.
//
// # Sessions and tools
//
// An [EditSession] owns the paths, guides, and selection for one glyph
// and answers hit-test queries. The [Pen], [Select], [Knife],
// [Rectangle], and [Ellipse] tools translate pointer gestures, delivered
// through [Mouse], into session mutations. Each mutation reports an [EditType] so a caller can group
// consecutive edits into undo steps.
//
// The package performs no drawing. Rendering, undo storage, and file
// formats beyond the flat [PointRecord] list are the caller's job.
package contour
