package contour

import (
	"cmp"
	"fmt"
)

// Reserved values for the parent component of an EntityID. Parents
// below reservedIDCount are type namespaces, not real entities.
const (
	noParentTypeID  uint64 = 0
	guideTypeID     uint64 = 1
	reservedIDCount uint64 = 5
)

// An EntityID identifies a point, path, or guide within an editing
// session. The id has two parts: the parent identifies the type of the
// entity or the containing path (for points), and the local part
// identifies the item itself.
//
// IDs are allocated once and never reused, so a selection or an undo
// record can hold ids across arbitrary mutations without them being
// silently rebound to different entities.
type EntityID struct {
	Parent uint64
	Local  uint64
}

// An IDSource hands out fresh entity ids, starting above the reserved
// range. Everything in one editing session must share one source; the
// zero value is ready to use.
//
// An IDSource is not safe for concurrent use. Sessions are owned by a
// single goroutine, and ids are only allocated from mutations on that
// goroutine.
type IDSource struct {
	next uint64
}

func (src *IDSource) alloc() uint64 {
	if src.next < reservedIDCount {
		src.next = reservedIDCount
	}
	id := src.next
	src.next++
	return id
}

// Next returns a fresh id with no parent, suitable for a new path.
func (src *IDSource) Next() EntityID {
	return EntityID{Parent: noParentTypeID, Local: src.alloc()}
}

// NextChild returns a fresh id belonging to parent.
func (src *IDSource) NextChild(parent EntityID) EntityID {
	return EntityID{Parent: parent.Local, Local: src.alloc()}
}

// NextGuide returns a fresh id in the guide namespace.
func (src *IDSource) NextGuide() EntityID {
	return EntityID{Parent: guideTypeID, Local: src.alloc()}
}

// ParentID returns the id of this id's parent. If the parent has a
// parent of its own, it is not recoverable from the child.
func (id EntityID) ParentID() EntityID {
	return EntityID{Parent: noParentTypeID, Local: id.Parent}
}

// IsGuide reports whether the id identifies a guide.
func (id EntityID) IsGuide() bool {
	return id.Parent == guideTypeID
}

// ParentEq reports whether two ids have the same parent.
func (id EntityID) ParentEq(other EntityID) bool {
	return id.Parent == other.Parent
}

// IsChildOf reports whether id belongs to parent.
func (id EntityID) IsChildOf(parent EntityID) bool {
	return id.Parent == parent.Local
}

// Compare orders ids by parent, then by allocation order. It returns
// -1, 0, or +1 like [cmp.Compare].
func (id EntityID) Compare(other EntityID) int {
	if c := cmp.Compare(id.Parent, other.Parent); c != 0 {
		return c
	}
	return cmp.Compare(id.Local, other.Local)
}

func (id EntityID) String() string {
	return fmt.Sprintf("id%d.%d", id.Parent, id.Local)
}
