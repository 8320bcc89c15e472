package contour

import (
	"iter"
	"slices"
)

// A Selection is a sorted set of selected entities: points, paths, or
// guides. The zero value is an empty selection.
type Selection struct {
	items []EntityID
}

// NewSelection returns a selection of the given ids.
func NewSelection(ids ...EntityID) Selection {
	items := slices.Clone(ids)
	slices.SortFunc(items, EntityID.Compare)
	items = slices.Compact(items)
	return Selection{items: items}
}

// Len returns the number of selected items.
func (s Selection) Len() int { return len(s.items) }

// Contains reports whether the selection contains this item.
func (s Selection) Contains(id EntityID) bool {
	_, found := slices.BinarySearchFunc(s.items, id, EntityID.Compare)
	return found
}

// Insert adds an item to the selection, reporting whether it was not
// previously present.
func (s *Selection) Insert(id EntityID) bool {
	idx, found := slices.BinarySearchFunc(s.items, id, EntityID.Compare)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, idx, id)
	return true
}

// Remove removes an item from the selection, reporting whether it was
// present.
func (s *Selection) Remove(id EntityID) bool {
	idx, found := slices.BinarySearchFunc(s.items, id, EntityID.Compare)
	if !found {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

// SelectOne sets the selection to contain a single item.
func (s *Selection) SelectOne(id EntityID) {
	s.items = append(s.items[:0], id)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = s.items[:0]
}

// IDs returns the selected ids in sorted order. The slice is the
// selection's own storage; treat it as read-only.
func (s Selection) IDs() []EntityID { return s.items }

// All iterates the selected ids in sorted order.
func (s Selection) All() iter.Seq[EntityID] {
	return slices.Values(s.items)
}

// GroupedByParent iterates the selection as runs of ids sharing a
// parent, such as all the selected points of one path. The yielded
// slices alias the selection's storage.
func (s Selection) GroupedByParent() iter.Seq[[]EntityID] {
	return func(yield func([]EntityID) bool) {
		start := 0
		for i := 1; i <= len(s.items); i++ {
			if i == len(s.items) || !s.items[i].ParentEq(s.items[start]) {
				if !yield(s.items[start:i]) {
					return
				}
				start = i
			}
		}
	}
}

// ParentCount returns the number of distinct parents represented in
// the selection.
func (s Selection) ParentCount() int {
	n := 0
	for range s.GroupedByParent() {
		n++
	}
	return n
}

// Union returns the union of two selections.
func (s Selection) Union(other Selection) Selection {
	out := make([]EntityID, 0, len(s.items)+len(other.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch c := s.items[i].Compare(other.items[j]); {
		case c < 0:
			out = append(out, s.items[i])
			i++
		case c > 0:
			out = append(out, other.items[j])
			j++
		default:
			out = append(out, s.items[i])
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, other.items[j:]...)
	return Selection{items: out}
}

// SymmetricDifference returns the items present in exactly one of the
// two selections.
func (s Selection) SymmetricDifference(other Selection) Selection {
	var out []EntityID
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch c := s.items[i].Compare(other.items[j]); {
		case c < 0:
			out = append(out, s.items[i])
			i++
		case c > 0:
			out = append(out, other.items[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, other.items[j:]...)
	return Selection{items: out}
}

// Clone returns a copy of the selection.
func (s Selection) Clone() Selection {
	return Selection{items: slices.Clone(s.items)}
}
