package domain

import "errors"

// MaxItems is how many products can sit side by side.
const MaxItems = 3

var ErrFull = errors.New("compare list is full")

// List is the ordered set of products picked for comparison.
type List struct {
	IDs []int
}

// Toggle removes id when present, otherwise appends it. Adding to a full
// list returns ErrFull and leaves the list unchanged.
func (l *List) Toggle(id int) (bool, error) {
	for i, v := range l.IDs {
		if v == id {
			l.IDs = append(l.IDs[:i], l.IDs[i+1:]...)
			return false, nil
		}
	}
	if len(l.IDs) >= MaxItems {
		return false, ErrFull
	}
	l.IDs = append(l.IDs, id)
	return true, nil
}

// Normalize drops non-positive and repeated ids and keeps at most MaxItems.
func Normalize(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, MaxItems)
	for _, id := range ids {
		if len(out) == MaxItems {
			break
		}
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
