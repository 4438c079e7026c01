package domain

// Wishlist is an ordered set of product ids.
type Wishlist struct {
	IDs []int
}

// Toggle adds id when absent and removes it otherwise. It reports whether
// id is now in the list.
func (w *Wishlist) Toggle(id int) bool {
	for i, v := range w.IDs {
		if v == id {
			w.IDs = append(w.IDs[:i], w.IDs[i+1:]...)
			return false
		}
	}
	w.IDs = append(w.IDs, id)
	return true
}

func (w *Wishlist) Contains(id int) bool {
	for _, v := range w.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Normalize drops non-positive and repeated ids, keeping first occurrences.
func Normalize(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
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
