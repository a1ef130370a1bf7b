package detail

// History is a back/forward stack of locations.
type History struct {
	entries []Location
	cursor  int
}

// NewHistory starts a history at the initial location.
func NewHistory(initial Location) *History {
	return &History{entries: []Location{initial}}
}

// Current returns the location under the cursor.
func (h *History) Current() Location {
	return h.entries[h.cursor]
}

// Push adds a location after the cursor and drops any forward entries.
func (h *History) Push(loc Location) {
	h.entries = append(h.entries[:h.cursor+1], loc)
	h.cursor++
}

// Replace swaps the current entry.
func (h *History) Replace(loc Location) {
	h.entries[h.cursor] = loc
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool { return h.cursor > 0 }

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool { return h.cursor < len(h.entries)-1 }

// Back moves the cursor one entry back.
func (h *History) Back() (Location, bool) {
	if !h.CanBack() {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (Location, bool) {
	if !h.CanForward() {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }
