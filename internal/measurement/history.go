package measurement

// History is the ordered list of completed measurements.
// Entries are appended in completion order and never changed or removed.
type History struct {
	items []Measurement
}

// Append stores a copy of a completed measurement.
// Incomplete measurements are rejected and false is returned.
func (h *History) Append(m *Measurement) bool {
	if m == nil || !m.IsComplete() {
		return false
	}
	h.items = append(h.items, *m.Clone())
	return true
}

// Len returns the number of completed measurements
func (h *History) Len() int {
	return len(h.items)
}

// All returns copies of every measurement in completion order
func (h *History) All() []Measurement {
	out := make([]Measurement, 0, len(h.items))
	for i := range h.items {
		out = append(out, *h.items[i].Clone())
	}
	return out
}

// Each calls fn for every measurement in completion order
func (h *History) Each(fn func(i int, m Measurement)) {
	for i := range h.items {
		fn(i, *h.items[i].Clone())
	}
}
