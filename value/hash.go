package value

// Hash is a reference-shared mapping from String keys, preserving
// insertion order, to Values. It pairs a NameMap of keys with a Segment
// of values whose indices run in parallel.
type Hash struct {
	keys   *NameMap
	values *Segment
}

// NewHash returns an empty Hash.
func NewHash() *Hash {
	return &Hash{keys: NewNameMap(), values: NewSegment()}
}

func (h *Hash) accept(v Visitor) error { return v.VisitHash(h) }

// Set assigns val to key, overwriting any existing entry for key.
func (h *Hash) Set(key string, val Value) {
	idx := h.keys.Add(key)
	h.values.Set(idx, val)
}

// Get returns the value stored for key, or (Null, false) if absent.
func (h *Hash) Get(key string) (Value, bool) {
	idx, ok := h.keys.Find(key)
	if !ok {
		return Null, false
	}
	return h.values.Get(idx), true
}

// Delete removes key's entry, if present.
func (h *Hash) Delete(key string) bool {
	idx, ok := h.keys.Find(key)
	if !ok {
		return false
	}
	h.values.Set(idx, nil)
	return true
}

// Len returns the number of live (non-deleted) keys. Deleted keys keep
// their index reserved but hold a null value, matching NameMap's
// append-only discipline, and are not counted.
func (h *Hash) Len() int {
	n := 0
	for _, name := range h.keys.Names() {
		idx, _ := h.keys.Find(name)
		if !IsNull(h.values.Get(idx)) {
			n++
		}
	}
	return n
}

// Keys returns the live (non-deleted) key names in insertion order.
func (h *Hash) Keys() []string {
	names := h.keys.Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		idx, _ := h.keys.Find(name)
		if !IsNull(h.values.Get(idx)) {
			out = append(out, name)
		}
	}
	return out
}
