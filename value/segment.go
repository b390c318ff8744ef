package value

// Segment is an ordered sequence of owned, possibly-null Values. It
// doubles as a random-access array (Set/Get/Insert/Extract/Swap at an
// index, auto-extending with null fill) and as a stack (PushBack/PopBack/
// Top/TransferLastTo/ExtractTop).
type Segment struct {
	slots   []Value
	numUsed int
}

// NewSegment returns an empty Segment.
func NewSegment() *Segment {
	return &Segment{}
}

// NewSegmentFrom builds a Segment owning the given Values in order.
func NewSegmentFrom(vals ...Value) *Segment {
	s := &Segment{slots: append([]Value(nil), vals...)}
	s.recomputeNumUsed()
	return s
}

func (s *Segment) recomputeNumUsed() {
	n := len(s.slots)
	for n > 0 && IsNull(s.slots[n-1]) {
		n--
	}
	s.numUsed = n
}

// Size returns the physical slot count, which may exceed NumUsedSlots.
func (s *Segment) Size() int {
	return len(s.slots)
}

// NumUsedSlots reports the smallest N such that every index >= N holds a
// null Value.
func (s *Segment) NumUsedSlots() int {
	return s.numUsed
}

func (s *Segment) ensure(n int) {
	for len(s.slots) < n {
		s.slots = append(s.slots, nil)
	}
}

// Get returns the Value at index, or Null if out of range.
func (s *Segment) Get(index int) Value {
	if index < 0 || index >= len(s.slots) {
		return Null
	}
	v := s.slots[index]
	if v == nil {
		return Null
	}
	return v
}

// Set clones val (by reference, since Values are immutable once boxed)
// into index, auto-extending with null fill as needed.
func (s *Segment) Set(index int, val Value) {
	s.ensure(index + 1)
	s.slots[index] = val
	if index+1 > s.numUsed && !IsNull(val) {
		s.numUsed = index + 1
	} else if index < s.numUsed && IsNull(val) {
		s.recomputeNumUsed()
	}
}

// Extract returns the Value at index and replaces it with Null, handing
// ownership to the caller.
func (s *Segment) Extract(index int) Value {
	v := s.Get(index)
	s.Set(index, nil)
	return v
}

// Swap exchanges the Values at i and j.
func (s *Segment) Swap(i, j int) {
	s.ensure(max(i, j) + 1)
	s.slots[i], s.slots[j] = s.slots[j], s.slots[i]
	s.recomputeNumUsed()
}

// Insert inserts val at index, shifting subsequent elements up.
func (s *Segment) Insert(index int, val Value) {
	s.ensure(index)
	tail := append([]Value(nil), s.slots[index:]...)
	s.slots = append(s.slots[:index], val)
	s.slots = append(s.slots, tail...)
	s.recomputeNumUsed()
}

// PushBack appends val as a new top-of-stack element.
func (s *Segment) PushBack(val Value) {
	s.slots = append(s.slots, val)
	if !IsNull(val) {
		s.numUsed = len(s.slots)
	}
}

// PopBack removes and discards the last element.
func (s *Segment) PopBack() {
	if len(s.slots) == 0 {
		return
	}
	s.slots = s.slots[:len(s.slots)-1]
	s.recomputeNumUsed()
}

// Top returns the last element, or Null if empty.
func (s *Segment) Top() Value {
	if len(s.slots) == 0 {
		return Null
	}
	return s.Get(len(s.slots) - 1)
}

// ExtractTop returns the last element and removes it.
func (s *Segment) ExtractTop() Value {
	v := s.Top()
	s.PopBack()
	return v
}

// TransferLastTo moves this Segment's last element onto the front of dst,
// used by RPOPLPUSH-style atomic transfers.
func (s *Segment) TransferLastTo(dst *Segment) Value {
	v := s.ExtractTop()
	dst.Insert(0, v)
	return v
}

// Truncate keeps only the first n physical slots.
func (s *Segment) Truncate(n int) {
	if n < len(s.slots) {
		s.slots = s.slots[:n]
	}
	s.recomputeNumUsed()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
