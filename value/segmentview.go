package value

// SegmentView is a cursor over a Segment (or a window of one) with
// destructive read semantics: Eat returns the next Value and advances;
// the typed Eat* helpers apply Access conversions and additionally report
// whether a non-null value was consumed.
type SegmentView struct {
	seg   *Segment
	pos   int
	limit int
}

// NewSegmentView returns a cursor over the whole of seg.
func NewSegmentView(seg *Segment) *SegmentView {
	return &SegmentView{seg: seg, limit: seg.Size()}
}

// NewSegmentViewFrom returns a cursor starting at start and running to the
// end of seg, used to strip a leading command verb before reading
// arguments.
func NewSegmentViewFrom(seg *Segment, start int) *SegmentView {
	return &SegmentView{seg: seg, pos: start, limit: seg.Size()}
}

// Remaining reports how many values are left to consume.
func (w *SegmentView) Remaining() int {
	if w.limit <= w.pos {
		return 0
	}
	return w.limit - w.pos
}

// Eat returns the next Value and advances the cursor, or Null if
// exhausted.
func (w *SegmentView) Eat() Value {
	if w.Remaining() <= 0 {
		return Null
	}
	v := w.seg.Get(w.pos)
	w.pos++
	return v
}

// Peek returns the next Value without advancing.
func (w *SegmentView) Peek() Value {
	if w.Remaining() <= 0 {
		return Null
	}
	return w.seg.Get(w.pos)
}

// EatString consumes the next Value as a String via Access.ToString. ok
// is false if the cursor was exhausted or the Value was null.
func (w *SegmentView) EatString() (s string, ok bool, err error) {
	if w.Remaining() <= 0 {
		return "", false, nil
	}
	v := w.Eat()
	if IsNull(v) {
		return "", false, nil
	}
	s, err = NewAccess(v).ToString()
	return s, err == nil, err
}

// EatInteger consumes the next Value as an Integer via Access.ToInteger.
func (w *SegmentView) EatInteger() (n int32, ok bool, err error) {
	if w.Remaining() <= 0 {
		return 0, false, nil
	}
	v := w.Eat()
	if IsNull(v) {
		return 0, false, nil
	}
	n, err = NewAccess(v).ToInteger()
	return n, err == nil, err
}
