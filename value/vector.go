package value

// Vector is a reference-shared, heap-resident ordered sequence of Values.
// Cloning a Value holding a Vector never deep-copies it; all holders
// observe the same backing Segment.
type Vector struct {
	seg *Segment
}

// NewVector returns an empty Vector.
func NewVector() *Vector {
	return &Vector{seg: NewSegment()}
}

// VectorOf builds a Vector owning the given Values in order, the
// "builder-then-freeze" pattern for what was interior mutation during
// construction in the reference implementation.
func VectorOf(vals ...Value) *Vector {
	return &Vector{seg: NewSegmentFrom(vals...)}
}

// VectorOfStrings builds a Vector of String values from Go strings.
func VectorOfStrings(strs ...string) *Vector {
	vals := make([]Value, len(strs))
	for i, s := range strs {
		vals[i] = NewString(s)
	}
	return VectorOf(vals...)
}

func (vec *Vector) accept(v Visitor) error { return v.VisitVector(vec) }

// Segment returns the backing Segment so callers can use the array/stack
// operations directly (PushBack, Extract, TransferLastTo, ...).
func (vec *Vector) Segment() *Segment { return vec.seg }

// Len returns the element count: the backing Segment's physical size,
// so trailing null elements are counted.
func (vec *Vector) Len() int { return vec.seg.Size() }

// Get returns the element at index, or Null if out of range.
func (vec *Vector) Get(index int) Value { return vec.seg.Get(index) }

// PushBack appends val.
func (vec *Vector) PushBack(val Value) { vec.seg.PushBack(val) }

// Values returns the logical elements as a plain slice.
func (vec *Vector) Values() []Value {
	out := make([]Value, vec.Len())
	for i := range out {
		out[i] = vec.Get(i)
	}
	return out
}
