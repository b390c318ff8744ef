package bits

// SmallSet is a compact bitset of values 0..63, used for enum-like flag
// sets the way afl::bits::SmallSet backs compile-time enumerations; here
// it is a thin generic wrapper so callers can index it with their own
// named constants.
type SmallSet[T ~int] uint64

// Of builds a SmallSet containing exactly the given members.
func Of[T ~int](members ...T) SmallSet[T] {
	var s SmallSet[T]
	for _, m := range members {
		s = s.With(m)
	}
	return s
}

// With returns a copy of s with m added.
func (s SmallSet[T]) With(m T) SmallSet[T] {
	return s | (1 << uint(m))
}

// Without returns a copy of s with m removed.
func (s SmallSet[T]) Without(m T) SmallSet[T] {
	return s &^ (1 << uint(m))
}

// Contains reports whether m is a member of s.
func (s SmallSet[T]) Contains(m T) bool {
	return s&(1<<uint(m)) != 0
}

// Empty reports whether s has no members.
func (s SmallSet[T]) Empty() bool {
	return s == 0
}

// Len returns the number of members.
func (s SmallSet[T]) Len() int {
	return PopulationCount64(uint64(s))
}
