package fdcore

// Domain is the common read interface shared by the three domain
// representations. Unlike a persistent, copy-on-write Domain, mutation
// here goes through the owning VarStore and Trail: a Domain is a mutable
// cell, and every mutator records its own undo entry before writing.
type Domain interface {
	// Kind reports whether this is an integer or float domain.
	Kind() Kind
	// IsEmpty reports whether the domain currently holds no values.
	IsEmpty() bool
	// IsFixed reports whether the domain is pinned to a single value
	// (singleton for integers, width < step for floats).
	IsFixed() bool
	// Min/Max return the current bounds. Behavior is undefined if empty.
	Min() Value
	Max() Value
	// Contains reports whether v lies in the domain.
	Contains(v Value) bool
	// Clone returns an independent copy (used for LP-bound snapshots and
	// tests; not used on the hot propagation path, which mutates in place
	// through the trail).
	Clone() Domain
	String() string
}

// integerDomain is implemented by BitSetDomain and SparseSetDomain: the
// subset of Domain operations that only make sense for discrete domains.
type integerDomain interface {
	Domain
	Remove(value int) (changed bool)
	SetMin(value int) (changed bool)
	SetMax(value int) (changed bool)
	IterateValues(f func(value int))
	Count() int
}

// selectIntegerDomain picks the representation by universe size: a
// bitset for universes of at most 128 values, a sparse-set otherwise. The
// choice is made once at variable-creation time and never changes.
func selectIntegerDomain(lo, hi int) integerDomain {
	universe := hi - lo + 1
	if universe <= 128 {
		return NewBitSetDomain(lo, hi)
	}
	return NewSparseSetDomain(lo, hi)
}
