package pgmap

// RangeFlags describe the bounds of a Range.
type RangeFlags uint8

const (
	// RangeEmpty marks a range containing no points.
	RangeEmpty RangeFlags = 1 << iota
	// RangeLowerInclusive marks an inclusive lower bound.
	RangeLowerInclusive
	// RangeUpperInclusive marks an inclusive upper bound.
	RangeUpperInclusive
	// RangeLowerInfinite marks an unbounded lower side.
	RangeLowerInfinite
	// RangeUpperInfinite marks an unbounded upper side.
	RangeUpperInfinite
)

// Range is the runtime representation of a PostgreSQL range value.
// A multirange is represented as []Range[T].
type Range[T any] struct {
	Lower T
	Upper T
	Flags RangeFlags
}

// NewRange returns a range with the given bounds.
func NewRange[T any](lower, upper T, lowerInclusive, upperInclusive bool) Range[T] {
	var flags RangeFlags
	if lowerInclusive {
		flags |= RangeLowerInclusive
	}
	if upperInclusive {
		flags |= RangeUpperInclusive
	}
	return Range[T]{Lower: lower, Upper: upper, Flags: flags}
}

// EmptyRange returns the empty range.
func EmptyRange[T any]() Range[T] {
	return Range[T]{Flags: RangeEmpty}
}

// IsEmpty reports whether the range contains no points.
func (r Range[T]) IsEmpty() bool { return r.Flags&RangeEmpty != 0 }

// LowerInclusive reports whether the lower bound is part of the range.
func (r Range[T]) LowerInclusive() bool { return r.Flags&RangeLowerInclusive != 0 }

// UpperInclusive reports whether the upper bound is part of the range.
func (r Range[T]) UpperInclusive() bool { return r.Flags&RangeUpperInclusive != 0 }

// LowerInfinite reports whether the range has no lower bound.
func (r Range[T]) LowerInfinite() bool { return r.Flags&RangeLowerInfinite != 0 }

// UpperInfinite reports whether the range has no upper bound.
func (r Range[T]) UpperInfinite() bool { return r.Flags&RangeUpperInfinite != 0 }
