// Package throttler decides whether a repeated event should be suppressed.
package throttler

// Func returns true if the occurrence with the given ordinal should be
// throttled.
type Func func(value uint64) bool

// Throttler lets the first occurrences of an event through and then defers to
// its Func.
type Throttler struct {
	limit uint64
	fn    Func
}

// New returns a Throttler that never throttles the first limit occurrences
// and afterwards lets through only occurrences whose ordinal is a power of
// two.
func New(limit uint64) *Throttler {
	return &Throttler{
		limit: limit,
		fn:    ExceptPowersOfTwo,
	}
}

// WithFunc returns a copy of the Throttler that uses fn past the limit.
func (m Throttler) WithFunc(fn Func) *Throttler {
	m.fn = fn
	return &m
}

// Throttle returns true if the occurrence with the given ordinal should be
// throttled.
func (m *Throttler) Throttle(value uint64) bool {
	if value <= m.limit {
		return false
	}
	return m.fn(value)
}

// ExceptPowersOfTwo throttles every value that is not a power of two.
func ExceptPowersOfTwo(value uint64) bool {
	return !isPowerOfTwo(value)
}

func isPowerOfTwo(value uint64) bool {
	return value != 0 && (value&(value-1)) == 0
}
