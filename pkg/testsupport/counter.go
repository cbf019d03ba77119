package testsupport

import "sync/atomic"

// Counter counts invocations of a wrapped function. It is safe for
// concurrent use so tests can share it across goroutines.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a zeroed Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Inc records one call.
func (c *Counter) Inc() {
	c.n.Add(1)
}

// Count returns the number of recorded calls.
func (c *Counter) Count() int {
	return int(c.n.Load())
}

// Reset sets the count back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}

// Counted wraps a single argument function so every call is recorded on c.
func Counted[A, R any](c *Counter, fn func(A) R) func(A) R {
	return func(a A) R {
		c.Inc()
		return fn(a)
	}
}

// CountedVariadic wraps a variadic combiner so every call is recorded on c.
func CountedVariadic[R any](c *Counter, fn func(values ...any) R) func(values ...any) R {
	return func(values ...any) R {
		c.Inc()
		return fn(values...)
	}
}
