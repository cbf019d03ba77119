package selector

// Derivation extracts one intermediate value from the call context.
// A derivation reads only the fields of C it needs.
type Derivation[C any] func(ctx C) any

// Combiner produces the final value from the intermediate values, one per
// derivation, in declaration order.
type Combiner[R any] func(values ...any) R

// Resolver computes the cache key for a call context.
//
// Keys follow Go map semantics. A key holding a float NaN never equals
// itself: every call creates a new instance that GetMatchingSelector,
// RemoveMatchingSelector and RemoveWhere cannot reach, and only ClearCache
// drops it.
type Resolver[C any, K comparable] func(ctx C) K

// Memoized is a single memoized selector instance bound to one cache key.
type Memoized[C, R any] interface {
	// Select runs the derivations and returns the cached result when none of
	// their values changed since the last call.
	Select(ctx C) R
	// ResultFunc returns the result function the instance was built with.
	// For Create1..Create4 selectors this is the typed function.
	ResultFunc() any
	// Dependencies returns the derivations the instance was built with.
	Dependencies() []Derivation[C]
	// LastResult returns the most recently computed result.
	LastResult() (R, bool)
	// Recomputations reports how many times the combiner ran.
	Recomputations() int
	// ResetRecomputations sets the recomputation counter back to zero.
	ResetRecomputations()
}

// Input adapts a typed function into a Derivation. It is the way to feed one
// cached selector into another:
//
//	inner := selector.MustBuild(...)
//	outer := selector.Create([]selector.Derivation[State]{selector.Input(inner.Select)}, ...)
//
// A nil fn yields a nil Derivation, which Build reports as a configuration error.
func Input[C, A any](fn func(C) A) Derivation[C] {
	if fn == nil {
		return nil
	}
	return func(ctx C) any {
		return fn(ctx)
	}
}

// as converts an intermediate value back to its declared type. A nil
// interface becomes the zero value so pointer and interface results work.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
