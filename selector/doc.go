// Package selector provides keyed memoization for derived state.
//
// # Overview
//
// A memoized selector remembers only its last input. When the same derivation
// runs for many parameter sets, such as one per list item, each call evicts
// the previous result. A CachedSelector keeps one memoized instance per cache
// key instead, so every key only recomputes when its own inputs change.
//
// Every function involved takes the same call context value C:
//
//   - Derivation: reads one intermediate value from C
//   - Combiner: builds the result from the intermediate values, positionally
//   - Resolver: computes the cache key from C
//
// # Basic Usage
//
//	type Ctx struct {
//		State *State
//		ID    int
//	}
//
//	itemValue := selector.MustBuild(
//		selector.Create1(
//			func(c Ctx) *Item { return c.State.Find(c.ID) },
//			func(item *Item) int { return item.Value * 2 },
//		),
//		func(c Ctx) int { return c.ID },
//	)
//
//	v := itemValue.Select(Ctx{State: state, ID: 1})
//
// Create takes an ordered slice of derivations for any number of inputs;
// Create1 to Create4 are typed shorthands. Build and MustBuild attach the
// resolver and options.
//
// # Memoization
//
// The memoized instance for a key is produced by a Creator. The default
// creator keeps a single slot and compares derivation values with
// ReferenceEqual. NewCreator accepts WithEqual and WithCacheSize to change
// that. A Creator is passed to Build either directly or through Options.
//
// # Cache Management
//
// The default store never evicts. Use RemoveMatchingSelector when a key will
// not be used again, RemoveWhere for bulk removal and ClearCache to drop
// everything. WithStore selects a concurrent or a bounded (sturdyc) store
// instead.
//
// # Errors
//
// Build validates everything up front and returns *ConfigError, which
// matches ErrInvalidConfig through errors.Is. Lookups of unknown keys are not
// errors. Panics raised by user functions propagate unchanged.
package selector
