package selector

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-selector-cache/internal/cacheinfra"
)

// CachedSelector keeps one memoized instance per cache key.
//
// The resolver, derivations, combiner and creator are fixed at Build time and
// shared by every instance. Instances are created lazily and live until they
// are removed or the cache is cleared. With the default store nothing is ever
// evicted: the caller owns the growth of the cache and must serialize access
// to the selector.
type CachedSelector[C any, K comparable, R any] struct {
	id         string
	name       string
	resolver   Resolver[C, K]
	inputs     []Derivation[C]
	combiner   Combiner[R]
	resultFunc any
	typed      bool
	creator    Creator[C, R]
	store      cacheinfra.Store[K, Memoized[C, R]]
	logger     *zap.Logger
}

// Select resolves the cache key for ctx, creates the instance for that key on
// first use and returns its result.
func (s *CachedSelector[C, K, R]) Select(ctx C) R {
	key := s.resolver(ctx)
	instance, created := s.store.LoadOrCreate(key, s.newInstance)
	if created {
		s.logger.Debug("selector instance created", s.fields(zap.Any("key", key))...)
	}
	return instance.Select(ctx)
}

// Func returns Select as a plain function value.
func (s *CachedSelector[C, K, R]) Func() func(C) R {
	return s.Select
}

// GetMatchingSelector returns the instance cached for the key of ctx without
// creating one. The boolean is false when no instance exists.
func (s *CachedSelector[C, K, R]) GetMatchingSelector(ctx C) (Memoized[C, R], bool) {
	return s.store.Load(s.resolver(ctx))
}

// RemoveMatchingSelector drops the instance cached for the key of ctx.
// Removing a key that has no instance is a no-op.
func (s *CachedSelector[C, K, R]) RemoveMatchingSelector(ctx C) {
	key := s.resolver(ctx)
	if s.store.Delete(key) {
		s.logger.Debug("selector instance removed", s.fields(zap.Any("key", key))...)
	}
}

// RemoveWhere drops every instance whose key matches fn and returns how many
// were removed.
func (s *CachedSelector[C, K, R]) RemoveWhere(fn func(key K) bool) int {
	var matched []K
	s.store.Range(func(key K, _ Memoized[C, R]) bool {
		if fn(key) {
			matched = append(matched, key)
		}
		return true
	})

	removed := 0
	for _, key := range matched {
		if s.store.Delete(key) {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("selector instances removed", s.fields(zap.Int("count", removed))...)
	}
	return removed
}

// ClearCache drops every instance. Instances obtained earlier keep working
// but are no longer reachable from the selector.
func (s *CachedSelector[C, K, R]) ClearCache() {
	n := s.store.Clear()
	s.logger.Debug("selector cache cleared", s.fields(zap.Int("count", n))...)
}

// Cache returns a snapshot of the key to instance mapping. Changing the
// returned map does not affect the selector.
func (s *CachedSelector[C, K, R]) Cache() map[K]Memoized[C, R] {
	out := make(map[K]Memoized[C, R], s.store.Len())
	s.store.Range(func(key K, instance Memoized[C, R]) bool {
		out[key] = instance
		return true
	})
	return out
}

// Keys returns the keys that currently have an instance, in no particular order.
func (s *CachedSelector[C, K, R]) Keys() []K {
	keys := make([]K, 0, s.store.Len())
	s.store.Range(func(key K, _ Memoized[C, R]) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Len returns the number of cached instances.
func (s *CachedSelector[C, K, R]) Len() int {
	return s.store.Len()
}

// ResultFunc returns the combiner given at construction. For the typed
// Create1..Create4 builders this is the typed function.
func (s *CachedSelector[C, K, R]) ResultFunc() any {
	return s.resultFunc
}

// Resolver returns the key resolver.
func (s *CachedSelector[C, K, R]) Resolver() Resolver[C, K] {
	return s.resolver
}

// Dependencies returns the input derivations.
func (s *CachedSelector[C, K, R]) Dependencies() []Derivation[C] {
	return append([]Derivation[C](nil), s.inputs...)
}

// ID returns the unique id assigned at Build time.
func (s *CachedSelector[C, K, R]) ID() string {
	return s.id
}

// Name returns the name set with WithName.
func (s *CachedSelector[C, K, R]) Name() string {
	return s.name
}

func (s *CachedSelector[C, K, R]) newInstance() Memoized[C, R] {
	instance := s.creator(s.inputs, s.combiner)
	if !s.typed {
		return instance
	}
	return &typedInstance[C, R]{Memoized: instance, resultFunc: s.resultFunc}
}

// typedInstance reports the typed function given to Create1..Create4 instead
// of the variadic adapter the creator received.
type typedInstance[C, R any] struct {
	Memoized[C, R]
	resultFunc any
}

func (t *typedInstance[C, R]) ResultFunc() any {
	return t.resultFunc
}

func (s *CachedSelector[C, K, R]) fields(extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("selector", s.name),
		zap.String("selector_id", s.id),
	}, extra...)
}
