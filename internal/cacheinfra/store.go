package cacheinfra

import "github.com/puzpuzpuz/xsync/v3"

// Store maps cache keys to values. Implementations keep at most one value per
// key; LoadOrCreate only calls create when the key is absent.
type Store[K comparable, V any] interface {
	Load(key K) (V, bool)
	LoadOrCreate(key K, create func() V) (value V, created bool)
	Delete(key K) bool
	Clear() int
	Len() int
	Range(fn func(key K, value V) bool)
}

// NewStore validates cfg and returns the matching store. keyFn turns keys into
// strings for the bounded store and must map distinct keys to distinct
// strings; nil uses an encoding that keeps pointer identity and unexported
// fields.
func NewStore[K comparable, V any](cfg Config, keyFn func(K) string) (Store[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindConcurrent:
		return &syncStore[K, V]{m: xsync.NewMapOf[K, V]()}, nil
	case KindBounded:
		if keyFn == nil {
			keyFn = comparableKey[K]
		}
		return newSturdycStore[K, V](cfg, keyFn), nil
	default:
		return &flatStore[K, V]{entries: make(map[K]V)}, nil
	}
}

// flatStore is a plain map owned by a single goroutine. As with any Go map,
// a key holding NaN never matches itself, so only Clear drops it.
type flatStore[K comparable, V any] struct {
	entries map[K]V
}

func (s *flatStore[K, V]) Load(key K) (V, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *flatStore[K, V]) LoadOrCreate(key K, create func() V) (V, bool) {
	if v, ok := s.entries[key]; ok {
		return v, false
	}
	v := create()
	s.entries[key] = v
	return v, true
}

func (s *flatStore[K, V]) Delete(key K) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *flatStore[K, V]) Clear() int {
	n := len(s.entries)
	clear(s.entries)
	return n
}

func (s *flatStore[K, V]) Len() int {
	return len(s.entries)
}

func (s *flatStore[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range s.entries {
		if !fn(k, v) {
			return
		}
	}
}

// syncStore is backed by xsync.MapOf, whose LoadOrCompute runs create at most
// once per key even under concurrent callers.
type syncStore[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

func (s *syncStore[K, V]) Load(key K) (V, bool) {
	return s.m.Load(key)
}

func (s *syncStore[K, V]) LoadOrCreate(key K, create func() V) (V, bool) {
	v, loaded := s.m.LoadOrCompute(key, create)
	return v, !loaded
}

func (s *syncStore[K, V]) Delete(key K) bool {
	_, ok := s.m.LoadAndDelete(key)
	return ok
}

func (s *syncStore[K, V]) Clear() int {
	n := s.m.Size()
	s.m.Clear()
	return n
}

func (s *syncStore[K, V]) Len() int {
	return s.m.Size()
}

func (s *syncStore[K, V]) Range(fn func(key K, value V) bool) {
	s.m.Range(fn)
}
