package cacheinfra

import (
	"sync"

	"github.com/viccon/sturdyc"
)

// sturdycEntry keeps the original key next to the value so Range can hand
// typed keys back even though sturdyc indexes by string.
type sturdycEntry[K comparable, V any] struct {
	key   K
	value V
}

// sturdycStore wraps a sturdyc client. Entries may be evicted by capacity or
// TTL, after which LoadOrCreate builds a fresh value for the key.
type sturdycStore[K comparable, V any] struct {
	mu     sync.Mutex
	client *sturdyc.Client[sturdycEntry[K, V]]
	keyFn  func(K) string
}

// newSturdycStore expects a validated configuration.
func newSturdycStore[K comparable, V any](cfg Config, keyFn func(K) string) *sturdycStore[K, V] {
	client := sturdyc.New[sturdycEntry[K, V]](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.sturdycOptions()...,
	)

	return &sturdycStore[K, V]{client: client, keyFn: keyFn}
}

func (s *sturdycStore[K, V]) Load(key K) (V, bool) {
	e, ok := s.client.Get(s.keyFn(key))
	return e.value, ok
}

// LoadOrCreate serializes creation so two callers never build two values for one key.
func (s *sturdycStore[K, V]) LoadOrCreate(key K, create func() V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.keyFn(key)
	if e, ok := s.client.Get(id); ok {
		return e.value, false
	}

	v := create()
	s.client.Set(id, sturdycEntry[K, V]{key: key, value: v})
	return v, true
}

func (s *sturdycStore[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.keyFn(key)
	if _, ok := s.client.Get(id); !ok {
		return false
	}
	s.client.Delete(id)
	return true
}

func (s *sturdycStore[K, V]) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.client.ScanKeys()
	for _, id := range ids {
		s.client.Delete(id)
	}
	return len(ids)
}

func (s *sturdycStore[K, V]) Len() int {
	return len(s.client.ScanKeys())
}

func (s *sturdycStore[K, V]) Range(fn func(key K, value V) bool) {
	for _, id := range s.client.ScanKeys() {
		e, ok := s.client.Get(id)
		if !ok {
			continue
		}
		if !fn(e.key, e.value) {
			return
		}
	}
}
