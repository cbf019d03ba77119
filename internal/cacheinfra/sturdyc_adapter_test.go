package cacheinfra

import (
	"fmt"
	"testing"
	"time"
)

func boundedConfig() Config {
	cfg := DefaultBoundedConfig()
	cfg.Capacity = 100
	cfg.NumShards = 2
	cfg.TTL = time.Minute
	return cfg
}

func TestSturdycOptions(t *testing.T) {
	cfg := boundedConfig()
	if opts := cfg.sturdycOptions(); len(opts) != 0 {
		t.Errorf("expected no options without an eviction interval, got %d", len(opts))
	}

	cfg.EvictionInterval = time.Second
	if opts := cfg.sturdycOptions(); len(opts) != 1 {
		t.Errorf("expected one option with an eviction interval, got %d", len(opts))
	}

	store, err := NewStore[string, int](cfg, nil)
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if _, ok := store.(*sturdycStore[string, int]); !ok {
		t.Errorf("expected *sturdycStore, got %T", store)
	}
}

func TestSturdycStore_StructKeys(t *testing.T) {
	type key struct {
		List   int
		Filter string
	}

	store, err := NewStore[key, string](boundedConfig(), nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	store.LoadOrCreate(key{1, "open"}, func() string { return "a" })
	store.LoadOrCreate(key{1, "done"}, func() string { return "b" })

	if v, ok := store.Load(key{1, "open"}); !ok || v != "a" {
		t.Errorf("expected a, got %q (%v)", v, ok)
	}

	seen := map[key]string{}
	store.Range(func(k key, v string) bool {
		seen[k] = v
		return true
	})
	if len(seen) != 2 || seen[key{1, "done"}] != "b" {
		t.Errorf("expected typed keys from Range, got %v", seen)
	}
}

func TestSturdycStore_TTLExpiry(t *testing.T) {
	cfg := boundedConfig()
	cfg.TTL = 20 * time.Millisecond

	store, err := NewStore[int, int](cfg, nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	store.LoadOrCreate(1, func() int { return 1 })
	time.Sleep(50 * time.Millisecond)

	if _, ok := store.Load(1); ok {
		t.Error("expected entry to expire")
	}
	if _, created := store.LoadOrCreate(1, func() int { return 2 }); !created {
		t.Error("expected a new value after expiry")
	}
	if v, _ := store.Load(1); v != 2 {
		t.Errorf("expected 2, got %d", v)
	}
}

func TestSturdycStore_CapacityEviction(t *testing.T) {
	cfg := boundedConfig()
	cfg.Capacity = 10
	cfg.NumShards = 1
	cfg.EvictionPercentage = 50

	store, err := NewStore[string, int](cfg, nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	for i := 0; i < 50; i++ {
		store.LoadOrCreate(fmt.Sprintf("k%d", i), func() int { return i })
	}

	if n := store.Len(); n == 0 || n > cfg.Capacity {
		t.Errorf("expected between 1 and %d entries, got %d", cfg.Capacity, n)
	}
}
