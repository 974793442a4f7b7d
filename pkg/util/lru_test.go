package util

import (
	"testing"
	"time"
)

func TestLRUCachePutGet(t *testing.T) {
	cache, err := NewWithConfig[string, int](CacheConfig{Capacity: 3})
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}

	cache.Put("a", 1)
	cache.Put("b", 2)

	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := cache.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestLRUCacheUpdateExistingKey(t *testing.T) {
	cache, _ := NewWithConfig[string, int](CacheConfig{Capacity: 2})

	cache.Put("a", 1)
	cache.Put("a", 10)

	if v, _ := cache.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
	if got := cache.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache, _ := NewWithConfig[string, int](CacheConfig{Capacity: 2})

	cache.Put("a", 1)
	cache.Put("b", 2)
	// Touch "a" so "b" becomes the eviction candidate.
	cache.Get("a")
	cache.Put("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("expected a to survive")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	cache, _ := NewWithConfig[string, int](CacheConfig{Capacity: 10, TTL: 20 * time.Millisecond})

	cache.Put("a", 1)
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected a before expiry")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := cache.Get("a"); ok {
		t.Error("expected a to have expired")
	}
	if got := cache.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestLRUCacheRequiresALimit(t *testing.T) {
	if _, err := NewWithConfig[string, int](CacheConfig{}); err == nil {
		t.Error("expected an error for a cache with no capacity and no TTL")
	}
}

func TestLRUCacheKeysOrder(t *testing.T) {
	cache, _ := NewWithConfig[string, int](CacheConfig{Capacity: 3})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)
	cache.Get("a")

	keys := cache.Keys()
	if len(keys) != 3 || keys[0] != "a" {
		t.Errorf("Keys() = %v, want a first", keys)
	}
}
