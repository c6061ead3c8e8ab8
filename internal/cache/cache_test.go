package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string](10, time.Minute)

	if _, ok := s.Get("missing"); ok {
		t.Error("Get() on empty cache should miss")
	}

	s.Set("a", "one")
	got, ok := s.Get("a")
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if got != "one" {
		t.Errorf("Get() = %q, want %q", got, "one")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s := New[int](10, 10*time.Millisecond)

	s.Set("k", 42)
	time.Sleep(20 * time.Millisecond)

	if _, ok := s.Get("k"); ok {
		t.Error("Get() should miss after TTL expiry")
	}
	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after expired read", s.Size())
	}
}

func TestStore_LRUEviction(t *testing.T) {
	s := New[int](3, time.Minute)

	for i := 0; i < 3; i++ {
		s.Set(fmt.Sprintf("k%d", i), i)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	if _, ok := s.Get("k0"); !ok {
		t.Fatal("k0 should be present")
	}

	s.Set("k3", 3)

	if _, ok := s.Get("k1"); ok {
		t.Error("k1 should have been evicted as least recently used")
	}
	if _, ok := s.Get("k0"); !ok {
		t.Error("k0 should survive eviction")
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, want 3", s.Size())
	}
}

func TestStore_Clear(t *testing.T) {
	s := New[int](10, time.Minute)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0 after Clear()", s.Size())
	}
	if _, ok := s.Get("a"); ok {
		t.Error("Get() should miss after Clear()")
	}
}

func TestStore_CleanExpired(t *testing.T) {
	s := New[int](10, 10*time.Millisecond)
	s.Set("a", 1)
	s.Set("b", 2)

	time.Sleep(20 * time.Millisecond)
	s.Set("c", 3)

	if removed := s.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}

func TestStore_Stats(t *testing.T) {
	s := New[int](10, time.Minute)
	s.Set("a", 1)

	s.Get("a")
	s.Get("a")
	s.Get("missing")

	hits, misses := s.Stats()
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}
