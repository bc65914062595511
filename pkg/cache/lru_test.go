package cache

import (
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	c, err := New[string, int](Config{Capacity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := New[string, int](Config{Capacity: 2})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // touch a, making b oldest
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should have survived")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c, _ := New[string, int](Config{Capacity: 4, TTL: time.Millisecond})
	c.Put("a", 1)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("entry should have expired")
	}
}

func TestInvalidCapacity(t *testing.T) {
	if _, err := New[string, int](Config{Capacity: 0}); err == nil {
		t.Error("expected error for zero capacity")
	}
}
