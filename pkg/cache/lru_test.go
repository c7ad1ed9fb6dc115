package cache

import "testing"

func TestGetSet(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)

	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key should report false")
	}
}

func TestEvictionAtMaxSize(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should be evicted")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Error("b should survive")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("c should survive")
	}
	if c.Len() != 2 {
		t.Errorf("expected len 2, got %d", c.Len())
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Get("a")    // a becomes most recent
	c.Set("c", 3) // evicts b, not a

	if _, ok := c.Get("a"); !ok {
		t.Error("recently read entry should not be evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
}

func TestSetExistingUpdates(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("a", 10)

	if c.Len() != 1 {
		t.Errorf("updating should not grow the cache, len=%d", c.Len())
	}
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("expected updated value 10, got %d", v)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := New[string, int](2)
	calls := 0
	compute := func() int { calls++; return 42 }

	if v := c.GetOrCompute("k", compute); v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
	if v := c.GetOrCompute("k", compute); v != 42 {
		t.Errorf("expected cached 42, got %d", v)
	}
	if calls != 1 {
		t.Errorf("compute should run once, ran %d times", calls)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("delete of present key should report true")
	}
	if c.Delete("a") {
		t.Error("delete of absent key should report false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("clear should empty the cache, len=%d", c.Len())
	}
}

func TestMinimumCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.MaxSize() != 1 {
		t.Errorf("capacity should clamp to 1, got %d", c.MaxSize())
	}
	c.Set("a", 1)
	c.Set("b", 2)
	if c.Len() != 1 {
		t.Errorf("expected single entry, got %d", c.Len())
	}
}

func TestKeysOrder(t *testing.T) {
	c := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")

	keys := c.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected [a b], got %v", keys)
	}
}
