package layout

import "testing"

func TestLineCacheHitAndInvalidate(t *testing.T) {
	c := NewLineCache(NewEngine(4), 0)

	a := c.Get(1, "hello", 0)
	b := c.Get(1, "hello", 0)
	if a != b {
		t.Error("expected cached layout")
	}
	if hits, misses, _ := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("hits=%d misses=%d", hits, misses)
	}

	if c.Get(1, "hello!", 0) == a {
		t.Error("changed content must not hit the cache")
	}
	if c.Get(1, "hello!", 3) == c.Get(1, "hello!", 0) {
		t.Error("changed wrap width must not hit the cache")
	}

	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestLineCacheEviction(t *testing.T) {
	c := NewLineCache(NewEngine(4), 4)

	for i := int64(0); i < 10; i++ {
		c.Get(i, "line", 0)
	}
	if c.Len() > 4 {
		t.Errorf("cache holds %d entries, max 4", c.Len())
	}
	if _, _, evictions := c.Stats(); evictions == 0 {
		t.Error("expected evictions")
	}
}
