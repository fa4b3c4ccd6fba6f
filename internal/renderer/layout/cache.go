package layout

import "hash/fnv"

// LineCache caches computed line layouts, keyed by line number and
// validated against the line's content and the wrap width.
//
// LineCache is not safe for concurrent use.
type LineCache struct {
	entries map[int64]*cacheEntry
	engine  *Engine
	maxSize int
	clock   uint64

	hits      uint64
	misses    uint64
	evictions uint64
}

type cacheEntry struct {
	layout     *LineLayout
	lineHash   uint64
	wrapWidth  int
	lastAccess uint64
}

// NewLineCache creates a cache holding at most maxSize lines
// (0 = unlimited).
func NewLineCache(engine *Engine, maxSize int) *LineCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &LineCache{
		entries: make(map[int64]*cacheEntry),
		engine:  engine,
		maxSize: maxSize,
	}
}

// Engine returns the engine used to compute layouts.
func (c *LineCache) Engine() *Engine {
	return c.engine
}

// Get retrieves or computes the layout for line.
func (c *LineCache) Get(line int64, text string, wrapWidth int) *LineLayout {
	hash := hashLine(text)
	c.clock++

	if e, ok := c.entries[line]; ok && e.lineHash == hash && e.wrapWidth == wrapWidth {
		e.lastAccess = c.clock
		c.hits++
		return e.layout
	}

	c.misses++
	l := c.engine.Layout(text, line, wrapWidth)
	c.entries[line] = &cacheEntry{
		layout:     l,
		lineHash:   hash,
		wrapWidth:  wrapWidth,
		lastAccess: c.clock,
	}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return l
}

// Invalidate drops every cached line.
func (c *LineCache) Invalidate() {
	clear(c.entries)
}

// Len returns the number of cached lines.
func (c *LineCache) Len() int {
	return len(c.entries)
}

// Stats returns hit, miss and eviction counts.
func (c *LineCache) Stats() (hits, misses, evictions uint64) {
	return c.hits, c.misses, c.evictions
}

// evict removes the least recently used quarter of the entries.
func (c *LineCache) evict() {
	target := c.maxSize * 3 / 4
	for len(c.entries) > target {
		var oldest int64
		var oldestAccess uint64
		first := true
		for line, e := range c.entries {
			if first || e.lastAccess < oldestAccess {
				oldest, oldestAccess, first = line, e.lastAccess, false
			}
		}
		delete(c.entries, oldest)
		c.evictions++
	}
}

func hashLine(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
