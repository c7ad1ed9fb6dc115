// Package cache provides a small bounded LRU used by the runtime's cache
// hook and by application code that needs memoization with an eviction
// policy.
package cache

import "container/list"

// LRU is a bounded least-recently-used cache. It is not safe for concurrent
// use; on the loop everything runs single-threaded, which is where it is
// meant to live.
type LRU[K comparable, V any] struct {
	maxSize int
	order   *list.List // front = most recent
	items   map[K]*list.Element
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU holding at most maxSize entries. maxSize < 1 is
// treated as 1.
func New[K comparable, V any](maxSize int) *LRU[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[K, V]{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[K]*list.Element),
	}
}

// Get returns the value for key and marks it most recently used. The second
// result is false if the key is absent or was evicted.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores a value, evicting the least recently used entry once the cache
// is over capacity.
func (c *LRU[K, V]) Set(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value})
	c.items[key] = el

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
		}
	}
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss.
func (c *LRU[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Set(key, v)
	return v
}

// Delete removes a key. It reports whether the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return c.order.Len() }

// MaxSize returns the configured capacity.
func (c *LRU[K, V]) MaxSize() int { return c.maxSize }

// Clear drops all entries.
func (c *LRU[K, V]) Clear() {
	c.order.Init()
	clear(c.items)
}

// Keys returns the cached keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}
