package runtime

import "github.com/veld-dev/veld/pkg/cache"

// UseCache returns a per-component LRU cache bound to the current slot. The
// cache instance is stable across re-renders and is discarded when the
// component unmounts. maxSize only applies when the slot is first created.
func UseCache[K comparable, V any](maxSize int) *cache.LRU[K, V] {
	s := mustScope()
	return s.slot(hookCache, func() any {
		return cache.New[K, V](maxSize)
	}).(*cache.LRU[K, V])
}
