package ledger

import "sync"

func newConcurrentMap[K comparable, V any]() *concurrentMap[K, V] {
	return &concurrentMap[K, V]{
		mu:    &sync.Mutex{},
		inner: map[K]V{},
	}
}

// concurrentMap guards the in-memory ledger cache. Individual operations
// are atomic; read-modify-write sequences spanning calls are not, which is
// the documented last-writer-wins behavior for concurrent same-key requests.
type concurrentMap[K comparable, V any] struct {
	mu    *sync.Mutex
	inner map[K]V
}

func (c *concurrentMap[K, V]) MaybeGet(key K) (val V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok = c.inner[key]
	return
}

func (c *concurrentMap[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner[key] = value
}

func (c *concurrentMap[K, V]) Replace(m map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner = m
}

func (c *concurrentMap[K, V]) Map() map[K]V {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := map[K]V{}
	for k, v := range c.inner {
		m[k] = v
	}
	return m
}

func (c *concurrentMap[K, _]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inner)
}
