package filter

import (
	"container/list"
	"sync"
)

// lruCache keeps the most recently used values up to size entries
type lruCache[V any] struct {
	size   int
	recent *list.List
	index  map[string]*list.Element
	mu     sync.Mutex
}

type entry[V any] struct {
	key   string
	value V
}

func newLRUCache[V any](size int) *lruCache[V] {
	if size < 1 {
		size = 1
	}
	return &lruCache[V]{
		size:   size,
		recent: list.New(),
		index:  make(map[string]*list.Element),
	}
}

// Get returns the value for key and marks it most recently used
func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.recent.MoveToFront(el)
	return el.Value.(*entry[V]).value, true
}

// Put stores value under key, evicting the oldest entry when full
func (c *lruCache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.recent.MoveToFront(el)
		el.Value.(*entry[V]).value = value
		return
	}

	el := c.recent.PushFront(&entry[V]{key: key, value: value})
	c.index[key] = el

	if c.recent.Len() > c.size {
		c.removeOldest()
	}
}

func (c *lruCache[V]) removeOldest() {
	el := c.recent.Back()
	if el != nil {
		c.recent.Remove(el)
		delete(c.index, el.Value.(*entry[V]).key)
	}
}

// Clear empties the cache
func (c *lruCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*list.Element)
	c.recent.Init()
}

func (c *lruCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recent.Len()
}
