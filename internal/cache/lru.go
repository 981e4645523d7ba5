package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU cache with TTL and size-based eviction. Used to keep computed
// statistics around between ledger changes.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List
}

type entry[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

// NewLRUCache creates a new LRU cache with the given capacity and TTL.
func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get retrieves a value from the cache. Expired entries are removed
// on access and reported as a miss.
func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return e.data, true
}

// Set stores a value in the cache, evicting the least recently used
// entry when over capacity.
func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(e)

	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Delete removes a key from the cache.
func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Clear drops every entry. Called when the ledger changes and all
// cached statistics become stale at once.
func (c *LRUCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

func (c *LRUCache[T]) removeElement(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(c.items, e.key)
	c.order.Remove(elem)
}

// CleanExpired removes all expired entries and returns how many were removed.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			stale = append(stale, elem)
		}
	}

	for _, elem := range stale {
		c.removeElement(elem)
	}
	return len(stale)
}

// Size returns the current number of items in the cache.
func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
