// Package cache provides a generic, thread-safe LRU cache with
// optional per-entry TTL. The retrieval pipeline uses it to avoid
// re-embedding repeated queries.
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// Config controls cache behavior.
type Config struct {
	// Capacity is the maximum number of entries.
	Capacity int
	// TTL is the entry lifetime. Zero means entries never expire.
	TTL time.Duration
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	expiration time.Time
}

// LRU is a generic least-recently-used cache.
type LRU[K comparable, V any] struct {
	config Config
	ll     *list.List
	items  map[K]*list.Element
	lock   sync.Mutex
}

// New creates an LRU cache with the given configuration.
func New[K comparable, V any](config Config) (*LRU[K, V], error) {
	if config.Capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive")
	}
	return &LRU[K, V]{
		config: config,
		ll:     list.New(),
		items:  make(map[K]*list.Element),
	}, nil
}

// Get returns the value for key, expiring it lazily when a TTL is set.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	element, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}

	ent := element.Value.(*entry[K, V])
	if c.config.TTL > 0 && time.Now().After(ent.expiration) {
		c.removeElement(element)
		var zero V
		return zero, false
	}

	c.ll.MoveToFront(element)
	return ent.value, true
}

// Put adds or updates a key, evicting the least recently used entry
// when the cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	expiration := time.Time{}
	if c.config.TTL > 0 {
		expiration = time.Now().Add(c.config.TTL)
	}

	if element, ok := c.items[key]; ok {
		ent := element.Value.(*entry[K, V])
		ent.value = value
		ent.expiration = expiration
		c.ll.MoveToFront(element)
		return
	}

	element := c.ll.PushFront(&entry[K, V]{key: key, value: value, expiration: expiration})
	c.items[key] = element

	if c.ll.Len() > c.config.Capacity {
		if oldest := c.ll.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Len returns the number of entries currently cached.
func (c *LRU[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ll.Len()
}

func (c *LRU[K, V]) removeElement(element *list.Element) {
	c.ll.Remove(element)
	ent := element.Value.(*entry[K, V])
	delete(c.items, ent.key)
}
