// Package lru provides a size-bounded LRU cache with optional per-entry expiry
package lru

import (
	"container/list"
	"sync"
	"time"

	"github.com/AdrianWangs/go-jstring/pkg/logger"
)

// Value is the interface that all values stored in the cache must implement
type Value interface {
	// Len returns the size the value is charged against the byte budget
	Len() int
}

// Cache is a thread-safe LRU (Least Recently Used) cache
type Cache[V Value] struct {
	mutex     sync.Mutex
	maxBytes  int64                    // 0 means no limit
	nbytes    int64                    // key bytes plus value Len of every entry
	ll        *list.List               // front is the least recently used
	items     map[string]*list.Element // hashmap for O(1) lookups
	now       func() time.Time
	OnEvicted func(key string, value V)
}

type entry[V Value] struct {
	key   string
	value V
	exp   time.Time // zero means never
}

// New creates a new LRU cache with the specified byte budget and eviction callback
func New[V Value](maxBytes int64, onEvicted func(key string, value V)) *Cache[V] {
	return &Cache[V]{
		maxBytes:  maxBytes,
		ll:        list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
		OnEvicted: onEvicted,
	}
}

// Get returns the value stored under key and marks it most recently used.
// Expired entries are removed and reported as missing.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ele, ok := c.items[key]
	if !ok {
		return value, false
	}
	kv := ele.Value.(*entry[V])
	if now := c.now(); !kv.exp.IsZero() && kv.exp.Before(now) {
		logger.Debugf("[lru] entry expired: key=%q, expired %v ago", key, now.Sub(kv.exp))
		c.removeElement(ele)
		return value, false
	}
	c.ll.MoveToBack(ele)
	return kv.value, true
}

// Add stores value under key, replacing any previous value. A ttl of zero or less never expires.
func (c *Cache[V]) Add(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}

	if ele, ok := c.items[key]; ok {
		c.ll.MoveToBack(ele)
		kv := ele.Value.(*entry[V])
		c.nbytes += int64(value.Len()) - int64(kv.value.Len())
		kv.value = value
		kv.exp = exp
	} else {
		c.items[key] = c.ll.PushBack(&entry[V]{key: key, value: value, exp: exp})
		c.nbytes += int64(len(key)) + int64(value.Len())
	}

	for c.maxBytes != 0 && c.nbytes > c.maxBytes && c.ll.Len() > 0 {
		c.removeOldest()
	}
}

// Delete removes key from the cache
func (c *Cache[V]) Delete(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ele, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(ele)
	return true
}

// Len returns the number of entries, expired ones included until they are touched
func (c *Cache[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.ll.Len()
}

// Bytes returns the current charge against the byte budget
func (c *Cache[V]) Bytes() int64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.nbytes
}

// Clear empties the cache without calling OnEvicted
func (c *Cache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.ll.Init()
	c.items = make(map[string]*list.Element)
	c.nbytes = 0
}

func (c *Cache[V]) removeOldest() {
	if ele := c.ll.Front(); ele != nil {
		logger.Debugf("[lru] evicting %q, %d/%d bytes", ele.Value.(*entry[V]).key, c.nbytes, c.maxBytes)
		c.removeElement(ele)
	}
}

func (c *Cache[V]) removeElement(ele *list.Element) {
	c.ll.Remove(ele)
	kv := ele.Value.(*entry[V])
	delete(c.items, kv.key)
	c.nbytes -= int64(len(kv.key)) + int64(kv.value.Len())
	if c.OnEvicted != nil {
		c.OnEvicted(kv.key, kv.value)
	}
}
