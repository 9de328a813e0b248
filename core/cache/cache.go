// Package cache provides a thread-safe LRU cache bounded by entry count and
// byte weight.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats contains cache statistics.
type Stats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	Size       int
	MaxSize    int
	TotalBytes int64
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// MaxBytes bounds the summed SizeOf of all entries (0 = unlimited).
	MaxBytes int64

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize:  128,
		MaxBytes: 16 << 20,
	}
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	size      int64
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache. Entries are evicted when
// either the entry limit or the byte limit is exceeded.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	config  Config
	sizeOf  func(V) int64
	entries map[K]*list.Element
	order   *list.List
	bytes   int64
	stats   Stats
	now     func() time.Time
}

// NewLRU creates a cache. sizeOf reports the weight of a value for
// Config.MaxBytes; nil counts every value as zero bytes.
func NewLRU[K comparable, V any](config Config, sizeOf func(V) int64) *LRU[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	if sizeOf == nil {
		sizeOf = func(V) int64 { return 0 }
	}
	return &LRU[K, V]{
		config:  config,
		sizeOf:  sizeOf,
		entries: make(map[K]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.config.TTL > 0 && c.now().After(e.expiresAt) {
		c.remove(el)
		c.stats.Misses++
		return zero, false
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	return e.value, true
}

// Put stores a value. A value larger than MaxBytes on its own is not
// cached.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.sizeOf(value)
	if c.config.MaxBytes > 0 && size > c.config.MaxBytes {
		if el, ok := c.entries[key]; ok {
			c.remove(el)
		}
		return
	}

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[K, V])
		c.bytes += size - e.size
		e.value, e.size = value, size
		e.expiresAt = c.expiry()
		c.order.MoveToFront(el)
	} else {
		e := &entry[K, V]{key: key, value: value, size: size, expiresAt: c.expiry()}
		c.entries[key] = c.order.PushFront(e)
		c.bytes += size
	}

	for c.overLimit() {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest)
		c.stats.Evictions++
	}
}

// Remove deletes a value.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
}

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.order.Init()
	c.bytes = 0
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.order.Len()
	s.MaxSize = c.config.MaxSize
	s.TotalBytes = c.bytes
	return s
}

func (c *LRU[K, V]) expiry() time.Time {
	if c.config.TTL <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.config.TTL)
}

func (c *LRU[K, V]) overLimit() bool {
	if c.config.MaxSize > 0 && c.order.Len() > c.config.MaxSize {
		return true
	}
	return c.config.MaxBytes > 0 && c.bytes > c.config.MaxBytes
}

func (c *LRU[K, V]) remove(el *list.Element) {
	c.order.Remove(el)
	e := el.Value.(*entry[K, V])
	delete(c.entries, e.key)
	c.bytes -= e.size
}
