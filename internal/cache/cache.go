// Package cache implements a simple in-memory byte cache with timeouts.
package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// NoTimeout marks an entry that never expires.
const NoTimeout time.Duration = 0

const defaultCleanupInterval = time.Minute * 10

// Cache is a concurrency safe key-value cache for byte payloads.
type Cache struct {
	items sync.Map

	m           sync.Mutex
	lastCleanup time.Time
}

type item struct {
	value     []byte
	expiresAt time.Time
}

func (i item) isExpired() bool {
	return !i.expiresAt.IsZero() && time.Until(i.expiresAt) < 0
}

// New creates a new cache and returns it.
func New() *Cache {
	c := &Cache{lastCleanup: time.Now()}
	return c
}

// Get returns the value for a key if it exists and has not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.items.Load(key)
	if !ok {
		return nil, false
	}
	i := v.(item)
	if i.isExpired() {
		return nil, false
	}
	return i.value, true
}

// Set stores a value under a key, overwriting any previous value.
// A timeout of NoTimeout keeps the entry until it is deleted.
func (c *Cache) Set(key string, value []byte, timeout time.Duration) {
	i := item{value: value}
	if timeout > 0 {
		i.expiresAt = time.Now().Add(timeout)
	}
	c.items.Store(key, i)
	// run cleanup when due
	c.m.Lock()
	defer c.m.Unlock()
	if time.Since(c.lastCleanup) > defaultCleanupInterval {
		c.lastCleanup = time.Now()
		go c.cleanup()
	}
}

// Exists reports whether a key exists and has not expired.
func (c *Cache) Exists(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete deletes the entry for a key.
func (c *Cache) Delete(key string) {
	c.items.Delete(key)
}

// DeletePrefix deletes every entry whose key starts with prefix and returns
// how many entries were removed.
func (c *Cache) DeletePrefix(prefix string) int {
	var n int
	c.items.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.items.Delete(key)
			n++
		}
		return true
	})
	return n
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.items.Range(func(key, _ any) bool {
		c.items.Delete(key)
		return true
	})
}

// cleanup removes all expired entries.
func (c *Cache) cleanup() {
	slog.Debug("Started cache cleanup")
	c.items.Range(func(key, value any) bool {
		if value.(item).isExpired() {
			c.items.Delete(key)
		}
		return true
	})
}
