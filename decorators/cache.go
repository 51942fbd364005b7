// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package decorators

import (
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const defaultCacheMaxSize = 1000

// CacheStats counts cache activity.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type cacheEntry[V any] struct {
	value   V
	created time.Time
}

// Cache memoizes successful results by key for a fixed time to live. It is
// meant to be a field of the type whose methods it decorates:
//
//	//decorate:with "self.users.Memoize"(id)
//	func (s *Service) User(id string) (User, error) { ... }
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
	entries map[K]*cacheEntry[V]
	stats   CacheStats
}

type CacheOption func(*cacheOptions)

type cacheOptions struct {
	maxSize int
}

// WithMaxSize bounds the number of entries. When full, the oldest entry is
// evicted.
func WithMaxSize(n int) CacheOption {
	return func(opts *cacheOptions) {
		opts.maxSize = n
	}
}

func NewCache[K comparable, V any](ttl time.Duration, opts ...CacheOption) *Cache[K, V] {
	options := cacheOptions{maxSize: defaultCacheMaxSize}
	for _, opt := range opts {
		opt(&options)
	}
	return &Cache[K, V]{
		ttl:     ttl,
		maxSize: max(options.maxSize, 1),
		now:     time.Now,
		entries: make(map[K]*cacheEntry[V]),
	}
}

// Memoize returns the cached value for key, or calls fn and caches its
// value if fn succeeds. Errors are never cached. Concurrent misses on the
// same key may each call fn.
func (c *Cache[K, V]) Memoize(key K, fn func() (V, error)) (V, error) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Sub(entry.created) < c.ttl {
			c.stats.Hits++
			c.mu.Unlock()
			return entry.value, nil
		}
		delete(c.entries, key)
		c.stats.Evictions++
	}
	c.stats.Misses++
	c.mu.Unlock()

	value, err := fn()
	if err != nil {
		return value, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = &cacheEntry[V]{value: value, created: c.now()}
	return value, nil
}

func (c *Cache[K, V]) evictOldest() {
	var oldestKey K
	var oldest *cacheEntry[V]
	for key, entry := range c.entries {
		if oldest == nil || entry.created.Before(oldest.created) {
			oldestKey, oldest = key, entry
		}
	}
	if oldest != nil {
		delete(c.entries, oldestKey)
		c.stats.Evictions++
	}
}

func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache[K, V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Size = len(c.entries)
	return stats
}

var keyJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Key builds a cache key from several values. Values that cannot be
// encoded as JSON fall back to their fmt representation.
func Key(args ...any) string {
	key, err := keyJSON.MarshalToString(args)
	if err != nil {
		return fmt.Sprint(args...)
	}
	return key
}
