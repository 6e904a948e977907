// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translate

import (
	"strconv"
	"sync"
)

// Key identifies one translation.
type Key struct {
	Text   string
	Source string
	Target string
}

// String encodes the key unambiguously for use as a singleflight key.
func (k Key) String() string {
	return strconv.Quote(k.Source) + "|" + strconv.Quote(k.Target) + "|" + k.Text
}

// Cache maps keys to translated text. It never evicts.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]string)}
}

// Get returns the cached translation for k.
func (c *Cache) Get(k Key) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[k]
	return v, ok
}

// Put stores a translation.
func (c *Cache) Put(k Key, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
