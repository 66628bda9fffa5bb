// Package passcache keeps key passphrases in memory for the session when
// the user asked the application to remember them.
//
// The preferences controller only toggles the cache through SetEnabled.
// Store, Get, Delete, Exists and Len are used by the signing and
// decryption side of the host, which asks for a passphrase once per key
// and reuses it while the cache stays enabled.
//
// Nothing is ever written to disk. Disabling the cache drops every entry
// and zeroes the stored bytes.
package passcache

import (
	"errors"
	"sync"

	"github.com/yllada/gpg-manager/common"
)

// Common errors returned by cache operations.
var (
	ErrNotFound = errors.New("passphrase not cached")
	ErrDisabled = errors.New("passphrase cache disabled")
	ErrEmptyKey = errors.New("key ID cannot be empty")
)

// Cache is a process-local passphrase cache keyed by key ID.
type Cache struct {
	mu      sync.RWMutex
	enabled bool
	entries map[string][]byte
}

// New returns a cache. A disabled cache refuses to store anything.
func New(enabled bool) *Cache {
	return &Cache{
		enabled: enabled,
		entries: make(map[string][]byte),
	}
}

// SetEnabled switches caching on or off. Turning it off clears the cache.
func (c *Cache) SetEnabled(enabled bool) {
	c.mu.Lock()
	wasEnabled := c.enabled
	c.enabled = enabled
	c.mu.Unlock()

	if wasEnabled && !enabled {
		n := c.Clear()
		common.LogInfo("Passphrase caching disabled, dropped %d cached passphrases", n)
	}
}

// Enabled reports whether passphrases are being remembered.
func (c *Cache) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// Store remembers the passphrase for keyID.
func (c *Cache) Store(keyID string, passphrase []byte) error {
	if keyID == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return ErrDisabled
	}
	if old, ok := c.entries[keyID]; ok {
		wipe(old)
	}
	c.entries[keyID] = append([]byte(nil), passphrase...)
	return nil
}

// Get returns a copy of the passphrase cached for keyID.
func (c *Cache) Get(keyID string) ([]byte, error) {
	if keyID == "" {
		return nil, ErrEmptyKey
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.entries[keyID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), p...), nil
}

// Delete forgets the passphrase for keyID.
func (c *Cache) Delete(keyID string) error {
	if keyID == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries[keyID]; ok {
		wipe(p)
		delete(c.entries, keyID)
	}
	return nil
}

// Exists checks if a passphrase is cached for keyID.
func (c *Cache) Exists(keyID string) bool {
	_, err := c.Get(keyID)
	return err == nil
}

// Clear forgets every passphrase and returns how many were dropped.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	for id, p := range c.entries {
		wipe(p)
		delete(c.entries, id)
	}
	return n
}

// Len returns the number of cached passphrases.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
