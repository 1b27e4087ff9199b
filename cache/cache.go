// Package cache provides the proxy's process-wide TTL store for merged
// search envelopes and cover-art bytes.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultTTL matches the staleness window that keeps search results fresh
// enough while absorbing repeated queries from client keystroke searches.
const DefaultTTL = 5 * time.Minute

// Store is a TTL-bounded key→bytes cache. Keys are namespaced by purpose
// (SearchKey, CoverKey) so the two uses can never collide. An entry older
// than the TTL is absent; there is no other eviction and no explicit delete.
type Store struct {
	inner *ttlcache.Cache[string, []byte]
}

// New creates a Store with the given TTL. A non-positive ttl falls back to
// DefaultTTL. Call Stop when the store is no longer needed.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	inner := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go inner.Start() // automatic expired-item eviction loop
	return &Store{inner: inner}
}

// SearchKey returns the cache key for a merged search envelope.
func SearchKey(query string) string { return "search:" + query }

// CoverKey returns the cache key for cover-art image bytes.
func CoverKey(albumID string) string { return "cover:" + albumID }

// Get returns the cached value for key and whether a live entry exists.
// Expired entries are reported as absent even if not yet evicted.
func (s *Store) Get(key string) ([]byte, bool) {
	item := s.inner.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Value(), true
}

// Set stores value under key, overwriting any previous entry and resetting
// its TTL.
func (s *Store) Set(key string, value []byte) {
	s.inner.Set(key, value, ttlcache.DefaultTTL)
}

// Len returns the number of live entries. Used for diagnostics.
func (s *Store) Len() int { return s.inner.Len() }

// Stop terminates the eviction loop.
func (s *Store) Stop() { s.inner.Stop() }
