package cache

import (
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is used when the configured TTL is invalid.
const DefaultTTL = 5 * time.Minute

// Store is a read-through TTL memo for parsed datasets, keyed by logical
// resource name. A TTL of zero or less is an explicit disabled mode: every
// read misses and writes are no-ops. Expiry is checked lazily on read; there
// is no size bound.
type Store struct {
	ttl time.Duration
	c   *gocache.Cache
}

// New creates a Store with the given TTL. Pass 0 to disable caching.
func New(ttl time.Duration) *Store {
	s := &Store{ttl: ttl}
	if ttl > 0 {
		s.c = gocache.New(ttl, 2*ttl)
	}
	return s
}

// TTLFromMinutes converts a configured minute count into a TTL. Negative or
// non-finite values fall back to DefaultTTL; zero stays zero to keep the
// disabled mode an explicit choice.
func TTLFromMinutes(minutes float64) time.Duration {
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return DefaultTTL
	}
	return time.Duration(minutes * float64(time.Minute))
}

// Enabled reports whether the store caches at all.
func (s *Store) Enabled() bool {
	return s.c != nil
}

// Read returns the cached value for key, or a miss if absent or expired.
func (s *Store) Read(key string) (interface{}, bool) {
	if s.c == nil {
		return nil, false
	}
	return s.c.Get(key)
}

// Write stores value under key for the configured TTL.
func (s *Store) Write(key string, value interface{}) {
	if s.c == nil {
		return
	}
	s.c.Set(key, value, s.ttl)
}

// Delete evicts a single key.
func (s *Store) Delete(key string) {
	if s.c == nil {
		return
	}
	s.c.Delete(key)
}

// Flush drops every cached entry.
func (s *Store) Flush() {
	if s.c == nil {
		return
	}
	s.c.Flush()
}
