package cache

import (
	"time"
)

// CacheService represents a generic cache service. Scrapers use it to
// remember provider cooldowns across runs and processes.
type CacheService interface {
	// Get retrieves a value from the cache; a miss is an error
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
