package cache

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	perrors "sjsage522/pokerscraper/pkg/errors"
)

// ErrMiss reports a key that is absent or expired
var ErrMiss = memcache.ErrCacheMiss

const keyPrefix = "pokerscraper:"

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// Ping checks that the server answers
func (m *MemcacheService) Ping() error {
	if err := m.client.Ping(); err != nil {
		return perrors.NewCache("", "memcache unreachable", err)
	}
	return nil
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(keyPrefix + key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, perrors.NewCache("", "get "+key, err)
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time. Expirations
// below one second are rounded up so the entry does not live forever.
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	seconds := int32(expiration / time.Second)
	if expiration > 0 && seconds == 0 {
		seconds = 1
	}
	err := m.client.Set(&memcache.Item{
		Key:        keyPrefix + key,
		Value:      value,
		Expiration: seconds,
	})
	if err != nil {
		return perrors.NewCache("", "set "+key, err)
	}
	return nil
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	err := m.client.Delete(keyPrefix + key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return perrors.NewCache("", "delete "+key, err)
	}
	return nil
}
