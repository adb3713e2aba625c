package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211")

	// Test if memcached is available
	if err := mc.Ping(); err != nil {
		t.Skip("Memcached is not available, skipping test")
	}

	err := mc.Set("ggpoker_cooldown", []byte("300"), 2*time.Second)
	require.NoError(t, err)

	value, err := mc.Get("ggpoker_cooldown")
	assert.NoError(t, err)
	assert.Equal(t, "300", string(value))

	assert.NoError(t, mc.Delete("ggpoker_cooldown"))
	assert.NoError(t, mc.Delete("ggpoker_cooldown"))

	_, err = mc.Get("ggpoker_cooldown")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemcacheServiceUnreachable(t *testing.T) {
	mc := NewMemcacheService("127.0.0.1:1")

	_, err := mc.Get("anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
