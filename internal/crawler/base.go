package crawler

import (
	"strconv"
	"time"

	"sjsage522/pokerscraper/logger"
	"sjsage522/pokerscraper/services/cache"
)

// cooldown blocks a provider for a while after its site refused to load.
// A nil cache disables it.
type cooldown struct {
	cache cache.CacheService
	key   string
	block time.Duration
}

func (c cooldown) enabled() bool {
	return c.cache != nil && c.key != "" && c.block > 0
}

// active reports whether the provider is still blocked
func (c cooldown) active() bool {
	if !c.enabled() {
		return false
	}
	_, err := c.cache.Get(c.key)
	return err == nil
}

// trip starts the block window
func (c cooldown) trip() {
	if !c.enabled() {
		return
	}
	seconds := strconv.Itoa(int(c.block / time.Second))
	if err := c.cache.Set(c.key, []byte(seconds), c.block); err != nil {
		logger.Warn("failed to set cooldown %s: %v", c.key, err)
	}
}
