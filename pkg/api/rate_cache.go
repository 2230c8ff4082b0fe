package api

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache caches token to USDC exchange rates so repeated quote requests
// do not recompute (or, later, re-fetch) the same rate
type RateCache struct {
	mu       sync.RWMutex
	cache    map[string]*cachedRate
	cacheTTL time.Duration
}

// cachedRate represents a cached exchange rate with timestamp
type cachedRate struct {
	rate      decimal.Decimal
	timestamp time.Time
}

// NewRateCache creates a new rate cache
func NewRateCache(cacheTTL time.Duration) *RateCache {
	return &RateCache{
		cache:    make(map[string]*cachedRate),
		cacheTTL: cacheTTL,
	}
}

// Get retrieves a cached rate if it's still valid
func (c *RateCache) Get(token string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, exists := c.cache[token]
	if !exists {
		return decimal.Zero, false
	}

	if time.Since(cached.timestamp) > c.cacheTTL {
		return decimal.Zero, false
	}

	return cached.rate, true
}

// Set stores a rate in the cache with current timestamp
func (c *RateCache) Set(token string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[token] = &cachedRate{
		rate:      rate,
		timestamp: time.Now(),
	}
}

// Clear removes all cached entries
func (c *RateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*cachedRate)
}
