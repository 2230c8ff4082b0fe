package api

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCache(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		cache := NewRateCache(time.Second)
		cache.Set("ETH", decimal.NewFromInt(2500))

		rate, found := cache.Get("ETH")
		require.True(t, found)
		assert.True(t, rate.Equal(decimal.NewFromInt(2500)))

		_, found = cache.Get("MISSING")
		assert.False(t, found)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		cache := NewRateCache(10 * time.Millisecond)
		cache.Set("ETH", decimal.NewFromInt(2500))

		_, found := cache.Get("ETH")
		assert.True(t, found)

		time.Sleep(20 * time.Millisecond)

		_, found = cache.Get("ETH")
		assert.False(t, found, "expired entries must not be served")
	})

	t.Run("clear", func(t *testing.T) {
		cache := NewRateCache(time.Minute)
		cache.Set("ETH", decimal.NewFromInt(2500))
		cache.Set("SUI", decimal.NewFromFloat(1.5))

		cache.Clear()

		_, found := cache.Get("ETH")
		assert.False(t, found)
		_, found = cache.Get("SUI")
		assert.False(t, found)
	})
}
