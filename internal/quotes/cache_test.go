package quotes

import (
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	t.Run("miss_on_empty_cache", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		quote, fresh := cache.Get("AAPL")
		if quote != nil || fresh {
			t.Errorf("expected miss, got quote=%v fresh=%v", quote, fresh)
		}
	})

	t.Run("round_trip_within_duration", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		stored := &StockQuote{Symbol: "AAPL", CurrentPrice: 187.32}
		cache.Put("AAPL", stored)

		quote, fresh := cache.Get("AAPL")
		if quote != stored {
			t.Errorf("expected the identical quote back, got %v", quote)
		}
		if !fresh {
			t.Error("expected entry to be fresh")
		}
	})

	t.Run("expired_entry_still_returned", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		current := time.Now()
		cache.now = func() time.Time { return current }

		stored := &StockQuote{Symbol: "AAPL", CurrentPrice: 187.32}
		cache.Put("AAPL", stored)

		current = current.Add(6 * time.Minute)
		quote, fresh := cache.Get("AAPL")
		if quote != stored {
			t.Error("expected expired entry to remain available for stale-serve")
		}
		if fresh {
			t.Error("expected entry to be expired")
		}
	})

	t.Run("entry_at_exact_duration_is_fresh", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		current := time.Now()
		cache.now = func() time.Time { return current }

		cache.Put("AAPL", &StockQuote{Symbol: "AAPL"})

		// Expiry requires strictly more than the duration to elapse.
		current = current.Add(5 * time.Minute)
		if _, fresh := cache.Get("AAPL"); !fresh {
			t.Error("expected entry at exactly the cache duration to be fresh")
		}
	})

	t.Run("put_refreshes_timestamp", func(t *testing.T) {
		cache := NewCache(5 * time.Minute)
		current := time.Now()
		cache.now = func() time.Time { return current }

		cache.Put("AAPL", &StockQuote{Symbol: "AAPL", CurrentPrice: 100})
		current = current.Add(4 * time.Minute)
		cache.Put("AAPL", &StockQuote{Symbol: "AAPL", CurrentPrice: 101})
		current = current.Add(4 * time.Minute)

		quote, fresh := cache.Get("AAPL")
		if !fresh {
			t.Error("expected refreshed entry to be fresh")
		}
		if quote.CurrentPrice != 101 {
			t.Errorf("expected latest quote, got price %v", quote.CurrentPrice)
		}
	})

	t.Run("zero_duration_uses_default", func(t *testing.T) {
		cache := NewCache(0)
		if cache.duration != DefaultCacheDuration {
			t.Errorf("expected default duration, got %v", cache.duration)
		}
	})
}
