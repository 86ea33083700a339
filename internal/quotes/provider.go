package quotes

import (
	"context"
	"time"

	apperrors "finpro/internal/errors"
	"finpro/internal/logger"
)

// Provider serves stock quotes with caching, rate limiting, and a stale-serve
// fallback when the upstream source cannot be reached.
type Provider interface {
	GetStockQuote(ctx context.Context, symbol string) (*StockQuote, error)
}

type provider struct {
	fetcher Fetcher
	cache   *Cache
	limiter *RateLimiter
	useMock bool
}

// NewProvider composes a Fetcher with a quote cache and a per-symbol rate
// limiter. When useMock is set, deterministic quotes are returned and neither
// the cache nor the upstream source is touched.
func NewProvider(fetcher Fetcher, cacheDuration time.Duration, useMock bool) Provider {
	return &provider{
		fetcher: fetcher,
		cache:   NewCache(cacheDuration),
		limiter: NewRateLimiter(),
		useMock: useMock,
	}
}

// GetStockQuote resolves a quote for symbol. Order of precedence: mock data,
// fresh cache entry, live fetch (subject to the rate limiter). A rate-limit
// denial or live-fetch failure is absorbed by returning the cached quote even
// past its freshness window; only when no cached entry exists does the call
// fail with a quote-unavailable error.
func (p *provider) GetStockQuote(ctx context.Context, symbol string) (*StockQuote, error) {
	if p.useMock {
		return mockStockQuote(symbol), nil
	}

	cached, fresh := p.cache.Get(symbol)
	if cached != nil && fresh {
		logger.Get().Debugw("returning cached quote", "symbol", symbol)
		return cached, nil
	}

	if !p.limiter.ShouldAllowRequest(symbol) {
		logger.Get().Warnw("rate limit exceeded, using cached data if available", "symbol", symbol)
		if cached != nil {
			return cached, nil
		}
		return nil, apperrors.WithMessage(apperrors.ErrQuoteUnavailable, "Rate limit exceeded and no cached data available")
	}

	quote, err := p.fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		logger.Get().Errorw("error fetching stock quote", "symbol", symbol, "error", err)
		if cached != nil {
			logger.Get().Warnw("returning expired cached data due to API error", "symbol", symbol)
			return cached, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}

	p.cache.Put(symbol, quote)
	return quote, nil
}

// mockStockQuote returns a fixed deterministic quote for offline and test use.
func mockStockQuote(symbol string) *StockQuote {
	return &StockQuote{
		Symbol:        symbol,
		CurrentPrice:  100.00,
		High:          102.00,
		Low:           98.00,
		Volume:        1000000,
		Change:        2.50,
		ChangePercent: 2.50,
	}
}
