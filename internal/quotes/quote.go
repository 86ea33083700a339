// Package quotes provides stock quote acquisition: a vendor adapter for the
// market-data API, a per-symbol fixed-interval rate limiter, a time-boxed
// quote cache, and a provider that composes them with a stale-serve fallback
// policy.
package quotes

// StockQuote is a point-in-time market price snapshot for a symbol.
// It is transient and never persisted.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}
