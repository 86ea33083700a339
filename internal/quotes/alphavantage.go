package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "finpro/internal/errors"
	"finpro/internal/logger"
)

const timeSeriesKey = "Time Series (5min)"

// Fetcher fetches a live quote for a symbol from an upstream market-data
// source. Implementations own the vendor-specific wire format; callers see
// only StockQuote or a typed error.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*StockQuote, error)
}

// alphaVantageFetcher fetches intraday quotes from the Alpha Vantage API.
type alphaVantageFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAlphaVantageFetcher creates a Fetcher backed by the Alpha Vantage
// TIME_SERIES_INTRADAY endpoint.
func NewAlphaVantageFetcher(apiKey, baseURL string) Fetcher {
	return &alphaVantageFetcher{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// buildQuoteURL builds the intraday quote request URL for a symbol.
func (f *alphaVantageFetcher) buildQuoteURL(symbol string) string {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_INTRADAY")
	params.Set("symbol", symbol)
	params.Set("interval", "5min")
	params.Set("apikey", f.apiKey)
	return f.baseURL + "?" + params.Encode()
}

// FetchQuote performs a live fetch and parses the most recent data point.
func (f *alphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (*StockQuote, error) {
	reqURL := f.buildQuoteURL(symbol)
	logger.Get().Debugw("fetching stock quote", "symbol", symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}
	if len(body) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrQuoteUnavailable, "Empty response from Alpha Vantage")
	}

	return parseIntradayResponse(symbol, body)
}

// parseIntradayResponse decodes the vendor JSON and extracts the latest
// data point. The payload recognizes top-level "Error Message" (unknown
// symbol) and "Note" (rate-limit warning, non-fatal) keys.
func parseIntradayResponse(symbol string, body []byte) (*StockQuote, error) {
	var payload struct {
		ErrorMessage string                       `json:"Error Message"`
		Note         string                       `json:"Note"`
		TimeSeries   map[string]map[string]string `json:"Time Series (5min)"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}

	if payload.ErrorMessage != "" {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound, "Stock data not found for symbol: "+symbol)
	}
	if payload.Note != "" {
		logger.Get().Warnw("API rate limit warning", "note", payload.Note)
	}
	if len(payload.TimeSeries) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrSymbolNotFound, "No recent data available for symbol: "+symbol)
	}

	// The series is keyed by timestamp; the latest point has the greatest key.
	var latest string
	for ts := range payload.TimeSeries {
		if ts > latest {
			latest = ts
		}
	}
	point := payload.TimeSeries[latest]

	open, err := parseField(point, "1. open")
	if err != nil {
		return nil, err
	}
	high, err := parseField(point, "2. high")
	if err != nil {
		return nil, err
	}
	low, err := parseField(point, "3. low")
	if err != nil {
		return nil, err
	}
	closePrice, err := parseField(point, "4. close")
	if err != nil {
		return nil, err
	}
	volume, err := strconv.ParseInt(point["5. volume"], 10, 64)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Error parsing stock data values")
	}

	change := closePrice - open
	changePercent := (change / open) * 100

	return &StockQuote{
		Symbol:        symbol,
		CurrentPrice:  closePrice,
		High:          high,
		Low:           low,
		Volume:        volume,
		Change:        roundToTwoDecimals(change),
		ChangePercent: roundToTwoDecimals(changePercent),
	}, nil
}

func parseField(point map[string]string, key string) (float64, error) {
	v, err := strconv.ParseFloat(point[key], 64)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInternalServer, fmt.Sprintf("Error parsing stock data field %q", key))
	}
	return v, nil
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
