package binance

import (
	"context"
	"math"
	"net/http"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"
)

// Client wraps the Binance spot API with a rate limiter, request timeouts
// and retry with exponential backoff, so the bar feed behaves under API
// hiccups without the engine knowing about them.
type Client struct {
	client      *gobinance.Client
	rateLimiter *rate.Limiter
	httpClient  *http.Client
}

// maxKlinesPerRequest is the exchange's per-request kline cap.
const maxKlinesPerRequest = 500

func NewClient(apiKey, secretKey string) *Client {
	// Custom HTTP client with timeouts
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	spotClient := gobinance.NewClient(apiKey, secretKey)
	spotClient.HTTPClient = httpClient

	// Rate limiter: 10 requests per second with burst of 20
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		client:      spotClient,
		rateLimiter: limiter,
		httpClient:  httpClient,
	}
}

// GetKlines fetches one kline window, retrying transient failures.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, startTime, endTime int64) ([]*gobinance.Kline, error) {
	maxRetries := 3
	backoff := 100 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(startTime).
			EndTime(endTime).
			Limit(maxKlinesPerRequest).
			Do(ctx)
		if err == nil {
			return klines, nil
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * backoff
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return nil, lastErr
}

// GetHistoricalKlines fetches the trailing number of days in windows small
// enough to stay under the per-request kline cap.
func (c *Client) GetHistoricalKlines(ctx context.Context, symbol, interval string, days int) ([]*gobinance.Kline, error) {
	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)

	startTimeMs := startTime.UnixNano() / int64(time.Millisecond)
	endTimeMs := endTime.UnixNano() / int64(time.Millisecond)

	var allKlines []*gobinance.Kline
	chunkSize := (90 * 24 * time.Hour).Milliseconds()

	for currentStart := startTimeMs; currentStart < endTimeMs; {
		currentEnd := currentStart + chunkSize
		if currentEnd > endTimeMs {
			currentEnd = endTimeMs
		}

		klines, err := c.GetKlines(ctx, symbol, interval, currentStart, currentEnd)
		if err != nil {
			return nil, err
		}

		allKlines = append(allKlines, klines...)
		currentStart = currentEnd + 1
	}

	return allKlines, nil
}
