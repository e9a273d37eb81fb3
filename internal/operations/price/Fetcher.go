package price

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/operations/binance"
)

// Fetcher retrieves historical OHLCV bars from Binance. It is the concrete
// edge of the market-data collaborator; the engine only ever sees the
// resulting []models.Bar.
type Fetcher struct {
	client *binance.Client
}

// NewFetcher creates a new instance of Fetcher
func NewFetcher(client *binance.Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchBars retrieves klines for the symbol over the trailing number of days
// at the given interval, ordered by open time ascending.
func (f *Fetcher) FetchBars(ctx context.Context, symbol, interval string, days int) ([]models.Bar, error) {
	klines, err := f.client.GetHistoricalKlines(ctx, symbol, interval, days)
	if err != nil {
		return nil, fmt.Errorf("fetching klines for %s-%s: %w", symbol, interval, err)
	}

	bars := make([]models.Bar, 0, len(klines))
	for _, k := range klines {
		bars = append(bars, models.Bar{
			Timestamp: time.Unix(k.OpenTime/1000, 0).UTC(),
			Open:      parseFloat(k.Open),
			High:      parseFloat(k.High),
			Low:       parseFloat(k.Low),
			Close:     parseFloat(k.Close),
			Volume:    parseFloat(k.Volume),
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
