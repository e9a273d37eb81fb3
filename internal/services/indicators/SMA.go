package indicators

import "math"

// SMAService provides Simple Moving Average calculations
type SMAService struct{}

// NewSMAService creates a new SMA service instance
func NewSMAService() *SMAService {
	return &SMAService{}
}

// Calculate computes the rolling mean of the series. Indexes with fewer than
// period observations behind them are NaN, matching a rolling-window mean:
// the caller must treat NaN as "indicator undefined".
func (s *SMAService) Calculate(prices []float64, period int) []float64 {
	sma := make([]float64, len(prices))
	for i := range sma {
		sma[i] = math.NaN()
	}

	if period <= 0 || len(prices) < period {
		return sma
	}

	sum := 0.0
	for i, price := range prices {
		sum += price
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			sma[i] = sum / float64(period)
		}
	}

	return sma
}
