package indicators

import "math"

// RSIService provides Relative Strength Index calculations with Wilder
// smoothing over the gain/loss averages.
type RSIService struct{}

// NewRSIService creates a new RSI service instance
func NewRSIService() *RSIService {
	return &RSIService{}
}

// Calculate computes the RSI of the series. The first `period` indexes are
// NaN: RSI needs period price changes before the averages exist, and the
// caller must never act on a fabricated warm-up value. A series with no
// movement at all keeps returning NaN (no gains and no losses means the
// ratio is undefined, not overbought).
func (s *RSIService) Calculate(prices []float64, period int) []float64 {
	rsi := make([]float64, len(prices))
	for i := range rsi {
		rsi[i] = math.NaN()
	}

	if period <= 0 || len(prices) < period+1 {
		return rsi
	}

	// Seed the averages with a simple mean over the first `period` changes.
	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
	}

	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	rsi[period] = rsiValue(avgGain, avgLoss)

	// Wilder smoothing for the remainder of the series.
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		rsi[i] = rsiValue(avgGain, avgLoss)
	}

	return rsi
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return math.NaN()
	}
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
