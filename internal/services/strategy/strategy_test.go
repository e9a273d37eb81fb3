package strategy

import (
	"math"
	"testing"
	"time"

	"PaperTradeBot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes ...float64) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

// evaluateSeries classifies each bar against its own prefix, the way the
// engine feeds history bar by bar.
func evaluateSeries(s Strategy, bars []models.Bar) []Signal {
	signals := make([]Signal, len(bars))
	for i := range bars {
		signals[i] = s.Evaluate(bars[:i+1])
	}
	return signals
}

func TestSMACrossoverSignals(t *testing.T) {
	s := NewSMACrossoverStrategy(2, 3)
	bars := barsFromCloses(10, 12, 9, 11)

	signals := evaluateSeries(s, bars)

	assert.Equal(t, []Signal{SignalHold, SignalHold, SignalBuy, SignalSell}, signals)
}

func TestSMACrossoverHoldsDuringWarmup(t *testing.T) {
	s := NewSMACrossoverStrategy(10, 30)
	bars := barsFromCloses(10, 11, 12, 13, 14)

	for _, sig := range evaluateSeries(s, bars) {
		assert.Equal(t, SignalHold, sig)
	}
}

func TestSMACrossoverHoldsOnTie(t *testing.T) {
	s := NewSMACrossoverStrategy(2, 3)
	bars := barsFromCloses(7, 7, 7, 7, 7)

	for _, sig := range evaluateSeries(s, bars) {
		assert.Equal(t, SignalHold, sig)
	}
}

func TestSMACrossoverEmptyHistory(t *testing.T) {
	s := NewSMACrossoverStrategy(2, 3)
	assert.Equal(t, SignalHold, s.Evaluate(nil))
}

func TestRSIHoldsDuringWarmup(t *testing.T) {
	s := NewRSIThresholdStrategy(14, 30, 70)
	bars := barsFromCloses(100, 99, 98, 97, 96, 95, 94, 93, 92, 91)

	for _, sig := range evaluateSeries(s, bars) {
		assert.Equal(t, SignalHold, sig)
	}
}

func TestRSIOversoldBuys(t *testing.T) {
	s := NewRSIThresholdStrategy(2, 30, 70)
	bars := barsFromCloses(10, 9, 8)

	assert.Equal(t, SignalBuy, s.Evaluate(bars))
}

func TestRSIOverboughtSells(t *testing.T) {
	s := NewRSIThresholdStrategy(2, 30, 70)
	bars := barsFromCloses(10, 11, 12)

	assert.Equal(t, SignalSell, s.Evaluate(bars))
}

func TestRSIMidRangeHolds(t *testing.T) {
	// Alternating gains and slightly smaller losses keep the RSI strictly
	// between the thresholds for the whole series.
	closes := []float64{100}
	for i := 1; i < 40; i++ {
		delta := 1.0
		if i%2 == 0 {
			delta = -0.9
		}
		closes = append(closes, closes[i-1]+delta)
	}

	s := NewRSIThresholdStrategy(14, 30, 70)
	for i, sig := range evaluateSeries(s, barsFromCloses(closes...)) {
		assert.Equal(t, SignalHold, sig, "bar %d", i)
	}
}

func TestNoLookahead(t *testing.T) {
	// A signal at bar i must not change when later bars are appended.
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3) + 0.2*float64(i)
	}
	bars := barsFromCloses(closes...)
	truncated := bars[:25]

	for _, s := range []Strategy{
		NewSMACrossoverStrategy(5, 12),
		NewRSIThresholdStrategy(14, 30, 70),
	} {
		full := evaluateSeries(s, bars)
		short := evaluateSeries(s, truncated)
		for i := range short {
			assert.Equal(t, full[i], short[i], "%s: bar %d", s.Name(), i)
		}
	}
}

func TestDeterministicEvaluation(t *testing.T) {
	bars := barsFromCloses(10, 12, 9, 11, 13, 8, 14)
	s := NewSMACrossoverStrategy(2, 3)

	first := evaluateSeries(s, bars)
	second := evaluateSeries(s, bars)
	assert.Equal(t, first, second)
}

func TestManagerResolvesBuiltins(t *testing.T) {
	m := NewStrategyManager()

	sma, err := m.Get("sma_crossover")
	require.NoError(t, err)
	assert.Equal(t, "sma_crossover", sma.Name())

	rsi, err := m.Get("rsi")
	require.NoError(t, err)
	assert.Equal(t, "rsi", rsi.Name())

	assert.Equal(t, []string{"rsi", "sma_crossover"}, m.Names())
}

func TestManagerUnknownStrategy(t *testing.T) {
	m := NewStrategyManager()

	_, err := m.Get("momentum_breakout")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestManagerRegisterReplaces(t *testing.T) {
	m := NewStrategyManager()
	m.Register(NewSMACrossoverStrategy(2, 3))

	s, err := m.Get("sma_crossover")
	require.NoError(t, err)
	assert.Equal(t, SignalBuy, s.Evaluate(barsFromCloses(10, 12, 9)))
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "hold", SignalHold.String())
	assert.Equal(t, "buy", SignalBuy.String())
	assert.Equal(t, "sell", SignalSell.String())
}
