package strategy

import (
	"math"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/indicators"
)

// SMACrossoverStrategy signals Buy while the fast moving average is above
// the slow one and Sell while it is below. While either average is still
// undefined (insufficient history) or the two are exactly equal, it holds.
type SMACrossoverStrategy struct {
	sma        *indicators.SMAService
	fastPeriod int
	slowPeriod int
}

// NewSMACrossoverStrategy creates a crossover strategy with the given
// windows. Non-positive windows fall back to the defaults (10/30).
func NewSMACrossoverStrategy(fastPeriod, slowPeriod int) *SMACrossoverStrategy {
	if fastPeriod <= 0 {
		fastPeriod = DefaultFastPeriod
	}
	if slowPeriod <= 0 {
		slowPeriod = DefaultSlowPeriod
	}
	return &SMACrossoverStrategy{
		sma:        indicators.NewSMAService(),
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

func (s *SMACrossoverStrategy) Name() string {
	return "sma_crossover"
}

// Evaluate classifies the last bar of the history.
func (s *SMACrossoverStrategy) Evaluate(bars []models.Bar) Signal {
	if len(bars) == 0 {
		return SignalHold
	}

	closes := closePrices(bars)
	fast := s.sma.Calculate(closes, s.fastPeriod)
	slow := s.sma.Calculate(closes, s.slowPeriod)

	last := len(bars) - 1
	fastVal, slowVal := fast[last], slow[last]
	if math.IsNaN(fastVal) || math.IsNaN(slowVal) {
		return SignalHold
	}

	switch {
	case fastVal > slowVal:
		return SignalBuy
	case fastVal < slowVal:
		return SignalSell
	default:
		return SignalHold
	}
}
