package strategy

import (
	"math"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/indicators"
)

// RSIThresholdStrategy signals Buy when the RSI is at or below the oversold
// level and Sell when it is at or above the overbought level. During the
// indicator's warm-up the RSI is undefined and the strategy holds.
type RSIThresholdStrategy struct {
	rsi        *indicators.RSIService
	period     int
	oversold   float64
	overbought float64
}

// NewRSIThresholdStrategy creates an RSI threshold strategy. A non-positive
// period and zero thresholds fall back to the defaults (14, 30/70).
func NewRSIThresholdStrategy(period int, oversold, overbought float64) *RSIThresholdStrategy {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	if oversold <= 0 {
		oversold = DefaultOversold
	}
	if overbought <= 0 {
		overbought = DefaultOverbought
	}
	return &RSIThresholdStrategy{
		rsi:        indicators.NewRSIService(),
		period:     period,
		oversold:   oversold,
		overbought: overbought,
	}
}

func (s *RSIThresholdStrategy) Name() string {
	return "rsi"
}

// Evaluate classifies the last bar of the history.
func (s *RSIThresholdStrategy) Evaluate(bars []models.Bar) Signal {
	if len(bars) == 0 {
		return SignalHold
	}

	values := s.rsi.Calculate(closePrices(bars), s.period)
	value := values[len(values)-1]
	if math.IsNaN(value) {
		return SignalHold
	}

	switch {
	case value <= s.oversold:
		return SignalBuy
	case value >= s.overbought:
		return SignalSell
	default:
		return SignalHold
	}
}
