package strategy

import (
	"errors"

	"PaperTradeBot/internal/models"
)

// Signal is the classifier's per-bar decision. The zero value is Hold so an
// uninitialized signal can never trigger a trade.
type Signal int

const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	default:
		return "hold"
	}
}

// Strategy classifies the most recent bar of a history. Evaluate must be
// deterministic and must only read bars up to and including the last element:
// the same prefix always yields the same signal whether it was built bar by
// bar or handed over in one batch.
type Strategy interface {
	Name() string
	Evaluate(bars []models.Bar) Signal
}

// ErrUnknownStrategy is returned when a strategy identifier has no
// registered implementation.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Default parameters, matching the common definitions of both strategies.
const (
	DefaultFastPeriod = 10
	DefaultSlowPeriod = 30

	DefaultRSIPeriod  = 14
	DefaultOversold   = 30.0
	DefaultOverbought = 70.0
)

func closePrices(bars []models.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
