package trading

import (
	"errors"
	"fmt"
	"time"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/strategy"
)

// ErrInvalidPrice is returned when a transition would execute at a
// non-positive price. The transition is aborted and the state untouched.
var ErrInvalidPrice = errors.New("invalid execution price")

// Fill is one simulated execution at a bar's closing price. CashAfter and
// PositionAfter capture the portfolio immediately after the fill.
type Fill struct {
	Type          string
	Time          time.Time
	Price         float64
	Shares        float64
	CashAfter     float64
	PositionAfter float64
}

// NewState seeds a fresh Flat portfolio for a (symbol, strategy) key.
func NewState(symbol, strategyName string, initialCash float64, now time.Time) *models.PortfolioState {
	return &models.PortfolioState{
		Symbol:    symbol,
		Strategy:  strategyName,
		Cash:      initialCash,
		Position:  0,
		Equity:    initialCash,
		UpdatedAt: now,
	}
}

// Apply consumes one signal at one bar close and mutates the state in place.
// The portfolio is fully allocated, so there are exactly two state-changing
// transitions: Flat+Buy goes all-in, Long+Sell goes all-out. Every other
// (state, signal) combination is a no-op, which also makes re-delivery of
// the same signal safe. Equity and the last observed price are refreshed on
// every call, trade or not, so the equity curve stays continuous.
func Apply(state *models.PortfolioState, sig strategy.Signal, ts time.Time, price float64) (*Fill, error) {
	var fill *Fill

	switch {
	case sig == strategy.SignalBuy && state.Position == 0:
		if price <= 0 {
			return nil, fmt.Errorf("%w: buy at %v", ErrInvalidPrice, price)
		}
		shares := state.Cash / price
		state.Position = shares
		state.Cash = 0
		fill = &Fill{
			Type:          models.TradeTypeBuy,
			Time:          ts,
			Price:         price,
			Shares:        shares,
			CashAfter:     state.Cash,
			PositionAfter: state.Position,
		}

	case sig == strategy.SignalSell && state.Position > 0:
		if price <= 0 {
			return nil, fmt.Errorf("%w: sell at %v", ErrInvalidPrice, price)
		}
		shares := state.Position
		state.Cash = shares * price
		state.Position = 0
		fill = &Fill{
			Type:          models.TradeTypeSell,
			Time:          ts,
			Price:         price,
			Shares:        shares,
			CashAfter:     state.Cash,
			PositionAfter: state.Position,
		}
	}

	if price > 0 {
		p := price
		state.LastPrice = &p
	}
	state.Equity = Equity(state)
	state.UpdatedAt = ts

	return fill, nil
}

// Equity values the portfolio at the last observed price. Before any price
// has been seen the position is necessarily zero and equity equals cash.
func Equity(state *models.PortfolioState) float64 {
	if state.LastPrice == nil {
		return state.Cash
	}
	return state.Cash + state.Position*(*state.LastPrice)
}
