package trading

import (
	"math/rand"
	"testing"
	"time"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func flatState(cash float64) *models.PortfolioState {
	return NewState("BTCUSDT", "sma_crossover", cash, t0)
}

func TestNewStateIsFlat(t *testing.T) {
	state := flatState(1000)

	assert.Equal(t, 1000.0, state.Cash)
	assert.Equal(t, 0.0, state.Position)
	assert.Equal(t, 1000.0, state.Equity)
	assert.Nil(t, state.LastPrice)
}

func TestBuyFromFlat(t *testing.T) {
	state := flatState(1000)

	fill, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)
	require.NotNil(t, fill)

	assert.Equal(t, models.TradeTypeBuy, fill.Type)
	assert.Equal(t, 100.0, fill.Shares)
	assert.Equal(t, 0.0, fill.CashAfter)
	assert.Equal(t, 100.0, fill.PositionAfter)

	assert.Equal(t, 0.0, state.Cash)
	assert.Equal(t, 100.0, state.Position)
	assert.InDelta(t, 1000.0, state.Equity, 1e-9)
}

func TestSellFromLong(t *testing.T) {
	state := flatState(1000)
	_, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)

	fill, err := Apply(state, strategy.SignalSell, t0.AddDate(0, 0, 1), 12.5)
	require.NoError(t, err)
	require.NotNil(t, fill)

	assert.Equal(t, models.TradeTypeSell, fill.Type)
	assert.Equal(t, 100.0, fill.Shares)
	assert.Equal(t, 1250.0, state.Cash)
	assert.Equal(t, 0.0, state.Position)
	assert.InDelta(t, 1250.0, state.Equity, 1e-9)
}

func TestSellWhileFlatIsNoOp(t *testing.T) {
	state := flatState(1000)

	fill, err := Apply(state, strategy.SignalSell, t0, 10)
	require.NoError(t, err)
	assert.Nil(t, fill)

	assert.Equal(t, 1000.0, state.Cash)
	assert.Equal(t, 0.0, state.Position)
}

func TestBuyWhileLongIsNoOp(t *testing.T) {
	state := flatState(1000)
	_, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)
	position := state.Position

	fill, err := Apply(state, strategy.SignalBuy, t0.AddDate(0, 0, 1), 20)
	require.NoError(t, err)
	assert.Nil(t, fill)

	assert.Equal(t, position, state.Position)
	assert.Equal(t, 0.0, state.Cash)
}

func TestHoldUpdatesEquityWithoutTrading(t *testing.T) {
	state := flatState(1000)
	_, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)

	fill, err := Apply(state, strategy.SignalHold, t0.AddDate(0, 0, 1), 11)
	require.NoError(t, err)
	assert.Nil(t, fill)

	require.NotNil(t, state.LastPrice)
	assert.Equal(t, 11.0, *state.LastPrice)
	assert.InDelta(t, 1100.0, state.Equity, 1e-9)
}

func TestBuyAtNonPositivePriceFails(t *testing.T) {
	state := flatState(1000)

	for _, price := range []float64{0, -5} {
		fill, err := Apply(state, strategy.SignalBuy, t0, price)
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Nil(t, fill)
		assert.Equal(t, 1000.0, state.Cash)
		assert.Equal(t, 0.0, state.Position)
		assert.Nil(t, state.LastPrice)
	}
}

func TestSellAtNonPositivePriceFails(t *testing.T) {
	state := flatState(1000)
	_, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)
	position := state.Position

	fill, err := Apply(state, strategy.SignalSell, t0.AddDate(0, 0, 1), 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, fill)
	assert.Equal(t, position, state.Position)
}

func TestRepeatedSignalsAreIdempotent(t *testing.T) {
	state := flatState(1000)

	_, err := Apply(state, strategy.SignalBuy, t0, 10)
	require.NoError(t, err)
	after := *state

	// Re-delivering the same Buy must not change anything but valuation.
	fill, err := Apply(state, strategy.SignalBuy, t0.AddDate(0, 0, 1), 10)
	require.NoError(t, err)
	assert.Nil(t, fill)
	assert.Equal(t, after.Cash, state.Cash)
	assert.Equal(t, after.Position, state.Position)
}

func TestInvariantsOverRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	state := flatState(10000)
	price := 100.0
	ts := t0

	for i := 0; i < 500; i++ {
		price *= 1 + (rng.Float64()-0.5)*0.1
		sig := strategy.Signal(rng.Intn(3))
		ts = ts.Add(time.Hour)

		cashBefore, positionBefore := state.Cash, state.Position

		fill, err := Apply(state, sig, ts, price)
		require.NoError(t, err)

		// Fully-allocated: never cash and position at once.
		assert.True(t, state.Cash == 0 || state.Position == 0,
			"step %d: cash=%v position=%v", i, state.Cash, state.Position)
		assert.GreaterOrEqual(t, state.Cash, 0.0)
		assert.GreaterOrEqual(t, state.Position, 0.0)

		// Value is conserved across the fill at the fill price.
		if fill != nil {
			before := cashBefore + positionBefore*fill.Price
			after := fill.CashAfter + fill.PositionAfter*fill.Price
			assert.InDelta(t, before, after, before*1e-12, "step %d", i)
		}
	}
}

func TestEquityIsDerivedNotStored(t *testing.T) {
	state := flatState(1000)
	_, err := Apply(state, strategy.SignalBuy, t0, 8)
	require.NoError(t, err)

	assert.InDelta(t, Equity(state), state.Equity, 1e-12)

	// Tampering with the stored equity does not survive the next bar.
	state.Equity = 999999
	_, err = Apply(state, strategy.SignalHold, t0.AddDate(0, 0, 1), 8)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, state.Equity, 1e-9)
}
