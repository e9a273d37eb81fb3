// papertrade/Engine.go

package papertrade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/strategy"
	"PaperTradeBot/internal/services/trading"

	"github.com/rs/zerolog"
)

// StateStore is the durable portfolio store, satisfied by
// repositories.StateFileRepository.
type StateStore interface {
	Load(symbol, strategy string) (*models.PortfolioState, error)
	Save(state *models.PortfolioState) error
}

// Ledger is the append-only audit trail, satisfied by ledger.Recorder.
// Both methods are best-effort and report whether the record was written.
type Ledger interface {
	RecordTrade(ctx context.Context, trade *models.Trade) bool
	RecordSnapshot(ctx context.Context, snapshot *models.EquitySnapshot) bool
}

// Engine drives the simulation for one (symbol, strategy) key: classify,
// transition, persist, record — once per bar. Batch runs and live single-bar
// steps share the same step path so the two cannot diverge. The engine is
// the single writer for its key; the mutex serializes an overlapping batch
// run and live feed on the same instance. Separate keys belong to separate
// Engine instances.
type Engine struct {
	cfg    Config
	strat  strategy.Strategy
	states StateStore
	ledger Ledger
	log    zerolog.Logger

	mu      sync.Mutex
	state   *models.PortfolioState
	history []models.Bar
}

// NewEngine resolves the strategy and loads or seeds the durable state for
// the key. An unknown strategy name fails here, before any state is touched.
// A key with no state file gets a fresh Flat state with the configured
// initial cash, persisted immediately; a second initialization of the same
// key resumes instead, so the seeding is idempotent.
func NewEngine(cfg Config, strategies *strategy.StrategyManager, states StateStore, ledger Ledger, logger zerolog.Logger) (*Engine, error) {
	strat, err := strategies.Get(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	if cfg.InitialCash <= 0 {
		return nil, fmt.Errorf("initial cash must be positive, got %v", cfg.InitialCash)
	}

	state, err := states.Load(cfg.Symbol, cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio state: %w", err)
	}

	if state == nil {
		state = trading.NewState(cfg.Symbol, cfg.Strategy, cfg.InitialCash, time.Now().UTC())
		if err := states.Save(state); err != nil {
			logger.Warn().Err(err).
				Str("symbol", cfg.Symbol).
				Str("strategy", cfg.Strategy).
				Msg("could not persist initial portfolio state, continuing in memory")
		} else {
			logger.Info().
				Str("symbol", cfg.Symbol).
				Str("strategy", cfg.Strategy).
				Float64("cash", state.Cash).
				Msg("created initial portfolio state")
		}
	} else {
		logger.Info().
			Str("symbol", cfg.Symbol).
			Str("strategy", cfg.Strategy).
			Float64("cash", state.Cash).
			Float64("position", state.Position).
			Msg("resumed portfolio state")
	}

	return &Engine{
		cfg:    cfg,
		strat:  strat,
		states: states,
		ledger: ledger,
		log:    logger,
		state:  state,
	}, nil
}

// Preload appends bars to the classifier history without executing them.
// After a resume, feed the bars that were already traded through here so the
// indicators warm up exactly as they were before the restart.
func (e *Engine) Preload(bars []models.Bar) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, bars...)
}

// Step processes a single bar; the live/streaming entry point.
func (e *Engine) Step(ctx context.Context, bar models.Bar) (*StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step(ctx, bar)
}

// Run processes an ordered bar series through the same per-bar path as Step
// and returns the final portfolio summary plus the trades emitted. Errors
// that would corrupt financial state (an invalid execution price) abort the
// run; persistence and ledger failures do not.
func (e *Engine) Run(ctx context.Context, bars []models.Bar) (*RunSummary, []models.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var trades []models.Trade
	for _, bar := range bars {
		result, err := e.step(ctx, bar)
		if err != nil {
			return nil, nil, fmt.Errorf("bar %s: %w", bar.Timestamp.Format(time.RFC3339), err)
		}
		if result.Trade != nil {
			trades = append(trades, *result.Trade)
		}
	}

	summary := &RunSummary{
		Symbol:        e.cfg.Symbol,
		Strategy:      e.cfg.Strategy,
		BarsProcessed: len(bars),
		TradeCount:    len(trades),
		FinalCash:     e.state.Cash,
		FinalPosition: e.state.Position,
		FinalEquity:   e.state.Equity,
	}
	return summary, trades, nil
}

// State returns a copy of the current in-memory portfolio state.
func (e *Engine) State() models.PortfolioState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.state
}

// step is the single shared transition: classify the bar against the full
// history, apply the portfolio transition, persist the state, then record
// the snapshot and any fill. The state update through persist and record is
// treated as one short unit; if the process dies between the in-memory
// update and the save, the in-memory state stays correct for this run but
// the crash loses the last bar.
func (e *Engine) step(ctx context.Context, bar models.Bar) (*StepResult, error) {
	if n := len(e.history); n > 0 && !bar.Timestamp.After(e.history[n-1].Timestamp) {
		return nil, fmt.Errorf("bar timestamps must be strictly increasing: %s is not after %s",
			bar.Timestamp.Format(time.RFC3339), e.history[n-1].Timestamp.Format(time.RFC3339))
	}
	e.history = append(e.history, bar)

	sig := e.strat.Evaluate(e.history)

	fill, err := trading.Apply(e.state, sig, bar.Timestamp, bar.Close)
	if err != nil {
		return nil, err
	}

	persisted := true
	if err := e.states.Save(e.state); err != nil {
		persisted = false
		e.log.Warn().Err(err).
			Str("symbol", e.cfg.Symbol).
			Str("strategy", e.cfg.Strategy).
			Msg("failed to persist portfolio state, in-memory state remains authoritative")
	}

	snapshot := &models.EquitySnapshot{
		Strategy:       e.cfg.Strategy,
		Symbol:         e.cfg.Symbol,
		SnapshotTime:   bar.Timestamp,
		Cash:           e.state.Cash,
		PositionShares: e.state.Position,
		LastPrice:      bar.Close,
		Equity:         e.state.Equity,
		Extra:          "{}",
	}
	logged := e.ledger.RecordSnapshot(ctx, snapshot)

	var trade *models.Trade
	if fill != nil {
		trade = &models.Trade{
			Strategy:      e.cfg.Strategy,
			TradeType:     fill.Type,
			Symbol:        e.cfg.Symbol,
			TradeTime:     fill.Time,
			Price:         fill.Price,
			Shares:        fill.Shares,
			CashAfter:     fill.CashAfter,
			PositionAfter: fill.PositionAfter,
			Metadata:      "{}",
		}
		if !e.ledger.RecordTrade(ctx, trade) {
			logged = false
		}
	}

	return &StepResult{
		Signal:       sig,
		Trade:        trade,
		StateChanged: fill != nil,
		Persisted:    persisted,
		Logged:       logged,
		Cash:         e.state.Cash,
		Position:     e.state.Position,
		Equity:       e.state.Equity,
	}, nil
}
