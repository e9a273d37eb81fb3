package ledger

import (
	"context"
	"time"

	"PaperTradeBot/internal/models"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single ledger write so an unavailable database
// cannot stall the bar loop.
const DefaultTimeout = 5 * time.Second

// TradeStore and SnapshotStore are satisfied by the gorm repositories.
type TradeStore interface {
	Create(ctx context.Context, trade *models.Trade) error
}

type SnapshotStore interface {
	Create(ctx context.Context, snapshot *models.EquitySnapshot) error
}

// Recorder appends trades and equity snapshots to the ledger. The ledger is
// a derived audit trail, not the source of truth: every write is
// best-effort, timeout-bounded, and independently failing, so a lost record
// never rolls back a portfolio transition and never aborts later records.
type Recorder struct {
	trades    TradeStore
	snapshots SnapshotStore
	timeout   time.Duration
	log       zerolog.Logger
}

// NewRecorder creates a Recorder. A non-positive timeout falls back to
// DefaultTimeout.
func NewRecorder(trades TradeStore, snapshots SnapshotStore, timeout time.Duration, logger zerolog.Logger) *Recorder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Recorder{
		trades:    trades,
		snapshots: snapshots,
		timeout:   timeout,
		log:       logger,
	}
}

// RecordTrade appends one trade, reporting whether it was written.
func (r *Recorder) RecordTrade(ctx context.Context, trade *models.Trade) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.trades.Create(ctx, trade); err != nil {
		r.log.Warn().Err(err).
			Str("symbol", trade.Symbol).
			Str("strategy", trade.Strategy).
			Str("type", trade.TradeType).
			Msg("failed to record trade, continuing")
		return false
	}
	return true
}

// RecordSnapshot appends one equity snapshot, reporting whether it was
// written.
func (r *Recorder) RecordSnapshot(ctx context.Context, snapshot *models.EquitySnapshot) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.snapshots.Create(ctx, snapshot); err != nil {
		r.log.Warn().Err(err).
			Str("symbol", snapshot.Symbol).
			Str("strategy", snapshot.Strategy).
			Msg("failed to record equity snapshot, continuing")
		return false
	}
	return true
}
