package repositories

import (
	"context"
	"errors"
	"time"

	"PaperTradeBot/internal/models"

	"gorm.io/gorm"
)

// DefaultTradeLimit caps trade listings when the caller passes no limit.
const DefaultTradeLimit = 500

type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new instance of TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create adds a new Trade record to the database
func (r *TradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	if trade == nil {
		return errors.New("trade cannot be nil")
	}
	return r.db.WithContext(ctx).Create(trade).Error
}

// FindTrades lists trades ordered by trade time ascending. Empty symbol or
// strategy and a nil since skip that filter; a non-positive limit falls back
// to DefaultTradeLimit. No matching rows is an empty slice, not an error.
func (r *TradeRepository) FindTrades(ctx context.Context, symbol, strategy string, since *time.Time, limit int) ([]models.Trade, error) {
	if limit <= 0 {
		limit = DefaultTradeLimit
	}

	q := r.db.WithContext(ctx).Model(&models.Trade{})
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if strategy != "" {
		q = q.Where("strategy = ?", strategy)
	}
	if since != nil {
		q = q.Where("trade_time >= ?", *since)
	}

	var trades []models.Trade
	err := q.Order("trade_time ASC").Limit(limit).Find(&trades).Error
	return trades, err
}
