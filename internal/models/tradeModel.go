package models

import (
	"time"
)

// Trade is one simulated fill. Rows are append-only facts: created exactly
// once per executed transition, never updated or deleted.
type Trade struct {
	ID        uint      `gorm:"primaryKey"`
	Strategy  string    `gorm:"size:100;index;not null"`
	TradeType string    `gorm:"size:10;not null"`
	Symbol    string    `gorm:"size:20;index;not null"`
	TradeTime time.Time `gorm:"index;not null"`
	Price     float64   `gorm:"type:decimal(18,8);not null"`
	Shares    float64   `gorm:"type:decimal(18,8);not null"`

	CashAfter     float64 `gorm:"type:decimal(18,8)"`
	PositionAfter float64 `gorm:"type:decimal(18,8)"`

	Metadata string `gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// TableName sets the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}
