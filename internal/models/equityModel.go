package models

import (
	"time"
)

// EquitySnapshot is one per-bar valuation of a portfolio. One row is written
// per processed bar whether or not a trade occurred, so the equity curve has
// no gaps. Rows are append-only.
type EquitySnapshot struct {
	ID           uint      `gorm:"primaryKey"`
	Strategy     string    `gorm:"size:100;index;not null"`
	Symbol       string    `gorm:"size:20;index;not null"`
	SnapshotTime time.Time `gorm:"index;not null"`

	Cash           float64 `gorm:"type:decimal(18,8);not null"`
	PositionShares float64 `gorm:"type:decimal(18,8);not null"`
	LastPrice      float64 `gorm:"type:decimal(18,8);not null"`
	Equity         float64 `gorm:"type:decimal(18,8);not null"`

	Extra string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName sets the table name for EquitySnapshot model
func (EquitySnapshot) TableName() string {
	return "equity_snapshots"
}
