package models

import (
	"time"
)

// PortfolioState is the durable portfolio record for one (symbol, strategy)
// key. The engine is fully allocated: at most one of Cash or Position is
// nonzero at any time. Equity is derived as cash + position * last price and
// is stored for inspection only, never read back as authoritative state.
//
// The JSON tags define the on-disk state file format.
type PortfolioState struct {
	Symbol    string    `json:"symbol"`
	Strategy  string    `json:"strategy"`
	Cash      float64   `json:"cash"`
	Position  float64   `json:"position"`
	LastPrice *float64  `json:"last_price"`
	Equity    float64   `json:"equity"`
	UpdatedAt time.Time `json:"updated_at"`
}
