package models

import (
	"time"
)

// Bar is one OHLCV record from the market-data feed for a fixed interval.
// Timestamps are strictly increasing within a series; only Timestamp and
// Close are used for simulated execution.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
