// papertrade/Types.go

package papertrade

import (
	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/services/strategy"
)

// Simulation config for one (symbol, strategy) key
type Config struct {
	Symbol      string
	Strategy    string
	InitialCash float64
}

// StepResult reports what processing one bar did. Persistence and ledger
// failures are non-fatal and surface here instead of being swallowed.
type StepResult struct {
	Signal       strategy.Signal
	Trade        *models.Trade // nil when the bar produced no fill
	StateChanged bool
	Persisted    bool
	Logged       bool

	Cash     float64
	Position float64
	Equity   float64
}

// RunSummary is the final portfolio after a batch run.
type RunSummary struct {
	Symbol   string
	Strategy string

	BarsProcessed int
	TradeCount    int

	FinalCash     float64
	FinalPosition float64
	FinalEquity   float64
}
