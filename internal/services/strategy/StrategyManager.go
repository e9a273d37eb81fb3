package strategy

import (
	"fmt"
	"sort"
)

// StrategyManager maps strategy identifiers to implementations. Selection
// happens once, before any simulation state is touched, so an unknown name
// can never leave a half-run behind.
type StrategyManager struct {
	strategies map[string]Strategy
}

// NewStrategyManager creates a manager with the built-in strategies
// registered under their canonical names.
func NewStrategyManager() *StrategyManager {
	m := &StrategyManager{
		strategies: make(map[string]Strategy),
	}
	m.Register(NewSMACrossoverStrategy(DefaultFastPeriod, DefaultSlowPeriod))
	m.Register(NewRSIThresholdStrategy(DefaultRSIPeriod, DefaultOversold, DefaultOverbought))
	return m
}

// Register adds a strategy under its own name, replacing any previous
// registration. Used to install custom-tuned instances of the built-ins.
func (m *StrategyManager) Register(s Strategy) {
	m.strategies[s.Name()] = s
}

// Get resolves a strategy identifier.
func (m *StrategyManager) Get(name string) (Strategy, error) {
	s, ok := m.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names lists the registered strategy identifiers, sorted.
func (m *StrategyManager) Names() []string {
	names := make([]string, 0, len(m.strategies))
	for name := range m.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
