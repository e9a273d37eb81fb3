package config

import "time"

type config struct {
	Exchange ExchangeConfig
	Database DatabaseConfig
	Trading  TradingConfig
	State    StateConfig
	Ledger   LedgerConfig
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type TradingConfig struct {
	Symbol      string
	Strategy    string
	Interval    string
	HistoryDays int
	InitialCash float64
}

type StateConfig struct {
	Dir string
}

type LedgerConfig struct {
	Timeout time.Duration
}
