package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() (*config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return &config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Trading: TradingConfig{
			Symbol:      envOrDefault("TRADING_SYMBOL", "BTCUSDT"),
			Strategy:    envOrDefault("TRADING_STRATEGY", "sma_crossover"),
			Interval:    envOrDefault("TRADING_INTERVAL", "1d"),
			HistoryDays: EnvtoIntDefault(os.Getenv("TRADING_HISTORY_DAYS"), 180),
			InitialCash: EnvtoFloatDefault(os.Getenv("TRADING_INITIAL_CASH"), 10000),
		},
		State: StateConfig{
			Dir: envOrDefault("STATE_DIR", "portfolio_state"),
		},
		Ledger: LedgerConfig{
			Timeout: EnvtoDurationDefault(os.Getenv("LEDGER_TIMEOUT"), 5*time.Second),
		},
	}, nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// helper env(string) to int with fallback
func EnvtoIntDefault(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// helper env(string) to float with fallback
func EnvtoFloatDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

// helper env(string) to duration with fallback
func EnvtoDurationDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
