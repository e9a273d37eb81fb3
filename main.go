package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"PaperTradeBot/config"
	"PaperTradeBot/internal/models"
	"PaperTradeBot/internal/operations/binance"
	"PaperTradeBot/internal/operations/ledger"
	"PaperTradeBot/internal/operations/papertrade"
	"PaperTradeBot/internal/operations/price"
	"PaperTradeBot/internal/repositories"
	"PaperTradeBot/internal/services/strategy"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup database and ledger repositories
	db := setupDatabase(cfg.Database)
	tradeRepo := repositories.NewTradeRepository(db)
	equityRepo := repositories.NewEquityRepository(db)

	stateRepo, err := repositories.NewStateFileRepository(cfg.State.Dir,
		log.With().Str("component", "statestore").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize state store")
	}

	recorder := ledger.NewRecorder(tradeRepo, equityRepo, cfg.Ledger.Timeout,
		log.With().Str("component", "ledger").Logger())

	// Initialize simulation engine for the configured key
	strategies := strategy.NewStrategyManager()
	engine, err := papertrade.NewEngine(papertrade.Config{
		Symbol:      cfg.Trading.Symbol,
		Strategy:    cfg.Trading.Strategy,
		InitialCash: cfg.Trading.InitialCash,
	}, strategies, stateRepo, recorder,
		log.With().Str("component", "papertrade").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fetch the historical bar series
	binanceClient := binance.NewClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)
	fetcher := price.NewFetcher(binanceClient)
	bars, err := fetcher.FetchBars(ctx, cfg.Trading.Symbol, cfg.Trading.Interval, cfg.Trading.HistoryDays)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch bar history")
	}
	log.Info().
		Str("symbol", cfg.Trading.Symbol).
		Str("interval", cfg.Trading.Interval).
		Int("bars", len(bars)).
		Msg("fetched bar history")

	// Run the simulation
	summary, trades, err := engine.Run(ctx, bars)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	log.Info().
		Str("symbol", summary.Symbol).
		Str("strategy", summary.Strategy).
		Int("bars", summary.BarsProcessed).
		Int("trades", summary.TradeCount).
		Float64("final_cash", summary.FinalCash).
		Float64("final_position", summary.FinalPosition).
		Float64("final_equity", summary.FinalEquity).
		Msg("simulation complete")

	for _, t := range trades {
		log.Info().
			Str("type", t.TradeType).
			Time("time", t.TradeTime).
			Float64("price", t.Price).
			Float64("shares", t.Shares).
			Float64("cash_after", t.CashAfter).
			Msg("trade")
	}

	// Show what the ledger recorded for this run
	recorded, err := tradeRepo.FindTrades(ctx, cfg.Trading.Symbol, cfg.Trading.Strategy, nil, 0)
	if err != nil {
		log.Warn().Err(err).Msg("could not list recorded trades")
	} else {
		log.Info().Int("count", len(recorded)).Msg("trades recorded in ledger")
	}

	latest, err := equityRepo.FindLatest(ctx, cfg.Trading.Symbol, cfg.Trading.Strategy)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch latest snapshot")
	} else if latest != nil {
		log.Info().
			Time("snapshot_time", latest.SnapshotTime).
			Float64("equity", latest.Equity).
			Msg("latest recorded snapshot")
	}
}

func setupDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto migrate the append-only ledger tables
	if err := db.AutoMigrate(&models.Trade{}, &models.EquitySnapshot{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	return db
}
