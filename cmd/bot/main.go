package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinSentinel/internal/config"
	"CoinSentinel/internal/exchange"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/scanner"
	"CoinSentinel/internal/scheduler"
	"CoinSentinel/internal/strategy"
	"CoinSentinel/pkg/logger"
)

func main() {
	if err := logger.Init("coinsentinel"); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("CoinSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation: %v", err)
	}

	// Init exchange client
	client := exchange.NewClient(cfg.Upbit.AccessKey, cfg.Upbit.SecretKey, cfg.Trading.CandleInterval)

	// Init notifier
	var n notifier.Notifier
	switch cfg.Notifier.Backend {
	case "slack":
		n = notifier.NewSlackNotifier(cfg.Notifier.SlackToken, cfg.Notifier.SlackChannel)
	case "telegram":
		tn, err := notifier.NewTelegramNotifier(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID)
		if err != nil {
			logger.Fatal("init telegram notifier: %v", err)
		}
		n = tn
	default:
		n = notifier.NewNoopNotifier()
	}
	logger.Info("notifier backend: %s", n.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init decision engine and scanner
	engine := strategy.NewEngine(strategy.Policy{TrackPositions: cfg.Trading.TrackPositions})
	sc := scanner.New(client, client, n, rec, engine, scanner.Config{
		QuoteCurrency:   cfg.Trading.QuoteCurrency,
		ExcludedMarkets: cfg.Trading.ExcludedMarkets,
		BidAmount:       cfg.Trading.BidAmount,
		MinOrderValue:   cfg.Trading.MinOrderValue,
		RSIPeriod:       cfg.Trading.RSIPeriod,
		CandleCount:     cfg.Trading.CandleCount,
		MarketDelay:     time.Duration(cfg.Schedule.MarketDelay),
	})

	// Init scheduler
	sched := scheduler.New(scheduler.NewRealClock(), client, client, sc, n, rec, scheduler.Config{
		ReferenceMarket: cfg.Schedule.ReferenceMarket,
		WindowOffset:    time.Duration(cfg.Schedule.WindowOffset),
		WindowLength:    time.Duration(cfg.Schedule.WindowLength),
		CycleDelay:      time.Duration(cfg.Schedule.CycleDelay),
		QuoteCurrency:   cfg.Trading.QuoteCurrency,
	})
	if cfg.Schedule.ReportCron != "" {
		if err := sched.RegisterReport(cfg.Schedule.ReportCron); err != nil {
			logger.Fatal("register report task: %v", err)
		}
	}

	// Shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, stopping...")
		cancel()
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, scanning immediately")
		sched.RunNow(ctx)
	}

	if err := sched.Run(ctx); err != nil {
		logger.Fatal("scheduler: %v", err)
	}
	logger.Info("CoinSentinel stopped")
}
