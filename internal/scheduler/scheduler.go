package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/scanner"
	"CoinSentinel/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Config holds the cycle timing parameters.
type Config struct {
	// ReferenceMarket anchors the trade window to this market's current
	// candle open time.
	ReferenceMarket string
	// WindowOffset and WindowLength define the active window
	// [open+offset, open+offset+length).
	WindowOffset time.Duration
	WindowLength time.Duration
	// CycleDelay is slept between outer iterations, in and out of the
	// window alike; it doubles as the error-retry backoff.
	CycleDelay    time.Duration
	QuoteCurrency string
}

// Scheduler drives the repeat-forever outer loop: it gates scanning to the
// recurring trade window and runs the optional cron-driven status report.
type Scheduler struct {
	clock    Clock
	market   scanner.MarketData
	account  scanner.Account
	scanner  *scanner.Scanner
	notifier notifier.Notifier
	recorder recorder.Recorder
	cron     *cron.Cron
	cfg      Config

	mu     sync.Mutex
	cycles int
	orders int
}

// New creates a Scheduler.
func New(clock Clock, market scanner.MarketData, account scanner.Account,
	sc *scanner.Scanner, n notifier.Notifier, rec recorder.Recorder, cfg Config) *Scheduler {
	return &Scheduler{
		clock:    clock,
		market:   market,
		account:  account,
		scanner:  sc,
		notifier: n,
		recorder: rec,
		cron:     cron.New(cron.WithSeconds()),
		cfg:      cfg,
	}
}

// RegisterReport schedules the periodic operator status report.
func (s *Scheduler) RegisterReport(cronSpec string) error {
	if _, err := s.cron.AddFunc(cronSpec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled. Each iteration checks the trade
// window, scans when inside it, then sleeps the cycle delay. Errors are
// reported and the loop continues; only cancellation ends it.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	defer s.cron.Stop()

	s.trySend("autotrade start")
	logger.Info("scheduler started, reference market %s", s.cfg.ReferenceMarket)

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return nil
		default:
		}

		s.tick(ctx)

		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return nil
		case <-s.clock.After(s.cfg.CycleDelay):
		}
	}
}

// RunNow executes one scan immediately, bypassing the window gate. Used
// for the RUN_ON_START trigger and manual kicks.
func (s *Scheduler) RunNow(ctx context.Context) {
	logger.Info("immediate scan requested")
	s.runScan(ctx)
}

// tick runs a single outer iteration: window check plus at most one scan.
func (s *Scheduler) tick(ctx context.Context) {
	inWindow, err := s.inTradeWindow()
	if err != nil {
		logger.Error("trade window check: %v", err)
		s.trySendRetry(ctx, notifier.FormatCycleError(err))
		return
	}
	if !inWindow {
		return
	}

	logger.Info("trade window open, scanning")
	s.runScan(ctx)
}

func (s *Scheduler) runScan(ctx context.Context) {
	stats, err := s.scanner.Scan(ctx)

	s.mu.Lock()
	s.cycles++
	s.orders += stats.OrdersPlaced
	s.mu.Unlock()

	cycle := &recorder.CycleEvent{
		MarketsScanned: stats.MarketsScanned,
		OrdersPlaced:   stats.OrdersPlaced,
	}
	if err != nil {
		cycle.Err = err.Error()
	}
	if recErr := s.recorder.RecordCycle(cycle); recErr != nil {
		logger.Error("record cycle: %v", recErr)
	}

	if err != nil {
		logger.Error("scan cycle: %v", err)
		s.trySendRetry(ctx, notifier.FormatCycleError(err))
		return
	}
	logger.Info("scan complete: %d markets, %d orders", stats.MarketsScanned, stats.OrdersPlaced)
}

// inTradeWindow reports whether the current time falls inside the active
// window anchored to the reference market's candle open.
func (s *Scheduler) inTradeWindow() (bool, error) {
	candles, err := s.market.Candles(s.cfg.ReferenceMarket, 1)
	if err != nil {
		return false, fmt.Errorf("fetch reference candle: %w", err)
	}
	if len(candles) == 0 {
		return false, fmt.Errorf("no reference candle for %s", s.cfg.ReferenceMarket)
	}

	open := candles[len(candles)-1].Time
	start := open.Add(s.cfg.WindowOffset)
	end := start.Add(s.cfg.WindowLength)

	now := s.clock.Now()
	return !now.Before(start) && now.Before(end), nil
}

func (s *Scheduler) reportTask() {
	balance, err := s.account.Balance(s.cfg.QuoteCurrency)
	if err != nil {
		logger.Error("report balance fetch: %v", err)
		return
	}
	s.mu.Lock()
	cycles, orders := s.cycles, s.orders
	s.mu.Unlock()
	s.trySend(notifier.FormatDailyReport(s.cfg.QuoteCurrency, balance, cycles, orders))
}

// retrySender is implemented by backends that support retried delivery.
type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

func (s *Scheduler) trySend(text string) {
	if err := s.notifier.Send(text); err != nil {
		logger.Error("send notification: %v", err)
	}
}

// trySendRetry delivers error reports with retries when the backend
// supports them. Routine messages go through trySend unretried.
func (s *Scheduler) trySendRetry(ctx context.Context, text string) {
	rs, ok := s.notifier.(retrySender)
	if !ok {
		s.trySend(text)
		return
	}
	if err := rs.SendWithRetry(ctx, text, 3); err != nil {
		logger.Error("send notification: %v", err)
	}
}
