package scanner

import (
	"context"
	"fmt"
	"time"

	"CoinSentinel/internal/calculator"
	"CoinSentinel/internal/model"
	"CoinSentinel/internal/notifier"
	"CoinSentinel/internal/recorder"
	"CoinSentinel/internal/strategy"
	"CoinSentinel/pkg/logger"
)

// MarketData provides read-only market information.
type MarketData interface {
	Markets(quote string) ([]string, error)
	Candles(market string, count int) ([]model.Candle, error)
	BestAsk(market string) (float64, error)
}

// Account provides balance queries and order placement.
type Account interface {
	Balance(currency string) (float64, error)
	BuyMarket(market string, notional float64) (*model.OrderReceipt, error)
	SellMarket(market string, quantity float64) (*model.OrderReceipt, error)
}

// Config holds the per-scan trading parameters.
type Config struct {
	QuoteCurrency   string
	ExcludedMarkets []string
	BidAmount       float64
	MinOrderValue   float64
	RSIPeriod       int
	CandleCount     int
	MarketDelay     time.Duration
}

// Stats summarizes one scan pass.
type Stats struct {
	MarketsScanned int
	OrdersPlaced   int
}

// Scanner walks the market universe once per cycle, computes the oscillator
// per market, and routes decisions to order placement and notification.
type Scanner struct {
	market   MarketData
	account  Account
	notifier notifier.Notifier
	recorder recorder.Recorder
	engine   *strategy.Engine
	cfg      Config
	excluded map[string]bool
	sleep    func(time.Duration)
}

// New creates a Scanner.
func New(market MarketData, account Account, n notifier.Notifier, rec recorder.Recorder,
	engine *strategy.Engine, cfg Config) *Scanner {
	excluded := make(map[string]bool, len(cfg.ExcludedMarkets))
	for _, m := range cfg.ExcludedMarkets {
		excluded[m] = true
	}
	return &Scanner{
		market:   market,
		account:  account,
		notifier: n,
		recorder: rec,
		engine:   engine,
		cfg:      cfg,
		excluded: excluded,
		sleep:    time.Sleep,
	}
}

// Scan runs one full pass over the universe. The first failing market
// aborts the remainder of the pass; markets already processed keep their
// executed orders. At most one order is placed per market per pass.
func (s *Scanner) Scan(ctx context.Context) (Stats, error) {
	var stats Stats

	markets, err := s.market.Markets(s.cfg.QuoteCurrency)
	if err != nil {
		return stats, fmt.Errorf("list markets: %w", err)
	}

	for _, market := range markets {
		if s.excluded[market] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		placed, err := s.scanMarket(market)
		if err != nil {
			return stats, fmt.Errorf("scan %s: %w", market, err)
		}
		stats.MarketsScanned++
		if placed {
			stats.OrdersPlaced++
		}

		// Pacing between markets, out of courtesy to the API rate limit.
		s.sleep(s.cfg.MarketDelay)
	}
	return stats, nil
}

func (s *Scanner) scanMarket(market string) (placed bool, err error) {
	logger.Info("%s: checking trade conditions", market)

	balance, err := s.account.Balance(model.BaseCurrency(market))
	if err != nil {
		return false, fmt.Errorf("balance: %w", err)
	}

	candles, err := s.market.Candles(market, s.cfg.CandleCount)
	if err != nil {
		return false, fmt.Errorf("candles: %w", err)
	}

	rsi, err := calculator.RSISeries(calculator.Closes(candles), s.cfg.RSIPeriod)
	if err != nil {
		// Thin series is a data condition, not a cycle fault.
		logger.Warn("%s: rsi not computable: %v", market, err)
		return false, nil
	}
	previous, current, ok := strategy.DecisionPoints(rsi)
	if !ok {
		return false, nil
	}

	decision := s.engine.Decide(market, previous, current)
	switch decision.Kind {
	case model.Buy:
		return true, s.executeBuy(&decision)
	case model.Sell:
		return s.executeSell(&decision, balance)
	}
	return false, nil
}

func (s *Scanner) executeBuy(d *model.Decision) error {
	receipt, err := s.account.BuyMarket(d.Market, s.cfg.BidAmount)
	if err != nil {
		return fmt.Errorf("buy order: %w", err)
	}
	s.engine.MarkBought(d.Market)
	logger.Info("%s: market buy placed, order %s", d.Market, receipt.UUID)

	result := &model.TradeResult{
		Market:   d.Market,
		Kind:     model.Buy,
		Notional: s.cfg.BidAmount,
	}
	s.trySend(notifier.FormatBuyReport(result, d))
	s.record(&recorder.DecisionEvent{
		Market:      d.Market,
		Kind:        model.Buy.String(),
		Executed:    true,
		Notional:    s.cfg.BidAmount,
		RSICurrent:  d.RSICurrent,
		RSIPrevious: d.RSIPrevious,
	})
	return nil
}

func (s *Scanner) executeSell(d *model.Decision, balance float64) (bool, error) {
	ask, err := s.market.BestAsk(d.Market)
	if err != nil {
		return false, fmt.Errorf("best ask: %w", err)
	}

	plan, ok := strategy.SizeSell(balance, ask, s.cfg.BidAmount, s.cfg.MinOrderValue)
	if !ok {
		logger.Info("%s: sell suppressed, notional %.0f below minimum %.0f",
			d.Market, plan.Notional, s.cfg.MinOrderValue)
		s.record(&recorder.DecisionEvent{
			Market:      d.Market,
			Kind:        model.Sell.String(),
			Executed:    false,
			Reason:      "below minimum order value",
			Price:       ask,
			Quantity:    plan.Quantity,
			Notional:    plan.Notional,
			RSICurrent:  d.RSICurrent,
			RSIPrevious: d.RSIPrevious,
		})
		return false, nil
	}

	receipt, err := s.account.SellMarket(d.Market, plan.Quantity)
	if err != nil {
		return false, fmt.Errorf("sell order: %w", err)
	}
	s.engine.MarkSold(d.Market)
	logger.Info("%s: market sell placed, order %s", d.Market, receipt.UUID)

	result := &model.TradeResult{
		Market:     d.Market,
		Kind:       model.Sell,
		Price:      ask,
		Quantity:   plan.Quantity,
		Notional:   plan.Notional,
		Profit:     plan.Profit,
		ProfitRate: plan.ProfitRate,
	}
	s.trySend(notifier.FormatSellReport(result, d))
	s.record(&recorder.DecisionEvent{
		Market:      d.Market,
		Kind:        model.Sell.String(),
		Executed:    true,
		Price:       ask,
		Quantity:    plan.Quantity,
		Notional:    plan.Notional,
		Profit:      plan.Profit,
		ProfitRate:  plan.ProfitRate,
		RSICurrent:  d.RSICurrent,
		RSIPrevious: d.RSIPrevious,
	})
	return true, nil
}

func (s *Scanner) trySend(text string) {
	if err := s.notifier.Send(text); err != nil {
		logger.Error("send notification: %v", err)
	}
}

func (s *Scanner) record(e *recorder.DecisionEvent) {
	if err := s.recorder.RecordDecision(e); err != nil {
		logger.Error("record decision: %v", err)
	}
}
