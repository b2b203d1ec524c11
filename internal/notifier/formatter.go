package notifier

import (
	"fmt"
	"strings"
	"time"

	"CoinSentinel/internal/model"
)

// FormatBuyReport formats an executed buy for the operator channel.
func FormatBuyReport(result *model.TradeResult, d *model.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s buy executed\n", result.Market)
	fmt.Fprintf(&b, "amount: %.0f\n", result.Notional)
	fmt.Fprintf(&b, "RSI: %.2f, previous RSI: %.2f", d.RSICurrent, d.RSIPrevious)
	return b.String()
}

// FormatSellReport formats an executed sell with its realized profit.
func FormatSellReport(result *model.TradeResult, d *model.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s sell executed\n", result.Market)
	fmt.Fprintf(&b, "sell price: %.0f\n", result.Price)
	fmt.Fprintf(&b, "RSI: %.2f, previous RSI: %.2f\n", d.RSICurrent, d.RSIPrevious)
	fmt.Fprintf(&b, "profit: %.0f (%.2f%%)", result.Profit, result.ProfitRate)
	return b.String()
}

// FormatCycleError formats a scan-cycle failure report.
func FormatCycleError(err error) string {
	return fmt.Sprintf("autotrade cycle aborted: %v", err)
}

// FormatDailyReport formats the scheduled operator status report.
func FormatDailyReport(quoteCurrency string, quoteBalance float64, cycles, orders int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "daily status | %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "%s balance: %.0f\n", quoteCurrency, quoteBalance)
	fmt.Fprintf(&b, "cycles run: %d, orders placed: %d", cycles, orders)
	return b.String()
}
