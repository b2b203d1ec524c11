package model

import (
	"strings"
	"time"
)

// Candle represents a single candlestick bar, chronologically ordered
// oldest-first when held in a slice.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BaseCurrency extracts the base currency from a market code like "KRW-BTC".
func BaseCurrency(market string) string {
	if i := strings.Index(market, "-"); i >= 0 {
		return market[i+1:]
	}
	return market
}
