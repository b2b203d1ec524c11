package calculator

import (
	"errors"
	"math"

	"CoinSentinel/internal/model"
)

// RSISeries computes the RSI for every close in the input series using an
// exponential moving average with alpha = 1/period (no-adjust seeding: the
// first price change seeds the average directly).
//
// The returned slice is aligned 1:1 with closes; index 0 has no preceding
// close and is NaN. A window with zero average loss saturates to exactly
// 100. Requires period >= 1 and at least two closes.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < 2 {
		return nil, errors.New("not enough closes for RSI calculation")
	}

	alpha := 1.0 / float64(period)

	rsi := make([]float64, len(closes))
	rsi[0] = math.NaN()

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if i == 1 {
			avgGain = gain
			avgLoss = loss
		} else {
			avgGain = alpha*gain + (1-alpha)*avgGain
			avgLoss = alpha*loss + (1-alpha)*avgLoss
		}

		if avgLoss == 0 {
			rsi[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		rsi[i] = 100.0 - 100.0/(1.0+rs)
	}
	return rsi, nil
}

// Closes extracts the close prices from a candle series.
func Closes(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
