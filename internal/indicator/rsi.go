package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// RSI is the relative strength index over the trailing period close-to-close
// changes. Gains and losses are plain averages recomputed for every window, not
// Wilder's running average. Indices before period are undefined.
//
// A window without losses has an infinite RS and yields 100. That includes a
// flat window, where gains are zero as well.
func (c Calculator) RSI(candles []candle.Candle, period int) Series {
	closes := candle.Closes(candles)
	out := Undefined(len(closes))
	if !validPeriod(period, len(closes)) {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	for i := period; i < len(closes); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			gain += gains[j]
			loss += losses[j]
		}
		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)
		if avgLoss == 0 {
			out[i] = Some(100)
			continue
		}
		rs := avgGain / avgLoss
		out[i] = Some(100 - 100/(1+rs))
	}
	return c.finish(out)
}
