package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// StochasticResult holds the results of stochastic oscillator calculation
type StochasticResult struct {
	K Series `json:"k"` // %K line values
	D Series `json:"d"` // %D line values
}

// Stochastic computes %K = 100 * (close - lowest low) / (highest high - lowest low)
// over the trailing kPeriod bars, and %D as the dPeriod SMA of %K placed
// according to c.Alignment. With AlignCompact, %D is shifted left by kPeriod-1
// bars relative to %K.
//
// A window whose highest high equals its lowest low has no range; %K is 50 there.
func (c Calculator) Stochastic(candles []candle.Candle, kPeriod, dPeriod int) StochasticResult {
	k := Undefined(len(candles))
	if validPeriod(kPeriod, len(candles)) {
		highs, lows, closes := ohlc(candles)
		for i := kPeriod - 1; i < len(candles); i++ {
			highest, lowest := windowRange(highs, lows, i, kPeriod)
			if highest == lowest {
				k[i] = Some(50)
				continue
			}
			k[i] = Some((closes[i] - lowest) / (highest - lowest) * 100)
		}
	}

	d := c.secondary(k, func(values []float64) Series {
		return smaValues(values, dPeriod)
	})

	return StochasticResult{K: c.finish(k), D: c.finish(d)}
}

func ohlc(candles []candle.Candle) (highs, lows, closes []float64) {
	highs = make([]float64, len(candles))
	lows = make([]float64, len(candles))
	closes = make([]float64, len(candles))
	for i, cd := range candles {
		highs[i] = cd.High
		lows[i] = cd.Low
		closes[i] = cd.Close
	}
	return highs, lows, closes
}
