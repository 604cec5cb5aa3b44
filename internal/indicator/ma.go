package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// SMA is the arithmetic mean of the close over the trailing period bars.
// Indices before period-1 are undefined.
func (c Calculator) SMA(candles []candle.Candle, period int) Series {
	return c.finish(smaValues(candle.Closes(candles), period))
}

// EMA is the exponential moving average of the close with k = 2/(period+1).
//
// The series is seeded with the first close instead of an initial SMA, so it is
// defined from index 0 and its early values lean towards the first bar. Charts
// built on this package have always shown that curve; it is not the textbook
// EMA, which would start at period-1. The seed is the first close as given and
// is never rounded; later values follow c.Precision.
//
// A period outside [1, len(candles)] gives an all-undefined series, even though
// the seed alone would be computable.
func (c Calculator) EMA(candles []candle.Candle, period int) Series {
	closes := candle.Closes(candles)
	out := c.finish(emaValues(closes, period))
	if len(out) > 0 && out[0].Valid {
		out[0].Float64 = closes[0] + 0
	}
	return out
}

func smaValues(values []float64, period int) Series {
	out := Undefined(len(values))
	if !validPeriod(period, len(values)) {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-period+1 : i+1] {
			sum += v
		}
		out[i] = Some(sum / float64(period))
	}
	return out
}

func emaValues(values []float64, period int) Series {
	out := Undefined(len(values))
	if !validPeriod(period, len(values)) {
		return out
	}
	k := 2 / float64(period+1)
	ema := values[0]
	out[0] = Some(ema)
	for i := 1; i < len(values); i++ {
		ema = values[i]*k + ema*(1-k)
		out[i] = Some(ema)
	}
	return out
}
