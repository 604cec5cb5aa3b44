package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// MACDResult holds the three MACD lines, each aligned with the input candles.
type MACDResult struct {
	MACD      Series `json:"macd"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// MACD computes EMA(fast) - EMA(slow) of the close, its signal EMA and the
// histogram between the two.
//
// The signal line is an EMA over the defined MACD values, placed according to
// c.Alignment. Because EMA is defined from the first bar the MACD line has no
// warm-up, so both alignments give the same signal line unless fast or slow is
// invalid, in which case every line is undefined.
func (c Calculator) MACD(candles []candle.Candle, fast, slow, signal int) MACDResult {
	closes := candle.Closes(candles)
	fastEMA := emaValues(closes, fast)
	slowEMA := emaValues(closes, slow)

	macd := Undefined(len(closes))
	for i := range macd {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			macd[i] = Some(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}

	signalLine := c.secondary(macd, func(values []float64) Series {
		return emaValues(values, signal)
	})

	histogram := Undefined(len(closes))
	for i := range histogram {
		if macd[i].Valid && signalLine[i].Valid {
			histogram[i] = Some(macd[i].Float64 - signalLine[i].Float64)
		}
	}

	return MACDResult{
		MACD:      c.finish(macd),
		Signal:    c.finish(signalLine),
		Histogram: c.finish(histogram),
	}
}
