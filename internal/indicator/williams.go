package indicator

import "github.com/amirphl/simple-indicators/internal/candle"

// WilliamsR computes %R = (highest high - close) / (highest high - lowest low) * -100
// over the trailing period bars, ranging from -100 to 0. A window without range
// yields -50, the midpoint, mirroring the %K convention.
func (c Calculator) WilliamsR(candles []candle.Candle, period int) Series {
	out := Undefined(len(candles))
	if !validPeriod(period, len(candles)) {
		return out
	}
	highs, lows, closes := ohlc(candles)
	for i := period - 1; i < len(candles); i++ {
		highest, lowest := windowRange(highs, lows, i, period)
		if highest == lowest {
			out[i] = Some(-50)
			continue
		}
		out[i] = Some((highest - closes[i]) / (highest - lowest) * -100)
	}
	return c.finish(out)
}
