package indicator

import (
	"math"

	"github.com/amirphl/simple-indicators/internal/candle"
)

// DefaultStdDevMultiplier is the band width used when none is configured.
const DefaultStdDevMultiplier = 2.0

// BollingerResult holds the three bands, each aligned with the input candles.
type BollingerResult struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}

// Bollinger computes the SMA of the close and bands multiplier population
// standard deviations (divided by period) above and below it.
// The middle line and the band width are rounded separately, so the bands are
// symmetric around the middle up to float64 rounding of the final add and subtract.
func (c Calculator) Bollinger(candles []candle.Candle, period int, multiplier float64) BollingerResult {
	closes := candle.Closes(candles)
	middle := smaValues(closes, period)
	upper := Undefined(len(closes))
	lower := Undefined(len(closes))

	for i, m := range middle {
		if !m.Valid {
			continue
		}
		variance := 0.0
		for _, v := range closes[i-period+1 : i+1] {
			variance += (v - m.Float64) * (v - m.Float64)
		}
		variance /= float64(period)
		width := multiplier * math.Sqrt(variance)
		if math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(m.Float64) || math.IsInf(m.Float64, 0) {
			middle[i] = Value{}
			continue
		}

		mid := c.round(m.Float64)
		width = c.round(width)
		middle[i] = Some(mid)
		upper[i] = Some(mid + width)
		lower[i] = Some(mid - width)
	}

	return BollingerResult{
		Upper:  c.finish(upper),
		Middle: c.finish(middle),
		Lower:  c.finish(lower),
	}
}
