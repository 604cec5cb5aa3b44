package candle

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/amirphl/simple-indicators/internal/tfutils"
	"github.com/shopspring/decimal"
)

// GenerateSample returns n random-walk candles ending at end, spaced by timeframe.
// Each step moves the price by up to 2% of base, wicks reach up to 1% of base and
// the close lands within 0.25% of the open. Prices carry 4 decimals and volume is
// a whole number in [500000, 1500000). The same seed always yields the same candles.
func GenerateSample(base float64, n int, timeframe string, end time.Time, seed uint64) ([]Candle, error) {
	if base <= 0 {
		return nil, fmt.Errorf("base price must be positive, got %v", base)
	}
	if n < 0 {
		return nil, fmt.Errorf("sample size cannot be negative, got %d", n)
	}
	interval, err := tfutils.ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	end = end.Truncate(interval).UTC()
	price := base
	candles := make([]Candle, 0, n)

	for i := n - 1; i >= 0; i-- {
		price += (rng.Float64() - 0.5) * base * 0.02
		if price <= 0 {
			price = base * 0.01
		}

		open := price
		high := open + rng.Float64()*base*0.01
		low := open - rng.Float64()*base*0.01
		closePrice := open + (rng.Float64()-0.5)*base*0.005
		high = math.Max(high, math.Max(open, closePrice))
		low = math.Max(math.Min(low, math.Min(open, closePrice)), base*0.0001)

		candles = append(candles, Candle{
			Timestamp: end.Add(-time.Duration(i) * interval),
			Open:      round4(open),
			High:      round4(high),
			Low:       round4(low),
			Close:     round4(closePrice),
			Volume:    math.Floor(rng.Float64()*1_000_000) + 500_000,
			Symbol:    "SAMPLE",
			Timeframe: timeframe,
			Source:    "sample",
		})
	}
	return candles, nil
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
