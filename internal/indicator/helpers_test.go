package indicator

import (
	"testing"
	"time"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Helper function to create test candles from price arrays
func createTestCandles(highs, lows, closes []float64) []candle.Candle {
	if len(highs) != len(lows) || len(lows) != len(closes) {
		panic("input arrays must have the same length")
	}
	candles := make([]candle.Candle, len(closes))
	for i := range closes {
		open := closes[i]
		if i > 0 {
			open = closes[i-1]
		}
		candles[i] = candle.Candle{
			Timestamp: baseTime.Add(time.Duration(i) * time.Hour),
			Open:      open,
			High:      highs[i],
			Low:       lows[i],
			Close:     closes[i],
			Volume:    1000,
			Symbol:    "TEST",
			Timeframe: "1h",
		}
	}
	return candles
}

// closeCandles builds candles whose high and low equal the close.
func closeCandles(closes ...float64) []candle.Candle {
	return createTestCandles(closes, closes, closes)
}

func risingCloses(start float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)
	}
	return closes
}

func sampleCandles(t *testing.T, n int) []candle.Candle {
	t.Helper()
	candles, err := candle.GenerateSample(150, n, "1h", baseTime.Add(time.Duration(n)*time.Hour), 42)
	require.NoError(t, err)
	return candles
}

// assertSeries compares a series against expected values, where nil means undefined.
func assertSeries(t *testing.T, expected []any, got Series) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i, e := range expected {
		if e == nil {
			assert.False(t, got[i].Valid, "index %d should be undefined, got %v", i, got[i].Float64)
			continue
		}
		if assert.True(t, got[i].Valid, "index %d should be defined", i) {
			assert.InDelta(t, e.(float64), got[i].Float64, 1e-9, "index %d", i)
		}
	}
}

func assertAllUndefined(t *testing.T, s Series, n int) {
	t.Helper()
	require.Len(t, s, n)
	for i, v := range s {
		assert.False(t, v.Valid, "index %d should be undefined", i)
	}
}
