package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBollinger(t *testing.T) {
	candles := closeCandles(1, 2, 3, 4)

	res := CalculateBollinger(candles, 2, 2)

	assertSeries(t, []any{nil, 2.5, 3.5, 4.5}, res.Upper)
	assertSeries(t, []any{nil, 1.5, 2.5, 3.5}, res.Middle)
	assertSeries(t, []any{nil, 0.5, 1.5, 2.5}, res.Lower)
}

func TestCalculateBollinger_PopulationVariance(t *testing.T) {
	// mean 5, squared deviations sum to 32 over 8 values: population stddev 2
	candles := closeCandles(2, 4, 4, 4, 5, 5, 7, 9)

	res := CalculateBollinger(candles, 8, 1.5)

	assert.Equal(t, Some(5), res.Middle[7])
	assert.Equal(t, Some(8), res.Upper[7])
	assert.Equal(t, Some(2), res.Lower[7])
}

func TestCalculateBollinger_MiddleIsSMA(t *testing.T) {
	candles := sampleCandles(t, 80)
	res := CalculateBollinger(candles, 20, DefaultStdDevMultiplier)
	assert.Equal(t, CalculateSMA(candles, 20), res.Middle)
}

func TestCalculateBollinger_SymmetricBands(t *testing.T) {
	candles := sampleCandles(t, 100)
	for _, calc := range []Calculator{Default(), {Precision: -1}, {Precision: 4}} {
		res := calc.Bollinger(candles, 20, 2)
		for i := range candles {
			if !res.Middle[i].Valid {
				assert.Less(t, i, 19)
				continue
			}
			up := res.Upper[i].Float64 - res.Middle[i].Float64
			down := res.Middle[i].Float64 - res.Lower[i].Float64
			assert.InDelta(t, up, down, 1e-9, "precision %d index %d", calc.Precision, i)
			assert.GreaterOrEqual(t, up, 0.0)
		}
	}
}

func TestCalculateBollinger_ConstantPriceCollapses(t *testing.T) {
	candles := closeCandles(10, 10, 10, 10, 10)
	res := CalculateBollinger(candles, 3, 2)
	for i := 2; i < 5; i++ {
		assert.Equal(t, Some(10), res.Upper[i])
		assert.Equal(t, Some(10), res.Middle[i])
		assert.Equal(t, Some(10), res.Lower[i])
	}
}

func TestCalculateBollinger_InsufficientData(t *testing.T) {
	candles := closeCandles(1, 2, 3)
	for _, period := range []int{4, 0, -1} {
		res := CalculateBollinger(candles, period, 2)
		assertAllUndefined(t, res.Upper, 3)
		assertAllUndefined(t, res.Middle, 3)
		assertAllUndefined(t, res.Lower, 3)
	}

	res := CalculateBollinger(nil, 20, 2)
	require.NotNil(t, res.Upper)
	assert.Empty(t, res.Upper)
}
