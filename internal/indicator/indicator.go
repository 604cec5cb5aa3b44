// Package indicator computes technical indicators over a time-ordered candle
// sequence. Every function is a pure transform: the input is never modified and
// each output series has exactly one entry per input candle.
package indicator

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Alignment controls where the values of a secondary moving average (MACD
// signal line, Stochastic %D) are placed in the output.
type Alignment int

const (
	// AlignIndex writes each secondary value at the index of the primary value
	// that completed its window.
	AlignIndex Alignment = iota
	// AlignCompact writes the j-th secondary value at position j, counting only
	// defined primary values, and pads the tail with undefined. This reproduces
	// the legacy chart output, which is shifted left by the primary warm-up.
	AlignCompact
)

func (a Alignment) String() string {
	switch a {
	case AlignIndex:
		return "index"
	case AlignCompact:
		return "compact"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment accepts "index" or "compact".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "index":
		return AlignIndex, nil
	case "compact":
		return AlignCompact, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

// Calculator carries the presentation settings shared by all indicators.
// The zero value rounds to whole numbers; use Default for chart output.
type Calculator struct {
	// Precision is the number of decimals emitted values are rounded to,
	// half away from zero. Negative disables rounding.
	Precision int
	Alignment Alignment
}

// DefaultPrecision matches the two decimals the chart displays.
const DefaultPrecision = 2

// Default returns a Calculator rounding to DefaultPrecision with AlignIndex.
func Default() Calculator {
	return Calculator{Precision: DefaultPrecision, Alignment: AlignIndex}
}

func (c Calculator) round(v float64) float64 {
	if c.Precision < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(c.Precision)).InexactFloat64()
}

// finish rounds every defined value and drops any that are not finite.
func (c Calculator) finish(s Series) Series {
	for i, v := range s {
		if !v.Valid {
			continue
		}
		if math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
			s[i] = Value{}
			continue
		}
		// +0 turns a negative zero into zero
		s[i].Float64 = c.round(v.Float64) + 0
	}
	return s
}

// secondary runs avg over the defined values of primary and places the result
// according to c.Alignment.
func (c Calculator) secondary(primary Series, avg func([]float64) Series) Series {
	values, index := primary.compact()
	averaged := avg(values)
	out := Undefined(len(primary))
	for j, v := range averaged {
		if !v.Valid {
			continue
		}
		if c.Alignment == AlignCompact {
			out[j] = v
		} else {
			out[index[j]] = v
		}
	}
	return out
}

func validPeriod(period, n int) bool {
	return period > 0 && period <= n
}

// windowRange returns the highest high and lowest low over the period bars ending at i.
func windowRange(highs, lows []float64, i, period int) (highest, lowest float64) {
	highest = math.Inf(-1)
	lowest = math.Inf(1)
	for j := i - period + 1; j <= i; j++ {
		if highs[j] > highest {
			highest = highs[j]
		}
		if lows[j] < lowest {
			lowest = lows[j]
		}
	}
	return highest, lowest
}
