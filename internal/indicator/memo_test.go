package indicator

import (
	"math"
	"sync"
	"testing"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_HitsAndMisses(t *testing.T) {
	candles := sampleCandles(t, 60)
	memo := NewMemo(NewEngine(Default()), 0)
	reqs := []Request{{Kind: KindSMA}, {Kind: KindRSI}}

	first, err := memo.Compute(candles, reqs)
	require.NoError(t, err)
	second, err := memo.Compute(candles, reqs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	hits, misses := memo.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 2, misses)

	// explicit defaults hit the same entry as zero params
	_, err = memo.Compute(candles, []Request{{Kind: KindSMA, Params: Params{Period: 20}}})
	require.NoError(t, err)
	hits, _ = memo.Stats()
	assert.Equal(t, 3, hits)
}

func TestMemo_MatchesEngine(t *testing.T) {
	candles := sampleCandles(t, 80)
	engine := NewEngine(Calculator{Precision: 3, Alignment: AlignCompact})

	want, err := engine.Compute(candles, DefaultRequests())
	require.NoError(t, err)
	got, err := NewMemo(engine, 10).Compute(candles, DefaultRequests())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemo_ChangedInputIsRecomputed(t *testing.T) {
	candles := sampleCandles(t, 30)
	memo := NewMemo(NewEngine(Default()), 10)
	reqs := []Request{{Kind: KindSMA, Params: Params{Period: 5}}}

	before, err := memo.Compute(candles, reqs)
	require.NoError(t, err)

	changed := make([]candle.Candle, len(candles))
	copy(changed, candles)
	changed[29].Close += 50

	after, err := memo.Compute(changed, reqs)
	require.NoError(t, err)
	assert.NotEqual(t, before[0].Lines[LineValue][29], after[0].Lines[LineValue][29])
	assert.Equal(t, CalculateSMA(changed, 5), after[0].Lines[LineValue])
}

func TestMemo_ReturnedSeriesAreCopies(t *testing.T) {
	candles := sampleCandles(t, 30)
	memo := NewMemo(NewEngine(Default()), 10)
	reqs := []Request{{Kind: KindEMA, Params: Params{Period: 5}}}

	first, err := memo.Compute(candles, reqs)
	require.NoError(t, err)
	first[0].Lines[LineValue][0] = Some(-1)

	second, err := memo.Compute(candles, reqs)
	require.NoError(t, err)
	assert.Equal(t, CalculateEMA(candles, 5), second[0].Lines[LineValue])
}

func TestMemo_CapacityResets(t *testing.T) {
	candles := sampleCandles(t, 30)
	memo := NewMemo(NewEngine(Default()), 2)

	for _, period := range []int{2, 3, 4} {
		_, err := memo.Compute(candles, []Request{{Kind: KindSMA, Params: Params{Period: period}}})
		require.NoError(t, err)
	}
	memo.mu.Lock()
	assert.Len(t, memo.entries, 1)
	memo.mu.Unlock()
}

func TestMemo_NaNStdDevHits(t *testing.T) {
	candles := sampleCandles(t, 40)
	memo := NewMemo(NewEngine(Default()), 10)
	reqs := []Request{{Kind: KindBollinger, Params: Params{StdDev: math.NaN()}}}

	first, err := memo.Compute(candles, reqs)
	require.NoError(t, err)
	second, err := memo.Compute(candles, reqs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	hits, misses := memo.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	memo.mu.Lock()
	assert.Len(t, memo.entries, 1)
	memo.mu.Unlock()
}

func TestMemo_UnknownKind(t *testing.T) {
	memo := NewMemo(NewEngine(Default()), 10)
	_, err := memo.Compute(nil, []Request{{Kind: "bogus"}})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMemo_Concurrent(t *testing.T) {
	candles := sampleCandles(t, 100)
	memo := NewMemo(NewEngine(Default()), 64)
	want, err := NewEngine(Default()).Compute(candles, DefaultRequests())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	mismatches := make(chan int, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			got, err := memo.Compute(candles, DefaultRequests())
			if err != nil {
				errs <- err
				return
			}
			for i := range got {
				got[i].Lines[LineValue] = nil
				if got[i].Label != want[i].Label {
					mismatches <- g
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	close(mismatches)
	assert.Empty(t, errs)
	assert.Empty(t, mismatches)

	got, err := memo.Compute(candles, DefaultRequests())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
