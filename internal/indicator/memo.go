package indicator

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/cespare/xxhash/v2"
)

type memoKey struct {
	candles   uint64
	n         int
	kind      Kind
	params    Params
	precision int
	alignment Alignment
}

// Memo caches Engine results keyed on the candle contents, the request and the
// calculator settings. Results are copied in and out, so callers may modify what
// they get back. When the cache holds capacity entries it is emptied before the next
// insert. Memo is safe for concurrent use.
type Memo struct {
	engine   *Engine
	capacity int

	mu      sync.Mutex
	entries map[memoKey]Result
	hits    int
	misses  int
}

func NewMemo(engine *Engine, capacity int) *Memo {
	if capacity <= 0 {
		capacity = 256
	}
	return &Memo{engine: engine, capacity: capacity, entries: make(map[memoKey]Result)}
}

// Compute behaves like Engine.Compute.
func (m *Memo) Compute(candles []candle.Candle, reqs []Request) ([]Result, error) {
	if err := validateRequests(reqs); err != nil {
		return nil, err
	}
	sum := hashCandles(candles)
	calc := m.engine.Calculator()

	results := make([]Result, len(reqs))
	for i, req := range reqs {
		key := memoKey{
			candles:   sum,
			n:         len(candles),
			kind:      req.Kind,
			params:    req.Params.WithDefaults(req.Kind),
			precision: calc.Precision,
			alignment: calc.Alignment,
		}
		if res, ok := m.get(key); ok {
			results[i] = res
			continue
		}
		res := m.engine.compute(candles, req)
		m.put(key, res)
		results[i] = res
	}
	return results, nil
}

// Stats reports cache hits and misses since creation.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

func (m *Memo) get(key memoKey) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.entries[key]
	if !ok {
		m.misses++
		return Result{}, false
	}
	m.hits++
	return res.clone(), true
}

func (m *Memo) put(key memoKey, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) >= m.capacity {
		clear(m.entries)
	}
	m.entries[key] = res.clone()
}

func hashCandles(candles []candle.Candle) uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		d.Write(buf[:])
	}
	for _, c := range candles {
		write(uint64(c.Timestamp.UnixNano()))
		write(math.Float64bits(c.Open))
		write(math.Float64bits(c.High))
		write(math.Float64bits(c.Low))
		write(math.Float64bits(c.Close))
		write(math.Float64bits(c.Volume))
	}
	return d.Sum64()
}
