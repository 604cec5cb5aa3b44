package indicator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/amirphl/simple-indicators/internal/candle"
)

var ErrUnknownKind = errors.New("unknown indicator kind")

// Params holds every tunable of every kind; each kind reads the fields it needs.
// A zero field means "use the default".
type Params struct {
	Period  int     `yaml:"period,omitempty" json:"period,omitempty"`
	Fast    int     `yaml:"fast,omitempty" json:"fast,omitempty"`
	Slow    int     `yaml:"slow,omitempty" json:"slow,omitempty"`
	Signal  int     `yaml:"signal,omitempty" json:"signal,omitempty"`
	KPeriod int     `yaml:"k_period,omitempty" json:"k_period,omitempty"`
	DPeriod int     `yaml:"d_period,omitempty" json:"d_period,omitempty"`
	StdDev  float64 `yaml:"std_dev,omitempty" json:"std_dev,omitempty"`
}

// WithDefaults fills zero fields with the catalog defaults of kind.
// A NaN StdDev counts as zero.
func (p Params) WithDefaults(kind Kind) Params {
	info, ok := Lookup(kind)
	if !ok {
		return p
	}
	d := info.Defaults
	if p.Period == 0 {
		p.Period = d.Period
	}
	if p.Fast == 0 {
		p.Fast = d.Fast
	}
	if p.Slow == 0 {
		p.Slow = d.Slow
	}
	if p.Signal == 0 {
		p.Signal = d.Signal
	}
	if p.KPeriod == 0 {
		p.KPeriod = d.KPeriod
	}
	if p.DPeriod == 0 {
		p.DPeriod = d.DPeriod
	}
	if p.StdDev == 0 || math.IsNaN(p.StdDev) {
		p.StdDev = d.StdDev
	}
	return p
}

// Request asks the engine for one indicator.
type Request struct {
	Kind   Kind   `yaml:"kind" json:"kind"`
	Params Params `yaml:"params,omitempty" json:"params"`
}

// Result is the output of one Request. Lines is keyed by the catalog line names.
type Result struct {
	Kind   Kind              `json:"kind"`
	Params Params            `json:"params"`
	Label  string            `json:"label"`
	Lines  map[string]Series `json:"lines"`
}

// Column returns the chart column name of line.
func (r Result) Column(line string) string {
	if line == LineValue {
		return r.Label
	}
	return r.Label + "." + line
}

func (r Result) clone() Result {
	lines := make(map[string]Series, len(r.Lines))
	for name, s := range r.Lines {
		lines[name] = s.Clone()
	}
	r.Lines = lines
	return r
}

// Label names a kind with its parameters, e.g. "sma_20" or "macd_12_26_9".
func Label(kind Kind, p Params) string {
	parts := []string{string(kind)}
	switch kind {
	case KindMACD:
		parts = append(parts, strconv.Itoa(p.Fast), strconv.Itoa(p.Slow), strconv.Itoa(p.Signal))
	case KindBollinger:
		parts = append(parts, strconv.Itoa(p.Period), strconv.FormatFloat(p.StdDev, 'f', -1, 64))
	case KindStochastic:
		parts = append(parts, strconv.Itoa(p.KPeriod), strconv.Itoa(p.DPeriod))
	default:
		parts = append(parts, strconv.Itoa(p.Period))
	}
	return strings.Join(parts, "_")
}

// DefaultRequests returns one request per kind with default parameters.
func DefaultRequests() []Request {
	kinds := Kinds()
	reqs := make([]Request, len(kinds))
	for i, kind := range kinds {
		reqs[i] = Request{Kind: kind}
	}
	return reqs
}

// Engine dispatches requests to a Calculator. It keeps no state between calls.
type Engine struct {
	calc Calculator
}

func NewEngine(calc Calculator) *Engine {
	return &Engine{calc: calc}
}

func (e *Engine) Calculator() Calculator {
	return e.calc
}

// Compute runs every request against candles. Requests are independent; an
// error is returned only for a kind the engine does not know, before anything
// is computed.
func (e *Engine) Compute(candles []candle.Candle, reqs []Request) ([]Result, error) {
	if err := validateRequests(reqs); err != nil {
		return nil, err
	}
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		results[i] = e.compute(candles, req)
	}
	return results, nil
}

func validateRequests(reqs []Request) error {
	for _, req := range reqs {
		if _, ok := Lookup(req.Kind); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
		}
	}
	return nil
}

func (e *Engine) compute(candles []candle.Candle, req Request) Result {
	p := req.Params.WithDefaults(req.Kind)
	c := e.calc
	lines := make(map[string]Series)

	switch req.Kind {
	case KindSMA:
		lines[LineValue] = c.SMA(candles, p.Period)
	case KindEMA:
		lines[LineValue] = c.EMA(candles, p.Period)
	case KindRSI:
		lines[LineValue] = c.RSI(candles, p.Period)
	case KindMACD:
		m := c.MACD(candles, p.Fast, p.Slow, p.Signal)
		lines[LineMACD] = m.MACD
		lines[LineSignal] = m.Signal
		lines[LineHistogram] = m.Histogram
	case KindBollinger:
		b := c.Bollinger(candles, p.Period, p.StdDev)
		lines[LineUpper] = b.Upper
		lines[LineMiddle] = b.Middle
		lines[LineLower] = b.Lower
	case KindStochastic:
		s := c.Stochastic(candles, p.KPeriod, p.DPeriod)
		lines[LineK] = s.K
		lines[LineD] = s.D
	case KindWilliamsR:
		lines[LineValue] = c.WilliamsR(candles, p.Period)
	}

	return Result{Kind: req.Kind, Params: p, Label: Label(req.Kind, p), Lines: lines}
}
