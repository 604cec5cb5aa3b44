package indicator

import (
	"encoding/json"
	"time"

	"github.com/amirphl/simple-indicators/internal/candle"
)

// Row is one chart point: a candle plus every indicator value at its index.
type Row struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Values    map[string]Value
}

// MarshalJSON flattens Values next to the candle fields; undefined values are null.
func (r Row) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 6+len(r.Values))
	for col, v := range r.Values {
		m[col] = v
	}
	m["timestamp"] = r.Timestamp
	m["open"] = r.Open
	m["high"] = r.High
	m["low"] = r.Low
	m["close"] = r.Close
	m["volume"] = r.Volume
	return json.Marshal(m)
}

// Rows merges candles and results into chart rows, one per candle. A result line
// shorter than candles leaves the missing tail undefined.
func Rows(candles []candle.Candle, results []Result) []Row {
	rows := make([]Row, len(candles))
	for i, c := range candles {
		row := Row{
			Timestamp: c.Timestamp,
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
			Values:    make(map[string]Value),
		}
		for _, res := range results {
			for line, s := range res.Lines {
				var v Value
				if i < len(s) {
					v = s[i]
				}
				row.Values[res.Column(line)] = v
			}
		}
		rows[i] = row
	}
	return rows
}
