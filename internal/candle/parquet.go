package candle

import (
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"
)

// parquetBar is the on-disk row layout; t is unix milliseconds.
type parquetBar struct {
	Timestamp int64   `parquet:"t"`
	Open      float64 `parquet:"o"`
	High      float64 `parquet:"h"`
	Low       float64 `parquet:"l"`
	Close     float64 `parquet:"c"`
	Volume    float64 `parquet:"v"`
}

// LoadParquet reads candles from a Parquet file of {t,o,h,l,c,v} rows.
func LoadParquet(path string) ([]Candle, error) {
	rows, err := parquet.ReadFile[parquetBar](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	candles := make([]Candle, len(rows))
	for i, r := range rows {
		candles[i] = Candle{
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
			Source:    "parquet",
		}
		if err := candles[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at parquet row %d: %w", i, err)
		}
	}
	SortByTime(candles)
	return candles, nil
}

// WriteParquet writes candles to path in the layout LoadParquet reads.
func WriteParquet(path string, candles []Candle) error {
	rows := make([]parquetBar, len(candles))
	for i, c := range candles {
		rows[i] = parquetBar{
			Timestamp: c.Timestamp.UnixMilli(),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}
