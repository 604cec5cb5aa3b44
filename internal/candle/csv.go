package candle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
}

// LoadCSV reads candles from a CSV file with a Date,Open,High,Low,Close,Volume header.
func LoadCSV(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses candles from r. Column order is taken from the header row, which
// must name date (or timestamp), open, high, low, close and volume. The returned
// candles are validated and sorted by timestamp.
func ReadCSV(r io.Reader) ([]Candle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "timestamp" || name == "time" {
			name = "date"
		}
		cols[name] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", required)
		}
	}

	var candles []Candle
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		ts, err := parseTime(record[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		c := Candle{Timestamp: ts, Source: "csv"}
		fields := []struct {
			name string
			dst  *float64
		}{
			{"open", &c.Open},
			{"high", &c.High},
			{"low", &c.Low},
			{"close", &c.Close},
			{"volume", &c.Volume},
		}
		for _, f := range fields {
			raw := strings.ReplaceAll(strings.TrimSpace(record[cols[f.name]]), ",", "")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: invalid %s %q: %w", line, f.name, raw, err)
			}
			*f.dst = v
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at csv line %d: %w", line, err)
		}
		candles = append(candles, c)
	}

	SortByTime(candles)
	return candles, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
