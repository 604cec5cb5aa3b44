package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/amirphl/simple-indicators/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

type decodedReport struct {
	Candles    int `json:"candles"`
	Indicators []struct {
		Label string                `json:"label"`
		Lines map[string][]*float64 `json:"lines"`
	} `json:"indicators"`
	Rows []map[string]any `json:"rows"`
}

func TestRun_Sample(t *testing.T) {
	cfg, err := config.Load([]string{"-sample-size", "40", "-indicators", "sma:5,macd"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &buf, discard))

	var rep decodedReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, 40, rep.Candles)
	require.Len(t, rep.Indicators, 2)
	assert.Equal(t, "sma_5", rep.Indicators[0].Label)
	assert.Nil(t, rep.Indicators[0].Lines["value"][3])
	assert.NotNil(t, rep.Indicators[0].Lines["value"][4])
	assert.Len(t, rep.Indicators[1].Lines["signal"], 40)
	require.Len(t, rep.Rows, 40)
	assert.Contains(t, rep.Rows[0], "macd_12_26_9.histogram")
}

func TestRun_CSVAndParquetExport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bars.csv")
	data := "Date,Open,High,Low,Close,Volume\n" +
		"2024-01-01,10,11,9,10.5,100\n" +
		"2024-01-02,10.5,12,10,11.5,100\n" +
		"2024-01-03,11.5,13,11,12.5,100\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0644))
	exportPath := filepath.Join(dir, "bars.parquet")

	cfg, err := config.Load([]string{
		"-source", "csv", "-path", csvPath, "-timeframe", "1d",
		"-indicators", "sma:2", "-export-parquet", exportPath,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &buf, discard))

	var rep decodedReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	values := rep.Indicators[0].Lines["value"]
	require.Len(t, values, 3)
	assert.Nil(t, values[0])
	assert.Equal(t, 11.0, *values[1])
	assert.Equal(t, 12.0, *values[2])

	exported, err := candle.LoadParquet(exportPath)
	require.NoError(t, err)
	assert.Len(t, exported, 3)
}

type fakeReader struct {
	candles []candle.Candle
	err     error
}

func (f fakeReader) GetCandles(ctx context.Context, symbol, timeframe, source string, start, end time.Time) ([]candle.Candle, error) {
	return f.candles, f.err
}

func TestReadCandles(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	good := candle.Candle{Timestamp: ts, Open: 1, High: 2, Low: 1, Close: 2, Volume: 1}
	bad := candle.Candle{Timestamp: ts, Open: 1, High: 1, Low: 2, Close: 1}

	candles, err := readCandles(context.Background(), fakeReader{candles: []candle.Candle{good}}, "X", "1h", "", ts, ts)
	require.NoError(t, err)
	assert.Len(t, candles, 1)

	_, err = readCandles(context.Background(), fakeReader{candles: []candle.Candle{good, bad}}, "X", "1h", "", ts, ts)
	assert.ErrorContains(t, err, "invalid candle at index 1")

	boom := errors.New("boom")
	_, err = readCandles(context.Background(), fakeReader{err: boom}, "X", "1h", "", ts, ts)
	assert.ErrorIs(t, err, boom)
}
