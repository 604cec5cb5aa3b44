package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/amirphl/simple-indicators/internal/config"
	"github.com/amirphl/simple-indicators/internal/db"
	"github.com/amirphl/simple-indicators/internal/indicator"
	"github.com/amirphl/simple-indicators/internal/utils"
)

// report is the JSON document written for the chart.
type report struct {
	Symbol      string             `json:"symbol,omitempty"`
	Timeframe   string             `json:"timeframe"`
	Source      string             `json:"source"`
	Candles     int                `json:"candles"`
	GeneratedAt time.Time          `json:"generated_at"`
	Indicators  []indicator.Result `json:"indicators"`
	Rows        []indicator.Row    `json:"rows"`
}

func main() {
	cfg := config.MustLoadConfig()
	utils.SetLogFile(cfg.LogFile)
	logger := utils.GetLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := io.Writer(os.Stdout)
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := run(ctx, cfg, out, logger); err != nil {
		logger.Printf("run failed: %v", err)
		log.Fatalf("Failed: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, out io.Writer, logger *log.Logger) error {
	candles, err := loadCandles(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load candles: %w", err)
	}
	logger.Printf("Loaded %d candles from %s", len(candles), cfg.Source)

	if cfg.ExportPath != "" {
		if err := candle.WriteParquet(cfg.ExportPath, candles); err != nil {
			return err
		}
		logger.Printf("Exported candles to %s", cfg.ExportPath)
	}

	alignment, err := indicator.ParseAlignment(cfg.Alignment)
	if err != nil {
		return err
	}
	engine := indicator.NewEngine(indicator.Calculator{Precision: cfg.Precision, Alignment: alignment})

	reqs := cfg.Indicators
	if len(reqs) == 0 {
		reqs = indicator.DefaultRequests()
	}
	results, err := engine.Compute(candles, reqs)
	if err != nil {
		return fmt.Errorf("failed to compute indicators: %w", err)
	}
	for _, res := range results {
		logger.Printf("Computed %s (%d lines)", res.Label, len(res.Lines))
	}

	symbol := cfg.Symbol
	if cfg.Source == "csv" || cfg.Source == "parquet" {
		symbol = ""
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		Symbol:      symbol,
		Timeframe:   cfg.Timeframe,
		Source:      cfg.Source,
		Candles:     len(candles),
		GeneratedAt: time.Now().UTC(),
		Indicators:  results,
		Rows:        indicator.Rows(candles, results),
	})
}

func loadCandles(ctx context.Context, cfg config.Config) ([]candle.Candle, error) {
	switch cfg.Source {
	case "sample":
		return candle.GenerateSample(cfg.SampleBase, cfg.SampleSize, cfg.Timeframe, time.Now(), cfg.SampleSeed)
	case "csv":
		return candle.LoadCSV(cfg.Path)
	case "parquet":
		return candle.LoadParquet(cfg.Path)
	case "postgres":
		from, err := cfg.FromTime()
		if err != nil {
			return nil, err
		}
		to, err := cfg.ToTime()
		if err != nil {
			return nil, err
		}
		store, err := db.Open(ctx, cfg.DBConnStr, cfg.DBMaxOpen, cfg.DBMaxIdle)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return readCandles(ctx, store, cfg.Symbol, cfg.Timeframe, cfg.CandleSource, from, to)
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}

func readCandles(ctx context.Context, r db.CandleReader, symbol, timeframe, source string, from, to time.Time) ([]candle.Candle, error) {
	candles, err := r.GetCandles(ctx, symbol, timeframe, source, from, to)
	if err != nil {
		return nil, err
	}
	for i := range candles {
		if err := candles[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid candle at index %d: %w", i, err)
		}
	}
	return candles, nil
}
