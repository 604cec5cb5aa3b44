// Package config
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/simple-indicators/internal/indicator"
	"github.com/amirphl/simple-indicators/internal/tfutils"
	"gopkg.in/yaml.v3"
)

/*
YAML config example:
source: "postgres"
db_conn_str: "postgres://..."
symbol: "BTCIRT"
timeframe: "1h"
from: "2024-01-01"
to: "2024-06-01"
precision: 2
alignment: "index"
indicators:
  - kind: sma
    params: { period: 50 }
  - kind: macd
    params: { fast: 12, slow: 26, signal: 9 }
  - kind: bollinger
    params: { period: 20, std_dev: 2.5 }
output: "indicators.json"
*/

const dateLayout = "2006-01-02"

var sources = []string{"sample", "csv", "parquet", "postgres"}

type Config struct {
	Source       string              `yaml:"source"`
	Path         string              `yaml:"path"`
	DBConnStr    string              `yaml:"db_conn_str"`
	DBMaxOpen    int                 `yaml:"db_max_open"`
	DBMaxIdle    int                 `yaml:"db_max_idle"`
	Symbol       string              `yaml:"symbol"`
	Timeframe    string              `yaml:"timeframe"`
	CandleSource string              `yaml:"candle_source"`
	From         string              `yaml:"from"`
	To           string              `yaml:"to"`
	SampleSize   int                 `yaml:"sample_size"`
	SampleBase   float64             `yaml:"sample_base"`
	SampleSeed   uint64              `yaml:"sample_seed"`
	Indicators   []indicator.Request `yaml:"indicators"`
	Precision    int                 `yaml:"precision"`
	Alignment    string              `yaml:"alignment"`
	Output       string              `yaml:"output"`
	ExportPath   string              `yaml:"export_parquet"`
	LogFile      string              `yaml:"log_file"`
}

func defaults() Config {
	now := time.Now().UTC()
	return Config{
		Source:     "sample",
		DBMaxOpen:  10,
		DBMaxIdle:  5,
		Symbol:     "BTCIRT",
		Timeframe:  "1h",
		From:       now.AddDate(0, -1, 0).Format(dateLayout),
		To:         now.AddDate(0, 0, 1).Format(dateLayout),
		SampleSize: 100,
		SampleBase: 150,
		SampleSeed: 1,
		Precision:  indicator.DefaultPrecision,
		Alignment:  indicator.AlignIndex.String(),
		LogFile:    "indicators.log",
	}
}

// FromTime and ToTime return the parsed query range.
func (c Config) FromTime() (time.Time, error) { return time.Parse(dateLayout, c.From) }
func (c Config) ToTime() (time.Time, error)   { return time.Parse(dateLayout, c.To) }

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	known := false
	for _, s := range sources {
		known = known || s == c.Source
	}
	if !known {
		return fmt.Errorf("unknown source %q, want one of %s", c.Source, strings.Join(sources, ", "))
	}
	if (c.Source == "csv" || c.Source == "parquet") && c.Path == "" {
		return fmt.Errorf("source %s needs a path", c.Source)
	}
	if c.Source == "postgres" {
		if c.DBConnStr == "" {
			return fmt.Errorf("source postgres needs db_conn_str or DB_CONN_STR")
		}
		if c.Symbol == "" {
			return fmt.Errorf("source postgres needs a symbol")
		}
		from, err := c.FromTime()
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
		to, err := c.ToTime()
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
		if !from.Before(to) {
			return fmt.Errorf("from %s must be before to %s", c.From, c.To)
		}
	}
	if !tfutils.IsValidTimeframe(c.Timeframe) {
		return fmt.Errorf("unsupported timeframe %q", c.Timeframe)
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("sample size cannot be negative")
	}
	if _, err := indicator.ParseAlignment(c.Alignment); err != nil {
		return err
	}
	for _, req := range c.Indicators {
		if _, ok := indicator.Lookup(req.Kind); !ok {
			return fmt.Errorf("%w: %q", indicator.ErrUnknownKind, req.Kind)
		}
	}
	return nil
}

// requestList parses comma-separated kind[:param...] entries, e.g.
// "sma:50,macd:12:26:9,bollinger:20:2.5,stochastic:14:3".
type requestList struct {
	reqs *[]indicator.Request
}

func (l requestList) String() string {
	if l.reqs == nil {
		return ""
	}
	parts := make([]string, len(*l.reqs))
	for i, r := range *l.reqs {
		parts[i] = indicator.Label(r.Kind, r.Params.WithDefaults(r.Kind))
	}
	return strings.Join(parts, ",")
}

func (l requestList) Set(s string) error {
	reqs, err := ParseIndicators(s)
	if err != nil {
		return err
	}
	*l.reqs = reqs
	return nil
}

// ParseIndicators parses the -indicators flag syntax.
func ParseIndicators(s string) ([]indicator.Request, error) {
	var reqs []indicator.Request
	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		req := indicator.Request{Kind: indicator.Kind(strings.ToLower(parts[0]))}
		if _, ok := indicator.Lookup(req.Kind); !ok {
			return nil, fmt.Errorf("%w: %q", indicator.ErrUnknownKind, parts[0])
		}

		var ints []*int
		var std *float64
		switch req.Kind {
		case indicator.KindMACD:
			ints = []*int{&req.Params.Fast, &req.Params.Slow, &req.Params.Signal}
		case indicator.KindBollinger:
			ints = []*int{&req.Params.Period}
			std = &req.Params.StdDev
		case indicator.KindStochastic:
			ints = []*int{&req.Params.KPeriod, &req.Params.DPeriod}
		default:
			ints = []*int{&req.Params.Period}
		}

		args := parts[1:]
		limit := len(ints)
		if std != nil {
			limit++
		}
		if len(args) > limit {
			return nil, fmt.Errorf("indicator %q takes at most %d parameters", entry, limit)
		}
		for i, arg := range args {
			if i < len(ints) {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return nil, fmt.Errorf("indicator %q: invalid parameter %q: %w", entry, arg, err)
				}
				*ints[i] = v
				continue
			}
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("indicator %q: invalid parameter %q: %w", entry, arg, err)
			}
			*std = v
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func newFlagSet(cfg *Config, configFile *string) *flag.FlagSet {
	fs := flag.NewFlagSet("indicators", flag.ContinueOnError)
	fs.StringVar(configFile, "config", "", "Path to YAML config file")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "Candle source: sample or csv or parquet or postgres")
	fs.StringVar(&cfg.Path, "path", cfg.Path, "CSV or Parquet file to read candles from")
	fs.StringVar(&cfg.DBConnStr, "db", cfg.DBConnStr, "Postgres connection string")
	fs.StringVar(&cfg.Symbol, "symbol", cfg.Symbol, "Symbol to read from postgres")
	fs.StringVar(&cfg.Timeframe, "timeframe", cfg.Timeframe, "Candle timeframe")
	fs.StringVar(&cfg.CandleSource, "candle-source", cfg.CandleSource, "Only read postgres candles with this source (empty for all)")
	fs.StringVar(&cfg.From, "from", cfg.From, "Start date (YYYY-MM-DD)")
	fs.StringVar(&cfg.To, "to", cfg.To, "End date, exclusive (YYYY-MM-DD)")
	fs.IntVar(&cfg.SampleSize, "sample-size", cfg.SampleSize, "Number of generated sample candles")
	fs.Float64Var(&cfg.SampleBase, "sample-base", cfg.SampleBase, "Starting price of generated sample candles")
	fs.Uint64Var(&cfg.SampleSeed, "sample-seed", cfg.SampleSeed, "Random seed for sample candles")
	fs.Var(requestList{&cfg.Indicators}, "indicators", "Comma-separated kind[:params] list (e.g., sma:20,macd:12:26:9); empty for all")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "Decimals to round output to; negative disables rounding")
	fs.StringVar(&cfg.Alignment, "alignment", cfg.Alignment, "Secondary average placement: index or compact")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output JSON file (stdout if empty)")
	fs.StringVar(&cfg.ExportPath, "export-parquet", cfg.ExportPath, "Also write the loaded candles to this Parquet file")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	return fs
}

// Load builds a Config from defaults, then the YAML file named by -config, then
// DB_CONN_STR, then any flags given explicitly.
func Load(args []string) (Config, error) {
	var configFile string
	probe := defaults()
	if err := newFlagSet(&probe, &configFile).Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaults()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if v := os.Getenv("DB_CONN_STR"); v != "" {
		cfg.DBConnStr = v
	}

	fs := newFlagSet(&cfg, &configFile)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func MustLoadConfig() Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
