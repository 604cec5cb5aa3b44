// Package db reads candles from the Postgres candles table.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amirphl/simple-indicators/internal/candle"
	"github.com/amirphl/simple-indicators/internal/db/conf"
	_ "github.com/lib/pq"
)

// CandleReader is the read side the CLI needs from storage.
type CandleReader interface {
	GetCandles(ctx context.Context, symbol, timeframe, source string, start, end time.Time) ([]candle.Candle, error)
}

type Default struct {
	db *sql.DB
}

func New(c conf.Config) (*Default, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("db config %q has no connection", c.Name)
	}
	return &Default{db: c.DB}, nil
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, connStr string, maxOpen, maxIdle int) (*Default, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &Default{db: sqlDB}, nil
}

func (p *Default) Close() error {
	return p.db.Close()
}

// GetCandles retrieves candles in [start, end) for a symbol and timeframe, oldest first.
// An empty source matches every source.
func (p *Default) GetCandles(ctx context.Context, symbol, timeframe, source string, start, end time.Time) ([]candle.Candle, error) {
	query := `
		SELECT timestamp, open, high, low, close, volume, symbol, timeframe, source 
		FROM candles 
		WHERE symbol=$1 AND timeframe=$2 AND timestamp >= $3 AND timestamp < $4`
	args := []any{symbol, timeframe, start, end}

	if source != "" {
		query += " AND source=$5"
		args = append(args, source)
	}

	query += " ORDER BY timestamp ASC"

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles in range: %w", err)
	}
	defer rows.Close()

	var candles []candle.Candle
	for rows.Next() {
		var c candle.Candle
		if err := rows.Scan(&c.Timestamp, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume, &c.Symbol, &c.Timeframe, &c.Source); err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		c.Timestamp = c.Timestamp.UTC()
		candles = append(candles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candle rows: %w", err)
	}

	return candles, nil
}
