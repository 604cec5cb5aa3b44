// Package conf
package conf

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	_ "github.com/lib/pq"
)

// Config holds a database connection and metadata
type Config struct {
	Name    string
	DB      *sql.DB
	ConnStr string
	AdminDB *sql.DB
}

// SchemaSQL is the candles table the reader queries.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS candles (
	symbol    TEXT             NOT NULL,
	timeframe TEXT             NOT NULL,
	timestamp TIMESTAMPTZ      NOT NULL,
	open      DOUBLE PRECISION NOT NULL,
	high      DOUBLE PRECISION NOT NULL,
	low       DOUBLE PRECISION NOT NULL,
	close     DOUBLE PRECISION NOT NULL,
	volume    DOUBLE PRECISION NOT NULL,
	source    TEXT             NOT NULL,
	PRIMARY KEY (symbol, timeframe, timestamp, source)
)`

// NewTestConfig creates a new database with a random name and applies SchemaSQL.
// The test is skipped when no local PostgreSQL is reachable.
func NewTestConfig(t *testing.T) (*Config, func()) {
	t.Helper()

	const (
		testHost     = "localhost"
		testPort     = 5432
		testUser     = "postgres"
		testPassword = "postgres"
	)

	adminConnStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=postgres sslmode=disable",
		testHost, testPort, testUser, testPassword)

	adminDB, err := sql.Open("postgres", adminConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	if err := adminDB.Ping(); err != nil {
		adminDB.Close()
		t.Skipf("Skipping test: PostgreSQL is not running or not accessible: %v", err)
		return nil, func() {}
	}

	dbName := fmt.Sprintf("test_db_%d", rand.Int31())
	if _, err := adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		adminDB.Close()
		t.Fatalf("Failed to create test database: %v", err)
	}

	dbConnStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		testHost, testPort, testUser, testPassword, dbName)

	db, err := sql.Open("postgres", dbConnStr)
	if err != nil {
		adminDB.Close()
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		db.Close()
		adminDB.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}

	cleanup := func() {
		db.Close()
		if _, err := adminDB.Exec(fmt.Sprintf("DROP DATABASE %s WITH (FORCE)", dbName)); err != nil {
			t.Logf("Warning: Failed to drop test database %s: %v", dbName, err)
		}
		adminDB.Close()
	}

	return &Config{Name: dbName, DB: db, ConnStr: dbConnStr, AdminDB: adminDB}, cleanup
}
