// Package database loads the flattened star-schema join that every dashboard
// computation starts from. Postgres is reached through pgxpool; a sqlite file
// serves demos and tests with the same schema and query.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"retail-bi/models"
)

// Supported values of DB_DRIVER.
const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

const pingTimeout = 3 * time.Second

// Source yields the flattened transaction table.
type Source interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	Close()
}

// Connect sets up the database connection pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("Successfully connected to the database")
	return pool, nil
}

// OpenSQLite opens (or creates) the sqlite database at path. Use ":memory:"
// for a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}
	return db, nil
}

// Open connects to the configured driver and returns a Source over it.
func Open(ctx context.Context, driver, databaseURL string) (Source, error) {
	switch driver {
	case "", DriverPgx:
		pool, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return &PgSource{Pool: pool}, nil
	case DriverSQLite:
		db, err := OpenSQLite(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return &SQLSource{DB: db}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// PgSource loads transactions from Postgres.
type PgSource struct {
	Pool *pgxpool.Pool
}

// LoadTransactions runs the star-schema join.
func (s *PgSource) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.Pool.Query(ctx, TransactionsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// Close closes the database connection pool.
func (s *PgSource) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		log.Println("Database connection pool closed")
	}
}

// SQLSource loads transactions through database/sql.
type SQLSource struct {
	DB *sql.DB
}

// LoadTransactions runs the star-schema join.
func (s *SQLSource) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, TransactionsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// Close closes the underlying database.
func (s *SQLSource) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}
