package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schemaStatements creates the star schema. The column types are understood
// by both Postgres and sqlite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS dim_location (
		location_key INTEGER PRIMARY KEY,
		country      TEXT,
		city         TEXT,
		state        TEXT,
		region       TEXT,
		latitude     REAL,
		longitude    REAL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_customer (
		customer_id   TEXT PRIMARY KEY,
		customer_name TEXT,
		segment       TEXT,
		location_key  INTEGER REFERENCES dim_location(location_key)
	)`,
	`CREATE TABLE IF NOT EXISTS dim_product (
		product_id   TEXT PRIMARY KEY,
		product_name TEXT,
		category     TEXT,
		sub_category TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_date (
		date_key    INTEGER PRIMARY KEY,
		full_date   DATE NOT NULL,
		day_of_week TEXT,
		month       INTEGER,
		quarter     INTEGER,
		year        INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dim_ship_mode (
		ship_mode_key INTEGER PRIMARY KEY,
		ship_mode     TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS fact_sales (
		order_id       TEXT NOT NULL,
		customer_id    TEXT REFERENCES dim_customer(customer_id),
		product_id     TEXT REFERENCES dim_product(product_id),
		order_date_key INTEGER REFERENCES dim_date(date_key),
		ship_mode_key  INTEGER REFERENCES dim_ship_mode(ship_mode_key),
		sales          REAL NOT NULL DEFAULT 0,
		profit         REAL NOT NULL DEFAULT 0,
		quantity       INTEGER NOT NULL DEFAULT 0,
		discount       REAL NOT NULL DEFAULT 0
	)`,
}

// CreateSchema creates the star-schema tables if they do not exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// Location is a dim_location row.
type Location struct {
	Key                          int
	Country, City, State, Region string
}

// Customer is a dim_customer row.
type Customer struct {
	ID, Name, Segment string
	LocationKey       int
}

// Product is a dim_product row.
type Product struct {
	ID, Name, Category, SubCategory string
}

// ShipMode is a dim_ship_mode row.
type ShipMode struct {
	Key  int
	Mode string
}

// Fact is a fact_sales row. The order date is stored through dim_date.
type Fact struct {
	OrderID     string
	CustomerID  string
	ProductID   string
	OrderDate   time.Time
	ShipModeKey int
	Sales       float64
	Profit      float64
	Quantity    int
	Discount    float64
}

// StarData is a full set of rows to load into an empty schema.
type StarData struct {
	Locations []Location
	Customers []Customer
	Products  []Product
	ShipModes []ShipMode
	Facts     []Fact
}

// DateKey is the surrogate key of a calendar day in dim_date (YYYYMMDD).
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// InsertStarData writes data in one transaction, deriving dim_date from the
// facts' order dates.
func InsertStarData(ctx context.Context, db *sql.DB, data StarData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := insertStarData(ctx, tx, data); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit star data: %w", err)
	}
	return nil
}

func insertStarData(ctx context.Context, tx *sql.Tx, data StarData) error {
	for _, l := range data.Locations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dim_location (location_key, country, city, state, region) VALUES (?, ?, ?, ?, ?)`,
			l.Key, l.Country, l.City, l.State, l.Region); err != nil {
			return fmt.Errorf("failed to insert location %d: %w", l.Key, err)
		}
	}
	for _, c := range data.Customers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dim_customer (customer_id, customer_name, segment, location_key) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Segment, c.LocationKey); err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", c.ID, err)
		}
	}
	for _, p := range data.Products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dim_product (product_id, product_name, category, sub_category) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Category, p.SubCategory); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}
	for _, s := range data.ShipModes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dim_ship_mode (ship_mode_key, ship_mode) VALUES (?, ?)`,
			s.Key, s.Mode); err != nil {
			return fmt.Errorf("failed to insert ship mode %d: %w", s.Key, err)
		}
	}

	dates := make(map[int]struct{})
	for _, f := range data.Facts {
		key := DateKey(f.OrderDate)
		if _, ok := dates[key]; !ok {
			dates[key] = struct{}{}
			d := f.OrderDate
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO dim_date (date_key, full_date, day_of_week, month, quarter, year) VALUES (?, ?, ?, ?, ?, ?)`,
				key, d.Format(time.DateOnly), d.Weekday().String(), int(d.Month()), (int(d.Month())-1)/3+1, d.Year()); err != nil {
				return fmt.Errorf("failed to insert date %d: %w", key, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fact_sales (order_id, customer_id, product_id, order_date_key, ship_mode_key, sales, profit, quantity, discount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.OrderID, f.CustomerID, f.ProductID, key, f.ShipModeKey, f.Sales, f.Profit, f.Quantity, f.Discount); err != nil {
			return fmt.Errorf("failed to insert fact %s: %w", f.OrderID, err)
		}
	}
	return nil
}
