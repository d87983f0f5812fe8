package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"retail-bi/models"
	"retail-bi/utils"
)

// TransactionsQuery flattens fact_sales with its five dimensions. Dimension
// columns are NULL when a key has no match.
const TransactionsQuery = `
	SELECT
		fs.order_id, fs.customer_id, dc.customer_name, dc.segment,
		fs.product_id, dp.product_name, dp.category, dp.sub_category,
		dl.country, dl.city, dl.state, dl.region,
		dd.full_date, dsm.ship_mode,
		fs.sales, fs.profit, fs.quantity, fs.discount
	FROM fact_sales fs
	LEFT JOIN dim_customer dc ON fs.customer_id = dc.customer_id
	LEFT JOIN dim_location dl ON dc.location_key = dl.location_key
	LEFT JOIN dim_product dp ON fs.product_id = dp.product_id
	LEFT JOIN dim_date dd ON fs.order_date_key = dd.date_key
	LEFT JOIN dim_ship_mode dsm ON fs.ship_mode_key = dsm.ship_mode_key
	ORDER BY dd.full_date, fs.order_id
`

// rowScanner is satisfied by both pgx.Rows and *sql.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// dateValue scans a DATE column whichever way the driver delivers it.
type dateValue struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999-07:00",
}

// Scan implements sql.Scanner.
func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = v, true
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
}

func (d *dateValue) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}

func scanTransactions(rows rowScanner) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, 1024)
	skipped := 0
	for rows.Next() {
		var (
			orderID, customerID, customerName, segment    sql.NullString
			productID, productName, category, subCategory sql.NullString
			country, city, state, region, shipMode        sql.NullString
			orderDate                                     dateValue
			sales, profit, discount                       sql.NullFloat64
			quantity                                      sql.NullInt64
		)
		if err := rows.Scan(
			&orderID, &customerID, &customerName, &segment,
			&productID, &productName, &category, &subCategory,
			&country, &city, &state, &region,
			&orderDate, &shipMode,
			&sales, &profit, &quantity, &discount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		if !orderDate.Valid {
			skipped++
			continue
		}

		y, m, d := orderDate.Time.Date()
		out = append(out, models.Transaction{
			OrderID:      utils.NullStringValue(orderID),
			CustomerID:   utils.NullStringValue(customerID),
			CustomerName: utils.NullStringValue(customerName),
			Segment:      utils.NullStringValue(segment),
			ProductID:    utils.NullStringValue(productID),
			ProductName:  utils.NullStringValue(productName),
			Category:     utils.NullStringValue(category),
			SubCategory:  utils.NullStringValue(subCategory),
			Country:      utils.NullStringValue(country),
			City:         utils.NullStringValue(city),
			State:        utils.NullStringValue(state),
			Region:       utils.NullStringValue(region),
			ShipMode:     utils.NullStringValue(shipMode),
			OrderDate:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Sales:        sales.Float64,
			Profit:       profit.Float64,
			Quantity:     int(quantity.Int64),
			Discount:     discount.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	if skipped > 0 {
		log.Printf("⚠️  [LOADER] Skipped %d rows without an order date", skipped)
	}
	return out, nil
}
