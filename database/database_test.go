package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLSource {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, CreateSchema(ctx, db))
	return &SQLSource{DB: db}
}

func TestLoadTransactionsFlattensStarSchema(t *testing.T) {
	src := newTestDB(t)
	ctx := context.Background()

	data := StarData{
		Locations: []Location{{Key: 1, Country: "United States", City: "Austin", State: "Texas", Region: "Central"}},
		Customers: []Customer{{ID: "CG-1", Name: "Claire Gute", Segment: "Consumer", LocationKey: 1}},
		Products:  []Product{{ID: "FUR-1", Name: "Bookcase", Category: "Furniture", SubCategory: "Bookcases"}},
		ShipModes: []ShipMode{{Key: 1, Mode: "Second Class"}},
		Facts: []Fact{
			{OrderID: "CA-2", CustomerID: "CG-1", ProductID: "FUR-1", OrderDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), ShipModeKey: 1, Sales: 261.96, Profit: 41.91, Quantity: 2, Discount: 0.2},
			{OrderID: "CA-1", CustomerID: "CG-1", ProductID: "FUR-1", OrderDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ShipModeKey: 1, Sales: 10, Profit: 1, Quantity: 1},
		},
	}
	require.NoError(t, InsertStarData(ctx, src.DB, data))

	rows, err := src.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "CA-1", first.OrderID)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first.OrderDate)

	got := rows[1]
	assert.Equal(t, "CG-1", got.CustomerID)
	assert.Equal(t, "Claire Gute", got.CustomerName)
	assert.Equal(t, "Consumer", got.Segment)
	assert.Equal(t, "Bookcase", got.ProductName)
	assert.Equal(t, "Furniture", got.Category)
	assert.Equal(t, "Bookcases", got.SubCategory)
	assert.Equal(t, "Central", got.Region)
	assert.Equal(t, "Texas", got.State)
	assert.Equal(t, "United States", got.Country)
	assert.Equal(t, "Second Class", got.ShipMode)
	assert.InDelta(t, 261.96, got.Sales, 1e-9)
	assert.InDelta(t, 41.91, got.Profit, 1e-9)
	assert.Equal(t, 2, got.Quantity)
	assert.InDelta(t, 0.2, got.Discount, 1e-9)
}

func TestLoadTransactionsKeepsUnmatchedDimensionsEmpty(t *testing.T) {
	src := newTestDB(t)
	ctx := context.Background()

	data := StarData{
		Facts: []Fact{{OrderID: "O1", CustomerID: "ghost", ProductID: "missing", OrderDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Sales: 5, Quantity: 1}},
	}
	require.NoError(t, InsertStarData(ctx, src.DB, data))

	rows, err := src.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ghost", rows[0].CustomerID)
	assert.Empty(t, rows[0].Region)
	assert.Empty(t, rows[0].ProductName)
}

func TestLoadTransactionsSkipsRowsWithoutDate(t *testing.T) {
	src := newTestDB(t)
	ctx := context.Background()

	_, err := src.DB.ExecContext(ctx,
		`INSERT INTO fact_sales (order_id, customer_id, product_id, order_date_key, sales) VALUES ('O1', 'C1', 'P1', 99999999, 1)`)
	require.NoError(t, err)

	rows, err := src.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDateValueScan(t *testing.T) {
	var d dateValue
	require.NoError(t, d.Scan("2024-05-06"))
	assert.True(t, d.Valid)
	assert.Equal(t, 2024, d.Time.Year())

	require.NoError(t, d.Scan([]byte("2024-05-06T00:00:00Z")))
	assert.Equal(t, time.May, d.Time.Month())

	require.NoError(t, d.Scan(nil))
	assert.False(t, d.Valid)

	assert.Error(t, d.Scan("yesterday"))
	assert.Error(t, d.Scan(42))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, 20240309, DateKey(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	assert.Error(t, err)
}
