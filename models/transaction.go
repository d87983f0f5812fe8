package models

import "time"

// Transaction is one order line from fact_sales joined to its dimensions.
type Transaction struct {
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Segment      string    `json:"segment"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	SubCategory  string    `json:"sub_category"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Region       string    `json:"region"`
	ShipMode     string    `json:"ship_mode"`
	OrderDate    time.Time `json:"order_date"`
	Sales        float64   `json:"sales"`
	Profit       float64   `json:"profit"`
	Quantity     int       `json:"quantity"`
	Discount     float64   `json:"discount"`
}

// Month returns the first day of the transaction's calendar month.
func (t Transaction) Month() time.Time {
	return time.Date(t.OrderDate.Year(), t.OrderDate.Month(), 1, 0, 0, 0, 0, time.UTC)
}
