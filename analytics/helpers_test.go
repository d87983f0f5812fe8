package analytics

import (
	"time"

	"retail-bi/models"
)

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func onDay(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

// line is a terse constructor for test transactions.
func line(order, customer, product string, date time.Time, sales float64, qty int) models.Transaction {
	return models.Transaction{
		OrderID:     order,
		CustomerID:  customer,
		ProductID:   product,
		ProductName: "Product " + product,
		OrderDate:   date,
		Sales:       sales,
		Quantity:    qty,
		Region:      "West",
		Category:    "Furniture",
		Segment:     "Consumer",
		Country:     "United States",
		State:       "California",
	}
}
