package analytics

import (
	"time"

	"retail-bi/models"
)

// ChurnWindow is how long a customer may stay inactive before counting as churned.
const ChurnWindow = 90 * 24 * time.Hour

// ActiveWindow is the look-back used for the active-customer count.
const ActiveWindow = 30 * 24 * time.Hour

// PercentChange returns (current-previous)/previous*100, or 0 when previous
// is 0. A metric that appears from nothing therefore reports no change.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// AverageDiscount is the mean discount fraction expressed as a percentage.
func AverageDiscount(rows []models.Transaction) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, t := range rows {
		sum += t.Discount
	}
	return sum / float64(len(rows)) * 100
}

// TotalSales sums the sales amount of rows.
func TotalSales(rows []models.Transaction) float64 {
	var sum float64
	for _, t := range rows {
		sum += t.Sales
	}
	return sum
}

// TotalProfit sums the profit of rows.
func TotalProfit(rows []models.Transaction) float64 {
	var sum float64
	for _, t := range rows {
		sum += t.Profit
	}
	return sum
}

// TotalQuantity sums the units sold in rows.
func TotalQuantity(rows []models.Transaction) int {
	var sum int
	for _, t := range rows {
		sum += t.Quantity
	}
	return sum
}

// DistinctOrders counts the distinct order ids in rows.
func DistinctOrders(rows []models.Transaction) int {
	seen := make(map[string]struct{})
	for _, t := range rows {
		seen[t.OrderID] = struct{}{}
	}
	return len(seen)
}

// DistinctCustomers counts the distinct customer ids in rows.
func DistinctCustomers(rows []models.Transaction) int {
	seen := make(map[string]struct{})
	for _, t := range rows {
		seen[t.CustomerID] = struct{}{}
	}
	return len(seen)
}

// ProfitMargin is profit as a percentage of sales, 0 without sales.
func ProfitMargin(sales, profit float64) float64 {
	if sales == 0 {
		return 0
	}
	return profit / sales * 100
}

// AverageOrderValue is total sales per distinct order, 0 without orders.
func AverageOrderValue(rows []models.Transaction) float64 {
	orders := DistinctOrders(rows)
	if orders == 0 {
		return 0
	}
	return TotalSales(rows) / float64(orders)
}

// ordersPerCustomer maps each customer to the number of distinct orders they placed.
func ordersPerCustomer(rows []models.Transaction) map[string]int {
	orders := make(map[string]map[string]struct{})
	for _, t := range rows {
		set, ok := orders[t.CustomerID]
		if !ok {
			set = make(map[string]struct{})
			orders[t.CustomerID] = set
		}
		set[t.OrderID] = struct{}{}
	}
	out := make(map[string]int, len(orders))
	for c, set := range orders {
		out[c] = len(set)
	}
	return out
}

// ConversionRate estimates a conversion percentage without any visitor data:
// visitors are approximated as U*(F+2), where U is the number of distinct
// customers and F their mean order count. The result is a proxy and is capped
// at 100.
func ConversionRate(rows []models.Transaction) float64 {
	perCustomer := ordersPerCustomer(rows)
	unique := float64(len(perCustomer))
	if unique == 0 {
		return 0
	}
	var orders int
	for _, n := range perCustomer {
		orders += n
	}
	avgFrequency := float64(orders) / unique
	visitors := unique * (avgFrequency + 2)
	if visitors == 0 {
		return 0
	}
	rate := unique / visitors * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// CustomerLifetimeValue is the mean of each customer's total sales.
func CustomerLifetimeValue(rows []models.Transaction) float64 {
	perCustomer := make(map[string]float64)
	for _, t := range rows {
		perCustomer[t.CustomerID] += t.Sales
	}
	if len(perCustomer) == 0 {
		return 0
	}
	var sum float64
	for _, v := range perCustomer {
		sum += v
	}
	return sum / float64(len(perCustomer))
}

// lastPurchase maps each customer to the day of their latest transaction.
func lastPurchase(rows []models.Transaction) map[string]time.Time {
	last := make(map[string]time.Time)
	for _, t := range rows {
		day := Day(t.OrderDate)
		if cur, ok := last[t.CustomerID]; !ok || day.After(cur) {
			last[t.CustomerID] = day
		}
	}
	return last
}

// ChurnRate is the percentage of customers whose last transaction is older
// than ChurnWindow relative to the latest transaction in rows.
func ChurnRate(rows []models.Transaction) float64 {
	if len(rows) == 0 {
		return 0
	}
	last := lastPurchase(rows)
	if len(last) == 0 {
		return 0
	}
	_, maxDate := DateBounds(rows)
	threshold := maxDate.Add(-ChurnWindow)

	churned := 0
	for _, day := range last {
		if day.Before(threshold) {
			churned++
		}
	}
	return float64(churned) / float64(len(last)) * 100
}

// Detail computes the analyst's customer detail metrics.
func Detail(rows []models.Transaction) models.CustomerDetail {
	perCustomer := ordersPerCustomer(rows)
	d := models.CustomerDetail{
		TotalCustomers: len(perCustomer),
		TotalOrders:    DistinctOrders(rows),
	}
	if len(perCustomer) == 0 {
		return d
	}

	var orders int
	for _, n := range perCustomer {
		orders += n
		if n > 1 {
			d.RepeatCustomers++
		}
	}
	d.AvgOrderFrequency = float64(orders) / float64(len(perCustomer))

	first, last := DateBounds(rows)
	d.PeriodDays = int(last.Sub(first).Hours() / 24)

	threshold := last.Add(-ActiveWindow)
	active := make(map[string]struct{})
	for _, t := range rows {
		if !Day(t.OrderDate).Before(threshold) {
			active[t.CustomerID] = struct{}{}
		}
	}
	d.ActiveCustomers = len(active)
	return d
}
