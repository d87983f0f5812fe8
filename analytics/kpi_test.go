package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retail-bi/models"
)

func TestPercentChange(t *testing.T) {
	for _, x := range []float64{-12.5, 0, 1, 1e9} {
		assert.Zero(t, PercentChange(x, 0))
	}
	assert.InDelta(t, 50.0, PercentChange(150, 100), 1e-9)
	assert.InDelta(t, -25.0, PercentChange(75, 100), 1e-9)
}

func TestAverageDiscount(t *testing.T) {
	rows := []models.Transaction{
		{Discount: 0.2},
		{Discount: 0.0},
		{Discount: 0.1},
	}
	assert.InDelta(t, 10.0, AverageDiscount(rows), 1e-9)
}

func TestConversionRate(t *testing.T) {
	// one customer, one order: U=1, F=1, visitors=3
	rows := []models.Transaction{line("O1", "C1", "P1", onDay(0), 10, 1)}
	assert.InDelta(t, 100.0/3, ConversionRate(rows), 1e-9)

	// C1 has two orders (three lines), C2 one: U=2, F=1.5, visitors=7
	rows = []models.Transaction{
		line("O1", "C1", "P1", onDay(0), 10, 1),
		line("O1", "C1", "P2", onDay(0), 10, 1),
		line("O2", "C1", "P1", onDay(1), 10, 1),
		line("O3", "C2", "P1", onDay(2), 10, 1),
	}
	assert.InDelta(t, 2.0/7*100, ConversionRate(rows), 1e-9)
}

func TestConversionRateBounds(t *testing.T) {
	var rows []models.Transaction
	for i := 0; i < 50; i++ {
		customer := string(rune('A' + i%7))
		order := string(rune('a' + i%13))
		rows = append(rows, line(order, customer, "P1", onDay(i), 5, 1))
		rate := ConversionRate(rows)
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestCustomerLifetimeValue(t *testing.T) {
	rows := []models.Transaction{
		line("O1", "C1", "P1", onDay(0), 100, 1),
		line("O2", "C1", "P1", onDay(1), 50, 1),
		line("O3", "C2", "P1", onDay(2), 30, 1),
	}
	assert.InDelta(t, 90.0, CustomerLifetimeValue(rows), 1e-9)
}

func TestChurnRateScenario(t *testing.T) {
	// max date is day 100, so the threshold is day 10
	rows := []models.Transaction{
		line("O1", "X", "P1", onDay(0), 10, 1),
		line("O2", "X", "P1", onDay(95), 10, 1),
		line("O3", "Y", "P1", onDay(5), 10, 1),
		line("O4", "Z", "P1", onDay(100), 10, 1),
		line("O5", "W", "P1", onDay(-20), 10, 1),
	}
	// Y (day 5) and W (day -20) are churned, X and Z are not
	assert.InDelta(t, 50.0, ChurnRate(rows), 1e-9)

	onlyX := []models.Transaction{rows[0], rows[1], line("O9", "Q", "P1", onDay(100), 1, 1)}
	assert.Zero(t, ChurnRate(onlyX))
}

func TestChurnRateZeroWhenAllRecent(t *testing.T) {
	rows := []models.Transaction{
		line("O1", "C1", "P1", onDay(0), 10, 1),
		line("O2", "C2", "P1", onDay(45), 10, 1),
		line("O3", "C3", "P1", onDay(90), 10, 1),
	}
	assert.Zero(t, ChurnRate(rows))
}

func TestChurnRateWithinBounds(t *testing.T) {
	var rows []models.Transaction
	for i := 0; i < 40; i++ {
		rows = append(rows, line("O", string(rune('A'+i%9)), "P1", onDay(i*11), 1, 1))
		rate := ChurnRate(rows)
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestTotalsAndRatios(t *testing.T) {
	rows := []models.Transaction{
		{OrderID: "O1", CustomerID: "C1", Sales: 100, Profit: 20, Quantity: 2},
		{OrderID: "O1", CustomerID: "C1", Sales: 50, Profit: -5, Quantity: 1},
		{OrderID: "O2", CustomerID: "C2", Sales: 50, Profit: 5, Quantity: 4},
	}
	assert.InDelta(t, 200.0, TotalSales(rows), 1e-9)
	assert.InDelta(t, 20.0, TotalProfit(rows), 1e-9)
	assert.Equal(t, 7, TotalQuantity(rows))
	assert.Equal(t, 2, DistinctOrders(rows))
	assert.Equal(t, 2, DistinctCustomers(rows))
	assert.InDelta(t, 100.0, AverageOrderValue(rows), 1e-9)
	assert.InDelta(t, 10.0, ProfitMargin(200, 20), 1e-9)
	assert.Zero(t, ProfitMargin(0, 20))
}

func TestDetail(t *testing.T) {
	rows := []models.Transaction{
		line("O1", "C1", "P1", onDay(0), 10, 1),
		line("O2", "C1", "P1", onDay(40), 10, 1),
		line("O3", "C2", "P1", onDay(50), 10, 1),
		line("O4", "C3", "P1", onDay(10), 10, 1),
	}
	d := Detail(rows)
	assert.Equal(t, 3, d.TotalCustomers)
	assert.Equal(t, 4, d.TotalOrders)
	assert.InDelta(t, 4.0/3, d.AvgOrderFrequency, 1e-9)
	assert.Equal(t, 1, d.RepeatCustomers)
	assert.Equal(t, 50, d.PeriodDays)
	// active since day 20: C1 (day 40) and C2 (day 50)
	assert.Equal(t, 2, d.ActiveCustomers)
}

func TestScorecards(t *testing.T) {
	prev := []models.Transaction{
		{OrderID: "O1", CustomerID: "C1", OrderDate: onDay(0), Sales: 100, Profit: 10},
	}
	cur := []models.Transaction{
		{OrderID: "O2", CustomerID: "C1", OrderDate: onDay(5), Sales: 150, Profit: 30},
		{OrderID: "O3", CustomerID: "C2", OrderDate: onDay(6), Sales: 50, Profit: 10},
	}

	exec := ExecutiveScorecard(cur, prev)
	assert.InDelta(t, 200.0, exec.TotalSales.Value, 1e-9)
	assert.InDelta(t, 100.0, exec.TotalSales.Change, 1e-9)
	assert.Equal(t, "$200", exec.TotalSales.Display)
	assert.Equal(t, "⬆️ 100.0%", exec.TotalSales.ChangeDisplay)
	assert.InDelta(t, 2.0, exec.TotalOrders.Value, 1e-9)
	assert.InDelta(t, 20.0, exec.ProfitMargin.Value, 1e-9)
	assert.Equal(t, "20.0%", exec.ProfitMargin.Display)

	analyst := AnalystScorecard(cur, nil)
	assert.Zero(t, analyst.ChurnRate.Change)
	assert.Equal(t, "➡️ 0.0%", analyst.ChurnRate.ChangeDisplay)
	assert.InDelta(t, 100.0, analyst.CustomerLifetimeValue.Value, 1e-9)
}
