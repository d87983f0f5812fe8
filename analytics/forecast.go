package analytics

import (
	"math"
	"sort"
	"time"

	"retail-bi/models"
)

// MinForecastMonths is the least number of monthly observations a product
// needs before it gets a forecast.
const MinForecastMonths = 4

// MonthIndex orders months on one integer axis: month + 12*(year - baseYear).
func MonthIndex(month time.Time, baseYear int) int {
	return int(month.Month()) + 12*(month.Year()-baseYear)
}

// MonthlySeries aggregates rows per product and calendar month into total
// sales and mean quantity, indexed from the earliest year in rows. Each
// product's series is sorted by month.
func MonthlySeries(rows []models.Transaction) map[string][]models.ProductMonth {
	if len(rows) == 0 {
		return map[string][]models.ProductMonth{}
	}
	first, _ := DateBounds(rows)
	baseYear := first.Year()

	type bucket struct {
		name     string
		sales    float64
		quantity int
		lines    int
	}
	type key struct {
		product string
		month   time.Time
	}
	buckets := make(map[key]*bucket)
	for _, t := range rows {
		k := key{product: productKey(t), month: t.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		if b.name == "" {
			b.name = t.ProductName
		}
		b.sales += t.Sales
		b.quantity += t.Quantity
		b.lines++
	}

	series := make(map[string][]models.ProductMonth)
	for k, b := range buckets {
		series[k.product] = append(series[k.product], models.ProductMonth{
			ProductID:   k.product,
			ProductName: b.name,
			Month:       k.month,
			MonthIndex:  MonthIndex(k.month, baseYear),
			TotalSales:  b.sales,
			AvgQuantity: float64(b.quantity) / float64(b.lines),
		})
	}
	for product := range series {
		s := series[product]
		sort.Slice(s, func(i, j int) bool { return s[i].MonthIndex < s[j].MonthIndex })
	}
	return series
}

// ForecastProduct fits a regression forest on one product's monthly series,
// using month index and that month's total sales to explain mean quantity,
// then predicts the month after the last observation. The last month's sales
// are reused as next month's sales, so the sales feature is not a true lag.
// ok is false when the series is shorter than MinForecastMonths.
func ForecastProduct(series []models.ProductMonth, cfg ForestConfig) (models.ForecastResult, bool) {
	if len(series) < MinForecastMonths {
		return models.ForecastResult{}, false
	}

	x := make([][]float64, len(series))
	y := make([]float64, len(series))
	for i, m := range series {
		x[i] = []float64{float64(m.MonthIndex), m.TotalSales}
		y[i] = m.AvgQuantity
	}

	forest := NewRegressionForest(cfg)
	if err := forest.Fit(x, y); err != nil {
		return models.ForecastResult{}, false
	}

	last := series[len(series)-1]
	predicted := forest.Predict([]float64{float64(last.MonthIndex + 1), last.TotalSales})

	name := last.ProductName
	for i := len(series) - 1; name == "" && i >= 0; i-- {
		name = series[i].ProductName
	}
	return models.ForecastResult{
		ProductID:         last.ProductID,
		ProductName:       name,
		PredictedQuantity: int(math.Round(predicted)),
		Observations:      len(series),
		LastMonthIndex:    last.MonthIndex,
	}, true
}

// Forecast predicts next month's quantity for every product in rows with at
// least MinForecastMonths months of history. Products with less history are
// left out of the result.
func Forecast(rows []models.Transaction, cfg ForestConfig) map[string]models.ForecastResult {
	out := make(map[string]models.ForecastResult)
	for product, series := range MonthlySeries(rows) {
		if res, ok := ForecastProduct(series, cfg); ok {
			out[product] = res
		}
	}
	return out
}

// SortedForecasts orders forecasts by predicted quantity, highest first, then
// by product id.
func SortedForecasts(results map[string]models.ForecastResult) []models.ForecastResult {
	out := make([]models.ForecastResult, 0, len(results))
	for _, r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PredictedQuantity != out[j].PredictedQuantity {
			return out[i].PredictedQuantity > out[j].PredictedQuantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
