package analytics

import (
	"sort"
	"time"

	"retail-bi/models"
)

// DefaultStateCountry is the country whose states feed the executive map.
const DefaultStateCountry = "United States"

func productKey(t models.Transaction) string {
	if t.ProductID != "" {
		return t.ProductID
	}
	return t.ProductName
}

// ProductStock sums quantity and sales per product. The data has no stock
// table, so units sold stand in for stock movement. Order is unspecified.
func ProductStock(rows []models.Transaction) []models.ProductSummary {
	index := make(map[string]int)
	var out []models.ProductSummary
	for _, t := range rows {
		key := productKey(t)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, models.ProductSummary{ProductID: key, ProductName: t.ProductName})
		}
		out[i].QuantitySold += t.Quantity
		out[i].Revenue += t.Sales
	}
	return out
}

// ProductRanking ranks products by units sold, highest first, starting at 1.
func ProductRanking(rows []models.Transaction) []models.ProductSummary {
	ranked := ProductStock(rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].QuantitySold != ranked[j].QuantitySold {
			return ranked[i].QuantitySold > ranked[j].QuantitySold
		}
		return ranked[i].ProductName < ranked[j].ProductName
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	if ranked == nil {
		ranked = []models.ProductSummary{}
	}
	return ranked
}

// TopAndBottom returns the first n and the last n entries of a ranking.
// The two may overlap when the ranking has fewer than 2n entries.
func TopAndBottom(ranked []models.ProductSummary, n int) (top, bottom []models.ProductSummary) {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	top = append([]models.ProductSummary{}, ranked[:n]...)
	bottom = append([]models.ProductSummary{}, ranked[len(ranked)-n:]...)
	return top, bottom
}

// RegionSales totals sales per region, highest first.
func RegionSales(rows []models.Transaction) []models.RegionSales {
	totals := make(map[string]float64)
	for _, t := range rows {
		totals[t.Region] += t.Sales
	}
	out := make([]models.RegionSales, 0, len(totals))
	for region, sales := range totals {
		out = append(out, models.RegionSales{Region: region, Sales: sales})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Region < out[j].Region
	})
	return out
}

type groupTotals struct {
	sales     float64
	profit    float64
	quantity  int
	orders    map[string]struct{}
	customers map[string]struct{}
}

func (g *groupTotals) add(t models.Transaction) {
	if g.orders == nil {
		g.orders = make(map[string]struct{})
		g.customers = make(map[string]struct{})
	}
	g.sales += t.Sales
	g.profit += t.Profit
	g.quantity += t.Quantity
	g.orders[t.OrderID] = struct{}{}
	g.customers[t.CustomerID] = struct{}{}
}

func groupBy(rows []models.Transaction, key func(models.Transaction) string) map[string]*groupTotals {
	groups := make(map[string]*groupTotals)
	for _, t := range rows {
		k := key(t)
		g, ok := groups[k]
		if !ok {
			g = &groupTotals{}
			groups[k] = g
		}
		g.add(t)
	}
	return groups
}

// RegionSummaries ranks regions by total sales.
func RegionSummaries(rows []models.Transaction) []models.RegionSummary {
	groups := groupBy(rows, func(t models.Transaction) string { return t.Region })
	out := make([]models.RegionSummary, 0, len(groups))
	for region, g := range groups {
		out = append(out, models.RegionSummary{
			Region:    region,
			Sales:     g.sales,
			Profit:    g.profit,
			Quantity:  g.quantity,
			Orders:    len(g.orders),
			Customers: len(g.customers),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Region < out[j].Region
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// StateSummaries totals each state of country, sorted by sales.
func StateSummaries(rows []models.Transaction, country string) []models.StateSummary {
	groups := make(map[string]*groupTotals)
	for _, t := range rows {
		if t.Country != country || t.State == "" {
			continue
		}
		g, ok := groups[t.State]
		if !ok {
			g = &groupTotals{}
			groups[t.State] = g
		}
		g.add(t)
	}
	out := make([]models.StateSummary, 0, len(groups))
	for state, g := range groups {
		out = append(out, models.StateSummary{
			State:        state,
			Sales:        g.sales,
			Profit:       g.profit,
			Customers:    len(g.customers),
			Orders:       len(g.orders),
			ProfitMargin: ProfitMargin(g.sales, g.profit),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].State < out[j].State
	})
	return out
}

// MonthlyTrend totals sales and profit per calendar month, oldest first.
func MonthlyTrend(rows []models.Transaction) []models.MonthlyPoint {
	totals := make(map[time.Time]*models.MonthlyPoint)
	for _, t := range rows {
		m := t.Month()
		p, ok := totals[m]
		if !ok {
			p = &models.MonthlyPoint{Month: m}
			totals[m] = p
		}
		p.Sales += t.Sales
		p.Profit += t.Profit
	}
	out := make([]models.MonthlyPoint, 0, len(totals))
	for _, p := range totals {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// YearlyMargins totals sales and profit per year with the year's margin.
func YearlyMargins(rows []models.Transaction) []models.YearlyMargin {
	totals := make(map[int]*models.YearlyMargin)
	for _, t := range rows {
		y := t.OrderDate.Year()
		m, ok := totals[y]
		if !ok {
			m = &models.YearlyMargin{Year: y}
			totals[y] = m
		}
		m.Sales += t.Sales
		m.Profit += t.Profit
	}
	out := make([]models.YearlyMargin, 0, len(totals))
	for _, m := range totals {
		m.ProfitMargin = ProfitMargin(m.Sales, m.Profit)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopProductTrends returns the monthly sales series of the n best-selling
// products by sales amount.
func TopProductTrends(rows []models.Transaction, n int) []models.ProductTrend {
	stock := ProductStock(rows)
	sort.SliceStable(stock, func(i, j int) bool {
		if stock[i].Revenue != stock[j].Revenue {
			return stock[i].Revenue > stock[j].Revenue
		}
		return stock[i].ProductName < stock[j].ProductName
	})
	if n < 0 {
		n = 0
	}
	if n > len(stock) {
		n = len(stock)
	}

	byProduct := make(map[string][]models.Transaction, n)
	for _, p := range stock[:n] {
		byProduct[p.ProductID] = nil
	}
	for _, t := range rows {
		key := productKey(t)
		if lines, ok := byProduct[key]; ok {
			byProduct[key] = append(lines, t)
		}
	}

	out := make([]models.ProductTrend, 0, n)
	for _, p := range stock[:n] {
		out = append(out, models.ProductTrend{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			TotalSales:  p.Revenue,
			Points:      MonthlyTrend(byProduct[p.ProductID]),
		})
	}
	return out
}

var discountBands = []struct {
	label        string
	lower, upper float64
}{
	{"0-10%", 0, 0.1},
	{"10-20%", 0.1, 0.2},
	{"20-30%", 0.2, 0.3},
	{"30-40%", 0.3, 0.4},
	{"40-50%", 0.4, 0.5},
	{"50%+", 0.5, 1.0},
}

// DiscountBands buckets order lines by discount into right-closed bands.
// Lines without a discount fall outside every band.
func DiscountBands(rows []models.Transaction) []models.DiscountBand {
	out := make([]models.DiscountBand, len(discountBands))
	for i, b := range discountBands {
		out[i] = models.DiscountBand{Label: b.label, Lower: b.lower, Upper: b.upper}
	}
	for _, t := range rows {
		for i, b := range discountBands {
			if t.Discount > b.lower && t.Discount <= b.upper {
				out[i].TotalSales += t.Sales
				out[i].TotalProfit += t.Profit
				out[i].Quantity += t.Quantity
				out[i].Lines++
				break
			}
		}
	}
	for i := range out {
		if out[i].Lines > 0 {
			out[i].AvgSales = out[i].TotalSales / float64(out[i].Lines)
			out[i].AvgProfit = out[i].TotalProfit / float64(out[i].Lines)
		}
		out[i].ProfitMargin = ProfitMargin(out[i].TotalSales, out[i].TotalProfit)
	}
	return out
}

// SegmentShares totals sales and distinct customers per segment.
func SegmentShares(rows []models.Transaction) []models.SegmentShare {
	groups := groupBy(rows, func(t models.Transaction) string { return t.Segment })
	out := make([]models.SegmentShare, 0, len(groups))
	for segment, g := range groups {
		out = append(out, models.SegmentShare{Segment: segment, Sales: g.sales, Customers: len(g.customers)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// SeasonalPattern totals sales and quantity per month of the year, for the
// months present in rows.
func SeasonalPattern(rows []models.Transaction) []models.SeasonalPoint {
	var months [13]*models.SeasonalPoint
	for _, t := range rows {
		m := t.OrderDate.Month()
		p := months[m]
		if p == nil {
			p = &models.SeasonalPoint{Month: int(m), MonthName: m.String()[:3]}
			months[m] = p
		}
		p.Sales += t.Sales
		p.Quantity += t.Quantity
	}
	out := make([]models.SeasonalPoint, 0, 12)
	for _, p := range months {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// PurchaseFrequency is the histogram of distinct orders per customer.
func PurchaseFrequency(rows []models.Transaction) []models.FrequencyBucket {
	counts := make(map[int]int)
	for _, n := range ordersPerCustomer(rows) {
		counts[n]++
	}
	out := make([]models.FrequencyBucket, 0, len(counts))
	for orders, customers := range counts {
		out = append(out, models.FrequencyBucket{Orders: orders, Customers: customers})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Orders < out[j].Orders })
	return out
}
