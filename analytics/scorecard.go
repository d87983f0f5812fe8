package analytics

import (
	"retail-bi/models"
	"retail-bi/utils"
)

// DefaultLowStockThreshold is the summed quantity at or below which a product
// counts as low on stock.
const DefaultLowStockThreshold = 5

func percentKPI(current, previous float64) models.KpiData {
	change := PercentChange(current, previous)
	return models.KpiData{
		Value:         current,
		Previous:      previous,
		Change:        change,
		Display:       utils.FormatPercent(current),
		ChangeDisplay: utils.FormatChange(change),
	}
}

func currencyKPI(current, previous float64) models.KpiData {
	change := PercentChange(current, previous)
	return models.KpiData{
		Value:         current,
		Previous:      previous,
		Change:        change,
		Display:       utils.FormatCurrency(current),
		ChangeDisplay: utils.FormatChange(change),
	}
}

func countKPI(current, previous int) models.KpiData {
	change := PercentChange(float64(current), float64(previous))
	return models.KpiData{
		Value:         float64(current),
		Previous:      float64(previous),
		Change:        change,
		Display:       utils.FormatCount(current),
		ChangeDisplay: utils.FormatChange(change),
	}
}

// AnalystScorecard computes the analyst KPIs for the current rows and their
// change against the previous window.
func AnalystScorecard(current, previous []models.Transaction) models.AnalystKPIs {
	return models.AnalystKPIs{
		AverageDiscount:       percentKPI(AverageDiscount(current), AverageDiscount(previous)),
		ConversionRate:        percentKPI(ConversionRate(current), ConversionRate(previous)),
		CustomerLifetimeValue: currencyKPI(CustomerLifetimeValue(current), CustomerLifetimeValue(previous)),
		ChurnRate:             percentKPI(ChurnRate(current), ChurnRate(previous)),
	}
}

// ExecutiveScorecard computes the executive KPIs for the current rows and
// their change against the previous window.
func ExecutiveScorecard(current, previous []models.Transaction) models.ExecutiveKPIs {
	curSales, prevSales := TotalSales(current), TotalSales(previous)
	curProfit, prevProfit := TotalProfit(current), TotalProfit(previous)
	return models.ExecutiveKPIs{
		TotalSales:        currencyKPI(curSales, prevSales),
		TotalOrders:       countKPI(DistinctOrders(current), DistinctOrders(previous)),
		TotalProfit:       currencyKPI(curProfit, prevProfit),
		AverageOrderValue: currencyKPI(AverageOrderValue(current), AverageOrderValue(previous)),
		ProfitMargin:      percentKPI(ProfitMargin(curSales, curProfit), ProfitMargin(prevSales, prevProfit)),
	}
}

// OperatorScorecard counts the products in rows and those whose summed
// quantity is at or below lowStock.
func OperatorScorecard(rows []models.Transaction, lowStock int) models.OperatorKPIs {
	stock := ProductStock(rows)
	kpis := models.OperatorKPIs{TotalProducts: len(stock)}
	for _, p := range stock {
		if p.QuantitySold <= lowStock {
			kpis.LowStockProducts++
		}
	}
	return kpis
}
