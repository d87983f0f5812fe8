package analytics

import "retail-bi/models"

// DashboardConfig holds the presentation constants of the role views.
type DashboardConfig struct {
	LowStockThreshold int
	TrendProducts     int
	RankingSize       int
	StateCountry      string
}

// DefaultDashboardConfig returns the settings the dashboards shipped with.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		LowStockThreshold: DefaultLowStockThreshold,
		TrendProducts:     10,
		RankingSize:       5,
		StateCountry:      DefaultStateCountry,
	}
}

// OperatorView builds the operator dashboard from the snapshot rows.
func OperatorView(all []models.Transaction, c models.FilterCriteria, cfg DashboardConfig) models.OperatorDashboard {
	rows := Filter(all, c)
	top, bottom := TopAndBottom(ProductRanking(rows), cfg.RankingSize)
	return models.OperatorDashboard{
		Filters:          c,
		KPIs:             OperatorScorecard(rows, cfg.LowStockThreshold),
		RegionSales:      RegionSales(rows),
		TopProductTrends: TopProductTrends(rows, cfg.TrendProducts),
		TopProducts:      top,
		BottomProducts:   bottom,
	}
}

// AnalystView builds the analyst dashboard, comparing the filtered window with
// the window before it.
func AnalystView(all []models.Transaction, c models.FilterCriteria) (models.AnalystDashboard, error) {
	current, previous, pair, err := FilterWithPrevious(all, c)
	if err != nil {
		return models.AnalystDashboard{}, err
	}
	return models.AnalystDashboard{
		Filters:       c,
		Period:        pair,
		KPIs:          AnalystScorecard(current, previous),
		Detail:        Detail(current),
		DiscountBands: DiscountBands(current),
		Segments:      SegmentShares(current),
		Seasonal:      SeasonalPattern(current),
		Frequency:     PurchaseFrequency(current),
	}, nil
}

// ExecutiveView builds the executive dashboard, comparing the filtered window
// with the window before it.
func ExecutiveView(all []models.Transaction, c models.FilterCriteria, cfg DashboardConfig) (models.ExecutiveDashboard, error) {
	current, previous, pair, err := FilterWithPrevious(all, c)
	if err != nil {
		return models.ExecutiveDashboard{}, err
	}
	return models.ExecutiveDashboard{
		Filters:       c,
		Period:        pair,
		KPIs:          ExecutiveScorecard(current, previous),
		MonthlyTrend:  MonthlyTrend(current),
		YearlyMargins: YearlyMargins(current),
		Regions:       RegionSummaries(current),
		States:        StateSummaries(current, cfg.StateCountry),
	}, nil
}
