package models

import "time"

// OperatorKPIs are the operator's stock cards.
type OperatorKPIs struct {
	TotalProducts    int `json:"total_products"`
	LowStockProducts int `json:"low_stock_products"`
}

// AnalystKPIs are the analyst's customer-behaviour cards.
type AnalystKPIs struct {
	AverageDiscount       KpiData `json:"average_discount"`
	ConversionRate        KpiData `json:"conversion_rate"`
	CustomerLifetimeValue KpiData `json:"customer_lifetime_value"`
	ChurnRate             KpiData `json:"churn_rate"`
}

// ExecutiveKPIs are the executive's headline cards.
type ExecutiveKPIs struct {
	TotalSales        KpiData `json:"total_sales"`
	TotalOrders       KpiData `json:"total_orders"`
	TotalProfit       KpiData `json:"total_profit"`
	AverageOrderValue KpiData `json:"average_order_value"`
	ProfitMargin      KpiData `json:"profit_margin"`
}

// CustomerDetail backs the analyst's detail metrics panel.
type CustomerDetail struct {
	TotalCustomers    int     `json:"total_customers"`
	TotalOrders       int     `json:"total_orders"`
	AvgOrderFrequency float64 `json:"avg_order_frequency"`
	RepeatCustomers   int     `json:"repeat_customers"`
	PeriodDays        int     `json:"period_days"`
	ActiveCustomers   int     `json:"active_customers_30d"`
}

// RegionSummary is one row of the executive regional ranking.
type RegionSummary struct {
	Rank      int     `json:"rank"`
	Region    string  `json:"region"`
	Sales     float64 `json:"total_sales"`
	Profit    float64 `json:"total_profit"`
	Quantity  int     `json:"total_quantity"`
	Orders    int     `json:"total_orders"`
	Customers int     `json:"unique_customers"`
}

// StateSummary is one state's totals for the executive map.
type StateSummary struct {
	State        string  `json:"state"`
	Sales        float64 `json:"sales"`
	Profit       float64 `json:"profit"`
	Customers    int     `json:"customers"`
	Orders       int     `json:"orders"`
	ProfitMargin float64 `json:"profit_margin"`
}

// MonthlyPoint is a sales and profit total for one calendar month.
type MonthlyPoint struct {
	Month  time.Time `json:"month"`
	Sales  float64   `json:"sales"`
	Profit float64   `json:"profit"`
}

// YearlyMargin is a year's totals and its profit margin.
type YearlyMargin struct {
	Year         int     `json:"year"`
	Sales        float64 `json:"sales"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// RegionSales is a region's sales total.
type RegionSales struct {
	Region string  `json:"region"`
	Sales  float64 `json:"sales"`
}

// ProductTrend is a product's monthly sales series.
type ProductTrend struct {
	ProductID   string         `json:"product_id"`
	ProductName string         `json:"product_name"`
	TotalSales  float64        `json:"total_sales"`
	Points      []MonthlyPoint `json:"points"`
}

// DiscountBand aggregates the order lines whose discount falls in (Lower, Upper].
type DiscountBand struct {
	Label        string  `json:"label"`
	Lower        float64 `json:"lower"`
	Upper        float64 `json:"upper"`
	TotalSales   float64 `json:"total_sales"`
	AvgSales     float64 `json:"avg_sales"`
	TotalProfit  float64 `json:"total_profit"`
	AvgProfit    float64 `json:"avg_profit"`
	Quantity     int     `json:"total_qty"`
	Lines        int     `json:"total_orders"`
	ProfitMargin float64 `json:"profit_margin"`
}

// SegmentShare is a customer segment's sales and customer count.
type SegmentShare struct {
	Segment   string  `json:"segment"`
	Sales     float64 `json:"sales"`
	Customers int     `json:"customers"`
}

// SeasonalPoint totals one month of the year across all years.
type SeasonalPoint struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Sales     float64 `json:"sales"`
	Quantity  int     `json:"quantity"`
}

// FrequencyBucket counts customers who placed exactly Orders orders.
type FrequencyBucket struct {
	Orders    int `json:"frequency"`
	Customers int `json:"customers"`
}

// OperatorDashboard is the payload of the operator view.
type OperatorDashboard struct {
	Filters          FilterCriteria   `json:"filters"`
	KPIs             OperatorKPIs     `json:"kpis"`
	RegionSales      []RegionSales    `json:"region_sales"`
	TopProductTrends []ProductTrend   `json:"top_product_trends"`
	TopProducts      []ProductSummary `json:"top_products"`
	BottomProducts   []ProductSummary `json:"bottom_products"`
}

// AnalystDashboard is the payload of the analyst view.
type AnalystDashboard struct {
	Filters       FilterCriteria    `json:"filters"`
	Period        PeriodPair        `json:"period"`
	KPIs          AnalystKPIs       `json:"kpis"`
	Detail        CustomerDetail    `json:"detail"`
	DiscountBands []DiscountBand    `json:"discount_bands"`
	Segments      []SegmentShare    `json:"segments"`
	Seasonal      []SeasonalPoint   `json:"seasonal"`
	Frequency     []FrequencyBucket `json:"frequency"`
}

// ExecutiveDashboard is the payload of the executive view.
type ExecutiveDashboard struct {
	Filters       FilterCriteria  `json:"filters"`
	Period        PeriodPair      `json:"period"`
	KPIs          ExecutiveKPIs   `json:"kpis"`
	MonthlyTrend  []MonthlyPoint  `json:"monthly_trend"`
	YearlyMargins []YearlyMargin  `json:"yearly_margins"`
	Regions       []RegionSummary `json:"regions"`
	States        []StateSummary  `json:"states"`
}
