package models

import "time"

// AiAnalysis contains the qualitative insights from the Gemini model.
type AiAnalysis struct {
	Summary         string   `json:"summary"`
	PositiveFactors []string `json:"positive_factors"`
	NegativeFactors []string `json:"negative_factors"`
}

// InsightResponse is the AI narrative returned to executives.
type InsightResponse struct {
	ReportName  string         `json:"reportName"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Filters     FilterCriteria `json:"filters"`
	KPIs        ExecutiveKPIs  `json:"kpis"`
	AiAnalysis  AiAnalysis     `json:"aiAnalysis"`
}

// ForecastReport is the forecast API response.
type ForecastReport struct {
	ReportName   string           `json:"reportName"`
	GeneratedAt  time.Time        `json:"generatedAt"`
	Filters      FilterCriteria   `json:"filters"`
	MinMonths    int              `json:"minMonths"`
	Products     []ForecastResult `json:"products"`
	SkippedCount int              `json:"skippedCount"`
	FromCache    bool             `json:"fromCache"`
}
