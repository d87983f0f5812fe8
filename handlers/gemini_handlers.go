package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"retail-bi/models"
	"retail-bi/utils"
)

// InsightGenerator writes a qualitative analysis of an executive dashboard.
type InsightGenerator interface {
	Analyze(ctx context.Context, question string, dashboard models.ExecutiveDashboard) (models.AiAnalysis, error)
}

// GeminiInsights asks a Gemini model for the executive narrative.
type GeminiInsights struct {
	client *genai.Client
	model  string
}

// NewGeminiInsights creates a client for apiKey. Close it when done.
func NewGeminiInsights(ctx context.Context, apiKey, model string) (*GeminiInsights, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiInsights{client: client, model: model}, nil
}

// Close releases the underlying client.
func (g *GeminiInsights) Close() error {
	return g.client.Close()
}

// Analyze implements InsightGenerator.
func (g *GeminiInsights) Analyze(ctx context.Context, question string, dashboard models.ExecutiveDashboard) (models.AiAnalysis, error) {
	model := g.client.GenerativeModel(g.model)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
	}

	prompt, err := buildInsightPrompt(question, dashboard)
	if err != nil {
		return models.AiAnalysis{}, err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.AiAnalysis{}, fmt.Errorf("failed to generate insight: %w", err)
	}
	return parseInsightText(responseText(resp))
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

// insightContext is the compact view of the dashboard sent to the model.
type insightContext struct {
	Period        models.PeriodPair      `json:"period"`
	Filters       models.FilterCriteria  `json:"filters"`
	KPIs          map[string]string      `json:"kpis"`
	YearlyMargins []models.YearlyMargin  `json:"yearly_margins"`
	Regions       []models.RegionSummary `json:"regions"`
}

func buildInsightPrompt(question string, d models.ExecutiveDashboard) (string, error) {
	data, err := json.Marshal(insightContext{
		Period:  d.Period,
		Filters: d.Filters,
		KPIs: map[string]string{
			"total_sales":         d.KPIs.TotalSales.Display + " (" + d.KPIs.TotalSales.ChangeDisplay + ")",
			"total_orders":        d.KPIs.TotalOrders.Display + " (" + d.KPIs.TotalOrders.ChangeDisplay + ")",
			"total_profit":        d.KPIs.TotalProfit.Display + " (" + d.KPIs.TotalProfit.ChangeDisplay + ")",
			"average_order_value": d.KPIs.AverageOrderValue.Display + " (" + d.KPIs.AverageOrderValue.ChangeDisplay + ")",
			"profit_margin":       utils.FormatPercent(d.KPIs.ProfitMargin.Value),
		},
		YearlyMargins: d.YearlyMargins,
		Regions:       d.Regions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize dashboard: %w", err)
	}

	if strings.TrimSpace(question) == "" {
		question = "How is the business doing in this period compared with the previous one?"
	}

	jsonFormat := `{"summary":"string","positive_factors":["string",...],"negative_factors":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail data analyst briefing a company executive.

        **Question:**
        %s

        **Dashboard Data (current period, changes are against the previous period of equal length):**
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, question, string(data), jsonFormat), nil
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseInsightText pulls the analysis object out of the model's reply.
func parseInsightText(text string) (models.AiAnalysis, error) {
	if text == "" {
		return models.AiAnalysis{}, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", text)
		return models.AiAnalysis{}, fmt.Errorf("failed to parse AI response format")
	}

	var analysis models.AiAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return models.AiAnalysis{}, fmt.Errorf("failed to parse AI insight data")
	}
	if analysis.PositiveFactors == nil {
		analysis.PositiveFactors = []string{}
	}
	if analysis.NegativeFactors == nil {
		analysis.NegativeFactors = []string{}
	}
	return analysis, nil
}
