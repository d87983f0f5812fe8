package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-bi/analytics"
	"retail-bi/models"
	"retail-bi/snapshot"
)

type stubLoader struct {
	rows []models.Transaction
	err  error
}

func (s *stubLoader) LoadTransactions(context.Context) ([]models.Transaction, error) {
	return s.rows, s.err
}

type fakeInsights struct {
	question string
	err      error
}

func (f *fakeInsights) Analyze(_ context.Context, question string, _ models.ExecutiveDashboard) (models.AiAnalysis, error) {
	f.question = question
	if f.err != nil {
		return models.AiAnalysis{}, f.err
	}
	return models.AiAnalysis{Summary: "Sales are up", PositiveFactors: []string{"West"}, NegativeFactors: []string{}}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func tx(order, customer, product, region string, date time.Time, sales float64, qty int) models.Transaction {
	return models.Transaction{
		OrderID:     order,
		CustomerID:  customer,
		ProductID:   product,
		ProductName: "Product " + product,
		Region:      region,
		Category:    "Technology",
		Segment:     "Consumer",
		Country:     "United States",
		State:       "Texas",
		OrderDate:   date,
		Sales:       sales,
		Profit:      sales / 10,
		Quantity:    qty,
	}
}

// sampleRows has product A sold in six consecutive months, B once and C twice.
func sampleRows() []models.Transaction {
	var rows []models.Transaction
	for m := 0; m < 6; m++ {
		date := time.Date(2024, time.Month(m+1), 10, 0, 0, 0, 0, time.UTC)
		rows = append(rows, tx("O"+string(rune('1'+m)), "C1", "A", "West", date, 100, 3))
	}
	rows = append(rows,
		tx("O1", "C1", "B", "West", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 50, 1),
		tx("O7", "C2", "C", "East", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), 20, 2),
		tx("O8", "C2", "C", "East", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), 20, 2),
	)
	return rows
}

func newTestHandler(t *testing.T, loader *stubLoader, insights InsightGenerator) *Handler {
	t.Helper()
	holder := snapshot.NewHolder(loader)
	if loader.err == nil {
		_, err := holder.Reload(context.Background())
		require.NoError(t, err)
	}
	cache, err := analytics.NewForecastCache(8)
	require.NoError(t, err)
	forest := analytics.DefaultForestConfig()
	forest.Trees = 10
	return New(holder, cache, forest, analytics.DefaultDashboardConfig(), insights)
}

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "u-1")
		c.Locals("userRole", models.RoleExecutive)
		return c.Next()
	})
	app.Get("/health", h.HandleHealth)
	app.Get("/filters", h.HandleGetFilterOptions)
	app.Get("/operator/dashboard", h.HandleGetOperatorDashboard)
	app.Get("/operator/forecast", h.HandleGetForecast)
	app.Get("/operator/ranking", h.HandleGetProductRanking)
	app.Get("/analyst/dashboard", h.HandleGetAnalystDashboard)
	app.Get("/analyst/basket", h.HandleGetMarketBasket)
	app.Get("/executive/dashboard", h.HandleGetExecutiveDashboard)
	app.Post("/executive/insight", h.HandleGenerateInsight)
	app.Post("/executive/reload", h.HandleReloadData)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{err: errors.New("down")}, nil))
	status, env := call(t, app, "GET", "/health", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.False(t, env.Success)

	app = newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	status, env = call(t, app, "GET", "/health", "")
	require.Equal(t, fiber.StatusOK, status)
	var data struct {
		Version uint64 `json:"version"`
		Rows    int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, uint64(1), data.Version)
	assert.Equal(t, 9, data.Rows)
}

func TestNotLoadedReturns503(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{err: errors.New("down")}, nil))
	for _, path := range []string{"/filters", "/operator/dashboard", "/operator/forecast", "/analyst/dashboard", "/executive/dashboard"} {
		status, env := call(t, app, "GET", path, "")
		assert.Equal(t, fiber.StatusServiceUnavailable, status, path)
		assert.False(t, env.Success, path)
	}
}

func TestFilterOptions(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	status, env := call(t, app, "GET", "/filters", "")
	require.Equal(t, fiber.StatusOK, status)

	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, []string{"East", "West"}, opts.Regions)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), opts.MinDate)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), opts.MaxDate)
}

func TestBadFiltersReturn400(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))

	status, env := call(t, app, "GET", "/operator/dashboard?startDate=yesterday", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Message, "startDate")

	status, _ = call(t, app, "GET", "/analyst/dashboard?startDate=2024-03-01&endDate=2024-02-01", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, "GET", "/analyst/basket?minWeight=0", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestParseFilterCriteriaAcceptsSeveralLayouts(t *testing.T) {
	app := fiber.New()
	var got models.FilterCriteria
	app.Get("/", func(c *fiber.Ctx) error {
		var err error
		got, err = parseFilterCriteria(c)
		return err
	})

	req := httptest.NewRequest("GET", "/?startDate=2024-02-01T15:04:05Z&endDate=2024-02-29&region=%20West%20", nil)
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got.End)
	assert.Equal(t, "West", got.Region)
}

func TestProductRankingPagination(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	status, env := call(t, app, "GET", "/operator/ranking?page=2&pageSize=2", "")
	require.Equal(t, fiber.StatusOK, status)

	var page models.PaginatedProductsResponse
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 3, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "B", page.Items[0].ProductID)
	assert.Equal(t, 3, page.Items[0].Rank)

	status, env = call(t, app, "GET", "/operator/ranking?page=9&pageSize=2", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)

	status, env = call(t, app, "GET", "/operator/ranking?page=9223372036854775807&pageSize=10", "")
	require.Equal(t, fiber.StatusOK, status)
	page = models.PaginatedProductsResponse{}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalItems)
}

func TestBadQueryIntegersReturn400(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	for _, path := range []string{
		"/operator/ranking?page=0",
		"/operator/ranking?page=-1",
		"/operator/ranking?page=two",
		"/operator/ranking?pageSize=0",
		"/operator/ranking?pageSize=101",
		"/operator/ranking?page=99999999999999999999",
		"/analyst/basket?minWeight=0",
		"/analyst/basket?minWeight=heavy",
	} {
		status, env := call(t, app, "GET", path, "")
		assert.Equal(t, fiber.StatusBadRequest, status, path)
		assert.False(t, env.Success, path)
		assert.Contains(t, env.Message, "must be an integer between", path)
	}
}

func TestForecastIsCachedUntilReload(t *testing.T) {
	h := newTestHandler(t, &stubLoader{rows: sampleRows()}, nil)
	app := newTestApp(h)

	status, env := call(t, app, "GET", "/operator/forecast", "")
	require.Equal(t, fiber.StatusOK, status)
	var report models.ForecastReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.False(t, report.FromCache)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "A", report.Products[0].ProductID)
	assert.Equal(t, 3, report.Products[0].PredictedQuantity)
	assert.Equal(t, 2, report.SkippedCount)

	_, env = call(t, app, "GET", "/operator/forecast", "")
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.FromCache)
	assert.Equal(t, 1, h.Forecasts.Len())

	status, _ = call(t, app, "POST", "/executive/reload", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, h.Forecasts.Len())

	_, env = call(t, app, "GET", "/operator/forecast", "")
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.False(t, report.FromCache)
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	loader := &stubLoader{rows: sampleRows()}
	app := newTestApp(newTestHandler(t, loader, nil))

	loader.err = errors.New("connection refused")
	status, env := call(t, app, "POST", "/executive/reload", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, env.Message, "connection refused")

	status, _ = call(t, app, "GET", "/executive/dashboard", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestMarketBasket(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	status, env := call(t, app, "GET", "/analyst/basket", "")
	require.Equal(t, fiber.StatusOK, status)

	var graph models.BasketGraph
	require.NoError(t, json.Unmarshal(env.Data, &graph))
	assert.Equal(t, 1, graph.Weight("A", "B"))

	_, env = call(t, app, "GET", "/analyst/basket?minWeight=2", "")
	require.NoError(t, json.Unmarshal(env.Data, &graph))
	assert.Empty(t, graph.Edges)
}

func TestDashboards(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))

	status, env := call(t, app, "GET", "/analyst/dashboard?startDate=2024-04-01&endDate=2024-04-30", "")
	require.Equal(t, fiber.StatusOK, status)
	var analyst models.AnalystDashboard
	require.NoError(t, json.Unmarshal(env.Data, &analyst))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), analyst.Period.Previous.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), analyst.Period.Previous.End)

	status, env = call(t, app, "GET", "/executive/dashboard?region=East", "")
	require.Equal(t, fiber.StatusOK, status)
	var exec models.ExecutiveDashboard
	require.NoError(t, json.Unmarshal(env.Data, &exec))
	assert.InDelta(t, 40, exec.KPIs.TotalSales.Value, 1e-9)
	require.Len(t, exec.Regions, 1)
	assert.Equal(t, "East", exec.Regions[0].Region)

	status, env = call(t, app, "GET", "/operator/dashboard", "")
	require.Equal(t, fiber.StatusOK, status)
	var op models.OperatorDashboard
	require.NoError(t, json.Unmarshal(env.Data, &op))
	assert.Equal(t, 3, op.KPIs.TotalProducts)
}

func TestGenerateInsight(t *testing.T) {
	app := newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, nil))
	status, _ := call(t, app, "POST", "/executive/insight", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	fake := &fakeInsights{}
	app = newTestApp(newTestHandler(t, &stubLoader{rows: sampleRows()}, fake))
	status, env := call(t, app, "POST", "/executive/insight", `{"question":"Why is East slow?"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Why is East slow?", fake.question)

	var resp models.InsightResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Sales are up", resp.AiAnalysis.Summary)
	assert.InDelta(t, 690, resp.KPIs.TotalSales.Value, 1e-9)

	fake.err = errors.New("quota exceeded")
	status, env = call(t, app, "POST", "/executive/insight", "")
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.False(t, env.Success)
}

func TestParseInsightText(t *testing.T) {
	analysis, err := parseInsightText("```json\n{\"summary\":\"Profit grew\",\"positive_factors\":[\"Tech\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Profit grew", analysis.Summary)
	assert.Equal(t, []string{"Tech"}, analysis.PositiveFactors)
	assert.NotNil(t, analysis.NegativeFactors)

	_, err = parseInsightText("")
	assert.Error(t, err)
	_, err = parseInsightText("no json here")
	assert.Error(t, err)
	_, err = parseInsightText("{not json}")
	assert.Error(t, err)
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt, err := buildInsightPrompt("", models.ExecutiveDashboard{})
	require.NoError(t, err)
	assert.Contains(t, prompt, "compared with the previous one")
	assert.Contains(t, prompt, `"positive_factors"`)

	prompt, err = buildInsightPrompt("Which region leads?", models.ExecutiveDashboard{})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Which region leads?")
}
