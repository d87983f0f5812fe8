package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"retail-bi/analytics"
	"retail-bi/models"
	"retail-bi/utils"
)

const maxPageSize = 100

// HandleGetOperatorDashboard returns the operator's stock view.
// GET /api/v1/operator/dashboard
func (h *Handler) HandleGetOperatorDashboard(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	dashboard := analytics.OperatorView(s.Rows(), criteria, h.Dashboard)
	return c.JSON(fiber.Map{"success": true, "data": dashboard})
}

// HandleGetProductRanking returns one page of the units-sold ranking.
// GET /api/v1/operator/products/ranking?page=1&pageSize=10
func (h *Handler) HandleGetProductRanking(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	page, err := queryIntInRange(c, "page", 1, 1, maxQueryInt)
	if err != nil {
		return badRequest(c, err)
	}
	pageSize, err := queryIntInRange(c, "pageSize", 10, 1, maxPageSize)
	if err != nil {
		return badRequest(c, err)
	}

	ranking := analytics.ProductRanking(analytics.Filter(s.Rows(), criteria))
	pagination := utils.CreatePagination(len(ranking), page, pageSize)
	lo, hi := pagination.Bounds()

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.PaginatedProductsResponse{
			Items: ranking[lo:hi],
			Pagination: models.PaginationInfo{
				TotalItems:  pagination.TotalItems,
				CurrentPage: pagination.CurrentPage,
				PageSize:    pagination.PageSize,
				TotalPages:  pagination.TotalPages,
			},
		},
	})
}

// HandleGetForecast predicts next month's units per product with the
// regression forest. Results are cached per snapshot version and filters.
// GET /api/v1/operator/forecast
func (h *Handler) HandleGetForecast(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	rows := analytics.Filter(s.Rows(), criteria)
	compute := func() []models.ForecastResult {
		start := time.Now()
		res := analytics.SortedForecasts(analytics.Forecast(rows, h.Forest))
		log.Printf("📈 [FORECAST] Fitted %d products on %d rows in %s", len(res), len(rows), time.Since(start).Round(time.Millisecond))
		return res
	}

	var (
		products []models.ForecastResult
		cached   bool
	)
	if h.Forecasts != nil {
		products, cached = h.Forecasts.GetOrCompute(s.Version, criteria, compute)
	} else {
		products = compute()
	}

	skipped := len(analytics.ProductStock(rows)) - len(products)
	if skipped < 0 {
		skipped = 0
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.ForecastReport{
			ReportName:   "Next Month Demand Forecast",
			GeneratedAt:  time.Now(),
			Filters:      criteria,
			MinMonths:    analytics.MinForecastMonths,
			Products:     products,
			SkippedCount: skipped,
			FromCache:    cached,
		},
	})
}
