package handlers

import (
	"github.com/gofiber/fiber/v2"

	"retail-bi/analytics"
)

// HandleGetAnalystDashboard returns the customer-behaviour view with deltas
// against the previous window.
// GET /api/v1/analyst/dashboard
func (h *Handler) HandleGetAnalystDashboard(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	dashboard, err := analytics.AnalystView(s.Rows(), criteria)
	if err != nil {
		return viewError(c, "ANALYST DASHBOARD", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": dashboard})
}

// HandleGetMarketBasket returns the co-purchase graph of the filtered orders.
// GET /api/v1/analyst/market-basket?minWeight=2
func (h *Handler) HandleGetMarketBasket(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}
	minWeight, err := queryIntInRange(c, "minWeight", 1, 1, maxQueryInt)
	if err != nil {
		return badRequest(c, err)
	}

	graph := analytics.PruneBasket(analytics.MarketBasket(analytics.Filter(s.Rows(), criteria)), minWeight)
	return c.JSON(fiber.Map{"success": true, "data": graph})
}
