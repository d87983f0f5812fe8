package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"retail-bi/analytics"
	"retail-bi/middleware"
	"retail-bi/models"
)

// HandleGetExecutiveDashboard returns the headline KPIs, trends and the
// regional breakdown.
// GET /api/v1/executive/dashboard
func (h *Handler) HandleGetExecutiveDashboard(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	dashboard, err := analytics.ExecutiveView(s.Rows(), criteria, h.Dashboard)
	if err != nil {
		return viewError(c, "EXECUTIVE DASHBOARD", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": dashboard})
}

// HandleGenerateInsight asks the AI backend for a narrative over the
// executive dashboard of the requested filters.
// POST /api/v1/executive/insight
func (h *Handler) HandleGenerateInsight(c *fiber.Ctx) error {
	if h.Insights == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "AI insight is not configured"})
	}
	s, err := h.current(c)
	if s == nil {
		return err
	}
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return badRequest(c, err)
	}

	var body models.InsightRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
		}
	}

	dashboard, err := analytics.ExecutiveView(s.Rows(), criteria, h.Dashboard)
	if err != nil {
		return viewError(c, "EXECUTIVE INSIGHT", err)
	}

	userID, _, _ := middleware.ExtractClaims(c)
	log.Printf("🤖 [INSIGHT] Request - User: %s, Snapshot: %d", userID, s.Version)

	analysis, err := h.Insights.Analyze(c.UserContext(), body.Question, dashboard)
	if err != nil {
		log.Printf("❌ [INSIGHT] %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to generate insight from AI"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.InsightResponse{
			ReportName:  "Executive Insight",
			GeneratedAt: time.Now(),
			Filters:     criteria,
			KPIs:        dashboard.KPIs,
			AiAnalysis:  analysis,
		},
	})
}

// HandleReloadData reloads the transaction table. The forecast cache is
// purged through the snapshot change hook.
// POST /api/v1/executive/data/reload
func (h *Handler) HandleReloadData(c *fiber.Ctx) error {
	userID, _, _ := middleware.ExtractClaims(c)
	log.Printf("🔄 [RELOAD] Requested by %s", userID)

	s, err := h.Data.Reload(c.UserContext())
	if err != nil {
		log.Printf("❌ [RELOAD] %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"version":  s.Version,
			"rows":     s.Len(),
			"loadedAt": s.LoadedAt,
		},
	})
}
