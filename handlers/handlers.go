// Package handlers exposes the role dashboards over HTTP.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"retail-bi/analytics"
	"retail-bi/models"
	"retail-bi/snapshot"
)

// Handler serves the dashboard API from the current snapshot.
type Handler struct {
	Data      *snapshot.Holder
	Forecasts *analytics.ForecastCache
	Forest    analytics.ForestConfig
	Dashboard analytics.DashboardConfig
	// Insights is nil when no AI backend is configured.
	Insights InsightGenerator
}

// New wires a Handler and registers a cache purge on every snapshot change.
func New(data *snapshot.Holder, forecasts *analytics.ForecastCache, forest analytics.ForestConfig, dashboard analytics.DashboardConfig, insights InsightGenerator) *Handler {
	h := &Handler{
		Data:      data,
		Forecasts: forecasts,
		Forest:    forest,
		Dashboard: dashboard,
		Insights:  insights,
	}
	if forecasts != nil {
		data.OnChange(func(s *snapshot.Snapshot) {
			forecasts.Purge()
			if s != nil {
				log.Printf("🧹 [FORECAST] Cache purged for snapshot version %d", s.Version)
			}
		})
	}
	return h
}

// current returns the loaded snapshot or writes a 503 response.
func (h *Handler) current(c *fiber.Ctx) (*snapshot.Snapshot, error) {
	s, err := h.Data.Current()
	if err != nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Transaction data is not loaded yet"})
	}
	return s, nil
}

// parseDate tries the date layouts clients are known to send.
func parseDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return analytics.Day(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseFilterCriteria reads the shared dashboard filters from the query string.
func parseFilterCriteria(c *fiber.Ctx) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{
		Region:   strings.TrimSpace(c.Query("region")),
		Category: strings.TrimSpace(c.Query("category")),
		Segment:  strings.TrimSpace(c.Query("segment")),
	}

	if s := strings.TrimSpace(c.Query("startDate")); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return models.FilterCriteria{}, fmt.Errorf("invalid startDate format: %q", s)
		}
		criteria.Start = t
	}
	if s := strings.TrimSpace(c.Query("endDate")); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return models.FilterCriteria{}, fmt.Errorf("invalid endDate format: %q", s)
		}
		criteria.End = t
	}
	if criteria.HasDateRange() && criteria.End.Before(criteria.Start) {
		return models.FilterCriteria{}, analytics.ErrInvalidPeriod
	}
	return criteria, nil
}

// queryIntInRange reads an optional integer query parameter. A value that is
// not an integer or falls outside [lo, hi] is an error; an absent one is def.
func queryIntInRange(c *fiber.Ctx, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}
	return n, nil
}

const maxQueryInt = math.MaxInt

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
}

// viewError maps an analytics error to a response.
func viewError(c *fiber.Ctx, tag string, err error) error {
	if errors.Is(err, analytics.ErrInvalidPeriod) {
		return badRequest(c, err)
	}
	log.Printf("❌ [%s] %v", tag, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to build " + strings.ToLower(tag)})
}

// HandleHealth reports the loaded snapshot.
// GET /api/v1/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	s, err := h.Data.Current()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"version":  s.Version,
			"rows":     s.Len(),
			"loadedAt": s.LoadedAt,
			"minDate":  s.MinDate,
			"maxDate":  s.MaxDate,
		},
	})
}

// HandleGetFilterOptions lists the regions, categories, segments and date
// bounds of the whole snapshot.
// GET /api/v1/dashboard/filters
func (h *Handler) HandleGetFilterOptions(c *fiber.Ctx) error {
	s, err := h.current(c)
	if s == nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": analytics.Options(s.Rows())})
}
