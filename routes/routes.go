package routes

import (
	"github.com/gofiber/fiber/v2"

	"retail-bi/handlers"
	"retail-bi/middleware"
	"retail-bi/models"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler, jwtSecret []byte) {
	api := app.Group("/api/v1")
	api.Get("/health", h.HandleHealth)

	auth := middleware.NewJWTMiddleware(jwtSecret)

	// --- Shared Routes ---
	dashboard := api.Group("/dashboard", auth)
	dashboard.Get("/filters", middleware.ViewRequired(models.ViewFilterOptions), h.HandleGetFilterOptions)

	// --- Operator Routes ---
	operator := api.Group("/operator", auth, middleware.RoleRequired(models.RoleOperator))
	operator.Get("/dashboard", middleware.ViewRequired(models.ViewOperatorDashboard), h.HandleGetOperatorDashboard)
	operator.Get("/forecast", middleware.ViewRequired(models.ViewForecast), h.HandleGetForecast)
	operator.Get("/products/ranking", middleware.ViewRequired(models.ViewProductRanking), h.HandleGetProductRanking)

	// --- Analyst Routes ---
	analyst := api.Group("/analyst", auth, middleware.RoleRequired(models.RoleAnalyst))
	analyst.Get("/dashboard", middleware.ViewRequired(models.ViewAnalystDashboard), h.HandleGetAnalystDashboard)
	analyst.Get("/market-basket", middleware.ViewRequired(models.ViewMarketBasket), h.HandleGetMarketBasket)

	// --- Executive Routes ---
	executive := api.Group("/executive", auth, middleware.RoleRequired(models.RoleExecutive))
	executive.Get("/dashboard", middleware.ViewRequired(models.ViewExecutiveDashboard), h.HandleGetExecutiveDashboard)
	executive.Post("/insight", middleware.ViewRequired(models.ViewInsight), h.HandleGenerateInsight)
	executive.Post("/data/reload", middleware.ViewRequired(models.ViewReload), h.HandleReloadData)
}
