package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"retail-bi/analytics"
	"retail-bi/config"
	"retail-bi/database"
	"retail-bi/handlers"
	"retail-bi/routes"
	"retail-bi/snapshot"
)

func usage() {
	fmt.Println("usage: retail-bi [options]")
	flag.PrintDefaults()
}

var envFile = flag.String("env", ".env", "load environment from `file` when present")

func main() {
	flag.Usage = usage
	flag.Parse()

	// Load .env file
	config.LoadEnvFile(*envFile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize database
	source, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer source.Close()

	// Load the transaction snapshot; nothing is served from a failed load.
	holder := snapshot.NewHolder(source)
	if _, err := holder.Reload(ctx); err != nil {
		log.Fatalf("Unable to load transactions: %v", err)
	}

	forecasts, err := analytics.NewForecastCache(cfg.ForecastCacheSize)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var insights handlers.InsightGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := handlers.NewGeminiInsights(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer gemini.Close()
		insights = gemini
	} else {
		log.Println("GEMINI_API_KEY is not set, executive insight is disabled")
	}

	forest := analytics.DefaultForestConfig()
	forest.Trees = cfg.ForestTrees
	forest.Seed = cfg.ForestSeed

	dashboard := analytics.DefaultDashboardConfig()
	dashboard.LowStockThreshold = cfg.LowStockThreshold

	h := handlers.New(holder, forecasts, forest, dashboard, insights)

	app := fiber.New(fiber.Config{AppName: "retail-bi"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/version", func(c *fiber.Ctx) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return c.Status(fiber.StatusInternalServerError).SendString("no build information available")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
		return c.SendString("<pre>\n" + info.String() + "</pre>\n")
	})

	// Setup routes
	routes.SetupRoutes(app, h, []byte(cfg.JWTSecret))

	// Start server
	log.Printf("serving http://localhost%s", cfg.Addr())
	log.Fatal(app.Listen(cfg.Addr()))
}
