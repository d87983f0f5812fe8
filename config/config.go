package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config struct holds application configuration.
type Config struct {
	DatabaseURL       string
	DBDriver          string
	JWTSecret         string
	Port              string
	GeminiAPIKey      string
	GeminiModel       string
	ForecastCacheSize int
	ForestTrees       int
	ForestSeed        uint64
	LowStockThreshold int
}

// Defaults for the optional settings.
const (
	DefaultPort              = "3000"
	DefaultDriver            = "pgx"
	DefaultGeminiModel       = "gemini-2.5-flash-lite"
	DefaultForecastCacheSize = 64
	DefaultForestTrees       = 100
	DefaultForestSeed        = 42
	DefaultLowStockThreshold = 5
)

// ErrMissingSetting is wrapped by Load when a required variable is empty.
var ErrMissingSetting = errors.New("required setting is not set")

// LoadEnvFile loads a .env file into the process environment when present.
func LoadEnvFile(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBDriver:     envOr("DB_DRIVER", DefaultDriver),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Port:         envOr("PORT", DefaultPort),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", DefaultGeminiModel),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL: %w", ErrMissingSetting)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET: %w", ErrMissingSetting)
	}

	var err error
	if cfg.ForecastCacheSize, err = envInt("FORECAST_CACHE_SIZE", DefaultForecastCacheSize); err != nil {
		return Config{}, err
	}
	if cfg.ForestTrees, err = envInt("FOREST_TREES", DefaultForestTrees); err != nil {
		return Config{}, err
	}
	if cfg.LowStockThreshold, err = envInt("LOW_STOCK_THRESHOLD", DefaultLowStockThreshold); err != nil {
		return Config{}, err
	}
	seed, err := envInt("FOREST_SEED", DefaultForestSeed)
	if err != nil {
		return Config{}, err
	}
	cfg.ForestSeed = uint64(seed)

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
