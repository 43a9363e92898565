package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings loaded from environment variables.
type Config struct {
	DatabaseURL    string
	Host           string
	Port           string
	AllowedOrigins string

	// Catalog source
	BaseURL     string
	CatalogPath string

	// Pipeline behavior
	MaxWorkers   int
	PageDelay    time.Duration
	FetchTimeout time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	UserAgent    string

	// Scheduling
	RefreshSchedule string

	// Serving
	CacheTTL       time.Duration
	MaxResults     int
	MinResults     int
	RateLimitRPS   float64
	ExportPath     string

	// Budget filter: records priced at or above this threshold are excluded
	// when the cheapest budget tier is requested.
	BudgetThreshold float64
}

// Load returns a Config populated from the environment.
func Load() *Config {
	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		BaseURL:     getEnv("CATALOG_BASE_URL", "https://aroma-euro.ru"),
		CatalogPath: getEnv("CATALOG_PATH", "/perfume/"),

		MaxWorkers:   getEnvInt("MAX_WORKERS", 3),
		PageDelay:    getEnvDuration("PAGE_DELAY", 1500*time.Millisecond),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxRetries:   getEnvInt("MAX_RETRIES", 3),
		RetryDelay:   getEnvDuration("RETRY_DELAY", 2*time.Second),
		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),

		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 0 */12 * * *"),

		CacheTTL:     getEnvDuration("CATALOG_CACHE_TTL", time.Hour),
		MaxResults:   getEnvInt("MAX_RESULTS", 500),
		MinResults:   getEnvInt("MIN_RESULTS", 10),
		RateLimitRPS: getEnvFloat("RATE_LIMIT_RPS", 5),
		ExportPath:   getEnv("EXPORT_PATH", "catalog_snapshot.json"),

		BudgetThreshold: getEnvFloat("BUDGET_THRESHOLD", 2000),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Origins splits the ALLOWED_ORIGINS list for the CORS layer.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
