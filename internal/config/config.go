package config

import (
	"log"
	"os"
	"strconv"
)

const (
	defaultEnv             = "development"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultCompanyName     = "Painting Estimates"
	defaultOverheadPercent = 10
	defaultProfitPercent   = 15
	defaultTaxPercent      = 0
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	CatalogPath   string
	CompanyName   string

	// Rates copied onto new estimates, as whole percents.
	DefaultOverheadPercent float64
	DefaultProfitPercent   float64
	DefaultTaxPercent      float64
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Production injects real env vars; the file is only a local convenience.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: read .env: %v", err)
	}

	cfg := Config{
		Env:           getEnv("APP_ENV", defaultEnv),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		Port:          getEnv("PORT", defaultPort),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		CompanyName:   getEnv("COMPANY_NAME", defaultCompanyName),

		DefaultOverheadPercent: getEnvAsFloat("DEFAULT_OVERHEAD_PERCENT", defaultOverheadPercent),
		DefaultProfitPercent:   getEnvAsFloat("DEFAULT_PROFIT_PERCENT", defaultProfitPercent),
		DefaultTaxPercent:      getEnvAsFloat("DEFAULT_TAX_PERCENT", defaultTaxPercent),
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// IsDev reports whether the server should migrate the database on startup.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv || c.Env == "dev"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not numeric, using %v", key, value, defaultVal)
		return defaultVal
	}
	return f
}
