package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency is the currency every report and stored amount settles
	// in. The books run in OMR unless configured otherwise.
	BaseCurrency string

	// DefaultExchangeRate is the last-resort conversion rate into the base
	// currency, used when no stored rate and no settings default exist.
	DefaultExchangeRate decimal.Decimal

	// RateLimit is the request rate limit in ulule/limiter notation,
	// e.g. "300-M" for 300 requests per minute per client IP.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "OMR")
	viper.SetDefault("DEFAULT_EXCHANGE_RATE", "0")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	rateStr := viper.GetString("DEFAULT_EXCHANGE_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		log.Printf("Warning: Invalid value for DEFAULT_EXCHANGE_RATE ('%s'). Defaulting to 0 (disabled).\n", rateStr)
		rate = decimal.Zero
	}
	cfg.DefaultExchangeRate = rate

	return cfg, nil
}
