package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Shop cloud (remote authoritative store)
	ShopCloudBaseURL string
	ShopCloudTimeout time.Duration

	// Background sync
	SyncCronSpec    string
	SyncMaxRetries  int
	SyncBackoffBase time.Duration

	// Device session tokens
	DeviceJWTSecret string

	// Rate limiting, in ulule/limiter notation (e.g. "30-M")
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
	viper.SetDefault("SHOPCLOUD_BASE_URL", "")
	viper.SetDefault("SHOPCLOUD_TIMEOUT", "20s")
	viper.SetDefault("SYNC_CRON_SPEC", "0 */5 * * * *")
	viper.SetDefault("SYNC_MAX_RETRIES", 3)
	viper.SetDefault("SYNC_BACKOFF_BASE", "500ms")
	viper.SetDefault("DEVICE_JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ShopCloudBaseURL = viper.GetString("SHOPCLOUD_BASE_URL")
	if cfg.ShopCloudBaseURL == "" {
		log.Println("Warning: SHOPCLOUD_BASE_URL not set. Sync and switching will not function.")
	}

	shopCloudTimeoutStr := viper.GetString("SHOPCLOUD_TIMEOUT")
	shopCloudTimeout, err := time.ParseDuration(shopCloudTimeoutStr)
	if err != nil {
		shopCloudTimeout = 20 * time.Second
		log.Printf("Warning: Invalid value for SHOPCLOUD_TIMEOUT ('%s'). Defaulting to %s.\n", shopCloudTimeoutStr, shopCloudTimeout)
	}
	cfg.ShopCloudTimeout = shopCloudTimeout

	cfg.SyncCronSpec = viper.GetString("SYNC_CRON_SPEC")
	cfg.SyncMaxRetries = viper.GetInt("SYNC_MAX_RETRIES")

	backoffStr := viper.GetString("SYNC_BACKOFF_BASE")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 500 * time.Millisecond
		log.Printf("Warning: Invalid value for SYNC_BACKOFF_BASE ('%s'). Defaulting to %s.\n", backoffStr, backoff)
	}
	cfg.SyncBackoffBase = backoff

	cfg.DeviceJWTSecret = viper.GetString("DEVICE_JWT_SECRET")
	if cfg.DeviceJWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: DEVICE_JWT_SECRET not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
