package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Frozen-write policies for daily ledger rows targeting a settled period.
const (
	FrozenWriteSkip   = "skip"   // drop the row, report it as skipped (source behaviour)
	FrozenWriteReject = "reject" // fail the whole batch
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// FrozenWritePolicy decides what UpdateDailyView does with rows dated at or
	// before a labourer's latest settlement.
	FrozenWritePolicy string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "shopkhata-backend")
	viper.SetDefault("LABOUR_FROZEN_WRITE_POLICY", FrozenWriteSkip)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FrozenWritePolicy = viper.GetString("LABOUR_FROZEN_WRITE_POLICY")
	if cfg.FrozenWritePolicy != FrozenWriteSkip && cfg.FrozenWritePolicy != FrozenWriteReject {
		return nil, fmt.Errorf("invalid LABOUR_FROZEN_WRITE_POLICY %q: must be %q or %q",
			cfg.FrozenWritePolicy, FrozenWriteSkip, FrozenWriteReject)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
