package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Business scheduling policy. Defaults encode current operational promises;
	// changing them changes what staff are committed to, so they are env-driven.
	BusinessTimezone   string
	LeadTimeHours      int
	BookingCutoffHour  int
	DeliveryGrace      time.Duration
	PickupGrace        time.Duration
	AutomationInterval time.Duration // 0 disables the in-process ticker
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Fixed business timezone for cutoff evaluation. Customer timezone is irrelevant.
	cfg.BusinessTimezone = getEnv("BUSINESS_TZ", "America/Chicago")
	if _, err := time.LoadLocation(cfg.BusinessTimezone); err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TZ %q: %w", cfg.BusinessTimezone, err)
	}

	// Minimum hours between now and an event start (default: 18)
	cfg.LeadTimeHours, err = getEnvAsInt("LEAD_TIME_HOURS", 18)
	if err != nil {
		return nil, fmt.Errorf("invalid LEAD_TIME_HOURS: %w", err)
	}

	// Hour of day (business timezone) after which next-day bookings close (default: noon)
	cfg.BookingCutoffHour, err = getEnvAsInt("BOOKING_CUTOFF_HOUR", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_CUTOFF_HOUR: %w", err)
	}
	if cfg.BookingCutoffHour < 0 || cfg.BookingCutoffHour > 23 {
		return nil, fmt.Errorf("BOOKING_CUTOFF_HOUR must be 0-23, got %d", cfg.BookingCutoffHour)
	}

	// Grace periods before automation acts on an elapsed window
	cfg.DeliveryGrace, err = getEnvAsDuration("DELIVERY_GRACE", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.PickupGrace, err = getEnvAsDuration("PICKUP_GRACE", 4*time.Hour)
	if err != nil {
		return nil, err
	}

	// In-process automation ticker; leave at 0 when an external scheduler triggers runs
	cfg.AutomationInterval, err = getEnvAsDuration("AUTOMATION_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
