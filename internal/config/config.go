package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"roombooking/internal/slot"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "roombooking.db"
	defaultDBMaxOpenConns    = "20"
	defaultDBMaxIdleConns    = "5"
	defaultDBConnMaxLifetime = "30m"
	defaultDBAutoMigrate     = "true"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultSlotTimezone      = "UTC"
	defaultSlotValidation    = "true"
	defaultRequestTimeout    = "10s"
	defaultBookingRetention  = "2160h"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAutoMigrate     bool

	LogLevel  string
	LogFormat string

	SlotCatalog    string
	SlotTimezone   string
	SlotValidation bool

	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	BookingRetention   time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", ""))
	if cfg.HTTPAddr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.HTTPAddr = ":" + port
		} else {
			cfg.HTTPAddr = defaultHTTPAddr
		}
	}

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.DBAutoMigrate = parseBoolEnv("DB_AUTO_MIGRATE", defaultDBAutoMigrate)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.SlotCatalog = strings.TrimSpace(getEnv("SLOT_CATALOG", slot.DefaultSlots))
	cfg.SlotTimezone = strings.TrimSpace(getEnv("SLOT_TIMEZONE", defaultSlotTimezone))
	cfg.SlotValidation = parseBoolEnv("BOOKING_SLOT_VALIDATION", defaultSlotValidation)

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	var err error
	if cfg.DBMaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", defaultDBConnMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDurationEnv("REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		return nil, err
	}
	if cfg.BookingRetention, err = parseDurationEnv("BOOKING_RETENTION", defaultBookingRetention); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Catalog parses the configured slot catalog in the configured time zone.
func (c *Config) Catalog() (*slot.Catalog, error) {
	loc, err := time.LoadLocation(c.SlotTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_TIMEZONE %q: %w", c.SlotTimezone, err)
	}
	catalog, err := slot.Parse(c.SlotCatalog, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_CATALOG: %w", err)
	}
	return catalog, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0")
	}
	if cfg.BookingRetention <= 0 {
		return fmt.Errorf("BOOKING_RETENTION must be > 0")
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	if _, err := cfg.Catalog(); err != nil {
		return err
	}

	if isProdLike(cfg.AppEnv) {
		if !cfg.UsesPostgres() {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
