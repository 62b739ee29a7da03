package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"APP_ENV", "HTTP_ADDR", "PORT", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"DB_CONN_MAX_LIFETIME", "DB_AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT", "SLOT_CATALOG",
	"SLOT_TIMEZONE", "BOOKING_SLOT_VALIDATION", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS",
	"BOOKING_RETENTION",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "roombooking.db", cfg.DatabaseURL)
	assert.False(t, cfg.UsesPostgres())
	assert.True(t, cfg.SlotValidation)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 90*24*time.Hour, cfg.BookingRetention)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 10, catalog.Len())
	assert.Equal(t, time.UTC, catalog.Location())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SLOT_CATALOG", "09:00-10:00, 10:00-11:00")
	t.Setenv("SLOT_TIMEZONE", "Europe/Berlin")
	t.Setenv("BOOKING_SLOT_VALIDATION", "off")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.False(t, cfg.SlotValidation)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00,10:00-11:00", catalog.String())
	assert.Equal(t, "Europe/Berlin", catalog.Location().String())
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad timeout":    {"REQUEST_TIMEOUT", "soon"},
		"zero timeout":   {"REQUEST_TIMEOUT", "0s"},
		"bad pool size":  {"DB_MAX_OPEN_CONNS", "many"},
		"bad catalog":    {"SLOT_CATALOG", "10:00-09:00"},
		"bad timezone":   {"SLOT_TIMEZONE", "Mars/Olympus"},
		"bad log format": {"LOG_FORMAT", "xml"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_ProductionRequiresPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/rooms?sslmode=disable")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
