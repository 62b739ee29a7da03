package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"roombooking/internal/config"
	"roombooking/internal/database"
	"roombooking/internal/pkg/logger"
	"roombooking/internal/repository"
)

// Deletes bookings that ended longer than BOOKING_RETENTION ago.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "booking-purge")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.OptionsFromConfig(cfg), lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-cfg.BookingRetention)
	n, err := repository.NewBookingRepository(db).DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		lg.Fatal("purge bookings failed", zap.Error(err))
	}

	lg.Info("booking purge completed",
		zap.Int64("deleted", n),
		zap.Time("cutoff", cutoff),
	)
}
