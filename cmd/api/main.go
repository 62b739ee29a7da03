package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roombooking/internal/config"
	"roombooking/internal/database"
	"roombooking/internal/pkg/logger"
	"roombooking/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "roombooking-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.OptionsFromConfig(cfg), lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			lg.Fatal("migration failed", zap.Error(err))
		}
	}

	opts, err := server.OptionsFromConfig(cfg)
	if err != nil {
		lg.Fatal("invalid server options", zap.Error(err))
	}
	lg.Info("slot catalog loaded",
		zap.String("slots", opts.Catalog.String()),
		zap.String("timezone", opts.Catalog.Location().String()),
		zap.Bool("slot_validation", opts.SlotValidation),
	)

	srv := server.New(db, opts, lg)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")

		srv.Hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server stopped with error", zap.Error(err))
	}
}
