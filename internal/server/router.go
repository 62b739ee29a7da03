// Package server wires repositories, services and handlers into a gin
// engine.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"roombooking/internal/config"
	"roombooking/internal/middleware"
	"roombooking/internal/modules/booking"
	"roombooking/internal/modules/catalog"
	"roombooking/internal/modules/events"
	"roombooking/internal/pkg/response"
	"roombooking/internal/repository"
	"roombooking/internal/slot"
)

const (
	apiPrefix = "/api/v1"
	wsPrefix  = apiPrefix + "/ws"
)

type Options struct {
	Catalog            *slot.Catalog
	SlotValidation     bool
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// OptionsFromConfig resolves the slot catalog and HTTP settings.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Catalog:            cat,
		SlotValidation:     cfg.SlotValidation,
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, nil
}

type Server struct {
	Engine   *gin.Engine
	Hub      *events.Hub
	Bookings *booking.Service
	Catalog  *catalog.Service
}

func New(db *gorm.DB, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Catalog == nil {
		opts.Catalog = slot.Default(time.UTC)
	}

	store := repository.NewStore(db)
	hub := events.NewHub(log.Named("events"))

	catalogService := catalog.NewService(store, log.Named("catalog"))
	bookingService := booking.NewService(store, opts.Catalog,
		booking.WithNotifier(hub),
		booking.WithSlotValidation(opts.SlotValidation),
		booking.WithLogger(log.Named("booking")),
	)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.CORS(opts.CORSAllowedOrigins),
		middleware.Timeout(opts.RequestTimeout, wsPrefix),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "PONG!")
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group(apiPrefix)
	{
		catalog.NewHandler(catalogService).RegisterRoutes(v1)
		booking.NewHandler(bookingService).RegisterRoutes(v1)
		events.NewHandler(hub, catalogService, nil).RegisterRoutes(v1)
	}

	return &Server{
		Engine:   r,
		Hub:      hub,
		Bookings: bookingService,
		Catalog:  catalogService,
	}
}
