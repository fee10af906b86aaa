package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dailydose/dailydose/internal/adapters/http/handlers"
	"github.com/dailydose/dailydose/internal/adapters/http/middleware"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/platform/telemetry"
)

// Services are the application services the API routes call.
type Services struct {
	Quotes    *app.QuoteService
	Favorites *app.FavoritesStore
	Cache     *app.QuoteCache
	Profile   *app.ProfileService
	Settings  *app.SettingsService
	Reminders *app.ReminderService
}

// RouterConfig contains what SetupRouter needs.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	// Timeout bounds every /api/v1 request. Zero disables it.
	Timeout time.Duration

	// Registerer receives the HTTP metrics. Nil skips Prometheus.
	Registerer prometheus.Registerer

	Health   *handlers.HealthHandler
	Services Services
}

// SetupRouter installs the middleware chain and all routes on engine.
//
// Middleware order:
//  1. Recovery
//  2. Context logger
//  3. Request ID, then correlation ID
//  4. OpenTelemetry tracing and HTTP metrics
//  5. Access logging (skips /-/)
//
// The /api/v1 group additionally carries the request timeout. Probes
// under /-/ have none.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName, cfg.Registerer)...)
	engine.Use(middleware.Logging())

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(engine)
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.Timeout(cfg.Timeout))

	s := cfg.Services
	handlers.NewQuoteHandler(s.Quotes, s.Favorites).RegisterRoutes(api)
	handlers.NewFavoritesHandler(s.Favorites, s.Quotes).RegisterRoutes(api)
	handlers.NewCacheHandler(s.Cache).RegisterRoutes(api)
	handlers.NewProfileHandler(s.Profile, s.Settings).RegisterRoutes(api)
	handlers.NewReminderHandler(s.Reminders).RegisterRoutes(api)
}
