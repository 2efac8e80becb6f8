package api

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fleetmanagement/fleet-api/docs"
	"github.com/fleetmanagement/fleet-api/internal/api/handler"
	"github.com/fleetmanagement/fleet-api/internal/api/middleware"
	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Construction of the concrete
// services and stores happens in cmd/api.
type Deps struct {
	Logger       zerolog.Logger
	AuthService  ports.AuthService
	FleetService ports.FleetService
	Tokens       ports.TokenValidator
	Health       []handler.Pinger

	AllowedOrigins []string
	// RateLimiter is nil when rate limiting is disabled.
	RateLimiter middleware.Limiter
	RateWindow  time.Duration
	// TrustedProxies are the only peers whose X-Forwarded-For is honoured.
	TrustedProxies []*net.IPNet
	Swagger        bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())
	e.Use(requestLogger(d.Logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if d.RateLimiter != nil {
		e.Use(middleware.RateLimit(d.RateLimiter, d.RateWindow, d.Logger))
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Health...)
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/readyz", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if d.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	authHandler := handler.NewAuthHandler(d.AuthService)
	fleetHandler := handler.NewFleetHandler(d.FleetService)
	authenticated := middleware.Auth(d.Tokens)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/me", authHandler.Me, authenticated)

	// --- Fleet routes ---
	centers := api.Group("/service-centers", authenticated, adminOnly)
	centers.GET("", fleetHandler.ListServiceCenters)
	centers.GET("/:id", fleetHandler.GetServiceCenter)

	assetTypes := api.Group("/asset-types", authenticated)
	assetTypes.GET("", fleetHandler.ListAssetTypes)
	assetTypes.GET("/:id", fleetHandler.GetAssetType)

	appointments := api.Group("/service-appointments", authenticated)
	appointments.GET("", fleetHandler.ListAppointments)
	appointments.POST("", fleetHandler.CreateAppointment)
	appointments.GET("/:id", fleetHandler.GetAppointment)
	appointments.PUT("/:id", fleetHandler.UpdateAppointment)
	appointments.DELETE("/:id", fleetHandler.DeleteAppointment)

	return e
}

// ipExtractor resolves c.RealIP. Without trusted proxies the TCP peer is the
// client and forwarding headers are ignored.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
