// Command api serves the fleet service-appointment HTTP API.
//
// @title                       Fleet Service Appointment API
// @version                     1.0
// @description                 Scheduling API for fleet service appointments with bearer token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fleetmanagement/fleet-api/internal/api"
	"github.com/fleetmanagement/fleet-api/internal/api/handler"
	"github.com/fleetmanagement/fleet-api/internal/api/middleware"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
	"github.com/fleetmanagement/fleet-api/internal/core/service"
	"github.com/fleetmanagement/fleet-api/internal/infrastructure/config"
	"github.com/fleetmanagement/fleet-api/internal/infrastructure/db/mongo"
	redisstore "github.com/fleetmanagement/fleet-api/internal/infrastructure/db/redis"
	"github.com/fleetmanagement/fleet-api/internal/infrastructure/db/sqlstore"
	"github.com/fleetmanagement/fleet-api/internal/infrastructure/seed"
	"github.com/fleetmanagement/fleet-api/pkg/logger"
)

const rateWindow = time.Minute

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "fleet-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("fleet api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	proxies, err := cfg.TrustedProxyNets()
	if err != nil {
		return err
	}
	if cfg.JWT.UsingDevSecret {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the development key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.closer.Close()
	log.Info().Str("driver", st.pinger.Name()).Msg("store ready")

	health := []handler.Pinger{st.pinger}
	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		health = append(health, redisstore.NewHealthCheck(rdb))
		if cfg.RateLimit.Enabled {
			limiter = redisstore.NewFixedWindowLimiter(rdb, cfg.RateLimit.PerMinute, rateWindow)
		}
	}
	if cfg.RateLimit.Enabled && limiter == nil {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit.PerMinute, rateWindow)
	}

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		return err
	}
	authService := service.NewAuthService(st.users, tokens, log.With().Str("component", "auth").Logger())
	fleetService := service.NewFleetService(st.fleet, log.With().Str("component", "fleet").Logger())

	if cfg.SeedingEnabled() {
		if err := seed.New(st.fleet, st.users, authService, log).Run(ctx); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Logger:         log,
		AuthService:    authService,
		FleetService:   fleetService,
		Tokens:         tokens,
		Health:         health,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    limiter,
		RateWindow:     rateWindow,
		TrustedProxies: proxies,
		Swagger:        !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Bool("rate_limit", limiter != nil).Msg("fleet api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

type stores struct {
	users  ports.AuthRepository
	fleet  ports.FleetRepository
	pinger handler.Pinger
	closer io.Closer
}

func openStore(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		m, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Store.MongoURI, Database: cfg.Store.MongoDB})
		if err != nil {
			return nil, err
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close()
			return nil, err
		}
		return &stores{users: mongo.NewAuthRepository(m), fleet: mongo.NewFleetRepository(m), pinger: m, closer: m}, nil

	case config.DriverPostgres, config.DriverSQLite:
		var (
			s   *sqlstore.Store
			err error
		)
		if cfg.Store.Driver == config.DriverPostgres {
			s, err = sqlstore.OpenPostgres(ctx, cfg.Store.DatabaseURL)
		} else {
			s, err = sqlstore.OpenSQLite(cfg.Store.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return &stores{users: sqlstore.NewAuthRepository(s), fleet: sqlstore.NewFleetRepository(s), pinger: s, closer: s}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
