package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fleetmanagement/fleet-api/internal/api/metrics"
	"github.com/fleetmanagement/fleet-api/internal/core/domain"
	"github.com/fleetmanagement/fleet-api/internal/core/ports"
)

const principalKey = "principal"

// Auth validates the bearer token and injects the resulting principal into
// the echo context. Every failure surfaces as domain.ErrUnauthenticated.
func Auth(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthenticated)
			}

			principal, err := validator.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// SetPrincipal stores p for the rest of the request.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal placed by Auth, if any.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}
