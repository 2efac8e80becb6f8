package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/fleetmanagement/fleet-api/internal/api/metrics"
	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// RequireRoles lets the request through when the authenticated principal holds
// at least one of roles. With no roles any authenticated principal passes.
// It must run after Auth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return fmt.Errorf("%w: no principal on request", domain.ErrUnauthenticated)
			}
			if !p.Authorize(roles...) {
				metrics.AuthorizationDeniedTotal.WithLabelValues(c.Path()).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
