package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

func runRBAC(t *testing.T, p *domain.Principal, roles ...string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if p != nil {
		SetPrincipal(c, p)
	}

	called := false
	err := RequireRoles(roles...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRequireRoles_AllowsAdmin(t *testing.T) {
	called, err := runRBAC(t, &domain.Principal{Roles: []string{domain.RoleAdmin}}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRoles_ForbidsUserOnAdminRoute(t *testing.T) {
	called, err := runRBAC(t, &domain.Principal{Roles: []string{domain.RoleUser}}, domain.RoleAdmin)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_CaseInsensitive(t *testing.T) {
	called, err := runRBAC(t, &domain.Principal{Roles: []string{"admin"}}, domain.RoleAdmin)
	if err != nil || !called {
		t.Fatalf("expected lowercase role to pass, err=%v called=%v", err, called)
	}
}

func TestRequireRoles_NoRolesAllowsAnyPrincipal(t *testing.T) {
	called, err := runRBAC(t, &domain.Principal{Subject: "1"})
	if err != nil || !called {
		t.Fatalf("expected pass, err=%v called=%v", err, called)
	}
}

func TestRequireRoles_MissingPrincipal(t *testing.T) {
	called, err := runRBAC(t, nil, domain.RoleAdmin)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
