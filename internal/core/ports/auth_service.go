package ports

import (
	"context"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	VerifyLogin(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenIssuer signs bearer tokens for verified credentials.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenValidator verifies a bearer token and returns its principal.
type TokenValidator interface {
	Validate(token string) (*domain.Principal, error)
}
