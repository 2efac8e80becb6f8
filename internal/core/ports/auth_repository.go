package ports

import (
	"context"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// AuthRepository defines credential persistence.
type AuthRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no row matches.
	// The match is exact and case-sensitive.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create must rely on a storage-level unique constraint and translate its
	// violation into domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
