package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

type AuthRepository struct {
	store *Store
}

func NewAuthRepository(store *Store) *AuthRepository {
	return &AuthRepository{store: store}
}

// Create inserts the user. The UNIQUE constraint on username is the only
// duplicate check; its violation maps to domain.ErrUserExists.
func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := r.store.dialect.rebind(`INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?) RETURNING id`)

	var id int64
	err := r.store.db.QueryRowContext(ctx, q, user.Username, user.PasswordHash, user.Role, user.CreatedAt.UTC()).Scan(&id)
	if err != nil {
		if r.store.dialect.uniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = strconv.FormatInt(id, 10)
	return &created, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := r.store.dialect.rebind(`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`)

	var (
		u  domain.User
		id int64
	)
	err := r.store.db.QueryRowContext(ctx, q, username).Scan(&id, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

func (r *AuthRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
