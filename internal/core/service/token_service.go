package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fleetmanagement/fleet-api/internal/core/domain"
)

// TokenLifetime is fixed; there is no refresh mechanism.
const TokenLifetime = 8 * time.Hour

// MinSecretLength is the HS256 key floor (256 bits).
const MinSecretLength = 32

// Claim names written into issued tokens. Role is duplicated under a custom
// key and under the standard role claim that authorization reads.
const (
	ClaimName         = "name"
	ClaimRoles        = "roles"
	ClaimRole         = "role"
	ClaimStandardRole = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

var ErrWeakSecret = errors.New("jwt secret must be at least 32 bytes")

// TokenConfig is the signing configuration shared by issuer and validator.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// TokenService issues and validates HS256 bearer tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
	parser   *jwt.Parser
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	s := &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// Issue signs a token for user valid for TokenLifetime.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":             user.ID,
		ClaimName:         user.Username,
		ClaimRoles:        role,
		ClaimStandardRole: role,
		"iss":             s.issuer,
		"aud":             s.audience,
		"iat":             now.Unix(),
		"exp":             now.Add(TokenLifetime).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature, issuer, audience and expiry, then normalizes
// role claims. Every failure is reported as domain.ErrUnauthenticated.
func (s *TokenService) Validate(token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthenticated)
	}
	name, _ := claims[ClaimName].(string)

	return &domain.Principal{
		Subject:  sub,
		Username: name,
		Roles:    NormalizeRoles(claims),
	}, nil
}

// NormalizeRoles unions the values of the "roles", "role" and standard role
// claims and writes the union back under the standard role claim. Values may
// be a string or an array of strings. Duplicates are dropped case-insensitively.
func NormalizeRoles(claims jwt.MapClaims) []string {
	var roles []string
	for _, key := range []string{ClaimStandardRole, ClaimRoles, ClaimRole} {
		for _, r := range claimStrings(claims[key]) {
			if !containsFold(roles, r) {
				roles = append(roles, r)
			}
		}
	}
	if len(roles) > 0 {
		claims[ClaimStandardRole] = roles
	}
	return roles
}

func claimStrings(v interface{}) []string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
