// Package auth validates bearer tokens and carries the per-request session.
package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"medibill/internal/config"
	"medibill/internal/domain"
)

// AccessAudience is the audience every accepted token must carry.
const AccessAudience = "access"

// Claims represents the JWT claims with tenant and patient context.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  uuid.UUID       `json:"tenant_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Role      domain.UserRole `json:"role"`
	PatientID string          `json:"patient_id,omitempty"`
}

// Principal returns the caller identity carried by the claims.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{
		TenantID:  c.TenantID,
		UserID:    c.UserID,
		Role:      c.Role,
		PatientID: c.PatientID,
	}
}

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// Tokens signs and validates HS256 access tokens.
type Tokens struct {
	cfg *config.JWTConfig
}

// NewTokens creates a Tokens for the configured secret and issuer.
func NewTokens(cfg *config.JWTConfig) *Tokens {
	return &Tokens{cfg: cfg}
}

// Issue signs an access token for p. The upstream identity provider issues
// production tokens; this exists for development and tooling.
func (t *Tokens) Issue(p domain.Principal, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = t.cfg.AccessTokenExpiry
	}
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{AccessAudience},
		},
		TenantID:  p.TenantID,
		UserID:    p.UserID,
		Role:      p.Role,
		PatientID: p.PatientID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses token and checks signature, expiry, audience and role.
func (t *Tokens) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w: %w", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	if !slices.Contains(aud, AccessAudience) {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidRoles[claims.Role] {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
