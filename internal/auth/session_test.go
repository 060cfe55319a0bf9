package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibill/internal/config"
	"medibill/internal/domain"
)

func testTokens() *Tokens {
	return NewTokens(&config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            "medibill-test",
	})
}

func testPrincipal() domain.Principal {
	return domain.Principal{
		TenantID:  uuid.New(),
		UserID:    uuid.New(),
		Role:      domain.RolePatient,
		PatientID: "patient-7",
	}
}

func TestTokens_IssueAndValidate(t *testing.T) {
	tokens := testTokens()
	p := testPrincipal()

	signed, expiresAt, err := tokens.Issue(p, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
	assert.Equal(t, "medibill-test", claims.Issuer)
}

func TestTokens_RejectsWrongSecret(t *testing.T) {
	signed, _, err := testTokens().Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)

	other := NewTokens(&config.JWTConfig{Secret: "other-secret"})
	_, err = other.Validate(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokens_RejectsExpired(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Audience:  jwt.ClaimStrings{AccessAudience},
		},
		Role: domain.RoleClinicAdmin,
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = testTokens().Validate(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokens_RejectsWrongAudienceAndRole(t *testing.T) {
	sign := func(aud string, role domain.UserRole) string {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
				Audience:  jwt.ClaimStrings{aud},
			},
			Role: role,
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}

	_, err := testTokens().Validate(sign("refresh", domain.RoleClinicAdmin))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = testTokens().Validate(sign(AccessAudience, "janitor"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = testTokens().Validate("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSession_Lifecycle(t *testing.T) {
	tokens := testTokens()
	p := testPrincipal()
	signed, _, err := tokens.Issue(p, time.Minute)
	require.NoError(t, err)

	s := NewSession(tokens)
	_, err = s.Principal()
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)

	require.NoError(t, s.Initialize(signed))
	got, err := s.Principal()
	require.NoError(t, err)
	assert.Equal(t, p, got)

	s.Dispose()
	_, err = s.Principal()
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)

	assert.NotPanics(t, s.Dispose)
}

func TestSession_FailedInitializeClearsPreviousIdentity(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)

	s := NewSession(tokens)
	require.NoError(t, s.Initialize(signed))
	assert.Error(t, s.Initialize("garbage"))
	_, err = s.Principal()
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)
}
