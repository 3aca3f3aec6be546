package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
)

const testSecret = "unit-test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:         "7b3c1a52-9f0e-4f2a-b1d4-0c6a58e2a001",
		Email:      "pat@example.com",
		Role:       domain.RolePatient,
		GivenName:  "Pat",
		FamilyName: "Doe",
		IsActive:   true,
	}
}

func TestTokenManager_SignVerifyRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	user := testUser()

	tokenStr, expiresAt, err := tm.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RolePatient, claims.Role)
	assert.Equal(t, "Pat", claims.GivenName)
	assert.Equal(t, "Doe", claims.FamilyName)
}

func TestTokenManager_VerifyWrongSecret(t *testing.T) {
	tokenStr, _, err := auth.NewTokenManager(testSecret, time.Hour).Sign(testUser())
	require.NoError(t, err)

	_, err = auth.NewTokenManager("another-secret", time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   testUser().ID,
		"email": "pat@example.com",
		"role":  string(domain.RolePatient),
		"exp":   time.Now().Add(-time.Minute).Unix(),
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_VerifyUnknownRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   testUser().ID,
		"email": "pat@example.com",
		"role":  "ROOT",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_VerifyGarbage(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(tokenStr)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}

func TestTokenManager_RejectsUnexpectedSigningMethod(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  testUser().ID,
		"role": string(domain.RolePatient),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Verify(tokenStr)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
