package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed, bad signature, expired, or carrying an unknown role. Callers
// branch on this sentinel rather than inspecting parser errors.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies credentials. One claim schema for the whole
// service: subject id, email, role, and optional display names.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. The secret comes from configuration;
// config.Load guarantees it is non-empty.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the credential payload.
type Claims struct {
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	GivenName  string      `json:"given_name,omitempty"`
	FamilyName string      `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject identity reference.
func (c *Claims) UserID() string {
	return c.Subject
}

// Sign builds and signs a credential for the user.
func (tm *TokenManager) Sign(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email:      user.Email,
		Role:       user.Role,
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry, returning the claims. Every failure
// mode collapses to ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
