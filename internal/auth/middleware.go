package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/clinic-service/internal/domain"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

const sessionKey = "auth_session"

const livenessKeyPrefix = "auth:liveness:"

// Session is the per-request resolved identity. Never persisted.
type Session struct {
	UserID string
	Email  string
	Role   domain.Role
}

// IdentityReader is the single persistence read the auth core depends on.
type IdentityReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Middleware resolves bearer credentials into sessions. The liveness check
// (identity exists and is active) runs on every request so that deactivating
// an account invalidates outstanding credentials without a revocation list.
// When a redis client and a non-zero TTL are configured the check result is
// cached; deactivation then takes effect within at most cacheTTL.
type Middleware struct {
	tokens   *TokenManager
	users    IdentityReader
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewMiddleware constructs the middleware. cache may be nil.
func NewMiddleware(tokens *TokenManager, users IdentityReader, cache *redis.Client, cacheTTL time.Duration) *Middleware {
	return &Middleware{tokens: tokens, users: users, cache: cache, cacheTTL: cacheTTL}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	session, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(sessionKey, session)
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) (*Session, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" || strings.ContainsRune(token, ' ') {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	if err := m.checkLiveness(c.UserContext(), claims.UserID()); err != nil {
		return nil, err
	}

	return &Session{
		UserID: claims.UserID(),
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// checkLiveness confirms the identity still exists and is active. Any lookup
// failure, including a persistence fault, surfaces as Unauthorized rather
// than being retried.
func (m *Middleware) checkLiveness(ctx context.Context, userID string) error {
	if m.cache != nil && m.cacheTTL > 0 {
		switch cached, err := m.cache.Get(ctx, livenessKeyPrefix+userID).Result(); {
		case err == nil && cached == "1":
			return nil
		case err == nil && cached == "0":
			return apperrors.NewUnauthorized("account inactive")
		}
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.NewUnauthorized("unknown identity")
	}
	m.cacheLiveness(ctx, userID, user.IsActive)
	if !user.IsActive {
		return apperrors.NewUnauthorized("account inactive")
	}
	return nil
}

func (m *Middleware) cacheLiveness(ctx context.Context, userID string, active bool) {
	if m.cache == nil || m.cacheTTL <= 0 {
		return
	}
	val := "1"
	if !active {
		val = "0"
	}
	_ = m.cache.Set(ctx, livenessKeyPrefix+userID, val, m.cacheTTL).Err()
}

// SessionFromContext retrieves the resolved session for the request.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}
