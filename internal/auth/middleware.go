package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/observability"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

const (
	identityKey      = "auth_identity"
	authenticatedKey = "authenticated"
)

type identityCtxKey struct{}

// AuthMiddleware admits requests carrying a valid token cookie.
type AuthMiddleware struct {
	tokens  *TokenService
	cookie  CookieOptions
	sliding bool
	logger  *zap.Logger
	metrics *observability.Metrics
}

// MiddlewareOption customizes the gate.
type MiddlewareOption func(*AuthMiddleware)

// WithSlidingExpiry re-issues the cookie once a token is past half its lifetime.
func WithSlidingExpiry(enabled bool) MiddlewareOption {
	return func(m *AuthMiddleware) { m.sliding = enabled }
}

// WithMetrics records admission outcomes.
func WithMetrics(metrics *observability.Metrics) MiddlewareOption {
	return func(m *AuthMiddleware) { m.metrics = metrics }
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenService, cookie CookieOptions, logger *zap.Logger, opts ...MiddlewareOption) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &AuthMiddleware{tokens: tokens, cookie: cookie, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.cookie.Name)
	if raw == "" {
		return m.reject(c, ErrMissingToken)
	}

	verified, err := m.tokens.verify(raw)
	if err != nil {
		return m.reject(c, err)
	}

	identity := verified.Identity
	c.Locals(identityKey, identity)
	c.Locals(authenticatedKey, true)
	c.SetUserContext(ContextWithIdentity(c.UserContext(), identity))
	m.metrics.RecordAuth(observability.AuthAdmitted)

	if m.sliding && m.tokens.shouldRefresh(verified) {
		token, exp, err := m.tokens.Issue(identity)
		if err != nil {
			m.logger.Warn("token refresh failed", zap.String("user_id", identity.ID), zap.Error(err))
		} else {
			m.cookie.Set(c, token, exp)
			m.metrics.RecordAuth(observability.AuthRefreshed)
		}
	}

	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, cause error) error {
	m.logger.Info("request not authenticated",
		zap.String("reason", Reason(cause)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()),
	)
	m.metrics.RecordAuth(observability.AuthRejected)
	return apperrors.NewUnauthenticated(cause)
}

// IdentityFromContext returns the identity the gate verified for this request.
// It is the only way handlers read token claims.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}

// IsAuthenticated reports whether the gate admitted the request.
func IsAuthenticated(c *fiber.Ctx) bool {
	ok, _ := c.Locals(authenticatedKey).(bool)
	return ok
}

// ContextWithIdentity stores an identity in a standard context for services.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFrom reads the identity set by ContextWithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok
}
