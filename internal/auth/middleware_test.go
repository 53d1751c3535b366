package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawup/shelter-api/internal/config"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

func testCookieOptions() CookieOptions {
	return NewCookieOptions(config.CookieConfig{
		Name:     DefaultCookieName,
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func newGateApp(t *testing.T, gate *AuthMiddleware, handlers ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	chain := append([]fiber.Handler{gate.Handle}, handlers...)
	app.Get("/protected", chain...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, cookie string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAuthMiddlewareAdmission(t *testing.T) {
	tokens := newTestTokens(t, ttlOf(time.Hour), SchemaEmail)
	identity := Identity{ID: "u1", Identifier: "a@example.com", Access: "public"}
	valid, _, err := tokens.Issue(identity)
	require.NoError(t, err)

	var (
		called, fromLocals, authenticated, fromStdCtx bool
		got, gotStd                                   Identity
	)
	handler := func(c *fiber.Ctx) error {
		called = true
		got, fromLocals = IdentityFromContext(c)
		authenticated = IsAuthenticated(c)
		gotStd, fromStdCtx = IdentityFrom(c.UserContext())
		return c.SendStatus(http.StatusOK)
	}

	app := newGateApp(t, NewAuthMiddleware(tokens, testCookieOptions(), nil), handler)

	resp, _ := doRequest(t, app, valid)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, called)
	assert.True(t, fromLocals)
	assert.True(t, authenticated)
	assert.True(t, fromStdCtx)
	assert.Equal(t, identity, got)
	assert.Equal(t, identity, gotStd)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	base := newTestTokens(t, ttlOf(time.Hour), SchemaEmail)
	identity := Identity{ID: "u1", Identifier: "a@example.com", Access: "public"}

	valid, _, err := base.Issue(identity)
	require.NoError(t, err)
	expired, _, err := base.WithClock(fixedClock(issuedAt)).Issue(identity)
	require.NoError(t, err)

	foreign, err := NewTokenService(TokenConfig{Secret: []byte("other"), TTL: ttlOf(time.Hour)})
	require.NoError(t, err)
	forged, _, err := foreign.Issue(Identity{ID: "u1", Identifier: "a@example.com", Access: "admin"})
	require.NoError(t, err)

	cases := map[string]string{
		"missing cookie": "",
		"tampered":       flipSignature(valid),
		"expired":        expired,
		"foreign secret": forged,
		"garbage":        "not-a-token",
	}

	var reached bool
	app := newGateApp(t, NewAuthMiddleware(base, testCookieOptions(), nil), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(http.StatusOK)
	})

	var bodies []string
	for name, cookie := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := doRequest(t, app, cookie)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, body, "not authenticated")
			bodies = append(bodies, body)
		})
	}

	assert.False(t, reached, "handler must not run for rejected requests")
	require.Len(t, bodies, len(cases))
	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body, "rejections must not reveal the failure reason")
	}
}

func TestAuthMiddlewareSlidingExpiry(t *testing.T) {
	issuedAt := time.Now().Add(-90 * time.Minute).Truncate(time.Second)
	base := newTestTokens(t, ttlOf(2*time.Hour), SchemaEmail)
	identity := Identity{ID: "u1", Identifier: "a@example.com", Access: "public"}

	old, oldExp, err := base.WithClock(fixedClock(issuedAt)).Issue(identity)
	require.NoError(t, err)

	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }

	t.Run("refreshes when enabled", func(t *testing.T) {
		app := newGateApp(t, NewAuthMiddleware(base, testCookieOptions(), nil, WithSlidingExpiry(true)), ok)
		resp, _ := doRequest(t, app, old)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var refreshed *http.Cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == DefaultCookieName {
				refreshed = ck
			}
		}
		require.NotNil(t, refreshed)
		assert.NotEqual(t, old, refreshed.Value)
		assert.True(t, refreshed.HttpOnly)
		assert.True(t, refreshed.Secure)

		got, err := base.Verify(refreshed.Value)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
		assert.True(t, refreshed.Expires.After(*oldExp))
	})

	t.Run("leaves cookie alone when disabled", func(t *testing.T) {
		app := newGateApp(t, NewAuthMiddleware(base, testCookieOptions(), nil), ok)
		resp, _ := doRequest(t, app, old)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, resp.Cookies())
	})
}

func TestRequireAccess(t *testing.T) {
	tokens := newTestTokens(t, ttlOf(time.Hour), SchemaEmail)
	admin, _, err := tokens.Issue(Identity{ID: "a1", Identifier: "admin@example.com", Access: "admin"})
	require.NoError(t, err)
	public, _, err := tokens.Issue(Identity{ID: "u1", Identifier: "a@example.com", Access: "public"})
	require.NoError(t, err)

	app := newGateApp(t, NewAuthMiddleware(tokens, testCookieOptions(), nil),
		RequireAccess("admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)

	resp, _ := doRequest(t, app, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, app, public)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
}

func TestRequireAccessWithoutGate(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Get("/protected", RequireAccess("admin"), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
