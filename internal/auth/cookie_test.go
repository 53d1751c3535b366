package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawup/shelter-api/internal/config"
)

func TestNewCookieOptions(t *testing.T) {
	opts := NewCookieOptions(config.CookieConfig{SameSite: "none"})
	assert.Equal(t, DefaultCookieName, opts.Name)
	assert.Equal(t, "/", opts.Path)
	assert.Equal(t, fiber.CookieSameSiteNoneMode, opts.SameSite)
	assert.True(t, opts.Secure, "SameSite=None requires Secure")

	opts = NewCookieOptions(config.CookieConfig{Name: "session", SameSite: "bogus"})
	assert.Equal(t, "session", opts.Name)
	assert.Equal(t, fiber.CookieSameSiteLaxMode, opts.SameSite)
	assert.False(t, opts.Secure)
}

func TestCookieSetAndClear(t *testing.T) {
	opts := testCookieOptions()
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		opts.Set(c, "tok", &exp)
		return nil
	})
	app.Get("/session", func(c *fiber.Ctx) error {
		opts.Set(c, "tok", nil)
		return nil
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		opts.Clear(c)
		return nil
	})

	find := func(path string) *http.Cookie {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		for _, ck := range resp.Cookies() {
			if ck.Name == DefaultCookieName {
				return ck
			}
		}
		t.Fatalf("no %s cookie on %s", DefaultCookieName, path)
		return nil
	}

	set := find("/set")
	assert.Equal(t, "tok", set.Value)
	assert.True(t, set.HttpOnly)
	assert.True(t, set.Secure)
	assert.Equal(t, http.SameSiteLaxMode, set.SameSite)
	assert.True(t, set.Expires.Equal(exp))

	session := find("/session")
	assert.True(t, session.Expires.IsZero())
	assert.Zero(t, session.MaxAge)

	cleared := find("/clear")
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
}
