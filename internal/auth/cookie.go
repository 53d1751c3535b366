package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pawup/shelter-api/internal/config"
)

// DefaultCookieName is the cookie carrying the access token.
const DefaultCookieName = "access-token"

// CookieOptions controls how the access token cookie is written.
type CookieOptions struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite string
}

// NewCookieOptions maps configuration to cookie options. Browsers drop
// SameSite=None cookies that are not Secure, so that combination forces Secure.
func NewCookieOptions(cfg config.CookieConfig) CookieOptions {
	opts := CookieOptions{
		Name:     cfg.Name,
		Domain:   cfg.Domain,
		Path:     cfg.Path,
		Secure:   cfg.Secure,
		HTTPOnly: cfg.HTTPOnly,
		SameSite: normalizeSameSite(cfg.SameSite),
	}
	if opts.Name == "" {
		opts.Name = DefaultCookieName
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == fiber.CookieSameSiteNoneMode {
		opts.Secure = true
	}
	return opts
}

// Set writes the token cookie. A nil expiry produces a session cookie.
func (o CookieOptions) Set(c *fiber.Ctx, token string, expiresAt *time.Time) {
	cookie := &fiber.Cookie{
		Name:     o.Name,
		Value:    token,
		Path:     o.Path,
		Domain:   o.Domain,
		Secure:   o.Secure,
		HTTPOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
	if expiresAt != nil {
		cookie.Expires = *expiresAt
	} else {
		cookie.SessionOnly = true
	}
	c.Cookie(cookie)
}

// Clear expires the token cookie on the client.
func (o CookieOptions) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     o.Path,
		Domain:   o.Domain,
		Secure:   o.Secure,
		HTTPOnly: o.HTTPOnly,
		SameSite: o.SameSite,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

func normalizeSameSite(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return fiber.CookieSameSiteStrictMode
	case "none":
		return fiber.CookieSameSiteNoneMode
	case "disabled":
		return fiber.CookieSameSiteDisabled
	default:
		return fiber.CookieSameSiteLaxMode
	}
}
