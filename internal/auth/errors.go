package auth

import (
	"errors"

	"github.com/pawup/shelter-api/internal/config"
)

// Token verification failures. Callers surfacing these over HTTP must collapse
// them into a single "not authenticated" response.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
)

// ErrConfigurationMissing means the token service cannot be built. It is the
// same sentinel config.Load returns, so startup handles both alike.
var ErrConfigurationMissing = config.ErrConfigurationMissing

// ErrIncompleteIdentity is returned when asked to issue a token without id or access.
var ErrIncompleteIdentity = errors.New("identity requires id and access")

// ErrPasswordMismatch is returned when a plaintext password does not match its hash.
var ErrPasswordMismatch = errors.New("password does not match")

// Reason returns a short label for a verification error, suitable for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "signature_invalid"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	default:
		return "unknown"
	}
}
