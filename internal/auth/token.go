package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenConfig carries the immutable inputs of a TokenService.
type TokenConfig struct {
	Secret []byte
	// TTL is nil when tokens never expire.
	TTL    *time.Duration
	Schema ClaimSchema
	Issuer string
}

// TokenService issues and verifies signed identity tokens.
type TokenService struct {
	secret []byte
	ttl    *time.Duration
	schema ClaimSchema
	issuer string
	now    func() time.Time
}

// verifiedToken is an identity together with the timing claims of the token it came from.
type verifiedToken struct {
	Identity  Identity
	IssuedAt  time.Time
	ExpiresAt *time.Time
}

// NewTokenService builds a service. A missing secret is a configuration error.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("token secret key: %w", ErrConfigurationMissing)
	}
	if cfg.Schema.IdentifierField == "" {
		cfg.Schema = SchemaEmail
	}
	if cfg.TTL != nil && *cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", *cfg.TTL)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	var ttl *time.Duration
	if cfg.TTL != nil {
		d := *cfg.TTL
		ttl = &d
	}

	return &TokenService{
		secret: secret,
		ttl:    ttl,
		schema: cfg.Schema,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads time from now.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *ts
	cp.now = now
	return &cp
}

// Schema returns the claim schema tokens are encoded with.
func (ts *TokenService) Schema() ClaimSchema {
	return ts.schema
}

// Issue signs a token for an identity whose credentials were already verified.
func (ts *TokenService) Issue(identity Identity) (string, *time.Time, error) {
	if !identity.complete() {
		return "", nil, ErrIncompleteIdentity
	}

	now := ts.now()
	claims := jwt.MapClaims{
		claimID:                   identity.ID,
		ts.schema.IdentifierField: identity.Identifier,
		claimAccess:               identity.Access,
		"iat":                     jwt.NewNumericDate(now),
	}
	if ts.issuer != "" {
		claims["iss"] = ts.issuer
	}

	var expiresAt *time.Time
	if ts.ttl != nil {
		exp := now.Add(*ts.ttl).Truncate(time.Second)
		expiresAt = &exp
		claims["exp"] = jwt.NewNumericDate(exp)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, expiresAt, nil
}

// Verify checks the token's signature and expiry and returns its identity.
// Errors wrap one of ErrMalformedToken, ErrInvalidSignature or ErrExpired.
func (ts *TokenService) Verify(tokenStr string) (Identity, error) {
	v, err := ts.verify(tokenStr)
	if err != nil {
		return Identity{}, err
	}
	return v.Identity, nil
}

func (ts *TokenService) verify(tokenStr string) (*verifiedToken, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ts.now),
	}
	if ts.ttl != nil {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}

	identity, err := ts.identityFrom(claims)
	if err != nil {
		return nil, err
	}

	out := &verifiedToken{Identity: identity}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
	}
	return out, nil
}

func (ts *TokenService) identityFrom(claims jwt.MapClaims) (Identity, error) {
	id, ok := claims[claimID].(string)
	if !ok || id == "" {
		return Identity{}, fmt.Errorf("%w: missing %s claim", ErrMalformedToken, claimID)
	}
	access, ok := claims[claimAccess].(string)
	if !ok || access == "" {
		return Identity{}, fmt.Errorf("%w: missing %s claim", ErrMalformedToken, claimAccess)
	}

	var identifier string
	if raw, present := claims[ts.schema.IdentifierField]; present {
		identifier, ok = raw.(string)
		if !ok {
			return Identity{}, fmt.Errorf("%w: %s claim is not a string", ErrMalformedToken, ts.schema.IdentifierField)
		}
	}

	return Identity{ID: id, Identifier: identifier, Access: access}, nil
}

// shouldRefresh reports whether a token has used up more than half of its lifetime.
func (ts *TokenService) shouldRefresh(v *verifiedToken) bool {
	if ts.ttl == nil || v.ExpiresAt == nil {
		return false
	}
	return v.ExpiresAt.Sub(ts.now()) < *ts.ttl/2
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}
