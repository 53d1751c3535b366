package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/config"
	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/observability"
	"github.com/pawup/shelter-api/internal/repository"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

var (
	// ErrInvalidCredentials is the only login failure callers see. It wraps
	// ErrAccountNotFound or ErrCredentialMismatch for logging.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrCredentialMismatch = errors.New("credential mismatch")
)

const dummyPassword = "pawup-placeholder-password"

// SignupInput carries a new account's attributes.
type SignupInput struct {
	LastName  string
	FirstName string
	Email     string
	Username  *string
	Password  string
}

// LoginResult is a successful login.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt *time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	bcryptCost int
	dummyHash  string
	events     publisher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewAuthService builds the service and its token service. A missing signing
// secret is returned as auth.ErrConfigurationMissing.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	schema, err := auth.ParseClaimSchema(cfg.ClaimIdentifier)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.SecretKey),
		TTL:    cfg.TokenTTL,
		Schema: schema,
		Issuer: cfg.Issuer,
	})
	if err != nil {
		return nil, err
	}

	dummyHash, err := auth.HashPassword(dummyPassword, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		users:      deps.UserRepo,
		tokens:     tokens,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummyHash,
		events:     newPublisher(deps.Dispatcher, logger),
		logger:     logger,
		metrics:    deps.Metrics,
	}, nil
}

// Signup creates a public account. Deployments that log in by username
// require one at signup.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	username := trimmedOrNil(input.Username)
	if username == nil && s.tokens.Schema() == auth.SchemaUsername {
		return nil, apperrors.NewValidationError("invalid payload", map[string]any{
			"username": "cannot be blank",
		})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		LastName:     strings.TrimSpace(input.LastName),
		FirstName:    strings.TrimSpace(input.FirstName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Username:     username,
		PasswordHash: hash,
		Access:       domain.AccessPublic,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("account already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	s.events.publish(ctx, events.EventUserSignedUp, user.ID, nil)
	return user, nil
}

// Login verifies credentials and issues a token. Unknown accounts and wrong
// passwords produce the same error after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.lookup(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(err)
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, s.loginFailed(ErrAccountNotFound)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash unusable", zap.String("user_id", user.ID), zap.Error(err))
		}
		return nil, s.loginFailed(ErrCredentialMismatch)
	}

	token, exp, err := s.tokens.Issue(s.IdentityFor(user))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordAuth(observability.AuthIssued)
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// IdentityFor maps an account onto the claim set its tokens carry.
func (s *AuthService) IdentityFor(user *domain.User) auth.Identity {
	identity := auth.Identity{ID: user.ID, Access: user.Access}
	if s.tokens.Schema() == auth.SchemaUsername {
		if user.Username != nil {
			identity.Identifier = *user.Username
		}
	} else {
		identity.Identifier = user.Email
	}
	return identity
}

// TokenService exposes the token service for the authentication gate.
func (s *AuthService) TokenService() *auth.TokenService {
	return s.tokens
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	if identifier == "" {
		return nil, pgx.ErrNoRows
	}
	if s.tokens.Schema() == auth.SchemaUsername {
		return s.users.GetByUsername(ctx, identifier)
	}
	return s.users.GetByEmail(ctx, identifier)
}

func (s *AuthService) loginFailed(reason error) error {
	label := "credential_mismatch"
	if errors.Is(reason, ErrAccountNotFound) {
		label = "account_not_found"
	}
	s.logger.Info("login rejected", zap.String("reason", label))
	s.metrics.RecordAuth(observability.AuthLoginFailed)
	return apperrors.NewInvalidCredentials(fmt.Errorf("%w: %w", ErrInvalidCredentials, reason))
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
