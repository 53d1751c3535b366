package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/repository"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// UserService manages accounts on behalf of administrators.
type UserService struct {
	users  repository.UserRepository
	events publisher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{users: users, events: newPublisher(dispatcher, logger)}
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err, id)
	}
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateAccess changes the access level of an account. Tokens already issued
// keep their old level until they expire.
func (s *UserService) UpdateAccess(ctx context.Context, id, access string) (*domain.User, error) {
	if !domain.ValidAccess(access) {
		return nil, apperrors.NewValidationError("invalid access level", map[string]any{"access": access})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err, id)
	}
	if user.Access == access {
		return user, nil
	}

	if err := s.users.UpdateAccess(ctx, id, access); err != nil {
		return nil, userError(err, id)
	}

	payload := events.UserAccessChangedPayload{OldAccess: user.Access, NewAccess: access}
	user.Access = access
	s.events.publish(ctx, events.EventUserAccessChanged, id, payload)
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userError(err, id)
	}
	s.events.publish(ctx, events.EventUserDeleted, id, nil)
	return nil
}

func userError(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", map[string]any{"user_id": id})
	}
	return apperrors.MapError(err)
}
