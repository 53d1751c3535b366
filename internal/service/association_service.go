package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/repository"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// AssociationService manages partner associations.
type AssociationService struct {
	assos  repository.AssociationRepository
	events publisher
}

// NewAssociationService constructs the service.
func NewAssociationService(assos repository.AssociationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AssociationService {
	return &AssociationService{assos: assos, events: newPublisher(dispatcher, logger)}
}

// Create registers an association. Emails are unique.
func (s *AssociationService) Create(ctx context.Context, asso *domain.Association) error {
	asso.Email = strings.ToLower(strings.TrimSpace(asso.Email))
	if err := s.assos.Create(ctx, asso); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.NewConflict("association already registered", map[string]any{"email": asso.Email})
		}
		return apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventAssociationAdded, asso.ID, events.AssociationAddedPayload{Name: asso.Name, Email: asso.Email})
	return nil
}

// List returns every association.
func (s *AssociationService) List(ctx context.Context) ([]domain.Association, error) {
	assos, err := s.assos.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assos, nil
}
