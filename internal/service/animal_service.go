package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/cache"
	"github.com/pawup/shelter-api/internal/domain"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/repository"
	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// NewestAnimalsLimit is the size of the public newest-animals feed.
const NewestAnimalsLimit = 4

// AnimalService manages the adoption catalogue.
type AnimalService struct {
	animals repository.AnimalRepository
	cache   *cache.AnimalCache
	events  publisher
}

// AnimalDependencies bundles requirements for the animal service.
type AnimalDependencies struct {
	AnimalRepo repository.AnimalRepository
	Cache      *cache.AnimalCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAnimalService constructs the service.
func NewAnimalService(deps AnimalDependencies) *AnimalService {
	return &AnimalService{
		animals: deps.AnimalRepo,
		cache:   deps.Cache,
		events:  newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Newest returns the most recently added animals, served from cache when warm.
func (s *AnimalService) Newest(ctx context.Context) ([]domain.Animal, error) {
	if animals, ok := s.cache.GetNewest(ctx); ok {
		return animals, nil
	}
	animals, err := s.animals.Newest(ctx, NewestAnimalsLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.SetNewest(ctx, animals)
	return animals, nil
}

// List returns the whole catalogue.
func (s *AnimalService) List(ctx context.Context) ([]domain.Animal, error) {
	animals, err := s.animals.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return animals, nil
}

// Get returns one animal.
func (s *AnimalService) Get(ctx context.Context, id string) (*domain.Animal, error) {
	animal, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return nil, animalError(err, id)
	}
	return animal, nil
}

// Create adds an animal.
func (s *AnimalService) Create(ctx context.Context, animal *domain.Animal) error {
	if err := s.animals.Create(ctx, animal); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.NewConflict("animal already registered", map[string]any{"num_icad": animal.NumICAD})
		}
		return apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventAnimalAdded, animal.ID, animalPayload(animal))
	return nil
}

// Update replaces an animal's attributes.
func (s *AnimalService) Update(ctx context.Context, animal *domain.Animal) (*domain.Animal, error) {
	if err := s.animals.Update(ctx, animal); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("animal already registered", map[string]any{"num_icad": animal.NumICAD})
		}
		return nil, animalError(err, animal.ID)
	}
	s.events.publish(ctx, events.EventAnimalUpdated, animal.ID, animalPayload(animal))
	return s.Get(ctx, animal.ID)
}

// Delete removes an animal.
func (s *AnimalService) Delete(ctx context.Context, id string) error {
	if err := s.animals.Delete(ctx, id); err != nil {
		return animalError(err, id)
	}
	s.events.publish(ctx, events.EventAnimalDeleted, id, nil)
	return nil
}

func animalPayload(animal *domain.Animal) events.AnimalPayload {
	return events.AnimalPayload{Name: animal.Name, NumICAD: animal.NumICAD}
}

func animalError(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("animal", map[string]any{"animal_id": id})
	}
	return apperrors.MapError(err)
}
