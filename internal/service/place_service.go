package service

import (
	"context"
	"fmt"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/Suyash1602/airBNB-clone/internal/repo/postgres"
	"github.com/Suyash1602/airBNB-clone/pkg/events"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
)

type PlaceService interface {
	Create(ctx context.Context, ownerID int64, req *domain.PlaceRequest) (*domain.Place, error)
	Update(ctx context.Context, callerID int64, req *domain.PlaceUpdateRequest) (*domain.Place, error)
	Get(ctx context.Context, id int64) (*domain.Place, error)
	ListAll(ctx context.Context) ([]domain.Place, error)
	ListOwned(ctx context.Context, ownerID int64) ([]domain.Place, error)
}

type placeService struct {
	placeRepo postgres.PlaceRepository
	eventBus  events.Publisher
}

func NewPlaceService(placeRepo postgres.PlaceRepository, eventBus events.Publisher) PlaceService {
	return &placeService{
		placeRepo: placeRepo,
		eventBus:  eventBus,
	}
}

// Create stamps the verified caller as owner. The request never carries an
// owner field.
func (s *placeService) Create(ctx context.Context, ownerID int64, req *domain.PlaceRequest) (*domain.Place, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	place, err := s.placeRepo.Create(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	event := events.PlaceCreatedEvent{
		PlaceID:   place.ID,
		OwnerID:   place.OwnerID,
		Title:     place.Title,
		CreatedAt: place.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.PlaceCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish place created event", "error", err, "place_id", place.ID)
	}

	return place, nil
}

// Update loads the place and runs the ownership gate before writing. Both
// outcomes of the gate are explicit: a non-owner gets ErrForbidden, never a
// silent no-op.
func (s *placeService) Update(ctx context.Context, callerID int64, req *domain.PlaceUpdateRequest) (*domain.Place, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	place, err := s.placeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.ErrNotFound
	}
	if !place.IsOwnedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.placeRepo.Update(ctx, req.ID, &req.PlaceRequest)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	event := events.PlaceUpdatedEvent{
		PlaceID:   updated.ID,
		OwnerID:   updated.OwnerID,
		UpdatedAt: updated.UpdatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.PlaceUpdated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish place updated event", "error", err, "place_id", updated.ID)
	}

	return updated, nil
}

func (s *placeService) Get(ctx context.Context, id int64) (*domain.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.ErrNotFound
	}
	return place, nil
}

func (s *placeService) ListAll(ctx context.Context) ([]domain.Place, error) {
	return s.placeRepo.List(ctx)
}

func (s *placeService) ListOwned(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return s.placeRepo.ListByOwner(ctx, ownerID)
}
