package service

import (
	"context"
	"fmt"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/Suyash1602/airBNB-clone/internal/repo/postgres"
	"github.com/Suyash1602/airBNB-clone/pkg/events"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type bookingService struct {
	bookingRepo postgres.BookingRepository
	placeRepo   postgres.PlaceRepository
	eventBus    events.Publisher
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	placeRepo postgres.PlaceRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		placeRepo:   placeRepo,
		eventBus:    eventBus,
	}
}

// Create stamps the verified caller as the booking's requester, regardless
// of anything in the payload. Bookings are accepted unconditionally: there
// is no availability or overlap check.
func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	place, err := s.placeRepo.GetByID(ctx, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, domain.ErrNotFound
	}

	booking, err := s.bookingRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	event := events.BookingCreatedEvent{
		BookingID: booking.ID,
		PlaceID:   booking.PlaceID,
		UserID:    booking.UserID,
		CheckIn:   booking.CheckIn,
		CheckOut:  booking.CheckOut,
		Guests:    booking.Guests,
		CreatedAt: booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}
