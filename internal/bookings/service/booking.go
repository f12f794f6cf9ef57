package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "carcloud/internal/bookings/errors"
	"carcloud/internal/bookings/repository"
	"carcloud/internal/bookings/validator"
	carsrepository "carcloud/internal/cars/repository"
	"carcloud/pkg/config"
	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/events"
	"carcloud/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.WriteResult, error)
	UpdateDates(ctx context.Context, id string, update *model.DateUpdate) (*model.WriteResult, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	cars      carsrepository.CarRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	cars carsrepository.CarRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		cars:      cars,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create persists the booking and bumps the referenced car's counter.
// Both writes run inside a store transaction so the counter cannot
// drift from its bookings. On a standalone deployment, where the store
// rejects transactions, the writes run sequentially: the booking
// outcome is still returned and a failed increment is logged as drift.
// The increment itself is always a storage-level $inc, so concurrent
// creations for the same car never lose an update either way.
//
// Car existence, date ordering, and overlapping bookings are not
// checked; the contract accepts the document as given.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Normalize()

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Invalid booking payload", map[string]any{"error": err.Error()})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		if err := s.cars.IncrementBookingCount(sessCtx, booking.CarID, 1); err != nil {
			return apperrors.Internal("Failed to update booking count", err)
		}
		return nil
	})
	if err != nil {
		if !transactionsUnsupported(err) {
			s.cfg.Log.Error("Failed to create booking", "error", err)
			return err
		}
		if err := s.createSequential(ctx, booking); err != nil {
			return err
		}
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"car_id", booking.CarID,
		"customer", booking.Customer.Email,
	)

	s.publishCreated(ctx, booking)
	return nil
}

// createSequential is the standalone-deployment path: the original
// two-step sequence. The booking is the source of truth; increment
// failure leaves a drifted counter, which is logged, not surfaced.
func (s *bookingService) createSequential(ctx context.Context, booking *model.Booking) error {
	s.cfg.Log.Warn("Store does not support transactions, creating booking sequentially")

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	if err := s.cars.IncrementBookingCount(ctx, booking.CarID, 1); err != nil {
		s.cfg.Log.Error("Booking stored but counter increment failed; bookingCount has drifted",
			"booking_id", booking.ID,
			"car_id", booking.CarID,
			"error", err,
		)
	}
	return nil
}

func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	msg, err := events.NewMessage(events.EventTypeBookingCreated, booking.CarID, booking)
	if err != nil {
		s.cfg.Log.Warn("Failed to encode booking event", "booking_id", booking.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}
}

// transactionsUnsupported recognizes the driver and server errors a
// standalone Mongo deployment returns for session or transaction use.
func transactionsUnsupported(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "does not support sessions") ||
		strings.Contains(msg, "Sessions are not supported")
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.WriteResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		s.cfg.Log.Warn("Status update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid status payload", map[string]any{"error": err.Error()})
	}

	result, err := s.repo.UpdateStatus(ctx, id, update.BookingStatus)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", update.BookingStatus, "matched", result.MatchedCount)
	return result, nil
}

func (s *bookingService) UpdateDates(ctx context.Context, id string, update *model.DateUpdate) (*model.WriteResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateDateUpdate(update); err != nil {
		s.cfg.Log.Warn("Date update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid dates payload", map[string]any{"error": err.Error()})
	}

	result, err := s.repo.UpdateDates(ctx, id, update.StartDate, update.EndDate)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to update booking dates", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking dates", err)
	}

	s.cfg.Log.Info("Booking dates updated", "id", id, "matched", result.MatchedCount)
	return result, nil
}

func (s *bookingService) ListByCustomerEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Customer email cannot be empty")
	}

	bookings, err := s.repo.FindByCustomerEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch bookings by customer", "customer", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}
