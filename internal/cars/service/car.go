package service

import (
	"context"
	"errors"

	carserrors "carcloud/internal/cars/errors"
	"carcloud/internal/cars/repository"
	"carcloud/internal/cars/validator"
	"carcloud/pkg/config"
	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/model"
)

type CarService interface {
	Add(ctx context.Context, car *model.Car) error
	Latest(ctx context.Context) ([]*model.Car, error)
	GetByID(ctx context.Context, id string) (*model.Car, error)
	ByOwner(ctx context.Context, email string) ([]*model.Car, error)
	List(ctx context.Context, query repository.ListQuery) ([]*model.Car, error)
	Upsert(ctx context.Context, id string, car *model.Car) (*model.WriteResult, error)
	Delete(ctx context.Context, id string) (*model.WriteResult, error)
}

type carService struct {
	repo      repository.CarRepository
	validator *validator.CarValidator
	cfg       *config.Config
}

func NewCarService(
	repo repository.CarRepository,
	validator *validator.CarValidator,
	cfg *config.Config,
) CarService {
	return &carService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *carService) Add(ctx context.Context, car *model.Car) error {
	car.Normalize()
	// New listings always start with a clean counter, whatever the
	// client submitted.
	car.BookingCount = 0

	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "error", err)
		return apperrors.Validation("Invalid car payload", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, car); err != nil {
		s.cfg.Log.Error("Failed to insert car", "error", err)
		return apperrors.Internal("Failed to create car", err)
	}

	s.cfg.Log.Info("Car listed",
		"id", car.ID,
		"owner", car.Owner.Email,
		"brand", car.Brand,
		"model", car.Model,
	)
	return nil
}

func (s *carService) Latest(ctx context.Context) ([]*model.Car, error) {
	cars, err := s.repo.FindLatest(ctx, config.LatestCarsCount)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch latest cars", "error", err)
		return nil, apperrors.Internal("Failed to retrieve latest cars", err)
	}
	return cars, nil
}

// GetByID returns (nil, nil) for an absent car: the route serves a
// null body and leaves interpretation to the caller.
func (s *carService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid car ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve car", err)
	}

	return car, nil
}

func (s *carService) ByOwner(ctx context.Context, email string) ([]*model.Car, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Owner email cannot be empty")
	}

	cars, err := s.repo.FindByOwnerEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch cars by owner", "owner", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

func (s *carService) List(ctx context.Context, query repository.ListQuery) ([]*model.Car, error) {
	cars, err := s.repo.List(ctx, query)
	if err != nil {
		s.cfg.Log.Error("Failed to list cars", "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

func (s *carService) Upsert(ctx context.Context, id string, car *model.Car) (*model.WriteResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	car.Normalize()
	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid car payload", map[string]any{"error": err.Error()})
	}

	result, err := s.repo.ReplaceOrCreate(ctx, id, car)
	if err != nil {
		if errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid car ID format")
		}
		s.cfg.Log.Error("Failed to upsert car", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update car", err)
	}

	s.cfg.Log.Info("Car upserted", "id", id, "matched", result.MatchedCount, "modified", result.ModifiedCount)
	return result, nil
}

func (s *carService) Delete(ctx context.Context, id string) (*model.WriteResult, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid car ID format")
		}
		s.cfg.Log.Error("Failed to delete car", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to delete car", err)
	}

	s.cfg.Log.Info("Car deleted", "id", id, "deleted", result.DeletedCount)
	return result, nil
}
