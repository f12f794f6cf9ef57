package service

import (
	"context"
	"errors"
	"io"
	"testing"

	carserrors "carcloud/internal/cars/errors"
	"carcloud/internal/cars/repository"
	"carcloud/internal/cars/validator"
	"carcloud/pkg/config"
	mongotx "carcloud/pkg/db/mongo"
	apperrors "carcloud/pkg/errors"
	"carcloud/pkg/logger"
	"carcloud/pkg/model"
)

type mockCarRepository struct {
	insertFunc     func(ctx context.Context, car *model.Car) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Car, error)
	findLatestFunc func(ctx context.Context, n int64) ([]*model.Car, error)
	replaceFunc    func(ctx context.Context, id string, car *model.Car) (*model.WriteResult, error)
	byOwnerFunc    func(ctx context.Context, email string) ([]*model.Car, error)
	listFunc       func(ctx context.Context, query repository.ListQuery) ([]*model.Car, error)
	deleteFunc     func(ctx context.Context, id string) (*model.WriteResult, error)
}

func (m *mockCarRepository) Insert(ctx context.Context, car *model.Car) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, car)
	}
	car.ID = "new-id"
	return nil
}

func (m *mockCarRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, carserrors.ErrNotFound
}

func (m *mockCarRepository) FindByOwnerEmail(ctx context.Context, email string) ([]*model.Car, error) {
	if m.byOwnerFunc != nil {
		return m.byOwnerFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockCarRepository) List(ctx context.Context, query repository.ListQuery) ([]*model.Car, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockCarRepository) FindLatest(ctx context.Context, n int64) ([]*model.Car, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, n)
	}
	return nil, nil
}

func (m *mockCarRepository) ReplaceOrCreate(ctx context.Context, id string, car *model.Car) (*model.WriteResult, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, id, car)
	}
	return &model.WriteResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockCarRepository) IncrementBookingCount(ctx context.Context, id string, delta int64) error {
	return nil
}

func (m *mockCarRepository) Delete(ctx context.Context, id string) (*model.WriteResult, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return &model.WriteResult{DeletedCount: 1}, nil
}

func (m *mockCarRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo repository.CarRepository) CarService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Output: io.Discard}),
	}
	return NewCarService(repo, validator.NewCarValidator(cfg.Log), cfg)
}

func validCar() *model.Car {
	return &model.Car{
		Owner:    model.Identity{Email: "a@b.com", Name: "Owner"},
		Brand:    "Toyota",
		Model:    "Corolla",
		Price:    45,
		Location: "Austin",
	}
}

func TestAddResetsBookingCount(t *testing.T) {
	var stored *model.Car
	repo := &mockCarRepository{
		insertFunc: func(ctx context.Context, car *model.Car) error {
			stored = car
			car.ID = "new-id"
			return nil
		},
	}
	svc := newTestService(repo)

	car := validCar()
	car.BookingCount = 99 // client-submitted counters are ignored

	if err := svc.Add(context.Background(), car); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if stored.BookingCount != 0 {
		t.Errorf("expected bookingCount 0 on a new listing, got %d", stored.BookingCount)
	}
	if car.ID != "new-id" {
		t.Errorf("expected assigned id, got %q", car.ID)
	}
}

func TestAddValidatesPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Car)
	}{
		{name: "missing owner email", mutate: func(c *model.Car) { c.Owner.Email = "" }},
		{name: "invalid owner email", mutate: func(c *model.Car) { c.Owner.Email = "nope" }},
		{name: "missing brand", mutate: func(c *model.Car) { c.Brand = "" }},
		{name: "missing model", mutate: func(c *model.Car) { c.Model = "" }},
		{name: "zero price", mutate: func(c *model.Car) { c.Price = 0 }},
		{name: "missing location", mutate: func(c *model.Car) { c.Location = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &mockCarRepository{
				insertFunc: func(ctx context.Context, car *model.Car) error {
					inserted = true
					return nil
				},
			}
			svc := newTestService(repo)

			car := validCar()
			tt.mutate(car)

			err := svc.Add(context.Background(), car)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
			if inserted {
				t.Error("expected no insert for an invalid payload")
			}
		})
	}
}

func TestLatestRequestsHighlightFeedSize(t *testing.T) {
	var gotN int64
	repo := &mockCarRepository{
		findLatestFunc: func(ctx context.Context, n int64) ([]*model.Car, error) {
			gotN = n
			return []*model.Car{{ID: "1"}, {ID: "2"}}, nil
		},
	}
	svc := newTestService(repo)

	cars, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if gotN != config.LatestCarsCount {
		t.Errorf("expected feed size %d, got %d", config.LatestCarsCount, gotN)
	}
	if len(cars) != 2 {
		t.Errorf("expected 2 cars, got %d", len(cars))
	}
}

func TestGetByIDAbsentCarYieldsNilNotError(t *testing.T) {
	repo := &mockCarRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			return nil, carserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	car, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("expected nil error for absent car, got: %v", err)
	}
	if car != nil {
		t.Errorf("expected nil car, got %#v", car)
	}
}

func TestGetByIDInvalidHexIsBadRequest(t *testing.T) {
	repo := &mockCarRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			return nil, carserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "not-hex")
	if err == nil {
		t.Fatal("expected error for invalid id")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestUpsertPassesQueryThrough(t *testing.T) {
	var gotID string
	repo := &mockCarRepository{
		replaceFunc: func(ctx context.Context, id string, car *model.Car) (*model.WriteResult, error) {
			gotID = id
			return &model.WriteResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc := newTestService(repo)

	result, err := svc.Upsert(context.Background(), "507f1f77bcf86cd799439011", validCar())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if gotID != "507f1f77bcf86cd799439011" {
		t.Errorf("expected path id to win, got %s", gotID)
	}
	if result.MatchedCount != 1 {
		t.Errorf("expected matched count 1, got %d", result.MatchedCount)
	}
}

func TestListForwardsQuery(t *testing.T) {
	var gotQuery repository.ListQuery
	repo := &mockCarRepository{
		listFunc: func(ctx context.Context, query repository.ListQuery) ([]*model.Car, error) {
			gotQuery = query
			return nil, nil
		},
	}
	svc := newTestService(repo)

	want := repository.ListQuery{Sort: repository.SortDesc, Search: "Toyota", Limit: 4}
	if _, err := svc.List(context.Background(), want); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotQuery != want {
		t.Errorf("expected query %#v, got %#v", want, gotQuery)
	}
}

func TestDeleteWrapsStorageFailure(t *testing.T) {
	repo := &mockCarRepository{
		deleteFunc: func(ctx context.Context, id string) (*model.WriteResult, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	_, err := svc.Delete(context.Background(), "507f1f77bcf86cd799439011")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
}
