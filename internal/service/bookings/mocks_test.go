package bookings

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetByRenterID(ctx context.Context, renterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, renterID, status)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) GetBySpaceWithFilter(ctx context.Context, spaceID int64, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, spaceID, filter)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) GetExpiredApproved(ctx context.Context, spaceID *int64, now time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, spaceID, now)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	return m.Called(ctx, booking, from).Error(0)
}

func (m *mockBookingRepo) UpdateTotalPrice(ctx context.Context, id int64, totalPrice float64) error {
	return m.Called(ctx, id, totalPrice).Error(0)
}

type mockBookingPetRepo struct{ mock.Mock }

func (m *mockBookingPetRepo) Create(ctx context.Context, bookingID, petID int64) (*domain.BookingPet, error) {
	args := m.Called(ctx, bookingID, petID)
	bp, _ := args.Get(0).(*domain.BookingPet)
	return bp, args.Error(1)
}

func (m *mockBookingPetRepo) Delete(ctx context.Context, bookingID, petID int64) error {
	return m.Called(ctx, bookingID, petID).Error(0)
}

func (m *mockBookingPetRepo) Exists(ctx context.Context, bookingID, petID int64) (bool, error) {
	args := m.Called(ctx, bookingID, petID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingPetRepo) GetPetIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error) {
	args := m.Called(ctx, bookingID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *mockBookingPetRepo) CountByBooking(ctx context.Context, bookingID int64) (int, error) {
	args := m.Called(ctx, bookingID)
	return args.Int(0), args.Error(1)
}

type mockSpaceRepo struct{ mock.Mock }

func (m *mockSpaceRepo) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Space)
	return s, args.Error(1)
}

type mockPetRepo struct{ mock.Mock }

func (m *mockPetRepo) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Pet)
	return p, args.Error(1)
}

// fakeTxManager выполняет fn без транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }
