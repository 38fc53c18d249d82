package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRenterID(ctx context.Context, renterID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySpaceWithFilter(ctx context.Context, spaceID int64, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetExpiredApproved(ctx context.Context, spaceID *int64, now time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	UpdateTotalPrice(ctx context.Context, id int64, totalPrice float64) error
}

// BookingPetRepository интерфейс репозитория связей бронирование-питомец
type BookingPetRepository interface {
	Create(ctx context.Context, bookingID, petID int64) (*domain.BookingPet, error)
	Delete(ctx context.Context, bookingID, petID int64) error
	Exists(ctx context.Context, bookingID, petID int64) (bool, error)
	GetPetIDsByBooking(ctx context.Context, bookingID int64) ([]int64, error)
	CountByBooking(ctx context.Context, bookingID int64) (int, error)
}

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Metrics доменные метрики переходов статусов
type Metrics interface {
	ObserveTransition(action, outcome string)
	ObserveCompleted(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
