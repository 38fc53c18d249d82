package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockSpace(ctx context.Context, spaceID int64) error
	GetOverlapping(ctx context.Context, spaceID int64, date time.Time, start, end types.TimeString) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BookingPetRepository интерфейс репозитория связей бронирование-питомец
type BookingPetRepository interface {
	Create(ctx context.Context, bookingID, petID int64) (*domain.BookingPet, error)
}

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// PatternRepository интерфейс репозитория шаблонов доступности
type PatternRepository interface {
	GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error)
}

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Pet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчики создания бронирований
type Metrics interface {
	ObserveBookingCreated(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
