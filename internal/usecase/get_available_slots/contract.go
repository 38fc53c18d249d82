package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// PatternRepository интерфейс репозитория шаблонов доступности
type PatternRepository interface {
	GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBySpaceWithFilter получает бронирования площадки за период
	GetBySpaceWithFilter(ctx context.Context, spaceID int64, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
