package availability

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
	Create(ctx context.Context, p *domain.AvailabilityPattern) (*domain.AvailabilityPattern, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityPattern, error)
	GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error)
	Update(ctx context.Context, p *domain.AvailabilityPattern) error
	Deactivate(ctx context.Context, id int64) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
