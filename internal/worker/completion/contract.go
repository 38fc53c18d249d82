package completion

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/infra/lock"
)

// BookingService завершает прошедшие подтверждённые бронирования
type BookingService interface {
	CompleteExpiredBookings(ctx context.Context, spaceID *int64) (int, error)
}

// Locker не даёт нескольким репликам запускать обход одновременно
type Locker interface {
	TryAcquire(ctx context.Context, name string) (lock.Release, bool, error)
}

// Metrics счетчик запусков обхода
type Metrics interface {
	ObserveSweep(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
