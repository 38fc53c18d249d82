package complete_expired

import "context"

type BookingService interface {
	CompleteExpiredBookings(ctx context.Context, spaceID *int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
