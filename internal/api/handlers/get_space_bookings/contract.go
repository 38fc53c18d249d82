package get_space_bookings

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetSpaceBookings(ctx context.Context, req *models.GetSpaceBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
