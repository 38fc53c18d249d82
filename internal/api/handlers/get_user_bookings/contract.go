package get_user_bookings

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetRenterBookings(ctx context.Context, req *models.GetRenterBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
