package booking_pets

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	AddPet(ctx context.Context, bookingID, userID, petID int64) (*models.BookingResponse, error)
	RemovePet(ctx context.Context, bookingID, userID, petID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
