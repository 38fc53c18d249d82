package transition_booking

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Approve(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error)
	Deny(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error)
	Cancel(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
