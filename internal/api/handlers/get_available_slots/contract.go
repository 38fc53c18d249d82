package get_available_slots

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PetSpace-BookingService/internal/usecase/get_available_slots"
)

type SlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
	CheckSlot(ctx context.Context, req *getAvailableSlots.CheckRequest) (*getAvailableSlots.CheckResponse, error)
	Summary(ctx context.Context, spaceID int64) (*domain.AvailabilitySummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
