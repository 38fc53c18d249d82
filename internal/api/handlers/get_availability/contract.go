package get_availability

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetByID(ctx context.Context, spaceID, patternID int64) (*models.PatternResponse, error)
	ListBySpace(ctx context.Context, spaceID int64, req models.ListPatternsRequest) (*models.PatternListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
