package manage_availability

import (
	"context"

	"github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, ownerID, spaceID int64, req models.PatternRequest) (*models.PatternResponse, error)
	Update(ctx context.Context, ownerID, spaceID, patternID int64, req models.PatternRequest) (*models.PatternResponse, error)
	Deactivate(ctx context.Context, ownerID, spaceID, patternID int64) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
