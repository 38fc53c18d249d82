package create_booking

import (
	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/PetSpace-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SpaceID       int64   `json:"spaceId"`
	BookingDate   string  `json:"bookingDate"` // "2024-01-01"
	StartTime     string  `json:"startTime"`   // "09:00"
	EndTime       string  `json:"endTime"`     // "11:00"
	PetIDs        []int64 `json:"petIds"`
	RenterMessage *string `json:"renterMessage,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Время передаётся как есть: формат проверяют доменные правила.
func (r *CreateBookingRequest) ToUseCaseRequest(renterID int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RenterID:  renterID,
		SpaceID:   r.SpaceID,
		Date:      date,
		StartTime: normalizeTime(r.StartTime),
		EndTime:   normalizeTime(r.EndTime),
		PetIDs:    r.PetIDs,
		Message:   r.RenterMessage,
	}, nil
}

func normalizeTime(raw string) types.TimeString {
	if t, err := types.NewTimeStringFromString(raw); err == nil {
		return t
	}
	return types.TimeString(raw)
}
