package create_booking

import (
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RenterID  int64            // ID арендатора
	SpaceID   int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "09:00")
	EndTime   types.TimeString // Время окончания
	PetIDs    []int64          // Питомцы арендатора
	Message   *string          // Сообщение владельцу (опционально)
}
