package get_available_slots

import (
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

// Request модель запроса на получение слотов за период
type Request struct {
	SpaceID       int64     // ID площадки
	StartDate     time.Time // Первая дата периода (без времени)
	EndDate       time.Time // Последняя дата периода включительно
	DurationHours *float64  // Длительность слота; nil - часовые слоты
}

// Response модель ответа со списком слотов
type Response struct {
	SpaceID       int64
	StartDate     time.Time
	EndDate       time.Time
	DurationHours float64
	Slots         []domain.Slot // Available=false, если слот пересекается с активным бронированием
}

// CheckRequest модель запроса на проверку произвольного слота
type CheckRequest struct {
	SpaceID       int64
	Start         time.Time // Дата и время начала
	DurationHours float64
}

// CheckResponse результат проверки слота
type CheckResponse struct {
	SpaceID       int64
	Start         time.Time
	End           time.Time
	DurationHours float64
	WithinPattern bool              // Интервал попадает в активный шаблон
	Conflicts     []*domain.Booking // Пересекающиеся активные бронирования
	Available     bool              // WithinPattern и нет конфликтов
	PricePerDog   float64           // Стоимость слота за одного питомца
}
