package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound бронирование не найдено или недоступно пользователю
	ErrBookingNotFound = fmt.Errorf("booking %w", domain.ErrNotFound)

	// ErrSpaceNotFound площадка не найдена или принадлежит другому владельцу
	ErrSpaceNotFound = fmt.Errorf("space %w", domain.ErrNotFound)

	// ErrPetNotFound питомец не найден
	ErrPetNotFound = fmt.Errorf("pet %w", domain.ErrNotFound)

	// ErrPetNotInBooking питомец не привязан к бронированию
	ErrPetNotInBooking = fmt.Errorf("booking pet %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на действие
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrConcurrentUpdate бронирование изменено параллельным запросом
	ErrConcurrentUpdate = fmt.Errorf("%w: booking was modified concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
