package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда площадка не найдена
	ErrSpaceNotFound = fmt.Errorf("create_booking: space %w", domain.ErrNotFound)

	// ErrPetNotFound возвращается, когда один из питомцев не найден
	ErrPetNotFound = fmt.Errorf("create_booking: pet %w", domain.ErrNotFound)

	// ErrConflict возвращается, когда на это время уже есть активное бронирование
	ErrConflict = fmt.Errorf("create_booking: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
