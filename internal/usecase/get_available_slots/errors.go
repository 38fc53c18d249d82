package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда площадка не найдена
	ErrSpaceNotFound = fmt.Errorf("get_available_slots: space %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
