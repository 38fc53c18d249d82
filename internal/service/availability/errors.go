package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

var (
	// ErrSpaceNotFound площадка не найдена или принадлежит другому владельцу
	ErrSpaceNotFound = fmt.Errorf("space %w", domain.ErrNotFound)

	// ErrPatternNotFound шаблон не найден или относится к другой площадке
	ErrPatternNotFound = fmt.Errorf("availability %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
