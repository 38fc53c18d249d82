package bookingpet

import "errors"

var (
	// ErrNotFound возвращается, когда питомец не привязан к бронированию
	ErrNotFound = errors.New("bookingpet.repository: booking pet not found")

	// ErrDuplicate возвращается при повторной привязке питомца к бронированию
	ErrDuplicate = errors.New("bookingpet.repository: pet already attached to booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingpet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingpet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingpet.repository: failed to scan row")
)
